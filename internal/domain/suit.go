package domain

// Suit is a catalog template composed of article-type pieces; physical
// articles are rented individually, the suit only groups their types.
type Suit struct {
	ID          int32       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Active      bool        `json:"active"`
	Pieces      []SuitPiece `json:"pieces,omitempty"`
}

type SuitPiece struct {
	ID       int32  `json:"id"`
	SuitID   int32  `json:"suit_id"`
	TypeID   int32  `json:"type_id"`
	TypeName string `json:"type_name,omitempty"`
	Optional bool   `json:"optional"`
}
