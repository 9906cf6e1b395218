package domain

import (
	"fmt"
	"time"
)

type ArticleState string

const (
	ArticleStateAvailable   ArticleState = "AVAILABLE"
	ArticleStateRented      ArticleState = "RENTED"
	ArticleStateMaintenance ArticleState = "MAINTENANCE"
	ArticleStateRetired     ArticleState = "RETIRED"
)

// Transition reason codes recorded in the state audit log.
const (
	ReasonManualAdjust  = "MANUAL_ADJUST"
	ReasonRentalOpen    = "RENTAL_OPEN"
	ReasonRentalReturn  = "RENTAL_RETURN"
	ReasonItemDamaged   = "ITEM_DAMAGED"
	ReasonItemLost      = "ITEM_LOST"
	ReasonHoldExpired   = "HOLD_EXPIRED"
	ReasonAdHocService  = "AD_HOC_SERVICE"
)

// DefaultMaintenanceHours is the hold applied when no explicit duration is
// given (ad-hoc servicing, damaged returns).
const DefaultMaintenanceHours = 24

type Article struct {
	ID        int32        `json:"id"`
	TypeID    int32        `json:"type_id"`
	TypeName  string       `json:"type_name,omitempty"`
	Code      string       `json:"code"`
	State     ArticleState `json:"state"`
	HoldUntil *time.Time   `json:"hold_until,omitempty"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type ArticleType struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// StateTransition is one immutable audit entry in the article state log.
type StateTransition struct {
	ID        int64        `json:"id"`
	ArticleID int32        `json:"article_id"`
	FromState ArticleState `json:"from_state"`
	ToState   ArticleState `json:"to_state"`
	Reason    string       `json:"reason"`
	Comment   string       `json:"comment"`
	ActorID   int32        `json:"actor_id"`
	CreatedAt time.Time    `json:"created_at"`
}

// reachable encodes the full lifecycle: AVAILABLE cycles through RENTED or
// MAINTENANCE, RETIRED is terminal from any state. A pair absent here is a
// hard failure, never a warning; this is what prevents double-booking.
var reachable = map[ArticleState][]ArticleState{
	ArticleStateAvailable:   {ArticleStateRented, ArticleStateMaintenance, ArticleStateRetired},
	ArticleStateRented:      {ArticleStateAvailable, ArticleStateMaintenance, ArticleStateRetired},
	ArticleStateMaintenance: {ArticleStateAvailable, ArticleStateRetired},
	ArticleStateRetired:     {},
}

// CanTransition reports whether target is reachable from current.
func CanTransition(current, target ArticleState) bool {
	for _, s := range reachable[current] {
		if s == target {
			return true
		}
	}
	return false
}

// CheckTransition validates a requested transition, returning
// ErrInvalidTransition with both states named when it is not allowed.
func CheckTransition(current, target ArticleState) error {
	if !CanTransition(current, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
	}
	return nil
}

// ValidArticleState reports whether s is a known lifecycle state.
func ValidArticleState(s ArticleState) bool {
	switch s {
	case ArticleStateAvailable, ArticleStateRented, ArticleStateMaintenance, ArticleStateRetired:
		return true
	}
	return false
}
