package render

import (
	"fmt"
	"strings"

	"suitrental-backend/internal/domain"
)

// Renderer turns a report dataset into an opaque binary artifact. The
// reporting path treats implementations as black boxes; a PDF renderer plugs
// in behind the same contract.
type Renderer interface {
	Render(typ domain.ReportType, start, end string, rows []domain.DatasetRow) (data []byte, contentType string, err error)
}

// TextRenderer produces a plain-text report document.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Render(typ domain.ReportType, start, end string, rows []domain.DatasetRow) ([]byte, string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Report %s\n", typ)
	fmt.Fprintf(&b, "Range: %s - %s\n\n", start, end)

	for i, row := range rows {
		fmt.Fprintf(&b, "%d. Code: %s | Client: %s\n", i+1, row.Code, row.ClientName)
		fmt.Fprintf(&b, "   Amount: %.2f | Origin: %s\n", float64(row.Cents)/100, row.Origin)
		fmt.Fprintf(&b, "   Date: %s\n", row.Date)
	}
	if len(rows) == 0 {
		b.WriteString("No results for the selected range.\n")
	}

	return []byte(b.String()), "text/plain; charset=utf-8", nil
}
