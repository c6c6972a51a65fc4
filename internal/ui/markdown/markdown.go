// Package markdown renders markdown pages to fit inside a bordered pane.
package markdown

import (
	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/linedit/internal/log"
)

const (
	// DefaultStyle is used when no style is configured.
	DefaultStyle = "dark"

	paneChrome = 4 // border plus one column of padding per side
	minWrap    = 20
)

// flatDocument drops glamour's document margins; the pane border already
// frames the page.
const flatDocument = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer turns markdown into terminal text wrapped to a pane's inner
// width. It is rebuilt only when the pane width or style changes.
type Renderer struct {
	term  *glamour.TermRenderer
	style string
	pane  int
	wrap  int
}

// New creates a renderer for a pane paneWidth columns wide. style is a
// glamour style name ("dark", "light", "notty"). A fixed style avoids
// WithAutoStyle's terminal background query, whose reply would leak into
// the prompt.
func New(paneWidth int, style string) (*Renderer, error) {
	if style == "" {
		style = DefaultStyle
	}
	wrap := max(paneWidth-paneChrome, minWrap)

	term, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(flatDocument)),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{term: term, style: style, pane: paneWidth, wrap: wrap}, nil
}

// Wrap returns the column at which text is wrapped.
func (r *Renderer) Wrap() int {
	return r.wrap
}

// Fits reports whether r was built for this pane width and style.
func (r *Renderer) Fits(paneWidth int, style string) bool {
	if r == nil {
		return false
	}
	if style == "" {
		style = DefaultStyle
	}
	return r.pane == paneWidth && r.style == style
}

// Page renders src. When glamour fails the raw source is returned so the
// page is still readable.
func (r *Renderer) Page(src string) string {
	out, err := r.term.Render(src)
	if err != nil {
		log.ErrorErr(log.CatUI, "rendering markdown", err)
		return src
	}
	return out
}
