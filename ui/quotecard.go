package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/bridge"
)

// QuoteCard renders the floating author/quote card above a blossom.
type QuoteCard struct {
	renderer *Renderer
}

// NewQuoteCard creates a quote card.
func NewQuoteCard() *QuoteCard {
	return &QuoteCard{renderer: NewRenderer()}
}

// Draw renders the card anchored at screen position (sx, sy), horizontally
// centred and sitting above the anchor. Selected blossoms show the full
// quote; hovered ones only the author.
func (q *QuoteCard) Draw(ov bridge.Overlay, sx, sy float32) {
	if !ov.Visible {
		return
	}
	r := q.renderer
	th := r.Theme

	author := ov.SelectedAuthor
	var lines []string
	if author != "" {
		inner := th.CardWidth - 2*th.Padding
		lines = WrapText("\""+ov.SelectedQuote+"\"", inner, textMeasure(th.FontSize))
	} else {
		author = ov.HoveredAuthor
	}
	if author == "" {
		return
	}

	width := th.CardWidth
	if len(lines) == 0 {
		width = rl.MeasureText(author, th.HeaderFontSize) + 2*th.Padding
	}
	height := th.Padding*2 + th.HeaderFontSize + int32(len(lines))*th.LineHeight
	if len(lines) > 0 {
		height += 6
	}

	x := int32(sx) - width/2
	y := int32(sy) - height
	r.DrawPanel(x, y, width, height)

	ty := y + th.Padding
	rl.DrawText(author, x+th.Padding, ty, th.HeaderFontSize, th.Accent)
	ty += th.HeaderFontSize + 6
	for _, line := range lines {
		rl.DrawText(line, x+th.Padding, ty, th.FontSize, th.QuoteColor)
		ty += th.LineHeight
	}
}
