// Package render draws cards as terminal art.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/shuffler/internal/card"
)

// Size is a display-size hint
type Size int

const (
	Small Size = iota
	Medium
	Large
)

// MaxStack is the number of backs drawn for the deck pile
const MaxStack = 5

type dims struct {
	width, height int // inside the border
}

var sizeMap = map[Size]dims{
	Small:  {width: 9, height: 7},
	Medium: {width: 11, height: 9},
	Large:  {width: 13, height: 11},
}

func (s Size) dims() dims {
	if d, ok := sizeMap[s]; ok {
		return d
	}
	return sizeMap[Medium]
}

func (s Size) String() string {
	switch s {
	case Small:
		return "small"
	case Large:
		return "large"
	default:
		return "medium"
	}
}

// ParseSize parses small, medium or large
func ParseSize(s string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small", "s":
		return Small, nil
	case "", "medium", "m":
		return Medium, nil
	case "large", "l":
		return Large, nil
	}
	return Medium, fmt.Errorf("invalid card size: %q (use small, medium or large)", s)
}

const (
	faceBackground = "#ffffff"
	faceBorder     = "#9ca3af"
	backFrom       = "#2563eb"
	backTo         = "#1e40af"
	backBorder     = "#60a5fa"
	invalidFill    = "#e5e7eb"
	invalidText    = "#6b7280"
	emptyBorder    = "#4b5563"
)

var dashedBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// pip holds a grid position: row 0..4 top to bottom, col 0..2 left to right
type pip struct{ row, col int }

var pipLayouts = map[card.Rank][]pip{
	card.Two:   {{0, 1}, {4, 1}},
	card.Three: {{0, 1}, {2, 1}, {4, 1}},
	card.Four:  {{0, 0}, {0, 2}, {4, 0}, {4, 2}},
	card.Five:  {{0, 0}, {0, 2}, {2, 1}, {4, 0}, {4, 2}},
	card.Six:   {{0, 0}, {0, 2}, {2, 0}, {2, 2}, {4, 0}, {4, 2}},
	card.Seven: {{0, 0}, {0, 2}, {1, 1}, {2, 0}, {2, 2}, {4, 0}, {4, 2}},
	card.Eight: {{0, 0}, {0, 2}, {1, 1}, {2, 0}, {2, 2}, {3, 1}, {4, 0}, {4, 2}},
	card.Nine:  {{0, 0}, {0, 2}, {1, 0}, {1, 2}, {2, 1}, {3, 0}, {3, 2}, {4, 0}, {4, 2}},
	card.Ten:   {{0, 0}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {3, 0}, {3, 1}, {3, 2}, {4, 0}, {4, 2}},
}

// Card renders c at the given size. A nil or invalid card renders the
// invalid-card placeholder; isBack renders a face-down back regardless of c.
func Card(c *card.Card, size Size, isBack bool) string {
	if isBack {
		return Back(size)
	}
	if c == nil || !c.Valid() {
		return Invalid(size)
	}
	return face(*c, size)
}

func face(c card.Card, size Size) string {
	d := size.dims()
	grid := newGrid(d)
	symbol := []rune(card.Symbol(c.Suit))[0]
	corner := string(c.Rank) + card.Symbol(c.Suit)

	grid.put(0, 0, corner)
	grid.put(d.height-1, d.width-len([]rune(corner)), corner)

	// pip area sits between the two corner rows
	top, h := 1, d.height-2
	mid := top + h/2
	center := d.width / 2

	switch c.Rank {
	case card.Ace:
		grid.set(mid, center, symbol)
	case card.Jack, card.Queen, card.King:
		grid.put(mid-1, center, string(c.Rank))
		grid.set(mid+1, center, symbol)
	default:
		for _, p := range pipLayouts[c.Rank] {
			row := top + p.row*(h-1)/4
			col := (p.col + 1) * d.width / 4
			grid.set(row, col, symbol)
		}
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(card.Color(c.Suit))).
		Background(lipgloss.Color(faceBackground)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(faceBorder))

	return style.Render(grid.String())
}

// Back renders a face-down card
func Back(size Size) string {
	d := size.dims()
	from, _ := colorful.Hex(backFrom)
	to, _ := colorful.Hex(backTo)

	lines := make([]string, d.height)
	for y := range lines {
		t := float64(y) / float64(max(d.height-1, 1))
		row := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(from.BlendLab(to, t).Clamped().Hex()))

		text := strings.Repeat(" ", d.width)
		if y == d.height/2 {
			text = centerText("♠", d.width)
		}
		lines[y] = row.Render(text)
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(backBorder))

	return border.Render(strings.Join(lines, "\n"))
}

// Invalid renders the placeholder shown for missing or malformed card data
func Invalid(size Size) string {
	d := size.dims()
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(invalidText)).
		Background(lipgloss.Color(invalidFill)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(faceBorder))

	return style.Render(labelBlock("Invalid Card", d))
}

// Empty renders a dashed outline with a label, e.g. "Empty" or "No card opened"
func Empty(size Size, label string) string {
	d := size.dims()
	fill, _ := colorful.Hex(emptyBorder)
	text, _ := colorful.Hex("#ffffff")

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fill.BlendLab(text, 0.2).Clamped().Hex())).
		Border(dashedBorder).
		BorderForeground(lipgloss.Color(emptyBorder))

	return style.Render(labelBlock(label, d))
}

// Stack renders the deck pile: up to MaxStack backs, each offset by one cell
func Stack(n int, size Size) string {
	if n <= 0 {
		return Empty(size, "Empty")
	}

	top := Back(size)
	layers := min(n, MaxStack) - 1
	if layers == 0 {
		return top
	}

	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(backBorder))
	topLines := strings.Split(top, "\n")
	h, w := len(topLines), lipgloss.Width(top)

	out := make([]string, 0, h+layers)
	for y := 0; y < h; y++ {
		var b strings.Builder
		b.WriteString(topLines[y])
		for i := 1; i <= layers; i++ {
			if y >= i {
				b.WriteString(edge.Render("▕"))
			} else {
				b.WriteString(" ")
			}
		}
		out = append(out, b.String())
	}
	for j := 0; j < layers; j++ {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", j+1))
		b.WriteString(edge.Render(strings.Repeat("▔", w-1)))
		for i := j + 2; i <= layers; i++ {
			b.WriteString(edge.Render("▕"))
		}
		out = append(out, b.String())
	}

	return strings.Join(out, "\n")
}

// labelBlock centers the words of label vertically and horizontally
func labelBlock(label string, d dims) string {
	words := wrapWords(label, d.width)
	start := (d.height - len(words)) / 2

	lines := make([]string, d.height)
	for y := range lines {
		i := y - start
		if i >= 0 && i < len(words) {
			lines[y] = centerText(words[i], d.width)
		} else {
			lines[y] = strings.Repeat(" ", d.width)
		}
	}
	return strings.Join(lines, "\n")
}

// wrapWords packs words into lines no wider than width
func wrapWords(text string, width int) []string {
	var result []string
	var current string
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= width:
			current += " " + word
		default:
			result = append(result, current)
			current = word
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}

func centerText(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

type grid struct {
	cells [][]rune
}

func newGrid(d dims) *grid {
	cells := make([][]rune, d.height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", d.width))
	}
	return &grid{cells: cells}
}

func (g *grid) set(row, col int, r rune) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col] = r
}

// put writes s left to right starting at col
func (g *grid) put(row, col int, s string) {
	for i, r := range []rune(s) {
		g.set(row, col+i, r)
	}
}

func (g *grid) String() string {
	lines := make([]string, len(g.cells))
	for y, row := range g.cells {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}
