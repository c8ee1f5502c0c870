package smartlog

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gorewood/driftwood/internal/dag"
)

// Options select the rendering dialect.
type Options struct {
	ASCII   bool // plain glyphs for dumb terminals
	Color   bool
	Numbers bool // label each node for selection by number
}

type glyphSet struct {
	commit   string
	head     string
	obsolete string
	elision  string
	lane     string
}

var (
	unicodeGlyphs = glyphSet{commit: "◯", head: "●", obsolete: "✕", elision: "⋮", lane: "│ "}
	asciiGlyphs   = glyphSet{commit: "o", head: "@", obsolete: "x", elision: ":", lane: "| "}
)

type styles struct {
	hash     lipgloss.Style
	branch   lipgloss.Style
	head     lipgloss.Style
	obsolete lipgloss.Style
}

func newStyles(color bool) *styles {
	if !color {
		return &styles{
			hash:     lipgloss.NewStyle(),
			branch:   lipgloss.NewStyle(),
			head:     lipgloss.NewStyle(),
			obsolete: lipgloss.NewStyle(),
		}
	}
	return &styles{
		hash:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		branch:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green
		head:     lipgloss.NewStyle().Bold(true),
		obsolete: lipgloss.NewStyle().Faint(true),
	}
}

// Render produces the display lines for a graph, one line per node plus a
// leading elision marker when older history is hidden.
func Render(g *Graph, opts Options) []string {
	glyphs := unicodeGlyphs
	if opts.ASCII {
		glyphs = asciiGlyphs
	}
	st := newStyles(opts.Color)

	var lines []string
	if g.Elided {
		lines = append(lines, glyphs.elision)
	}
	for i, n := range g.Nodes {
		lines = append(lines, renderNode(n, i+1, glyphs, st, opts.Numbers))
	}
	return lines
}

func renderNode(n *Node, number int, glyphs glyphSet, st *styles, numbered bool) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(glyphs.lane, n.Depth))

	glyph := glyphs.commit
	switch {
	case n.Head:
		glyph = st.head.Render(glyphs.head)
	case n.Obsolete:
		glyph = st.obsolete.Render(glyphs.obsolete)
	}
	sb.WriteString(glyph)

	if numbered {
		sb.WriteString(" [")
		sb.WriteString(strconv.Itoa(number))
		sb.WriteString("]")
	}

	sb.WriteString(" ")
	sb.WriteString(st.hash.Render(dag.ShortHash(n.Commit.Hash)))
	if n.Commit.Subject != "" {
		sb.WriteString(" ")
		if n.Obsolete {
			sb.WriteString(st.obsolete.Render(n.Commit.Subject))
		} else {
			sb.WriteString(n.Commit.Subject)
		}
	}
	if len(n.Branches) > 0 {
		sb.WriteString(" ")
		sb.WriteString(st.branch.Render("(" + strings.Join(n.Branches, ", ") + ")"))
	}
	return sb.String()
}
