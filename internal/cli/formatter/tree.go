package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// Detail is shown right-aligned after the title column.
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders items as an indented tree using box-drawing
// connectors. Top-level titles are bold and details line up in one column.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	maxWidth := 0
	// open[l] is true while the ancestor at level l still has siblings below.
	var open []bool

	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for l := 1; l < item.Level; l++ {
				if l < len(open) && open[l] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		for len(open) <= item.Level {
			open = append(open, false)
		}
		open[item.Level] = !item.IsLast

		title := item.Title
		if item.Level == 0 {
			title = Bold(title)
		}
		contents[idx] = prefix.String() + title
		if w := lipgloss.Width(contents[idx]); w > maxWidth {
			maxWidth = w
		}
	}

	var b strings.Builder
	for idx, item := range items {
		if item.Detail == "" {
			b.WriteString(contents[idx] + "\n")
			continue
		}
		pad := maxWidth - lipgloss.Width(contents[idx])
		detail := StyleBlue.Render(item.Detail)
		if item.Level == 0 {
			detail = StyleYellow.Render(item.Detail)
		}
		b.WriteString(contents[idx] + strings.Repeat(" ", pad+colGap) + detail + "\n")
	}
	return b.String()
}
