// Package detail provides the result detail view for the console. It
// shows the full chunk text of one search result together with its
// provenance, so a lawyer can judge whether the passage supports the
// claim before citing it.
package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avocatech/juricite/internal/adapters/driving/tui/messages"
	"github.com/avocatech/juricite/internal/adapters/driving/tui/styles"
	"github.com/avocatech/juricite/internal/core/domain"
)

// View is the result detail view.
type View struct {
	styles *styles.Styles

	result       *domain.SearchResult
	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new result detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s}
}

// SetResult sets the result to display and resets scrolling.
func (v *View) SetResult(result domain.SearchResult) {
	v.result = &result
	v.scrollOffset = 0
	v.wrapContent()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.wrapContent()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d":
		maxOffset := v.maxScrollOffset()
		v.scrollOffset += v.visibleLines()
		if v.scrollOffset > maxOffset {
			v.scrollOffset = maxOffset
		}
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	}

	return v, nil
}

// wrapContent wraps the chunk text to fit the view width.
func (v *View) wrapContent() {
	if v.result == nil || v.result.Content == "" {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(v.result.Content, "\n")
	v.lines = make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		if len(line) <= contentWidth {
			v.lines = append(v.lines, line)
			continue
		}
		for len(line) > contentWidth {
			v.lines = append(v.lines, line[:contentWidth])
			line = line[contentWidth:]
		}
		if line != "" {
			v.lines = append(v.lines, line)
		}
	}
}

// visibleLines returns the number of content lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for the header block, separator and help footer.
	reserved := 10
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// View renders the result detail view.
func (v *View) View() string {
	var b strings.Builder

	if v.result == nil {
		return v.styles.Muted.Render("(No result selected)")
	}

	// Provenance header: who the chunk belongs to and where it sits.
	title := v.result.DocumentID
	if title == "" {
		title = v.result.EvidenceLinkID
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	meta := make([]string, 0, 4)
	if v.result.CaseID != "" {
		meta = append(meta, "case "+v.result.CaseID)
	}
	if v.result.PageNumber > 0 {
		meta = append(meta, fmt.Sprintf("page %d", v.result.PageNumber))
	}
	meta = append(meta, fmt.Sprintf("score %.3f", v.result.Score))
	b.WriteString(v.styles.Muted.Render(strings.Join(meta, "  ")))
	b.WriteString("\n")

	if len(v.result.Highlights) > 0 {
		b.WriteString(v.styles.Highlight.Render("Matches: " + strings.Join(v.result.Highlights, " | ")))
		b.WriteString("\n")
	}
	if len(v.result.RelatedArticles) > 0 {
		b.WriteString(v.styles.Highlight.Render("See also: " + strings.Join(v.result.RelatedArticles, ", ")))
		b.WriteString("\n")
	}

	// Separator
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	// Empty content
	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Content
	visibleLines := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visibleLines; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	// Scroll position indicator
	if len(v.lines) > visibleLines {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			minInt(v.scrollOffset+visibleLines, len(v.lines)),
			len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
}

// Result returns the currently displayed result.
func (v *View) Result() *domain.SearchResult {
	return v.result
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
