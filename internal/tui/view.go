package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/sanitize"
)

const (
	defaultWidth = 80
	minWrap      = 20
	// title, status, download, box border and footer
	chromeLines = 8
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.showDownload {
		b.WriteString(InfoStyle.Render("Download: " + m.snap.DownloadURL))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(BoxStyle.Render(m.body()))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(TextFooter))

	return b.String()
}

func (m Model) statusLine() string {
	sel := m.snap.Selection
	status := fmt.Sprintf("%s | %s | %dpx", sel.DateString(), sel.Language.Label(), m.snap.FontSize)
	if m.snap.Loading {
		return HighlightStyle.Render(status) + " " + StatusStyle.Render(TextLoading)
	}
	return HighlightStyle.Render(status)
}

// body returns the visible window of the wrapped document.
func (m Model) body() string {
	lines := m.lines()

	if page := m.pageLines(); page > 0 && len(lines) > page {
		start := min(m.offset, len(lines)-page)
		lines = lines[start : start+page]
	}

	out := strings.Join(lines, "\n")
	if m.snap.Failed {
		return ErrorStyle.Render(out)
	}
	return out
}

// lines is the document as plain text wrapped to the current column width.
func (m Model) lines() []string {
	text := sanitize.PlainText(m.snap.Content)
	wrapped := lipgloss.NewStyle().Width(m.wrapWidth()).Render(text)
	return strings.Split(wrapped, "\n")
}

// maxOffset is the offset at which the last line sits at the bottom of the
// pane. It is zero while the whole document fits.
func (m Model) maxOffset() int {
	page := m.pageLines()
	if page == 0 {
		return 0
	}
	return max(len(m.lines())-page, 0)
}

// wrapWidth narrows the text column as the font grows, the closest a
// terminal gets to scaling type. At the default size the column spans the
// window.
func (m Model) wrapWidth() int {
	full := defaultWidth
	if m.width > 0 {
		full = m.width
	}
	full = max(full-4, minWrap)

	font := max(m.snap.FontSize, domain.MinFontSize)
	w := full * int(domain.DefaultFontSize) / int(font)
	return min(max(w, minWrap), full)
}

// pageLines is zero until the terminal size is known.
func (m Model) pageLines() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-chromeLines, 1)
}
