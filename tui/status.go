package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// active engine, its seed, and the consumption count.
func (m Model) renderStatusBar() string {
	e := m.session.Active()

	left := fmt.Sprintf(" %s | seed %d", m.session.ActiveName(), e.RootSeed())
	right := fmt.Sprintf("count %d ", e.State())

	// Show the preset pack name if it fits.
	if lib := m.session.Library(); lib != nil && lib.Pack.Name != "" {
		candidate := fmt.Sprintf("%s | count %d ", lib.Pack.Name, e.State())
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
