package tui

import tea "github.com/charmbracelet/bubbletea"

// isIdentRune reports whether r may appear in an owner/name entry.
func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '/', r == '-', r == '_', r == '.':
		return true
	}
	return false
}

// acceptInputKey filters key presses for the entry field: identifier
// characters plus cursor movement and deletion. Everything else is dropped.
func acceptInputKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyRight, tea.KeyBackspace, tea.KeyDelete:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if !isIdentRune(r) {
				return false
			}
		}
		return len(msg.Runes) > 0
	}
	return false
}
