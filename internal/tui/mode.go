// Package tui provides the terminal user interface for duelist.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal    Mode = iota // List navigation
	ModeInputText             // Typing the task text
	ModeInputDue              // Typing the due expression
	ModeHelp                  // Full key help
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInputText:
		return "input_text"
	case ModeInputDue:
		return "input_due"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeInputText, ModeInputDue:
		return true
	case ModeNormal, ModeHelp:
		return false
	}
	return false
}
