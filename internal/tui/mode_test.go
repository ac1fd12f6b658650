package tui

import "testing"

func TestMode_String(t *testing.T) {
	tests := []struct {
		want string
		mode Mode
	}{
		{"normal", ModeNormal},
		{"input_text", ModeInputText},
		{"input_due", ModeInputDue},
		{"help", ModeHelp},
		{"unknown", Mode(99)},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestMode_IsInputMode(t *testing.T) {
	if !ModeInputText.IsInputMode() || !ModeInputDue.IsInputMode() {
		t.Error("form modes should accept input")
	}
	if ModeNormal.IsInputMode() || ModeHelp.IsInputMode() {
		t.Error("list and help modes should not accept input")
	}
}
