package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyTab, "Tab"},
		{KeyBackspace, "Backspace"},
		{KeyDelete, "Delete"},
		{KeyUp, "Up"},
		{KeyDown, "Down"},
		{KeyLeft, "Left"},
		{KeyRight, "Right"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{KeySpace, "Space"},
		{KeyRune, "Rune"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// specialKeys in internal/ui/terminal.go only maps the keys this table
// covers; a Key value tcell never sends still needs a readable fallback.
func TestKeyStringFallsBackForUnnamedValue(t *testing.T) {
	if got := Key(9999).String(); got == "" {
		t.Error("Key.String() for an unrecognized value should not be empty")
	}
}
