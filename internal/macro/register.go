package macro

import "unicode"

// Register validation constants.
const (
	// MinLetterRegister is the first valid letter register.
	MinLetterRegister = 'a'
	// MaxLetterRegister is the last valid letter register.
	MaxLetterRegister = 'z'
	// MinDigitRegister is the first valid digit register.
	MinDigitRegister = '0'
	// MaxDigitRegister is the last valid digit register.
	MaxDigitRegister = '9'
)

// IsValidRegister returns true if r is a valid register name.
// Valid registers are lowercase letters (a-z) and digits (0-9).
func IsValidRegister(r rune) bool {
	return IsLetterRegister(r) || IsDigitRegister(r)
}

// IsLetterRegister returns true if r is a letter register (a-z).
func IsLetterRegister(r rune) bool {
	return r >= MinLetterRegister && r <= MaxLetterRegister
}

// IsDigitRegister returns true if r is a digit register (0-9).
func IsDigitRegister(r rune) bool {
	return r >= MinDigitRegister && r <= MaxDigitRegister
}

// IsAppendRegister returns true if r is an uppercase letter (A-Z).
// In Vim, uppercase letters append to the corresponding lowercase register.
func IsAppendRegister(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// ToAppendTarget converts an uppercase register to its lowercase target.
// Returns the lowercase letter for A-Z, or 0 for invalid input.
func ToAppendTarget(r rune) rune {
	if IsAppendRegister(r) {
		return unicode.ToLower(r)
	}
	return 0
}

