package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EnvMaxInputSize overrides DefaultMaxInputSize when set to a positive integer.
const EnvMaxInputSize = "GUESSR_MAX_INPUT_SIZE"

// DefaultMaxInputSize bounds a single answer in bytes.
var DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput turns raw player text into a single answer line.
//
// Oversized or non UTF-8 input is rejected outright. Tabs and line breaks
// become spaces, every other control rune (ESC, NUL, BEL...) is dropped, and
// the result is trimmed.
func SanitizeInput(input string) (string, error) {
	if limit := maxInputSize(); len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	return strings.TrimSpace(strings.Map(answerRune, input)), nil
}

func answerRune(r rune) rune {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return ' '
	case unicode.IsControl(r):
		return -1
	}
	return r
}

func maxInputSize() int {
	raw := os.Getenv(EnvMaxInputSize)
	if raw == "" {
		return DefaultMaxInputSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return DefaultMaxInputSize
	}
	return size
}
