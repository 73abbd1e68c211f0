package lexer

import "fmt"

// GapError reports source text that matches no token shape. It is only
// returned when the lexer is not configured to skip gaps.
type GapError struct {
	Pos  Position
	Text string
}

func (e *GapError) Error() string {
	return fmt.Sprintf("lexer: unexpected %q at %s", e.Text, e.Pos)
}

// UnknownModeError is returned by ParseMode for unrecognized grammar names.
type UnknownModeError string

func (e UnknownModeError) Error() string {
	return fmt.Sprintf("lexer: unknown mode %q (expected %q or %q)", string(e), ModeSplit, ModeLegacy)
}
