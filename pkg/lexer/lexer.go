// Package lexer turns ep source text into tokens.
//
// Two grammars are available. ModeSplit, the default, gives identifiers,
// operators, and punctuation their own token kinds, so `x=5` lexes as three
// tokens. ModeLegacy keeps the first single-pattern grammar, where
// identifier and symbol characters that abut form one word token.
package lexer

import (
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Mode selects the lexical grammar.
type Mode string

const (
	ModeSplit  Mode = "split"
	ModeLegacy Mode = "legacy"
)

// ParseMode maps a configuration string onto a Mode. The empty string
// selects the default grammar.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSplit:
		return ModeSplit, nil
	case ModeLegacy:
		return ModeLegacy, nil
	default:
		return "", UnknownModeError(s)
	}
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithMode selects the lexical grammar.
func WithMode(mode Mode) Option {
	return func(l *Lexer) {
		if mode != "" {
			l.mode = mode
		}
	}
}

// WithAllowGaps makes the lexer skip unrecognized characters instead of
// failing with a *GapError.
func WithAllowGaps(allow bool) Option {
	return func(l *Lexer) { l.allowGaps = allow }
}

// WithLogger routes debug output (skipped gaps) to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Lexer holds tokenizer settings. It keeps no per-input state and may be
// reused.
type Lexer struct {
	mode      Mode
	allowGaps bool
	logger    *slog.Logger
}

// New returns a lexer using the split grammar that rejects gaps unless
// configured otherwise.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		mode:   ModeSplit,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Mode reports the configured grammar.
func (l *Lexer) Mode() Mode { return l.mode }

// AllowGaps reports whether unrecognized characters are skipped.
func (l *Lexer) AllowGaps() bool { return l.allowGaps }

// Tokenize converts src into its full token sequence.
func (l *Lexer) Tokenize(src string) ([]Token, error) {
	if l.mode == ModeLegacy {
		return l.tokenizeLegacy(src)
	}
	return l.tokenizeSplit(src)
}

// Tokenize runs the default lexer over src.
func Tokenize(src string) ([]Token, error) {
	return New().Tokenize(src)
}

// gap handles a run of unrecognized text. A nil return means the run was
// skipped.
func (l *Lexer) gap(pos Position, text string) error {
	if l.allowGaps {
		l.logger.Debug("skipping unrecognized input", "text", text, "pos", pos.String())
		return nil
	}
	return &GapError{Pos: pos, Text: text}
}

func (l *Lexer) tokenizeSplit(src string) ([]Token, error) {
	loc := newLocator(src)
	tokens := make([]Token, 0, len(src)/2)
	emit := func(kind Kind, start, end int) {
		tokens = append(tokens, Token{Kind: kind, Text: src[start:end], Pos: loc.at(start)})
	}

	pos := 0
	for pos < len(src) {
		c := src[pos]
		switch {
		case isSpace(c):
			pos++
		case isDigit(c):
			end := pos + 1
			for end < len(src) && isDigit(src[end]) {
				end++
			}
			emit(KindNumber, pos, end)
			pos = end
		case isIdentStart(c):
			end := pos + 1
			for end < len(src) && isIdentPart(src[end]) {
				end++
			}
			kind := KindIdentifier
			if isKeyword(src[pos:end]) {
				kind = KindKeyword
			}
			emit(kind, pos, end)
			pos = end
		case isOperator(c):
			emit(KindOperator, pos, pos+1)
			pos++
		case isPunct(c):
			emit(KindPunct, pos, pos+1)
			pos++
		case c == '"' && strings.IndexByte(src[pos+1:], '"') >= 0:
			end := pos + 1 + strings.IndexByte(src[pos+1:], '"') + 1
			emit(KindString, pos, end)
			pos = end
		default:
			end := pos
			for end < len(src) && startsGap(src, end) {
				_, size := utf8.DecodeRuneInString(src[end:])
				end += size
			}
			if err := l.gap(loc.at(pos), src[pos:end]); err != nil {
				return nil, err
			}
			pos = end
		}
	}
	return tokens, nil
}

// startsGap reports whether the byte at i begins no token in the split
// grammar. A quote with no closing quote after it is part of a gap.
func startsGap(src string, i int) bool {
	c := src[i]
	if isSpace(c) || isDigit(c) || isIdentStart(c) || isOperator(c) || isPunct(c) {
		return false
	}
	if c == '"' {
		return strings.IndexByte(src[i+1:], '"') < 0
	}
	return true
}
