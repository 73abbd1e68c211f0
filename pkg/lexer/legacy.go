package lexer

import (
	"regexp"
)

// legacyPattern is the first-generation grammar: optional leading whitespace, then
// the first alternative that matches. Go's regexp prefers alternatives left to
// right, so `letter` yields `let` followed by `ter`.
var legacyPattern = regexp.MustCompile(`\s*(\d+|let|print|"[^"]*"|[+\-*/()=;\w]+)`)

func (l *Lexer) tokenizeLegacy(src string) ([]Token, error) {
	loc := newLocator(src)
	matches := legacyPattern.FindAllStringSubmatchIndex(src, -1)
	tokens := make([]Token, 0, len(matches))

	prev := 0
	for _, m := range matches {
		if err := l.legacyGaps(loc, src, prev, m[0]); err != nil {
			return nil, err
		}
		start, end := m[2], m[3]
		text := src[start:end]
		tokens = append(tokens, Token{Kind: classifyLegacy(text), Text: text, Pos: loc.at(start)})
		prev = m[1]
	}
	if err := l.legacyGaps(loc, src, prev, len(src)); err != nil {
		return nil, err
	}
	return tokens, nil
}

// legacyGaps reports each whitespace-separated run in src[from:to]. The
// pattern alone skips these silently while searching for its next match.
func (l *Lexer) legacyGaps(loc *locator, src string, from, to int) error {
	i := from
	for i < to {
		if isSpace(src[i]) {
			i++
			continue
		}
		end := i
		for end < to && !isSpace(src[end]) {
			end++
		}
		if err := l.gap(loc.at(i), src[i:end]); err != nil {
			return err
		}
		i = end
	}
	return nil
}

func classifyLegacy(text string) Kind {
	switch {
	case IsNumber(text):
		return KindNumber
	case isKeyword(text):
		return KindKeyword
	case IsQuoted(text):
		return KindString
	case IsIdentifier(text):
		return KindIdentifier
	case len(text) == 1 && isOperator(text[0]):
		return KindOperator
	case len(text) == 1 && isPunct(text[0]):
		return KindPunct
	default:
		return KindWord
	}
}
