package domain

import (
	"strings"
	"unicode"

	m "slinx.dev/pkg/slinx/internal/model"
)

// Mask evaluation executes the two tiny scripts attached to a mask and
// produces the block's on-diagram summary text. Only one closed grammar is
// recognized: a table-literal assignment in the initialization script
// (mytab={'A','B','C'};) and a single display call in the display script
// (disp(mytab{control})). Anything else is inert, and every failure mode is
// a silent miss: masks routinely use scripting features outside this subset
// and their blocks must still load with no display text rather than wrong
// text.

// EvaluateMaskDisplay returns the display text for the mask, or nil when
// there is none. It is deterministic and pure: same mask and parameter
// values, same result.
func EvaluateMaskDisplay(mask *m.Mask) *string {
	if mask == nil || strings.TrimSpace(mask.Display) == "" {
		return nil
	}
	call, ok := parseDisplayCall(mask.Display)
	if !ok {
		return nil
	}
	tables := parseTableDecls(mask.Initialization)
	values, ok := tables[call.table]
	if !ok {
		return nil
	}

	index := 0
	switch {
	case call.literal != nil:
		index = *call.literal
	default:
		param := mask.Parameter(call.param)
		if param == nil || param.Type != m.MaskParamPopup || param.Value == nil {
			return nil
		}
		n, ok := leadingIndex(*param.Value)
		if !ok {
			return nil
		}
		index = n
	}

	// Table indexing is 1-based per the source scripting convention.
	if index < 1 || index > len(values) {
		return nil
	}
	selected := values[index-1]
	return &selected
}

// tableDecl is the one initialization statement the engine extracts: an
// identifier assigned an ordered collection of literals.
type tableDecl struct {
	name   string
	values []string
}

// displayCall is the one display statement the engine recognizes: a display
// invocation indexing a declared table, either by a parameter's value or by
// an integer literal.
type displayCall struct {
	table   string
	param   string
	literal *int
}

// parseTableDecls extracts every table-literal assignment from the
// initialization script. Statements of any other form are skipped, not
// errors.
func parseTableDecls(script string) map[string][]string {
	tables := make(map[string][]string)
	toks := scanTokens(script)
	for i := 0; i < len(toks); i++ {
		decl, next, ok := matchTableDecl(toks, i)
		if !ok {
			// Skip to the end of the statement and try again.
			for i < len(toks) && !toks[i].is(";") {
				i++
			}
			continue
		}
		tables[decl.name] = decl.values
		i = next
	}
	return tables
}

func matchTableDecl(toks []token, i int) (tableDecl, int, bool) {
	if i+2 >= len(toks) {
		return tableDecl{}, i, false
	}
	if toks[i].kind != tokIdent || !toks[i+1].is("=") || !toks[i+2].is("{") {
		return tableDecl{}, i, false
	}
	decl := tableDecl{name: toks[i].text}
	j := i + 3
	for ; j < len(toks); j++ {
		switch {
		case toks[j].kind == tokString || toks[j].kind == tokNumber:
			decl.values = append(decl.values, toks[j].text)
		case toks[j].is(","):
			// separator
		case toks[j].is("}"):
			return decl, j, len(decl.values) > 0
		default:
			return tableDecl{}, i, false
		}
	}
	return tableDecl{}, i, false
}

// parseDisplayCall matches disp(<table>{<index>}) with an optional trailing
// semicolon. Any other shape is unrecognized.
func parseDisplayCall(script string) (displayCall, bool) {
	toks := scanTokens(script)
	if len(toks) > 0 && toks[len(toks)-1].is(";") {
		toks = toks[:len(toks)-1]
	}
	if len(toks) != 7 {
		return displayCall{}, false
	}
	if toks[0].kind != tokIdent || toks[0].text != "disp" {
		return displayCall{}, false
	}
	if !toks[1].is("(") || toks[2].kind != tokIdent || !toks[3].is("{") {
		return displayCall{}, false
	}
	if !toks[5].is("}") || !toks[6].is(")") {
		return displayCall{}, false
	}
	call := displayCall{table: toks[2].text}
	switch toks[4].kind {
	case tokIdent:
		call.param = toks[4].text
	case tokNumber:
		n, ok := leadingIndex(toks[4].text)
		if !ok {
			return displayCall{}, false
		}
		call.literal = &n
	default:
		return displayCall{}, false
	}
	return call, true
}

// leadingIndex extracts the integer prefix of a value like "1. Position
// Control".
func leadingIndex(s string) (int, bool) {
	n := 0
	digits := 0
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	return n, digits > 0
}

type tokKind int

const (
	tokIdent tokKind = iota
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind tokKind
	text string
}

func (t token) is(punct string) bool {
	return t.kind == tokPunct && t.text == punct
}

// scanTokens splits a script into identifiers, numbers, quoted strings and
// single-rune punctuation. Quotes are stripped from string tokens; there is
// no escape handling, matching the literal subset the scripts use.
func scanTokens(script string) []token {
	var toks []token
	runes := []rune(script)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '\'' || r == '"':
			quote := r
			j := i + 1
			for j < len(runes) && runes[j] != quote {
				j++
			}
			if j >= len(runes) {
				// Unterminated string: emit the rest and stop.
				toks = append(toks, token{kind: tokString, text: string(runes[i+1:])})
				return toks
			}
			toks = append(toks, token{kind: tokString, text: string(runes[i+1 : j])})
			i = j + 1
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: string(runes[i:j])})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[i:j])})
			i = j
		default:
			toks = append(toks, token{kind: tokPunct, text: string(r)})
			i++
		}
	}
	return toks
}
