package execute

import (
	"strings"
	"unicode"

	"mvdan.cc/sh/v3/syntax"
)

// Quote renders an argument vector as a single command line.
//
// Double quotes inside an argument are escaped with a backslash; an
// argument is wrapped in double quotes when it contains a single quote,
// whitespace, or is empty. Arguments are joined with single spaces. The
// exact format is a contract with Split and with log/error output.
func Quote(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		arg = strings.ReplaceAll(arg, `"`, `\"`)
		if needsQuotes(arg) {
			arg = `"` + arg + `"`
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}

func needsQuotes(arg string) bool {
	if arg == "" {
		return true
	}
	if strings.ContainsRune(arg, '\'') {
		return true
	}
	return strings.IndexFunc(arg, unicode.IsSpace) >= 0
}

// Split divides a command line into arguments using shell-style quoting
// rules alone: quoted substrings stay one argument, unquoted whitespace
// separates arguments. Nothing is expanded; $VAR, braces, and tildes
// pass through exactly as written, so Split inverts Quote.
func Split(line string) ([]string, error) {
	var args []string
	var wordErr error
	err := syntax.NewParser().Words(strings.NewReader(line), func(w *syntax.Word) bool {
		var b strings.Builder
		if wordErr = writeWord(&b, line, w.Parts, false); wordErr != nil {
			return false
		}
		args = append(args, b.String())
		return true
	})
	if err != nil {
		return nil, err
	}
	return args, wordErr
}

// writeWord renders word parts with quote removal only. Substitution
// and expansion parts are copied from the source text untouched.
func writeWord(b *strings.Builder, line string, parts []syntax.WordPart, quoted bool) error {
	for _, part := range parts {
		switch p := part.(type) {
		case *syntax.Lit:
			b.WriteString(unescape(p.Value, quoted))
		case *syntax.SglQuoted:
			b.WriteString(p.Value)
		case *syntax.DblQuoted:
			if err := writeWord(b, line, p.Parts, true); err != nil {
				return err
			}
		default:
			b.WriteString(line[part.Pos().Offset():part.End().Offset()])
		}
	}
	return nil
}

// unescape removes backslash escapes from a literal. Inside double
// quotes a backslash only escapes the characters that are special
// there; elsewhere it escapes whatever follows.
func unescape(s string, quoted bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			next := s[i+1]
			if !quoted || next == '"' || next == '\\' || next == '$' || next == '`' {
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
