package script

import (
	"strings"
)

// word is one argument of a command. Quoted words are never expanded, so
// bound code keeps its $references until it runs.
type word struct {
	text   string
	quoted bool
}

// splitCommands breaks code into commands, each a list of words. Commands end
// at a newline or ';' outside quotes. Words are separated by blanks; a double
// quoted word may contain blanks, ';' and '\"'. Commands starting with '#'
// are comments.
func splitCommands(code string) ([][]word, error) {
	var (
		cmds    [][]word
		words   []word
		buf     strings.Builder
		inWord  bool
		quoted  bool
		inQuote bool
	)
	endWord := func() {
		if inWord {
			words = append(words, word{text: buf.String(), quoted: quoted})
			buf.Reset()
			inWord, quoted = false, false
		}
	}
	endCmd := func() {
		endWord()
		if len(words) > 0 && !strings.HasPrefix(words[0].text, "#") {
			cmds = append(cmds, words)
		}
		words = nil
	}

	for i := 0; i < len(code); i++ {
		c := code[i]
		if inQuote {
			switch {
			case c == '\\' && i+1 < len(code) && (code[i+1] == '"' || code[i+1] == '\\'):
				i++
				buf.WriteByte(code[i])
			case c == '"':
				inQuote = false
			default:
				buf.WriteByte(c)
			}
			continue
		}
		switch c {
		case '"':
			inQuote, inWord, quoted = true, true, true
		case ' ', '\t', '\r':
			endWord()
		case '\n', ';':
			endCmd()
		default:
			inWord = true
			buf.WriteByte(c)
		}
	}
	if inQuote {
		return nil, usagef("unterminated quote")
	}
	endCmd()
	return cmds, nil
}

// expand replaces $name references in s. A '$' not followed by a name is
// kept as is.
func expand(s string, lookup func(string) (string, bool)) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '$' {
			out.WriteByte(s[i])
			continue
		}
		j := i + 1
		for j < len(s) && isNameByte(s[j]) {
			j++
		}
		if j == i+1 {
			out.WriteByte('$')
			continue
		}
		v, ok := lookup(s[i+1 : j])
		if !ok {
			return "", usagef("unknown variable $%s", s[i+1:j])
		}
		out.WriteString(v)
		i = j - 1
	}
	return out.String(), nil
}

func isNameByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
