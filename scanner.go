// SPDX-License-Identifier: MIT

package roadyaml

import (
	"strconv"
	"strings"
)

// Scan tokenizes RoadYAML text line by line. Blank lines and comment lines
// are dropped; every other line yields exactly one token, so scanning never
// fails. Indent is the number of leading whitespace characters on the raw
// line.
func Scan(text string) []Token {
	var tokens []Token
	for i, line := range strings.Split(text, "\n") {
		content := strings.TrimSpace(line)
		if content == "" || strings.HasPrefix(content, "#") {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		switch {
		case strings.HasPrefix(content, "- "):
			tokens = append(tokens, Token{Kind: TokenListItem, Raw: content[2:], Line: i + 1, Indent: indent})
		case strings.HasSuffix(content, ":"):
			tokens = append(tokens, Token{Kind: TokenKey, Key: content[:len(content)-1], Line: i + 1, Indent: indent})
		case strings.Contains(content, ": "):
			key, rest, _ := strings.Cut(content, ": ")
			tokens = append(tokens, Token{Kind: TokenKeyValue, Key: key, Value: coerceScalar(rest), Line: i + 1, Indent: indent})
		default:
			tokens = append(tokens, Token{Kind: TokenScalar, Value: coerceScalar(content), Line: i + 1, Indent: indent})
		}
	}
	return tokens
}

// coerceScalar applies the dialect's scalar typing rules in order: empty and
// null forms, booleans, quoted strings (no escape processing), integers,
// floats, and finally the string itself.
func coerceScalar(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	case "null", "~":
		return nil
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
