// SPDX-License-Identifier: MIT

package roadyaml

// TokenKind classifies one significant input line.
type TokenKind uint8

const (
	// TokenScalar is a bare value line.
	TokenScalar TokenKind = iota
	// TokenListItem is a "- " sequence entry.
	TokenListItem
	// TokenKey is a "key:" line that opens a nested block or maps to null.
	TokenKey
	// TokenKeyValue is a "key: value" line.
	TokenKeyValue
)

func (k TokenKind) String() string {
	switch k {
	case TokenScalar:
		return "value"
	case TokenListItem:
		return "list item"
	case TokenKey:
		return "key"
	case TokenKeyValue:
		return "key-value"
	default:
		return "unknown"
	}
}

// Token is one scanned line of RoadYAML input. Key is set for TokenKey and
// TokenKeyValue, Value holds the coerced scalar for TokenKeyValue and
// TokenScalar, and Raw holds the uncoerced remainder for TokenListItem
// (sequence entries are coerced at parse time).
type Token struct {
	Kind   TokenKind
	Key    string
	Value  any
	Raw    string
	Line   int
	Indent int
}
