// SPDX-License-Identifier: MIT

package roadyaml

// parser turns a token stream into Go values. The grammar is indent driven:
// the first token decides the top-level shape, keys without inline values
// take the following deeper block (or null), and sequence entries are always
// scalars. Tokens indented at or beyond the current block are absorbed into
// it.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) parse() (any, error) {
	if len(p.tokens) == 0 {
		return nil, nil
	}
	v := p.parseValue(0)
	if p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		return nil, &SyntaxError{
			Msg:    "unexpected " + t.Kind.String() + " after end of document",
			Line:   t.Line,
			Column: t.Indent + 1,
		}
	}
	return v, nil
}

func (p *parser) parseValue(baseIndent int) any {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := p.tokens[p.pos]
	switch t.Kind {
	case TokenListItem:
		return p.parseSequence(baseIndent)
	case TokenKey, TokenKeyValue:
		return p.parseMapping(baseIndent)
	default:
		p.pos++
		return t.Value
	}
}

func (p *parser) parseMapping(baseIndent int) map[string]any {
	result := map[string]any{}
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		if t.Indent < baseIndent {
			break
		}
		switch t.Kind {
		case TokenKeyValue:
			result[t.Key] = t.Value
			p.pos++
		case TokenKey:
			p.pos++
			if p.pos < len(p.tokens) && p.tokens[p.pos].Indent > t.Indent {
				result[t.Key] = p.parseValue(p.tokens[p.pos].Indent)
			} else {
				result[t.Key] = nil
			}
		default:
			return result
		}
	}
	return result
}

func (p *parser) parseSequence(baseIndent int) []any {
	result := []any{}
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		if t.Indent < baseIndent || t.Kind != TokenListItem {
			break
		}
		result = append(result, coerceScalar(t.Raw))
		p.pos++
	}
	return result
}
