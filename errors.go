// SPDX-License-Identifier: MIT

package roadyaml

import (
	"errors"
	"fmt"
)

// ErrNotMapping is returned by ParseDocument when the top-level value is a
// scalar or a sequence.
var ErrNotMapping = errors.New("document root is not a mapping")

// SyntaxError reports input the parser cannot represent, such as content
// left over after the top-level value ends. Line is 1-based, Column is the
// 1-based indent position of the offending token.
type SyntaxError struct {
	Msg    string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Line, e.Column)
}
