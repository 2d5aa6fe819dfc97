package script

import (
	"fmt"

	"github.com/npillmayer/lidas"
)

// Error codes for statement errors.
const (
	UnexpectedToken = iota + 1
	UnknownElement
	DuplicateGroup
)

// Error is an error in a statement of a LiDAS program.
type Error struct {
	Code    int
	Message string
	Pos     lidas.Pos
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (p *Parser) errorAt(pos lidas.Pos, code int, msg string, params ...interface{}) {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	e := &Error{Code: code, Message: msg, Pos: pos}
	tracer().Infof("statement error at %s", e)
	p.errors = append(p.errors, e)
}
