package ortho

import (
	"fmt"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/scanner"
)

// Error codes for violations of the specification grammar.
const (
	UnexpectedToken = iota + 1
	DuplicateRule
	DuplicateCommand
	DuplicateLabel
	MissingSection
	BadPattern
	UnpairedComment
)

var codeNames = map[int]string{
	UnexpectedToken:  "unexpected token",
	DuplicateRule:    "duplicate rule",
	DuplicateCommand: "duplicate command",
	DuplicateLabel:   "duplicate label",
	MissingSection:   "missing section",
	BadPattern:       "bad pattern",
	UnpairedComment:  "unpaired comment",
}

// CodeString returns a short description of an error code.
func CodeString(code int) string {
	if s, ok := codeNames[code]; ok {
		return s
	}
	return fmt.Sprintf("error(%d)", code)
}

// Error is a syntax error in a specification file.
type Error struct {
	Code    int
	Message string
	Source  string
	Pos     lidas.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsNull() {
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Pos.Line, e.Pos.Col, e.Message)
}

func (p *parser) errorAt(pos lidas.Pos, code int, msg string, params ...interface{}) {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	e := &Error{Code: code, Message: msg, Source: p.name, Pos: pos}
	tracer().Infof(e.Error())
	p.result.SyntaxErrors = append(p.result.SyntaxErrors, e)
}

func (p *parser) unexpected(token *scanner.Token, expected string) {
	if token.Kind() == scanner.EndOfFile {
		p.errorAt(token.Pos(), UnexpectedToken, "unexpected end of file, expected %s", expected)
		return
	}
	p.errorAt(token.Pos(), UnexpectedToken, "unexpected %s %q, expected %s",
		scanner.KindString(token.Kind()), token.Lexeme(), expected)
}

func (p *parser) duplicateRule(token *scanner.Token) {
	p.errorAt(token.Pos(), DuplicateRule, "%q already defined", token.Lexeme())
}

func (p *parser) missingSection(pos lidas.Pos, section string) {
	p.errorAt(pos, MissingSection, "missing section %s", section)
}

func (p *parser) badPattern(token *scanner.Token, err error) {
	p.errorAt(token.Pos(), BadPattern, "incorrect regular expression %s (%s)", token.Lexeme(), err.Error())
}
