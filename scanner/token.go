package scanner

import (
	"fmt"

	"github.com/npillmayer/lidas"
)

// Token categories produced by a scanner job.
//
// LineComment, OpenComment and CloseComment are used in specifications only,
// Next never returns tokens of these kinds. Invalid is returned in place of a
// token whenever Next reports an error.
const (
	Invalid lidas.TokType = iota
	Identifier
	ReservedWord
	LongInt
	Double
	SingleQuoteString
	DoubleQuoteString
	Delimiter
	EndOfFile
	LineComment
	OpenComment
	CloseComment
)

var kindNames = []string{
	"invalid", "identifier", "reserved-word", "integer", "decimal", "string'", "string\"",
	"delimiter", "eof", "line-comment", "open-comment", "close-comment",
}

// KindString is a lidas.TokTypeStringer for the scanner's token categories.
func KindString(k lidas.TokType) string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

var _ lidas.TokTypeStringer = KindString

// --- Tokens ----------------------------------------------------------------

// Token is the token type produced by scanner jobs.
type Token struct {
	kind   lidas.TokType
	label  string
	lexeme string
	val    interface{}
	pos    lidas.Pos
}

var _ lidas.Token = (*Token)(nil)

// MakeToken creates a token. Scanner jobs create their tokens themselves, but
// clients may need tokens for testing or for synthesized input.
func MakeToken(kind lidas.TokType, label, lexeme string, val interface{}, pos lidas.Pos) *Token {
	return &Token{
		kind:   kind,
		label:  label,
		lexeme: lexeme,
		val:    val,
		pos:    pos,
	}
}

// TokType is part of interface lidas.Token.
func (t *Token) TokType() lidas.TokType {
	return t.kind
}

// Kind is a synonym for TokType.
func (t *Token) Kind() lidas.TokType {
	return t.kind
}

// Label returns the label of the specification which produced the token.
func (t *Token) Label() string {
	return t.label
}

// Lexeme returns the token's text as it appeared in the input.
func (t *Token) Lexeme() string {
	return t.lexeme
}

// Value returns the token's typed value:
//
//    Identifier, ReservedWord      string
//    SingleQuoteString, DoubleQuoteString   string, including the quotes
//    LongInt                       int64
//    Double                        float64
//    Delimiter                     byte
//    EndOfFile, Invalid            nil
//
func (t *Token) Value() interface{} {
	return t.val
}

// Pos returns the position of the first character of the token.
func (t *Token) Pos() lidas.Pos {
	return t.pos
}

// ValueString formats the token's value for display.
func (t *Token) ValueString() string {
	switch v := t.val.(type) {
	case nil:
		return ""
	case byte:
		return string(rune(v))
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (t *Token) String() string {
	if t.label != "" {
		return fmt.Sprintf("<%s[%s] %q %s>", KindString(t.kind), t.label, t.lexeme, t.pos)
	}
	return fmt.Sprintf("<%s %q %s>", KindString(t.kind), t.lexeme, t.pos)
}

// --- Tokenizer interface ---------------------------------------------------

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lidas.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}
