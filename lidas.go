package lidas

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Package scanner defines the
// categories the LiDAS scanner produces.
type TokType int

// TokTypeStringer is a type to be provided by a scanner to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for a floating point numer:
//
//    TokType = Double      // identifier for this kind of tokens
//    Lexeme  = "3.1416"    // lexeme how it appreared in the input stream
//    Value   = 3.1416      // is a float64 value
//    Pos     = (4:12)      // occured at line 4, column 12
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Pos() Pos
}

// --- Positions ------------------------------------------------------------

// Pos is a position in a line-oriented input. Lines and columns are
// counted from 1; the zero value denotes “no position”, as reported
// for an empty input.
type Pos struct {
	Line int
	Col  int
}

// IsNull is a predicate: is p the null-position?
func (p Pos) IsNull() bool {
	return p == Pos{}
}

// Before returns true if p is located before other.
func (p Pos) Before(other Pos) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}
