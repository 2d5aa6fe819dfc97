package scanner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/lidas"
)

// Fatal conditions at job start. Errors returned by StartJob and NewJob wrap
// one of these or an *rx.PatternError.
var (
	ErrOpen           = errors.New("cannot open input file")
	ErrInvalidSpec    = errors.New("invalid token specification")
	ErrCommentPairing = errors.New("open-comment and close-comment must be specified together")
	ErrJobClosed      = errors.New("scanner job not found (already terminated)")
)

// ErrorCode classifies lexical errors.
type ErrorCode int

// Lexical error codes.
const (
	NoError             ErrorCode = iota
	IOFailure                     // reading a line failed
	NoMatch                       // no specification matches at the current position
	BadLiteral                    // a literal cannot be converted to its value
	UnopenedComment               // a comment is closed which has never been opened
	UnterminatedComment           // end of input inside a comment
)

var codeNames = []string{
	"no error", "i/o failure", "no match", "bad literal", "unopened comment", "unterminated comment",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("error(%d)", int(c))
	}
	return codeNames[c]
}

// Error is a lexical error. Lexical errors are reported per token and do not
// terminate a scanner job.
type Error struct {
	Code    ErrorCode
	Source  string // name of the input
	Line    int
	Col     int // 0 if the error is not tied to a column
	Message string
	Context string // offending line, followed by a line with a caret marking Col
}

func (e *Error) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Col, e.Message)
	}
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Message)
}

// Pos returns the position of the error.
func (e *Error) Pos() lidas.Pos {
	return lidas.Pos{Line: e.Line, Col: e.Col}
}

// Is lets errors.Is match a lexical error by its code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.Message == "" && t.Source == ""
}

// Code returns an error value which matches every lexical error of code c
// with errors.Is.
func Code(c ErrorCode) error {
	return &Error{Code: c}
}

// caretLine echoes a line and marks column col (1-based) with a caret.
func caretLine(line []byte, col int) string {
	text := strings.TrimRight(string(line), "\r\n")
	var b strings.Builder
	b.WriteString(text)
	b.WriteByte('\n')
	for i := 0; i < col-1 && i < len(text); i++ {
		if text[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}
