package scanner

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/scanner/rx"
)

// Next returns the next token of the input.
//
// If a lexical error occurs, Next returns it together with a token of kind
// Invalid (or EndOfFile, if the error is detected at the end of input). The
// error has been recorded by the job and handed to the error handler. The job
// stays usable: the next call to Next continues behind the offending text.
// After the end of input, every call returns an EndOfFile token.
//
// Using a closed job returns ErrJobClosed.
func (j *Job) Next() (*Token, error) {
	if j.closed {
		return nil, ErrJobClosed
	}
	for {
		if err := j.skipBlanks(); err == io.EOF {
			return j.endOfInput()
		} else if err != nil {
			e := j.report(IOFailure, -1, "cannot read %s: %v", j.name, err)
			j.current = &Token{kind: Invalid, pos: lidas.Pos{Line: j.lineno}}
			return j.current, e
		}
		if j.inComment {
			j.skipComment()
			continue
		}
		c := j.match()
		if c == nil {
			at := j.cursor
			_, n := utf8.DecodeRune(j.line[at:])
			j.cursor += n
			bad := string(j.line[at:j.cursor])
			e := j.report(NoMatch, at, "no token matches at %q", bad)
			j.current = &Token{kind: Invalid, lexeme: bad, pos: j.pos(at)}
			return j.current, e
		}
		switch c.spec.Kind {
		case OpenComment:
			j.inComment = true
			j.commentLine = j.lineno
			j.cursor = c.match.End(0)
			continue
		case CloseComment:
			j.report(UnopenedComment, c.start, "closing a comment that was never opened")
			j.cursor = c.match.End(0)
			continue
		case LineComment:
			j.cursor = len(j.line)
			continue
		}
		return j.emit(c)
	}
}

// NextToken is part of interface Tokenizer. Errors are passed to the error
// handler only.
func (j *Job) NextToken() lidas.Token {
	token, err := j.Next()
	if err == ErrJobClosed {
		if j.Error != nil {
			j.Error(err)
		}
		return &Token{kind: EndOfFile}
	}
	return token
}

func (j *Job) endOfInput() (*Token, error) {
	var err error
	if j.inComment {
		j.inComment = false
		err = j.report(UnterminatedComment, -1, "unterminated comment opened at line %d", j.commentLine)
	}
	j.current = &Token{kind: EndOfFile, pos: lidas.Pos{Line: j.lineno}}
	tracer().Debugf("%s: %s", j.name, j.current)
	return j.current, err
}

// skipComment searches the rest of the current line for the end of a block
// comment.
func (j *Job) skipComment() {
	if j.closer == nil {
		j.cursor = len(j.line)
		return
	}
	m := j.closer.pattern.Search(j.line, j.cursor, len(j.line)-j.cursor)
	if m == nil {
		j.cursor = len(j.line)
		return
	}
	j.inComment = false
	j.cursor = m.End(0)
}

// candidate is a successful match of a spec at the cursor.
type candidate struct {
	spec       *compiledSpec
	match      *rx.Match
	start, end int // token span
}

func (c *candidate) size() int {
	return c.end - c.start
}

// match tries every spec at the cursor and selects the winner: the largest
// token wins, on equal size a reserved word beats other kinds, then the spec
// registered first wins. Empty matches never win.
func (j *Job) match() *candidate {
	var best *candidate
	for _, spec := range j.specs {
		m := spec.pattern.MatchAt(j.line, j.cursor)
		if m == nil || m.Len() == 0 {
			continue
		}
		start, end := m.Span(spec.CaptureStart, spec.CaptureEnd)
		c := &candidate{spec: spec, match: m, start: start, end: end}
		if best == nil || c.size() > best.size() ||
			(c.size() == best.size() && spec.Kind == ReservedWord && best.spec.Kind != ReservedWord) {
			best = c
		}
	}
	return best
}

// emit creates the token for a winning candidate and advances the cursor
// past the whole match.
func (j *Job) emit(c *candidate) (*Token, error) {
	lexeme := string(j.line[c.start:c.end])
	token := &Token{
		kind:   c.spec.Kind,
		label:  c.spec.Label,
		lexeme: lexeme,
		pos:    j.pos(c.start),
	}
	j.cursor = c.match.End(0)
	var e *Error
	switch c.spec.Kind {
	case LongInt:
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			e = j.report(BadLiteral, c.start, "not an integer: %q", lexeme)
			break
		}
		token.val = n
	case Double:
		x, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			e = j.report(BadLiteral, c.start, "not a decimal number: %q", lexeme)
			break
		}
		token.val = x
	case Delimiter:
		if len(lexeme) != 1 || isBlank(lexeme[0]) {
			e = j.report(BadLiteral, c.start, "delimiter must be a single character: %q", lexeme)
			break
		}
		token.val = lexeme[0]
	default:
		token.val = lexeme
	}
	if e != nil {
		token.kind, token.val = Invalid, nil
		j.current = token
		return token, e
	}
	tracer().Debugf("%s: %s", j.name, token)
	j.current = token
	return token, nil
}
