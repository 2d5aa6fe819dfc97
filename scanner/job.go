package scanner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/scanner/rx"
	"golang.org/x/text/encoding"
)

// CasePolicy tells a job how to treat letter case of its input.
type CasePolicy uint8

// Case policies. The input is converted line by line before any matching.
const (
	KeepCase CasePolicy = iota
	UpperCase
	LowerCase
)

// Job is a tokenization session bound to one input. Create jobs with
// StartJob or NewJob. A job must not be used after Close.
type Job struct {
	name        string
	file        *os.File // nil for jobs created from a reader
	input       *bufio.Reader
	specs       []*compiledSpec
	closer      *compiledSpec // close-comment spec or nil
	casePolicy  CasePolicy
	syntax      rx.Syntax
	line        []byte // current line, including its line terminator
	lineno      int
	cursor      int
	eof         bool
	pending     error             // read error to report after the partial last line
	decoder     *encoding.Decoder // for lines which are not valid UTF-8, or nil
	inComment   bool
	commentLine int // line where the open comment started
	errors      []*Error
	current     *Token
	closed      bool
	Error       func(error) // error handler, called for every lexical error
}

// Option configures a job.
type Option func(j *Job)

// WithCasePolicy sets the case conversion applied to the input.
func WithCasePolicy(policy CasePolicy) Option {
	return func(j *Job) {
		j.casePolicy = policy
	}
}

// WithSyntax selects the regular expression syntax of the specs.
// Default is rx.Perl.
func WithSyntax(syntax rx.Syntax) Option {
	return func(j *Job) {
		j.syntax = syntax
	}
}

// WithEncoding sets the encoding of input lines which are not valid UTF-8.
// Such lines are decoded to UTF-8 before matching, so patterns and tokens
// are always UTF-8. Lines which are valid UTF-8 are taken as they are.
//
// Ortografia files and LiDAS programs are read with charmap.ISO8859_1.
func WithEncoding(enc encoding.Encoding) Option {
	return func(j *Job) {
		j.decoder = enc.NewDecoder()
	}
}

// WithErrorHandler sets an error handler, which will be called for every
// lexical error. The default handler traces errors.
func WithErrorHandler(h func(error)) Option {
	return func(j *Job) {
		j.Error = h
	}
}

// StartJob opens the file at path and prepares a job to tokenize it with
// the given specs.
//
// Errors returned are fatal for the job: the file cannot be opened
// (ErrOpen), a pattern does not compile (*rx.PatternError), a spec is
// malformed (ErrInvalidSpec) or the comment specs are not paired
// (ErrCommentPairing).
func StartJob(path string, specs []Spec, opts ...Option) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
	}
	job, err := NewJob(path, f, specs, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	job.file = f
	return job, nil
}

// NewJob prepares a job to tokenize input from r with the given specs.
// name is used for error messages. Error conditions are the same as for
// StartJob, except for ErrOpen.
func NewJob(name string, r io.Reader, specs []Spec, opts ...Option) (*Job, error) {
	job := &Job{
		name:  name,
		input: bufio.NewReader(r),
		Error: logError,
	}
	for _, option := range opts {
		option(job)
	}
	var err error
	if job.specs, job.closer, err = compileSpecs(specs, job.syntax); err != nil {
		tracer().Errorf("cannot start scanner job for %s: %v", name, err)
		return nil, err
	}
	tracer().Debugf("started scanner job for %s with %d specs", name, len(job.specs))
	return job, nil
}

// Close terminates a job and releases its input. Closing a job more than
// once returns ErrJobClosed.
func (j *Job) Close() error {
	if j.closed {
		return ErrJobClosed
	}
	j.closed = true
	j.specs, j.closer = nil, nil
	j.line, j.input = nil, nil
	if j.file != nil {
		err := j.file.Close()
		j.file = nil
		return err
	}
	return nil
}

// Name returns the name of the job's input.
func (j *Job) Name() string {
	return j.name
}

// ErrorCount returns the number of lexical errors reported so far.
func (j *Job) ErrorCount() int {
	return len(j.errors)
}

// Errors returns the lexical errors reported so far, in order.
func (j *Job) Errors() []*Error {
	return j.errors
}

// LastError returns the most recent lexical error or nil.
func (j *Job) LastError() *Error {
	if len(j.errors) == 0 {
		return nil
	}
	return j.errors[len(j.errors)-1]
}

// Current returns the token most recently produced by Next, or nil.
func (j *Job) Current() *Token {
	return j.current
}

// Line returns the number of the line currently buffered.
func (j *Job) Line() int {
	return j.lineno
}

// SetErrorHandler sets an error handler for the job.
// Part of interface Tokenizer.
func (j *Job) SetErrorHandler(h func(error)) {
	if h == nil {
		j.Error = logError
		return
	}
	j.Error = h
}

// --- Line buffer -----------------------------------------------------------

// refill reads the next line into the line buffer. Returns io.EOF at the end
// of the input. A read error is returned after the text read before it has
// been buffered; after a read error the job is at end of input.
func (j *Job) refill() error {
	if j.pending != nil {
		err := j.pending
		j.pending, j.eof = nil, true
		j.line, j.cursor = nil, 0
		return err
	}
	if j.eof {
		return io.EOF
	}
	line, err := j.input.ReadBytes('\n')
	if err != nil && err != io.EOF {
		if len(line) == 0 {
			j.eof = true
			j.line, j.cursor = nil, 0
			return err
		}
		j.pending = err
	}
	if len(line) == 0 {
		j.eof = true
		j.line, j.cursor = nil, 0
		return io.EOF
	}
	j.lineno++
	j.line = j.convertCase(j.decode(line))
	j.cursor = 0
	return nil
}

// decode converts a line which is not valid UTF-8 with the job's decoder.
func (j *Job) decode(line []byte) []byte {
	if j.decoder == nil || utf8.Valid(line) {
		return line
	}
	decoded, err := j.decoder.Bytes(line)
	if err != nil {
		tracer().Errorf("%s: cannot decode line %d: %v", j.name, j.lineno, err)
		return line
	}
	return decoded
}

func (j *Job) convertCase(line []byte) []byte {
	switch j.casePolicy {
	case UpperCase:
		for i, c := range line {
			if c >= 'a' && c <= 'z' {
				line[i] = c - ('a' - 'A')
			}
		}
	case LowerCase:
		for i, c := range line {
			if c >= 'A' && c <= 'Z' {
				line[i] = c + ('a' - 'A')
			}
		}
	}
	return line
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\r' || c == '\n'
}

// skipBlanks moves the cursor to the next non-blank character, refilling
// the line buffer as necessary.
func (j *Job) skipBlanks() error {
	for {
		for j.cursor < len(j.line) && isBlank(j.line[j.cursor]) {
			j.cursor++
		}
		if j.cursor < len(j.line) {
			return nil
		}
		if err := j.refill(); err != nil {
			return err
		}
	}
}

// report records a lexical error at byte offset at of the current line
// (at < 0 for errors without a column) and hands it to the error handler.
func (j *Job) report(code ErrorCode, at int, format string, args ...interface{}) *Error {
	e := &Error{
		Code:    code,
		Source:  j.name,
		Line:    j.lineno,
		Message: fmt.Sprintf(format, args...),
	}
	if at >= 0 {
		e.Col = at + 1
		e.Context = caretLine(j.line, e.Col)
	}
	j.errors = append(j.errors, e)
	if j.Error != nil {
		j.Error(e)
	}
	return e
}

func (j *Job) pos(at int) lidas.Pos {
	return lidas.Pos{Line: j.lineno, Col: at + 1}
}
