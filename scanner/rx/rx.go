/*
Package rx wraps the Go regular expression engine for the needs of the
LiDAS scanner.

Patterns are always compiled with leftmost-longest (POSIX) match semantics.
Two syntaxes are accepted: the Go/RE2 syntax (Perl) and POSIX extended
regular expressions (POSIX), the latter being what ortografia files have
historically been written in. Each compiled pattern offers an anchored match
attempt at a given offset, and an unanchored search within a range of
starting positions.

Matching starts at the given offset as if the input began there, so
position assertions (^, $, \A, \z, \b, \B) cannot see the text before
it. Compile rejects patterns containing them with ErrAssertion.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rx

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lidas.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.scanner")
}

// Syntax selects the regular expression dialect accepted by Compile.
type Syntax uint8

const (
	Perl  Syntax = iota // Go (RE2) syntax
	POSIX               // POSIX extended regular expressions
)

func (s Syntax) String() string {
	if s == POSIX {
		return "POSIX"
	}
	return "Perl"
}

// PatternError is returned by Compile for malformed regular expressions.
// Err carries the diagnostic of the regular expression engine.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid regular expression %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// ErrAssertion is wrapped by a PatternError for patterns with position
// assertions.
var ErrAssertion = errors.New("position assertions are not supported")

// Pattern is a compiled regular expression.
type Pattern struct {
	source   string
	syntax   Syntax
	anchored *regexp.Regexp // \A(?:source), used by MatchAt
	search   *regexp.Regexp // used by Search
	fastmap  bool
	prefix   []byte // literal prefix every match starts with, if fastmap is set
}

// Option configures compilation of a pattern.
type Option func(p *Pattern)

// WithSyntax selects the syntax a pattern is written in. Default is Perl.
func WithSyntax(s Syntax) Option {
	return func(p *Pattern) {
		p.syntax = s
	}
}

// Fastmap asks Compile to prepare a lookup which lets Search skip over
// input that cannot start a match. It pays off for patterns which are
// searched for repeatedly over long inputs, e.g. comment terminators.
func Fastmap() Option {
	return func(p *Pattern) {
		p.fastmap = true
	}
}

// Compile compiles a regular expression. If caseSensitive is false, letters
// match regardless of case.
//
// Compile will return a *PatternError if pattern is malformed.
func Compile(pattern string, caseSensitive bool, opts ...Option) (*Pattern, error) {
	p := &Pattern{source: pattern}
	for _, opt := range opts {
		opt(p)
	}
	expr, err := p.normalize(caseSensitive)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	if err = checkAssertions(expr); err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	if p.anchored, err = regexp.Compile(`\A(?:` + expr + `)`); err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	p.anchored.Longest()
	if p.search, err = regexp.Compile(expr); err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	p.search.Longest()
	if p.fastmap {
		prefix, _ := p.search.LiteralPrefix()
		p.prefix = []byte(prefix)
		tracer().Debugf("pattern %q has literal prefix %q", pattern, prefix)
	}
	return p, nil
}

// normalize translates the source into Go syntax.
func (p *Pattern) normalize(caseSensitive bool) (string, error) {
	if p.syntax == POSIX {
		flags := syntax.POSIX
		if !caseSensitive {
			flags |= syntax.FoldCase
		}
		re, err := syntax.Parse(p.source, flags)
		if err != nil {
			return "", err
		}
		return re.String(), nil
	}
	if !caseSensitive {
		return "(?i:" + p.source + ")", nil
	}
	return p.source, nil
}

// checkAssertions returns ErrAssertion if expr contains an empty-width
// assertion.
func checkAssertions(expr string) error {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return err
	}
	var walk func(re *syntax.Regexp) bool
	walk = func(re *syntax.Regexp) bool {
		switch re.Op {
		case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
			syntax.OpWordBoundary, syntax.OpNoWordBoundary:
			return true
		}
		for _, sub := range re.Sub {
			if walk(sub) {
				return true
			}
		}
		return false
	}
	if walk(re) {
		return ErrAssertion
	}
	return nil
}

// Source returns the pattern as it has been passed to Compile.
func (p *Pattern) Source() string {
	return p.source
}

// NumGroups returns the number of capture groups of the pattern.
func (p *Pattern) NumGroups() int {
	return p.search.NumSubexp()
}

func (p *Pattern) String() string {
	return fmt.Sprintf("<pattern %s %q>", p.syntax, p.source)
}

// MatchAt tries to match the pattern at position start of buf. The match is
// anchored: it has to start exactly at start. Returns nil if the pattern does
// not match.
func (p *Pattern) MatchAt(buf []byte, start int) *Match {
	if start < 0 || start > len(buf) {
		return nil
	}
	loc := p.anchored.FindSubmatchIndex(buf[start:])
	if loc == nil {
		return nil
	}
	return shifted(loc, start)
}

// Search looks for the leftmost match starting within [start, start+rng).
// Returns nil if there is none.
func (p *Pattern) Search(buf []byte, start, rng int) *Match {
	if start < 0 || start > len(buf) || rng < 0 {
		return nil
	}
	end := start + rng
	if end > len(buf) {
		end = len(buf)
	}
	from := start
	if len(p.prefix) > 0 {
		i := bytes.Index(buf[from:], p.prefix)
		if i < 0 || from+i >= end {
			return nil
		}
		from += i
	}
	loc := p.search.FindSubmatchIndex(buf[from:])
	if loc == nil || from+loc[0] >= end {
		return nil
	}
	return shifted(loc, from)
}

func shifted(loc []int, offset int) *Match {
	for i := range loc {
		if loc[i] >= 0 {
			loc[i] += offset
		}
	}
	return &Match{loc: loc}
}

// --- Matches ---------------------------------------------------------------

// Match holds the byte offsets of a match and of its capture groups.
// Group 0 is the whole match.
type Match struct {
	loc []int
}

// Groups returns the number of capture groups, not counting group 0.
func (m *Match) Groups() int {
	return len(m.loc)/2 - 1
}

// Start returns the start offset of group g, or -1 if g did not participate
// in the match.
func (m *Match) Start(g int) int {
	if g < 0 || g > m.Groups() {
		return -1
	}
	return m.loc[2*g]
}

// End returns the end offset of group g, or -1 if g did not participate
// in the match.
func (m *Match) End(g int) int {
	if g < 0 || g > m.Groups() {
		return -1
	}
	return m.loc[2*g+1]
}

// Len returns the length of the whole match.
func (m *Match) Len() int {
	return m.loc[1] - m.loc[0]
}

// Span returns the region from the start of group from to the end of group
// to. Groups which did not participate are replaced by the whole match.
func (m *Match) Span(from, to int) (int, int) {
	start, end := m.Start(from), m.End(to)
	if start < 0 {
		start = m.loc[0]
	}
	if end < 0 {
		end = m.loc[1]
	}
	if end < start {
		end = start
	}
	return start, end
}
