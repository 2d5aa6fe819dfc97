package rx

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCompileError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.scanner")
	defer teardown()
	//
	_, err := Compile("(#", true)
	if err == nil {
		t.Fatalf("expected unbalanced parenthesis to be rejected")
	}
	var perr *PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected error to be a *PatternError, is %T", err)
	}
	var serr *syntax.Error
	if !errors.As(err, &serr) {
		t.Errorf("expected engine diagnostic to be wrapped, have %v", err)
	}
	t.Logf("error = %v", err)
}

func TestAssertionsRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.scanner")
	defer teardown()
	//
	for _, pattern := range []string{`\b[0-9]+`, `^x`, `x$`, `(a|\Bb)`, `\Aab\z`} {
		if _, err := Compile(pattern, true); !errors.Is(err, ErrAssertion) {
			t.Errorf("expected %q to be rejected for its assertion, got %v", pattern, err)
		}
	}
	if _, err := Compile(`^x`, false, WithSyntax(POSIX)); !errors.Is(err, ErrAssertion) {
		t.Errorf("expected POSIX ^ to be rejected, got %v", err)
	}
	if _, err := Compile(`[\^$]+`, true); err != nil {
		t.Errorf("expected ^ and $ in a class to be accepted, got %v", err)
	}
}

func TestPOSIXSyntax(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.scanner")
	defer teardown()
	//
	if _, err := Compile(`\d+`, true, WithSyntax(POSIX)); err == nil {
		t.Errorf(`expected \d to be rejected by POSIX syntax`)
	}
	p, err := Compile(`[[:digit:]]+`, true, WithSyntax(POSIX))
	if err != nil {
		t.Fatal(err)
	}
	if m := p.MatchAt([]byte("x123 "), 1); m == nil || m.Len() != 3 {
		t.Errorf("expected POSIX class to match 3 digits")
	}
}

func TestMatchAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.scanner")
	defer teardown()
	//
	for i, test := range []struct {
		pattern string
		input   string
		start   int
		cs      bool
		length  int // -1 = no match
	}{
		{`[a-z]+`, "hello world", 0, true, 5},
		{`[a-z]+`, "hello world", 6, true, 5},
		{`[a-z]+`, "hello world", 5, true, -1}, // anchored, blank at 5
		{`if|ifx`, "ifx", 0, true, 3},          // leftmost-longest
		{`begin`, "BeGiN", 0, false, 5},
		{`begin`, "BeGiN", 0, true, -1},
		{`[0-9]+\.[0-9]+`, "a=3.14;", 2, true, 4},
	} {
		p, err := Compile(test.pattern, test.cs)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		m := p.MatchAt([]byte(test.input), test.start)
		if test.length < 0 {
			if m != nil {
				t.Errorf("test %d: expected no match, have %d bytes", i, m.Len())
			}
			continue
		}
		if m == nil {
			t.Errorf("test %d: expected match of %q at %d", i, test.pattern, test.start)
		} else if m.Len() != test.length || m.Start(0) != test.start {
			t.Errorf("test %d: expected %d bytes at %d, have %d at %d", i, test.length,
				test.start, m.Len(), m.Start(0))
		}
	}
}

func TestCaptureSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.scanner")
	defer teardown()
	//
	p, err := Compile(`([a-z]+)[ ]*(=)?`, true)
	if err != nil {
		t.Fatal(err)
	}
	m := p.MatchAt([]byte("..abc  ;"), 2)
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Groups() != 2 {
		t.Errorf("expected 2 groups, have %d", m.Groups())
	}
	if s, e := m.Span(1, 1); s != 2 || e != 5 {
		t.Errorf("expected token span (2,5), have (%d,%d)", s, e)
	}
	if m.End(0) != 7 {
		t.Errorf("expected match to include blanks up to 7, ends at %d", m.End(0))
	}
	if m.Start(2) != -1 {
		t.Errorf("expected group 2 not to participate")
	}
	if s, e := m.Span(1, 2); s != 2 || e != 7 {
		t.Errorf("expected fallback span (2,7), have (%d,%d)", s, e)
	}
}

func TestSearchWithFastmap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.scanner")
	defer teardown()
	//
	p, err := Compile(`#\)`, true, Fastmap())
	if err != nil {
		t.Fatal(err)
	}
	if string(p.prefix) != "#)" {
		t.Errorf("expected literal prefix '#)', have %q", p.prefix)
	}
	line := []byte("a comment # with ## and #) tail\n")
	m := p.Search(line, 0, len(line))
	if m == nil {
		t.Fatal("expected comment terminator to be found")
	}
	if m.Start(0) != 24 || m.End(0) != 26 {
		t.Errorf("expected terminator at (24,26), have (%d,%d)", m.Start(0), m.End(0))
	}
	if m = p.Search(line, 0, 20); m != nil {
		t.Errorf("expected no match to start within first 20 bytes")
	}
	if m = p.Search(line, 26, len(line)-26); m != nil {
		t.Errorf("expected no second terminator")
	}
}
