package scanner

import (
	"fmt"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/scanner/rx"
)

// Spec describes one lexical category a job is able to recognize.
//
// CaptureStart and CaptureEnd select the part of a match which forms the
// token: the token spans from the start of group CaptureStart to the end of
// group CaptureEnd. With both set to 0 the whole match is the token. Text
// matched outside of the token span is consumed and discarded.
type Spec struct {
	Kind         lidas.TokType
	Label        string // free-form tag, copied to every token of this spec
	Pattern      string
	CaptureStart int
	CaptureEnd   int
	IgnoreCase   bool
}

func (s Spec) String() string {
	return fmt.Sprintf("[%s %q /%s/]", KindString(s.Kind), s.Label, s.Pattern)
}

// compiledSpec is a Spec together with its compiled pattern.
type compiledSpec struct {
	Spec
	pattern *rx.Pattern
}

// compileSpecs compiles all specs for a job and checks the job-level
// invariants. Returns the compiled specs and the close-comment spec, if any.
func compileSpecs(specs []Spec, syntax rx.Syntax) ([]*compiledSpec, *compiledSpec, error) {
	var nopen, nclose int
	var closer *compiledSpec
	compiled := make([]*compiledSpec, 0, len(specs))
	for i, spec := range specs {
		if spec.Kind == Invalid || spec.Kind == EndOfFile || spec.Kind < 0 || spec.Kind > CloseComment {
			return nil, nil, fmt.Errorf("%w: spec #%d has kind %s", ErrInvalidSpec, i, KindString(spec.Kind))
		}
		opts := []rx.Option{rx.WithSyntax(syntax)}
		if spec.Kind == CloseComment {
			opts = append(opts, rx.Fastmap())
		}
		p, err := rx.Compile(spec.Pattern, !spec.IgnoreCase, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("spec #%d (%s): %w", i, KindString(spec.Kind), err)
		}
		if spec.CaptureStart < 0 || spec.CaptureEnd < spec.CaptureStart || spec.CaptureEnd > p.NumGroups() {
			return nil, nil, fmt.Errorf("%w: spec #%d selects groups %d…%d, pattern %q has %d",
				ErrInvalidSpec, i, spec.CaptureStart, spec.CaptureEnd, spec.Pattern, p.NumGroups())
		}
		cs := &compiledSpec{Spec: spec, pattern: p}
		switch spec.Kind {
		case OpenComment:
			nopen++
		case CloseComment:
			nclose++
			closer = cs
		}
		compiled = append(compiled, cs)
	}
	if nopen > 1 || nclose > 1 || nopen != nclose {
		return nil, nil, fmt.Errorf("%w: found %d open and %d close specs", ErrCommentPairing, nopen, nclose)
	}
	return compiled, closer, nil
}
