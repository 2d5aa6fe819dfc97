package lexmach

import (
	"strings"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'lidas.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.scanner")
}

// DFA is a set of token patterns compiled by lexmachine.
type DFA struct {
	lexer  *lexmachine.Lexer
	labels map[lidas.TokType]string // token type → name from the token table
}

// Compile builds a DFA. init adds the patterns and their actions to the
// lexer. literals are matched verbatim and keywords in lower case; both are
// typed with their entry in tokens. The names in tokens label the tokens
// the DFA produces.
//
// Compile fails if lexmachine rejects a pattern.
func Compile(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokens map[string]lidas.TokType) (*DFA, error) {
	//
	dfa := &DFA{
		lexer:  lexmachine.NewLexer(),
		labels: make(map[lidas.TokType]string, len(tokens)),
	}
	for name, t := range tokens {
		dfa.labels[t] = name
	}
	init(dfa.lexer)
	for _, lit := range literals {
		quoted := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		dfa.lexer.Add([]byte(quoted), Emit(lit, tokens[lit]))
	}
	for _, kw := range keywords {
		dfa.lexer.Add([]byte(strings.ToLower(kw)), Emit(kw, tokens[kw]))
	}
	if err := dfa.lexer.Compile(); err != nil {
		tracer().Errorf("lexmachine cannot compile DFA: %v", err)
		return nil, err
	}
	return dfa, nil
}

// Scan starts tokenizing input.
func (dfa *DFA) Scan(input []byte) (*Scanner, error) {
	s, err := dfa.lexer.Scanner(input)
	if err != nil {
		return &Scanner{}, err
	}
	return &Scanner{lm: s, labels: dfa.labels, Error: logError}, nil
}

// Scanner delivers the tokens of one input. Input the DFA cannot match is
// reported and skipped.
type Scanner struct {
	lm     *lexmachine.Scanner
	labels map[lidas.TokType]string
	errors int
	Error  func(error) // receives unmatched input
}

var _ scanner.Tokenizer = (*Scanner)(nil)

// SetErrorHandler is part of interface scanner.Tokenizer. A nil handler
// restores tracing of errors.
func (s *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	s.Error = h
}

// ErrorCount returns the number of skipped stretches of input.
func (s *Scanner) ErrorCount() int {
	return s.errors
}

func logError(e error) {
	tracer().Errorf("lexmachine: %v", e)
}

// NextToken is part of interface scanner.Tokenizer. The tokens are
// *scanner.Token, with the lexeme as value unless the action sets another.
func (s *Scanner) NextToken() lidas.Token {
	if s.lm == nil {
		return eof()
	}
	tok, err, atEnd := s.lm.Next()
	for err != nil {
		s.errors++
		s.Error(err)
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			s.lm.TC = ui.FailTC
		}
		tok, err, atEnd = s.lm.Next()
	}
	if atEnd {
		return eof()
	}
	token := tok.(*lexmachine.Token)
	t := lidas.TokType(token.Type)
	tracer().Debugf("lexmachine: %s %q", s.labels[t], token.Lexeme)
	return scanner.MakeToken(t, s.labels[t], string(token.Lexeme), token.Value,
		lidas.Pos{Line: token.StartLine, Col: token.StartColumn})
}

func eof() *scanner.Token {
	return scanner.MakeToken(scanner.EndOfFile, "", "", nil, lidas.Pos{})
}

// --- Actions ---------------------------------------------------------------

// Skip drops a match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Emit returns an action producing a token of type t for a match.
func Emit(name string, t lidas.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(t), string(m.Bytes), m), nil
	}
}
