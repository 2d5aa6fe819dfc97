package lexmach

import (
	"testing"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 2, 3, 3}

func TestTokenCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.scanner")
	defer teardown()
	//
	dfa := compileTestDFA(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := dfa.Scan([]byte(input))
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EndOfFile {
			t.Logf(" %4d | %15s | @%s", token.TokType(), token.Lexeme(), token.Pos())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestTokenAttributes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.scanner")
	defer teardown()
	//
	sc, _ := compileTestDFA(t).Scan([]byte("Hello\n  #World ("))
	sc.NextToken()
	token := sc.NextToken().(*scanner.Token)
	if token.Label() != "ID" || token.Lexeme() != "#World" {
		t.Errorf("expected ID #World, got %s", token)
	}
	if token.Pos() != (lidas.Pos{Line: 2, Col: 3}) {
		t.Errorf("expected #World at (2:3), is at %s", token.Pos())
	}
	token = sc.NextToken().(*scanner.Token)
	if token.Label() != "(" || token.TokType() != tokenIds["("] || token.Value() != "(" {
		t.Errorf("expected literal '(', got %s", token)
	}
}

func TestSkipUnmatched(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.scanner")
	defer teardown()
	//
	sc, _ := compileTestDFA(t).Scan([]byte("a ? b"))
	var errs int
	sc.SetErrorHandler(func(error) { errs++ })
	count := 0
	for token := sc.NextToken(); token.TokType() != scanner.EndOfFile; token = sc.NextToken() {
		count++
	}
	if count != 2 || errs != 1 || sc.ErrorCount() != 1 {
		t.Errorf("expected 2 tokens and 1 error, got %d tokens and %d errors", count, errs)
	}
	sc.SetErrorHandler(nil)
	if sc.Error == nil {
		t.Errorf("expected nil handler to restore default error handling")
	}
}

func compileTestDFA(t *testing.T) *DFA {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), Emit("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), Emit("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), Emit("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	dfa, err := Compile(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	return dfa
}

var literals []string                 // The tokens representing literal strings
var keywords []string                 // The keyword tokens
var tokenIds map[string]lidas.TokType // A map from the token names to their ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokenIds = map[string]lidas.TokType{
		"ID":     scanner.Identifier,
		"NUM":    scanner.LongInt,
		"STRING": scanner.DoubleQuoteString,
	}
	for i, lit := range literals {
		tokenIds[lit] = lidas.TokType(100 + i)
	}
	for i, kw := range keywords {
		tokenIds[kw] = lidas.TokType(200 + i)
	}
}
