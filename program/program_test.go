package program

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/ortho"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const e2eSpec = `Caixa Identificadores Distinguem Comandos Ignoram Comentarios Linha '/#' Lexemas Identificador 'ID' '[a-z]+' Comandos 'show' 'tk_show';`

const animSpec = `
Caixa Identificadores Ignoram Comandos Ignoram
Comentarios Linha '--' Abre '{' Fecha '}'
Lexemas
    Identificador 'tk_id'  '[A-Za-z_][A-Za-z0-9_]*'
    Inteiro       'tk_int' '[0-9]+'
    Decimal       'tk_dec' '[0-9]+\.[0-9]+'
    String        'tk_str' '"[^"]*"'
Comandos
    'Mostre' 'tk_mostre'
    'Apos'   'tk_apos'
`

func table(t *testing.T, spec string) *ortho.Table {
	r, err := ortho.Parse("test.ort", strings.NewReader(spec))
	if err != nil {
		t.Fatal(err)
	}
	if !r.OK() {
		for _, e := range r.SyntaxErrors {
			t.Log(e)
		}
		t.Fatalf("specification has %d errors", r.ErrorCount())
	}
	return r.Table
}

func TestEndToEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.program")
	defer teardown()
	//
	var consumed []*Token
	consumer := ConsumerFunc(func(token *Token) {
		consumed = append(consumed, token)
	})
	r, err := TokenizeReader("show.lds", strings.NewReader("show x;"), table(t, e2eSpec), consumer)
	if err != nil {
		t.Fatal(err)
	}
	expected := []struct {
		kind   lidas.TokType
		lexeme string
	}{
		{scanner.ReservedWord, "show"},
		{scanner.Identifier, "x"},
		{scanner.Delimiter, ";"},
		{scanner.EndOfFile, ""},
	}
	if len(consumed) != len(expected) || len(r.Tokens) != len(expected) {
		t.Fatalf("expected %d tokens, consumer got %d", len(expected), len(consumed))
	}
	for i, token := range consumed {
		t.Logf(" %13s | %5s | %s", scanner.KindString(token.Kind()), token.Lexeme(), token.Pos())
		if token.Kind() != expected[i].kind || token.Lexeme() != expected[i].lexeme {
			t.Errorf("token #%d: expected %s %q, got %s", i, scanner.KindString(expected[i].kind),
				expected[i].lexeme, token)
		}
	}
	if cmd := consumed[0].Command; cmd == nil || cmd.Label != "tk_show" {
		t.Errorf("expected 'show' to resolve to tk_show, is %v", cmd)
	}
	if consumed[2].Value() != byte(';') {
		t.Errorf("expected delimiter value ';', is %v", consumed[2].Value())
	}
	if r.Symbols.Size() != 1 {
		t.Fatalf("expected 1 symbol, have %d", r.Symbols.Size())
	}
	x := r.Symbols.ResolveTag("x")
	if x == nil || x.First != (lidas.Pos{Line: 1, Col: 6}) || len(x.Occurrences) != 1 {
		t.Errorf("expected x installed once at (1:6), have %v", x)
	}
	if consumed[1].Tag != x {
		t.Errorf("expected identifier token to carry its tag")
	}
	if len(r.Errors) != 0 {
		t.Errorf("expected no errors, have %v", r.Errors)
	}
}

func TestSpecs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.program")
	defer teardown()
	//
	specs, err := Specs(table(t, animSpec))
	if err != nil {
		t.Fatal(err)
	}
	kinds := []lidas.TokType{
		scanner.Identifier, scanner.LongInt, scanner.Double, scanner.DoubleQuoteString,
		scanner.LineComment, scanner.OpenComment, scanner.CloseComment,
		scanner.Delimiter, scanner.ReservedWord,
	}
	if len(specs) != len(kinds) {
		t.Fatalf("expected %d specs, have %d", len(kinds), len(specs))
	}
	for i, spec := range specs {
		t.Logf("spec %s", spec)
		if spec.Kind != kinds[i] {
			t.Errorf("spec #%d: expected kind %s, is %s", i, scanner.KindString(kinds[i]),
				scanner.KindString(spec.Kind))
		}
	}
	if p := specs[8].Pattern; p != "([mM][oO][sS][tT][rR][eE])|([aA][pP][oO][sS])" {
		t.Errorf("unexpected command pattern %s", p)
	}
	if _, err = Specs(&ortho.Table{}); !errors.Is(err, ErrNoCommands) {
		t.Errorf("expected table without commands to be rejected")
	}
}

func TestStringKind(t *testing.T) {
	if stringKind(`'[^']*'`) != scanner.SingleQuoteString || stringKind(`"[^"]*"`) != scanner.DoubleQuoteString {
		t.Errorf("string kind not derived from quotes")
	}
}

func TestEquivalent(t *testing.T) {
	inputs := []struct {
		a, b      string
		sensitive bool
		eq        bool
	}{
		{"Mostre", "mostre", false, true},
		{"Mostre", "mostre", true, false},
		{"APÓS", "após", false, true},
		{"show", "shows", false, false},
	}
	for _, input := range inputs {
		if Equivalent(input.a, input.b, input.sensitive) != input.eq {
			t.Errorf("Equivalent(%q, %q, %v) should be %v", input.a, input.b, input.sensitive, input.eq)
		}
	}
}

func TestProgramTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.program")
	defer teardown()
	//
	program := "MOSTRE Circle, circle { a\nblock comment } apos 500 -- trailing\nmostre \"txt\" 1.5"
	r, err := TokenizeReader("anim.lds", strings.NewReader(program), table(t, animSpec), nil)
	if err != nil {
		t.Fatal(err)
	}
	labels := []string{"tk_mostre", "tk_apos", "tk_mostre"}
	var commands []string
	for _, token := range r.Tokens {
		if token.Command != nil {
			commands = append(commands, token.Command.Label)
		}
	}
	if strings.Join(commands, " ") != strings.Join(labels, " ") {
		t.Errorf("expected commands %v, have %v", labels, commands)
	}
	if len(r.Tokens) != 10 {
		t.Errorf("expected 10 tokens, have %d", len(r.Tokens))
	}
	circle := r.Symbols.ResolveTag("CIRCLE")
	if r.Symbols.Size() != 1 || circle == nil || len(circle.Occurrences) != 2 {
		t.Errorf("expected Circle to be installed once with 2 occurrences")
	}
	if n := r.Tokens[5].Value(); n != int64(500) {
		t.Errorf("expected integer 500, got %v", n)
	}
	if x := r.Tokens[8].Value(); x != 1.5 {
		t.Errorf("expected decimal 1.5, got %v", x)
	}
}

func TestMaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.program")
	defer teardown()
	//
	gconf.Initialize(testconfig.Conf{
		"tracing.adapter":  "test",
		"lidas.max-errors": 2,
	})
	defer gconf.Initialize(testconfig.Conf{"tracing.adapter": "test"})
	program := "show 1 2 3 4 5 x"
	r, err := TokenizeReader("bad.lds", strings.NewReader(program), table(t, e2eSpec), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Truncated || len(r.Errors) != 2 {
		t.Errorf("expected to stop after 2 errors, have %d", len(r.Errors))
	}
	if last := r.Tokens[len(r.Tokens)-1]; last.Kind() != scanner.EndOfFile {
		t.Errorf("expected token stream to end with EOF")
	}
	r, _ = TokenizeReader("bad.lds", strings.NewReader(program), table(t, e2eSpec), nil, WithMaxErrors(0))
	if r.Truncated || len(r.Errors) != 5 {
		t.Errorf("expected 5 errors without limit, have %d", len(r.Errors))
	}
}

func TestTokenizeFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.program")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "prog.lds")
	if err := os.WriteFile(path, []byte("show a /# comment\nshow b;\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := Tokenize(path, table(t, e2eSpec), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Tokens) != 6 || r.Tokens[3].Pos() != (lidas.Pos{Line: 2, Col: 6}) {
		t.Errorf("expected b at (2:6) as fourth of 6 tokens, have %v", r.Tokens)
	}
	if _, err = Tokenize(path+".missing", table(t, e2eSpec), nil); !errors.Is(err, scanner.ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}

func TestLatin1Commands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.program")
	defer teardown()
	//
	spec := "Caixa Identificadores Distinguem Comandos Ignoram Comentarios Lexemas " +
		"Identificador 'ID' '[a-z]+' Comandos 'ap\xf3s' 'tk_apos'"
	tbl := table(t, spec)
	if cmd := tbl.Commands[0]; cmd.Text != "após" || cmd.Regex != "[aA][pP][óÓ][sS]" {
		t.Fatalf("expected command após with regex [aA][pP][óÓ][sS], have %q /%s/", cmd.Text, cmd.Regex)
	}
	r, err := TokenizeReader("latin1.lds", strings.NewReader("ap\xe9s AP\xd3S"), tbl, nil)
	if err != nil {
		t.Fatal(err)
	}
	var reserved []*Token
	for _, token := range r.Tokens {
		t.Logf(" %13s | %6q | %s", scanner.KindString(token.Kind()), token.Lexeme(), token.Pos())
		if token.Kind() == scanner.ReservedWord {
			reserved = append(reserved, token)
		}
	}
	if len(reserved) != 1 || reserved[0].Lexeme() != "APÓS" {
		t.Fatalf("expected APÓS to be the only reserved word, have %v", reserved)
	}
	if cmd := reserved[0].Command; cmd == nil || cmd.Label != "tk_apos" {
		t.Errorf("expected APÓS to resolve to tk_apos, is %v", cmd)
	}
	if len(r.Errors) != 1 || r.Errors[0].Code != scanner.NoMatch {
		t.Errorf("expected é to be the only lexical error, have %v", r.Errors)
	}
	if FindCommand(tbl, "apés") != nil || FindCommand(tbl, "APÓS") == nil {
		t.Errorf("expected apés to be no command and APÓS to be após")
	}
}
