package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lidas/ortho"
	"github.com/npillmayer/lidas/program"
	"github.com/npillmayer/lidas/report"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/lidas/symtab"
	"github.com/pterm/pterm"
)

// Session tokenizes lines typed by the user with a discovered grammar.
// Identifiers are collected in a symbol table spanning the whole session.
type Session struct {
	table   *ortho.Table
	symbols *symtab.SymbolTable
	out     io.Writer
	lineno  int
}

func newSession(table *ortho.Table, out io.Writer) *Session {
	return &Session{
		table:   table,
		symbols: symtab.NewSymbolTable(table.IdentifiersCaseSensitive),
		out:     out,
	}
}

// interact starts interactive mode. Quit with <ctrl>D or ":sair".
func interact(table *ortho.Table) error {
	repl, err := readline.New("lidas> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to LiDAS")
	tracer().Infof("Quit with <ctrl>D")
	session := newSession(table, repl.Stdout())
	for {
		line, err := repl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil { // io.EOF
			break
		}
		if quit := session.Eval(line); quit {
			break
		}
	}
	return nil
}

// Eval tokenizes a line and prints its tokens. Lines starting with ':' are
// commands:
//
//	:simbolos   print the symbol table
//	:tabela     print the grammar table
//	:sair       quit
//
func (s *Session) Eval(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	s.lineno++
	switch line {
	case ":sair":
		return true
	case ":simbolos":
		if err := report.WriteSymbols(s.out, s.symbols); err != nil {
			pterm.Error.Println(err.Error())
		}
		return false
	case ":tabela":
		fmt.Fprint(s.out, s.table.String())
		return false
	}
	name := fmt.Sprintf("linha %d", s.lineno)
	result, err := program.TokenizeReader(name, strings.NewReader(line), s.table, nil,
		program.WithSymbols(s.symbols),
		program.WithScannerOptions(scanner.WithCasePolicy(casePolicy())))
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	if err = report.WriteTokens(s.out, result); err != nil {
		pterm.Error.Println(err.Error())
	}
	for _, e := range result.Errors {
		fmt.Fprintf(s.out, "%s\n%s\n", e.Error(), e.Context)
	}
	return false
}
