package program

import (
	"io"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/ortho"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/lidas/symtab"
	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/text/encoding/charmap"
)

// Token is a program token, annotated with the command it denotes (for
// reserved words) or with its symbol (for identifiers).
type Token struct {
	*scanner.Token
	Command *ortho.Command
	Tag     *symtab.Tag
}

// Consumer receives the tokens of a program in order, ending with a token of
// kind scanner.EndOfFile.
type Consumer interface {
	Consume(token *Token)
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc func(token *Token)

// Consume is part of interface Consumer.
func (f ConsumerFunc) Consume(token *Token) {
	f(token)
}

// Result is the outcome of tokenizing a program.
type Result struct {
	Tokens    []*Token // including end of file
	Symbols   *symtab.SymbolTable
	Errors    []*scanner.Error
	Truncated bool // stopped at the maximum number of errors
}

// Option configures the tokenizer.
type Option func(d *driver)

// WithMaxErrors sets the number of lexical errors after which tokenizing
// stops. It overrides configuration key 'lidas.max-errors'.
func WithMaxErrors(n int) Option {
	return func(d *driver) {
		d.maxErrors = n
	}
}

// WithSymbols makes the tokenizer install identifiers into symbols instead
// of into a new symbol table.
func WithSymbols(symbols *symtab.SymbolTable) Option {
	return func(d *driver) {
		d.result.Symbols = symbols
	}
}

// WithScannerOptions passes options to the scanner job.
func WithScannerOptions(opts ...scanner.Option) Option {
	return func(d *driver) {
		d.scanOpts = append(d.scanOpts, opts...)
	}
}

type driver struct {
	table     *ortho.Table
	consumer  Consumer
	maxErrors int
	scanOpts  []scanner.Option
	result    *Result
}

func newDriver(table *ortho.Table, consumer Consumer, opts []Option) *driver {
	d := &driver{
		table:     table,
		consumer:  consumer,
		maxErrors: gconf.GetInt("lidas.max-errors"),
		result:    &Result{},
		scanOpts: []scanner.Option{
			scanner.WithSyntax(table.Syntax),
			scanner.WithEncoding(charmap.ISO8859_1),
		},
	}
	for _, option := range opts {
		option(d)
	}
	if d.result.Symbols == nil {
		d.result.Symbols = symtab.NewSymbolTable(table.IdentifiersCaseSensitive)
	}
	return d
}

// Tokenize tokenizes the program file at path with the grammar of table.
// Tokens are handed to consumer, which may be nil.
//
// Errors returned are fatal: the file could not be opened or the grammar
// could not be turned into valid token specs.
func Tokenize(path string, table *ortho.Table, consumer Consumer, opts ...Option) (*Result, error) {
	specs, err := Specs(table)
	if err != nil {
		return nil, err
	}
	d := newDriver(table, consumer, opts)
	job, err := scanner.StartJob(path, specs, d.scanOpts...)
	if err != nil {
		return nil, err
	}
	defer job.Close()
	return d.run(job), nil
}

// TokenizeReader tokenizes a program read from r. name is used for error
// messages.
func TokenizeReader(name string, r io.Reader, table *ortho.Table, consumer Consumer, opts ...Option) (*Result, error) {
	specs, err := Specs(table)
	if err != nil {
		return nil, err
	}
	d := newDriver(table, consumer, opts)
	job, err := scanner.NewJob(name, r, specs, d.scanOpts...)
	if err != nil {
		return nil, err
	}
	defer job.Close()
	return d.run(job), nil
}

func (d *driver) run(job *scanner.Job) *Result {
	for {
		token, err := job.Next()
		if err == scanner.ErrJobClosed {
			break
		}
		if d.maxErrors > 0 && job.ErrorCount() >= d.maxErrors && token.Kind() != scanner.EndOfFile {
			tracer().Infof("%s: giving up after %d errors", job.Name(), job.ErrorCount())
			d.result.Truncated = true
			d.emit(scanner.MakeToken(scanner.EndOfFile, "", "", nil, lidas.Pos{Line: job.Line()}))
			break
		}
		if err != nil && token.Kind() != scanner.EndOfFile {
			continue
		}
		d.emit(token)
		if token.Kind() == scanner.EndOfFile {
			break
		}
	}
	d.result.Errors = job.Errors()
	tracer().Debugf("%s: %d tokens, %d symbols, %d errors", job.Name(), len(d.result.Tokens),
		d.result.Symbols.Size(), len(d.result.Errors))
	return d.result
}

// emit annotates a token and hands it to the consumer.
func (d *driver) emit(token *scanner.Token) {
	t := &Token{Token: token}
	switch token.Kind() {
	case scanner.ReservedWord:
		if t.Command = FindCommand(d.table, token.Lexeme()); t.Command == nil {
			tracer().Errorf("reserved word %q matches no command", token.Lexeme())
		}
	case scanner.Identifier:
		t.Tag, _ = d.result.Symbols.Install(token.Lexeme(), token.Label(), token.Pos())
	}
	d.result.Tokens = append(d.result.Tokens, t)
	if d.consumer != nil {
		d.consumer.Consume(t)
	}
}
