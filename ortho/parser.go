package ortho

import (
	"io"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/lidas/scanner/rx"
	"golang.org/x/text/encoding/charmap"
)

// Result is the outcome of parsing a specification file.
type Result struct {
	Table        *Table
	Tokens       []*scanner.Token // meta-tokens, without end of file
	LexErrors    []*scanner.Error
	SyntaxErrors []*Error
}

// OK is true if the specification contains neither lexical nor syntax
// errors.
func (r *Result) OK() bool {
	return len(r.LexErrors) == 0 && len(r.SyntaxErrors) == 0
}

// ErrorCount returns the number of lexical and syntax errors.
func (r *Result) ErrorCount() int {
	return len(r.LexErrors) + len(r.SyntaxErrors)
}

// Option configures the parsing of a specification.
type Option func(p *parser)

// WithSyntax sets the syntax of the regular expressions for lexemes.
// Default is rx.Perl.
func WithSyntax(syntax rx.Syntax) Option {
	return func(p *parser) {
		p.table.Syntax = syntax
	}
}

// ParseFile parses the specification file at path.
// Errors returned are fatal: the file could not be opened.
func ParseFile(path string, opts ...Option) (*Result, error) {
	p := newParser(path, opts)
	job, err := scanner.StartJob(path, BootstrapSpecs(), scanner.WithErrorHandler(p.lexError),
		scanner.WithEncoding(charmap.ISO8859_1))
	if err != nil {
		return nil, err
	}
	defer job.Close()
	return p.run(job), nil
}

// Parse parses a specification from r. name is used for error messages.
func Parse(name string, r io.Reader, opts ...Option) (*Result, error) {
	p := newParser(name, opts)
	job, err := scanner.NewJob(name, r, BootstrapSpecs(), scanner.WithErrorHandler(p.lexError),
		scanner.WithEncoding(charmap.ISO8859_1))
	if err != nil {
		return nil, err
	}
	defer job.Close()
	return p.run(job), nil
}

// --- Grammar driver --------------------------------------------------------

// Parser states.
type state int

const (
	expectBox          state = iota // Caixa
	expectCaseSubject               // Identificadores | Comandos | Comentarios
	expectCaseRule                  // Distinguem | Ignoram
	expectCommentRule               // Linha | Abre | Fecha | Lexemas
	expectCommentText               // meta-string
	expectLexemeRule                // Identificador | Inteiro | Decimal | String | Comandos
	expectLexemeLabel               // meta-string
	expectLexemeRegex               // meta-string
	expectCommandText               // meta-string
	expectCommandLabel              // meta-string
	expectCommandEnd                // ';' | meta-string
)

// Sections of a specification, in order.
var sections = []string{"Caixa", "Comentarios", "Lexemas", "Comandos"}

type parser struct {
	name    string
	state   state
	table   *Table
	result  *Result
	seen    [4]bool         // sections seen
	decided map[string]bool // case rules decided, by subject
	subject string          // subject of the pending case rule
	marker  *scanner.Token  // pending comment rule
	lexeme  *Lexeme         // pending lexeme rule
	command *Command        // pending command
	texts   *treeset.Set    // command texts
	labels  *treeset.Set    // command labels
	lastPos lidas.Pos
}

func newParser(name string, opts []Option) *parser {
	p := &parser{
		name:    name,
		table:   &Table{},
		decided: make(map[string]bool),
	}
	p.result = &Result{Table: p.table}
	for _, option := range opts {
		option(p)
	}
	return p
}

func (p *parser) lexError(e error) {
	tracer().Infof("lexical error in specification: %v", e)
}

func (p *parser) run(job *scanner.Job) *Result {
	for {
		token, err := job.Next()
		if err == scanner.ErrJobClosed {
			break
		}
		if token.Kind() == scanner.EndOfFile {
			p.finish(token)
			break
		}
		if err != nil {
			continue
		}
		p.result.Tokens = append(p.result.Tokens, token)
		p.lastPos = token.Pos()
		p.step(token)
	}
	p.result.LexErrors = job.Errors()
	tracer().Debugf("specification %s: %d tokens, %d errors", p.name,
		len(p.result.Tokens), p.result.ErrorCount())
	return p.result
}

func reserved(token *scanner.Token) string {
	if token.Kind() == scanner.ReservedWord {
		return token.Label()
	}
	return ""
}

func isMetaString(token *scanner.Token) bool {
	return token.Kind() == scanner.SingleQuoteString || token.Kind() == scanner.DoubleQuoteString
}

// step advances the state machine by one meta-token.
func (p *parser) step(token *scanner.Token) {
	word := reserved(token)
	switch p.state {
	case expectBox:
		if word == "caixa" {
			p.enter(0, expectCaseSubject)
			return
		}
		p.unexpected(token, "Caixa")
	case expectCaseSubject:
		switch word {
		case "identificadores", "comandos":
			if p.decided[word] {
				p.duplicateRule(token)
			}
			p.subject = word
			p.state = expectCaseRule
			return
		case "comentarios":
			if !p.decided["identificadores"] {
				p.missingSection(token.Pos(), "Caixa Identificadores")
			}
			if !p.decided["comandos"] {
				p.missingSection(token.Pos(), "Caixa Comandos")
			}
			p.enter(1, expectCommentRule)
			return
		}
		if p.decided["identificadores"] && p.decided["comandos"] {
			p.unexpected(token, "Comentarios")
		} else {
			p.unexpected(token, "Identificadores or Comandos")
		}
	case expectCaseRule:
		if word == "distinguem" || word == "ignoram" {
			sensitive := word == "distinguem"
			if p.subject == "identificadores" {
				p.table.IdentifiersCaseSensitive = sensitive
			} else {
				p.table.CommandsCaseSensitive = sensitive
			}
			p.decided[p.subject] = true
			p.state = expectCaseSubject
			return
		}
		p.unexpected(token, "Distinguem or Ignoram")
	case expectCommentRule:
		switch word {
		case "linha", "abre", "fecha":
			if p.comment(word) != nil {
				p.duplicateRule(token)
			}
			p.marker = token
			p.state = expectCommentText
			return
		case "lexemas":
			p.checkCommentPairing(token.Pos())
			p.enter(2, expectLexemeRule)
			return
		}
		p.unexpected(token, "Linha, Abre, Fecha or Lexemas")
	case expectCommentText:
		if isMetaString(token) {
			p.commentText(token)
			p.state = expectCommentRule
			return
		}
		p.unexpected(token, "comment marker")
	case expectLexemeRule:
		switch word {
		case RuleIdentifier, RuleInteger, RuleDecimal, RuleString:
			if p.table.Lexeme(word) != nil {
				p.duplicateRule(token)
			}
			p.lexeme = &Lexeme{Rule: word, Pos: token.Pos()}
			p.state = expectLexemeLabel
			return
		case "comandos":
			p.enter(3, expectCommandText)
			return
		}
		p.unexpected(token, "Identificador, Inteiro, Decimal, String or Comandos")
	case expectLexemeLabel:
		if isMetaString(token) {
			p.lexeme.Label = unquote(token.Lexeme())
			p.state = expectLexemeRegex
			return
		}
		p.unexpected(token, "label for "+p.lexeme.Rule)
	case expectLexemeRegex:
		if isMetaString(token) {
			p.lexemeRegex(token)
			p.state = expectLexemeRule
			return
		}
		p.unexpected(token, "regular expression for "+p.lexeme.Rule)
	case expectCommandEnd:
		if token.Kind() == scanner.Delimiter {
			p.state = expectCommandText
			return
		}
		fallthrough
	case expectCommandText:
		if isMetaString(token) {
			p.command = &Command{Text: unquote(token.Lexeme()), Pos: token.Pos()}
			p.state = expectCommandLabel
			return
		}
		p.unexpected(token, "command")
	case expectCommandLabel:
		if isMetaString(token) {
			p.command.Label = unquote(token.Lexeme())
			p.addCommand(token)
			p.state = expectCommandEnd
			return
		}
		p.unexpected(token, "label for command "+p.command.Text)
	}
	p.resync(word)
}

// enter starts section number n.
func (p *parser) enter(n int, next state) {
	p.seen[n] = true
	p.state = next
}

// resync continues with a section if the parser encountered its keyword at
// an unexpected place.
func (p *parser) resync(word string) {
	switch {
	case p.state == expectBox && (word == "identificadores" || word == "comandos"):
		p.subject = word
		p.state = expectCaseRule
	case word == "comentarios":
		p.enter(1, expectCommentRule)
	case word == "lexemas":
		p.enter(2, expectLexemeRule)
	case word == "comandos" && p.state >= expectCommentRule:
		p.enter(3, expectCommandText)
	}
}

// finish checks for incomplete rules and missing sections at end of input.
func (p *parser) finish(eof *scanner.Token) {
	switch p.state {
	case expectCaseRule, expectCommentText, expectLexemeLabel, expectLexemeRegex, expectCommandLabel:
		p.unexpected(eof, "rule to be completed")
	}
	pos := p.lastPos
	for i, seen := range p.seen {
		if !seen {
			p.missingSection(pos, sections[i])
		}
	}
	if !p.seen[2] {
		p.checkCommentPairing(pos)
	}
	if p.seen[3] && len(p.table.Commands) == 0 {
		p.errorAt(pos, MissingSection, "no commands declared")
	}
}

// --- Rules -----------------------------------------------------------------

func (p *parser) comment(rule string) *Comment {
	switch rule {
	case "linha":
		return p.table.LineComment
	case "abre":
		return p.table.OpenComment
	}
	return p.table.CloseComment
}

func (p *parser) commentText(token *scanner.Token) {
	text := unquote(token.Lexeme())
	if text == "" {
		p.errorAt(token.Pos(), BadPattern, "empty comment marker")
		return
	}
	c := &Comment{Text: text, Regex: ReservedRegex(text, true), Pos: p.marker.Pos()}
	switch reserved(p.marker) {
	case "linha":
		p.table.LineComment = c
	case "abre":
		p.table.OpenComment = c
	case "fecha":
		p.table.CloseComment = c
	}
}

func (p *parser) checkCommentPairing(pos lidas.Pos) {
	if (p.table.OpenComment == nil) != (p.table.CloseComment == nil) {
		p.errorAt(pos, UnpairedComment, "block comments need both Abre and Fecha")
	}
}

func (p *parser) lexemeRegex(token *scanner.Token) {
	regex := unquote(token.Lexeme())
	if regex == "" {
		p.errorAt(token.Pos(), BadPattern, "empty regular expression for %s", p.lexeme.Rule)
		return
	}
	if _, err := rx.Compile(regex, true, rx.WithSyntax(p.table.Syntax)); err != nil {
		p.badPattern(token, err)
		return
	}
	p.lexeme.Regex = regex
	if p.table.Lexeme(p.lexeme.Rule) == nil {
		p.table.Lexemes = append(p.table.Lexemes, p.lexeme)
	}
}

// addCommand enters the pending command into the table, if neither its text
// nor its label is already taken.
func (p *parser) addCommand(label *scanner.Token) {
	if p.texts == nil {
		cmp := commandComparator(p.table.CommandsCaseSensitive)
		p.texts, p.labels = treeset.NewWith(cmp), treeset.NewWith(cmp)
	}
	cmd := p.command
	ok := true
	if cmd.Text == "" {
		p.errorAt(cmd.Pos, BadPattern, "empty command")
		ok = false
	} else if p.texts.Contains(cmd.Text) {
		p.errorAt(cmd.Pos, DuplicateCommand, "command %q already defined", cmd.Text)
		ok = false
	}
	if p.labels.Contains(cmd.Label) {
		p.errorAt(label.Pos(), DuplicateLabel, "label %q already in use", cmd.Label)
		ok = false
	}
	if !ok {
		return
	}
	cmd.Regex = ReservedRegex(cmd.Text, p.table.CommandsCaseSensitive)
	p.texts.Add(cmd.Text)
	p.labels.Add(cmd.Label)
	p.table.Commands = append(p.table.Commands, cmd)
}

// commandComparator compares command texts and labels according to the
// case rule for commands.
func commandComparator(caseSensitive bool) utils.Comparator {
	if caseSensitive {
		return utils.StringComparator
	}
	return func(a, b interface{}) int {
		return utils.StringComparator(strings.ToLower(a.(string)), strings.ToLower(b.(string)))
	}
}
