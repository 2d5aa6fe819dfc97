package ortho

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/scanner/rx"
)

// Table is the grammar discovered from a specification file.
type Table struct {
	IdentifiersCaseSensitive bool
	CommandsCaseSensitive    bool
	Syntax                   rx.Syntax // syntax of the lexeme regexes
	LineComment              *Comment
	OpenComment              *Comment
	CloseComment             *Comment
	Lexemes                  []*Lexeme  // in order of declaration
	Commands                 []*Command // in order of declaration
}

// Comment is a comment marker.
type Comment struct {
	Text  string    // marker as given in the specification
	Regex string    // regular expression matching Text literally
	Pos   lidas.Pos `hash:"-"`
}

// Rules for literals, as named in a specification file.
const (
	RuleIdentifier = "identificador"
	RuleInteger    = "inteiro"
	RuleDecimal    = "decimal"
	RuleString     = "string"
)

// Lexeme is a rule for a kind of literal.
type Lexeme struct {
	Rule  string // one of RuleIdentifier, RuleInteger, RuleDecimal, RuleString
	Label string
	Regex string
	Pos   lidas.Pos `hash:"-"`
}

// Command is a reserved word of a LiDAS language.
type Command struct {
	Text  string // literal text of the command
	Label string
	Regex string    // regular expression derived from Text
	Pos   lidas.Pos `hash:"-"`
}

func (c *Command) String() string {
	return fmt.Sprintf("%s(%q)", c.Label, c.Text)
}

// Lexeme returns the rule for literals of kind rule, or nil.
func (t *Table) Lexeme(rule string) *Lexeme {
	for _, lx := range t.Lexemes {
		if lx.Rule == rule {
			return lx
		}
	}
	return nil
}

// Fingerprint returns a hash of the table's contents. Tables of
// specifications which differ in layout or comments only have the same
// fingerprint.
func (t *Table) Fingerprint() string {
	h, err := structhash.Hash(t, 1)
	if err != nil {
		tracer().Errorf("cannot hash grammar table: %v", err)
		return ""
	}
	return h
}

func (t *Table) String() string {
	var b strings.Builder
	caseRule := func(sensitive bool) string {
		if sensitive {
			return "distinguem"
		}
		return "ignoram"
	}
	fmt.Fprintf(&b, "identificadores %s, comandos %s\n",
		caseRule(t.IdentifiersCaseSensitive), caseRule(t.CommandsCaseSensitive))
	for _, c := range []struct {
		name string
		c    *Comment
	}{{"linha", t.LineComment}, {"abre", t.OpenComment}, {"fecha", t.CloseComment}} {
		if c.c != nil {
			fmt.Fprintf(&b, "%-8s %q\n", c.name, c.c.Text)
		}
	}
	for _, lx := range t.Lexemes {
		fmt.Fprintf(&b, "%-8s %-10s /%s/\n", lx.Rule, lx.Label, lx.Regex)
	}
	for _, cmd := range t.Commands {
		fmt.Fprintf(&b, "%-8s %-10s /%s/\n", "comando", cmd.Label, cmd.Regex)
	}
	return b.String()
}
