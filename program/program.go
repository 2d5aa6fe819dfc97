/*
Package program tokenizes LiDAS programs.

The vocabulary of a program is defined by a grammar table discovered from a
specification file (see package ortho). Specs translates the table into
token specs for package scanner. Tokenize runs a scanner job over a program,
resolves reserved words to their commands, installs identifiers into a
symbol table and hands every token to a Consumer, usually the statement
parser.

Configuration

	lidas.max-errors    stop after this many lexical errors (0: never stop)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package program

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/ortho"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lidas.program'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.program")
}

// ErrNoCommands is returned for grammar tables without commands.
var ErrNoCommands = errors.New("grammar declares no commands")

// DelimiterPattern is the pattern for delimiters of every LiDAS language:
// any single punctuation character.
const DelimiterPattern = `[[:punct:]]`

// Labels of token specs not declared in a grammar table.
const (
	LabelDelimiter = "delimitador"
	LabelCommand   = "comando"
)

// Specs creates the token specs for programs of the language defined by
// table. Specs are ordered: literals in order of declaration, comments,
// delimiters and finally a single spec for all commands.
func Specs(table *ortho.Table) ([]scanner.Spec, error) {
	if table == nil || len(table.Commands) == 0 {
		return nil, ErrNoCommands
	}
	var specs []scanner.Spec
	for _, lx := range table.Lexemes {
		spec := scanner.Spec{Label: lx.Label, Pattern: lx.Regex}
		switch lx.Rule {
		case ortho.RuleIdentifier:
			spec.Kind = scanner.Identifier
		case ortho.RuleInteger:
			spec.Kind = scanner.LongInt
		case ortho.RuleDecimal:
			spec.Kind = scanner.Double
		case ortho.RuleString:
			spec.Kind = stringKind(lx.Regex)
		default:
			return nil, fmt.Errorf("%w: unknown lexeme rule %q", scanner.ErrInvalidSpec, lx.Rule)
		}
		specs = append(specs, spec)
	}
	for _, c := range []struct {
		kind    lidas.TokType
		comment *ortho.Comment
	}{
		{scanner.LineComment, table.LineComment},
		{scanner.OpenComment, table.OpenComment},
		{scanner.CloseComment, table.CloseComment},
	} {
		if c.comment != nil {
			specs = append(specs, scanner.Spec{Kind: c.kind, Pattern: c.comment.Regex})
		}
	}
	specs = append(specs, scanner.Spec{
		Kind:    scanner.Delimiter,
		Label:   LabelDelimiter,
		Pattern: DelimiterPattern,
	})
	alternatives := make([]string, len(table.Commands))
	for i, cmd := range table.Commands {
		alternatives[i] = "(" + cmd.Regex + ")"
	}
	specs = append(specs, scanner.Spec{
		Kind:    scanner.ReservedWord,
		Label:   LabelCommand,
		Pattern: strings.Join(alternatives, "|"),
	})
	return specs, nil
}

// stringKind decides the token kind for a string rule by its quotes.
func stringKind(regex string) lidas.TokType {
	if strings.HasPrefix(regex, "'") {
		return scanner.SingleQuoteString
	}
	return scanner.DoubleQuoteString
}

// Equivalent compares two words, ignoring case if caseSensitive is false.
func Equivalent(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// FindCommand returns the command of table whose text is equivalent to word,
// or nil.
func FindCommand(table *ortho.Table, word string) *ortho.Command {
	for _, cmd := range table.Commands {
		if Equivalent(word, cmd.Text, table.CommandsCaseSensitive) {
			return cmd
		}
	}
	return nil
}
