/*
Package report writes the listings of a LiDAS run.

Every listing is a text file named after the file it reports on, with a
suffix appended:

	.mtk   meta-tokens of a specification file, per-kind summary, fingerprint
	.mer   lexical and syntax errors of a specification file
	.tok   tokens of a program, per-kind summary
	.err   lexical and statement errors of a program
	.tbl   symbol table of a program

Tables are rendered with pterm. Configuration key 'lidas.report.boxed'
draws a box around them.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/ortho"
	"github.com/npillmayer/lidas/program"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/lidas/script"
	"github.com/npillmayer/lidas/symtab"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lidas.report'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.report")
}

// Suffixes of listing files.
const (
	MetaTokens  = ".mtk"
	MetaErrors  = ".mer"
	Tokens      = ".tok"
	Errors      = ".err"
	SymbolTable = ".tbl"
)

// FileName returns the name of the listing for input.
func FileName(input, suffix string) string {
	return input + suffix
}

// WriteFile creates the listing for input and lets write fill it.
// It returns the name of the listing.
func WriteFile(input, suffix string, write func(io.Writer) error) (string, error) {
	name := FileName(input, suffix)
	f, err := os.Create(name)
	if err != nil {
		return name, err
	}
	if err = write(f); err != nil {
		f.Close()
		return name, err
	}
	tracer().Debugf("wrote listing %s", name)
	return name, f.Close()
}

// --- Specification files ---------------------------------------------------

// WriteMetaTokens lists the meta-tokens of a specification.
func WriteMetaTokens(w io.Writer, result *ortho.Result) error {
	if err := tokenListing(w, result.Tokens); err != nil {
		return err
	}
	status := "meta tokens OK"
	if !result.OK() {
		status = fmt.Sprintf("%d errors in specification", result.ErrorCount())
	}
	_, err := fmt.Fprintf(w, "\n%s\nfingerprint %s\n", status, result.Table.Fingerprint())
	return err
}

// WriteMetaErrors lists the lexical and syntax errors of a specification.
func WriteMetaErrors(w io.Writer, result *ortho.Result) error {
	data := pterm.TableData{{"line", "col", "kind", "message"}}
	for _, e := range result.LexErrors {
		data = append(data, lexErrorRow(e))
	}
	for _, e := range result.SyntaxErrors {
		data = append(data, []string{
			strconv.Itoa(e.Pos.Line), strconv.Itoa(e.Pos.Col), ortho.CodeString(e.Code), e.Message,
		})
	}
	if err := table(w, data); err != nil {
		return err
	}
	return contexts(w, result.LexErrors)
}

// --- Programs ---------------------------------------------------------------

// WriteTokens lists the tokens of a program.
func WriteTokens(w io.Writer, result *program.Result) error {
	tokens := make([]*scanner.Token, 0, len(result.Tokens))
	for _, t := range result.Tokens {
		tokens = append(tokens, t.Token)
	}
	if err := tokenListing(w, tokens); err != nil {
		return err
	}
	if result.Truncated {
		_, err := fmt.Fprintf(w, "\ntokenizing stopped after %d errors\n", len(result.Errors))
		return err
	}
	return nil
}

// WriteErrors lists the lexical errors of a program, followed by the errors
// of its statements.
func WriteErrors(w io.Writer, result *program.Result, stmtErrors []*script.Error) error {
	data := pterm.TableData{{"line", "col", "kind", "message"}}
	for _, e := range result.Errors {
		data = append(data, lexErrorRow(e))
	}
	for _, e := range stmtErrors {
		data = append(data, []string{
			strconv.Itoa(e.Pos.Line), strconv.Itoa(e.Pos.Col), "statement", e.Message,
		})
	}
	if err := table(w, data); err != nil {
		return err
	}
	return contexts(w, result.Errors)
}

// WriteSymbols lists a symbol table in order of names.
func WriteSymbols(w io.Writer, symbols *symtab.SymbolTable) error {
	data := pterm.TableData{{"name", "kind", "label", "first", "occurrences"}}
	symbols.Each(func(name string, tag *symtab.Tag) {
		data = append(data, []string{
			name, tag.Kind.String(), tag.Label, pos(tag.First), strconv.Itoa(len(tag.Occurrences)),
		})
	})
	return table(w, data)
}

// --- Helpers ----------------------------------------------------------------

func tokenListing(w io.Writer, tokens []*scanner.Token) error {
	data := pterm.TableData{{"line", "col", "kind", "label", "lexeme", "value"}}
	summary := treemap.NewWith(utils.IntComparator)
	for _, t := range tokens {
		data = append(data, []string{
			strconv.Itoa(t.Pos().Line), strconv.Itoa(t.Pos().Col),
			scanner.KindString(t.Kind()), t.Label(), t.Lexeme(), t.ValueString(),
		})
		n, found := summary.Get(int(t.Kind()))
		if !found {
			n = 0
		}
		summary.Put(int(t.Kind()), n.(int)+1)
	}
	if err := table(w, data); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	counts := pterm.TableData{{"kind", "count"}}
	it := summary.Iterator()
	for it.Next() {
		counts = append(counts, []string{
			scanner.KindString(lidas.TokType(it.Key().(int))), strconv.Itoa(it.Value().(int)),
		})
	}
	counts = append(counts, []string{"total", strconv.Itoa(len(tokens))})
	return table(w, counts)
}

func lexErrorRow(e *scanner.Error) []string {
	return []string{strconv.Itoa(e.Line), strconv.Itoa(e.Col), e.Code.String(), e.Message}
}

// contexts prints the offending lines of lexical errors.
func contexts(w io.Writer, errs []*scanner.Error) error {
	for _, e := range errs {
		if e.Context == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", e.Error(), e.Context); err != nil {
			return err
		}
	}
	return nil
}

func pos(p lidas.Pos) string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// table renders data with a header row, without colors.
func table(w io.Writer, data pterm.TableData) error {
	s, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed(gconf.GetBool("lidas.report.boxed")).
		WithData(data).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, pterm.RemoveColorFromString(s))
	return err
}
