package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/lidas/html"
	"github.com/npillmayer/lidas/ortho"
	"github.com/npillmayer/lidas/program"
	"github.com/npillmayer/lidas/report"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/lidas/scanner/rx"
	"github.com/npillmayer/lidas/script"
	"github.com/npillmayer/lidas/svg"
	"github.com/npillmayer/schuko/gconf"
	"github.com/pterm/pterm"
)

// run executes the stages of a LiDAS run and returns an exit code.
func run(opts *options) int {
	spec, code := loadSpec(opts.spec)
	if code != exitOK {
		return code
	}
	if opts.interactive {
		if err := interact(spec.Table); err != nil {
			pterm.Error.Println(err.Error())
			return exitFatal
		}
		return exitOK
	}
	return animate(opts, spec.Table)
}

// loadSpec parses a specification and writes its listings.
func loadSpec(path string) (*ortho.Result, int) {
	spec, err := ortho.ParseFile(path, ortho.WithSyntax(regexSyntax()))
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil, exitFatal
	}
	if !listing(path, report.MetaTokens, func(w io.Writer) error {
		return report.WriteMetaTokens(w, spec)
	}) {
		return nil, exitFatal
	}
	if !listing(path, report.MetaErrors, func(w io.Writer) error {
		return report.WriteMetaErrors(w, spec)
	}) {
		return nil, exitFatal
	}
	if !spec.OK() {
		pterm.Error.Printfln("%d errors in %s, see %s", spec.ErrorCount(), path,
			report.FileName(path, report.MetaErrors))
		return nil, exitSpec
	}
	pterm.Success.Printfln("meta tokens OK (%d commands, fingerprint %s)",
		len(spec.Table.Commands), spec.Table.Fingerprint())
	return spec, exitOK
}

// animate tokenizes and parses the program, then writes the HTML page.
func animate(opts *options, table *ortho.Table) int {
	drawing, err := os.ReadFile(opts.svg)
	if err != nil {
		pterm.Error.Println(err.Error())
		return exitFatal
	}
	ids, err := svg.ScrapeBytes(drawing)
	if err != nil {
		pterm.Error.Println(err.Error())
		return exitFatal
	}
	tracer().Infof("%d elements in %s", len(ids), opts.svg)
	parser := script.NewParser(ids, table.IdentifiersCaseSensitive)
	result, err := program.Tokenize(opts.program, table, parser,
		program.WithScannerOptions(scanner.WithCasePolicy(casePolicy())))
	if err != nil {
		pterm.Error.Println(err.Error())
		return exitFatal
	}
	ok := listing(opts.program, report.Tokens, func(w io.Writer) error {
		return report.WriteTokens(w, result)
	}) && listing(opts.program, report.Errors, func(w io.Writer) error {
		return report.WriteErrors(w, result, parser.Errors())
	}) && listing(opts.program, report.SymbolTable, func(w io.Writer) error {
		return report.WriteSymbols(w, result.Symbols)
	})
	if !ok {
		return exitFatal
	}
	if n := len(result.Errors) + len(parser.Errors()); n > 0 {
		pterm.Error.Printfln("%d errors in %s, see %s", n, opts.program,
			report.FileName(opts.program, report.Errors))
		return exitProgram
	}
	if err = writePage(opts.output, drawing, parser.Frames(), filepath.Base(opts.program)); err != nil {
		pterm.Error.Println(err.Error())
		return exitFatal
	}
	pterm.Success.Printfln("%d frames written to %s", len(parser.Frames()), opts.output)
	return exitOK
}

// writePage writes the HTML page for an animation to path.
func writePage(path string, drawing []byte, frames []script.Frame, title string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = html.Write(out, string(drawing), frames, title); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// regexSyntax returns the syntax of lexeme regexes, from configuration key
// 'lidas.regex.syntax' (perl or posix).
func regexSyntax() rx.Syntax {
	if strings.EqualFold(gconf.GetString("lidas.regex.syntax"), "posix") {
		return rx.POSIX
	}
	return rx.Perl
}

// casePolicy returns the case conversion for programs, from configuration
// key 'lidas.program.case' (upper or lower).
func casePolicy() scanner.CasePolicy {
	switch strings.ToLower(gconf.GetString("lidas.program.case")) {
	case "upper":
		return scanner.UpperCase
	case "lower":
		return scanner.LowerCase
	}
	return scanner.KeepCase
}

// listing writes a report file and tells the user about failures.
func listing(input, suffix string, write func(io.Writer) error) bool {
	name, err := report.WriteFile(input, suffix, write)
	if err != nil {
		pterm.Error.Printfln("cannot write %s: %v", name, err)
		return false
	}
	pterm.Info.Printfln("listing written to %s", name)
	return true
}
