package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// Exit codes
const (
	exitOK = iota
	exitFatal
	exitSpec
	exitProgram
)

// tracers configured from flag -trace
var tracerKeys = []string{
	"lidas.cli", "lidas.scanner", "lidas.ortho", "lidas.program",
	"lidas.script", "lidas.svg", "lidas.html", "lidas.report",
}

var errHelp = errors.New("help requested")

type options struct {
	spec        string // -d
	program     string // -p
	svg         string // argument
	output      string // -o
	traceLevel  string
	maxErrors   int
	boxed       bool
	posix       bool   // lexeme regexes are POSIX
	letterCase  string // case conversion of programs: upper, lower or empty
	interactive bool
}

// main() starts lidas. See the package documentation for flags and exit codes.
func main() {
	initDisplay()
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err == errHelp {
		os.Exit(exitOK)
	} else if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitFatal)
	}
	if err = configure(opts); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitFatal)
	}
	code := run(opts)
	trace2go.Teardown()
	os.Exit(code)
}

// parseArgs reads the command line. Usage is written to w for -a, -u and
// for erroneous command lines.
func parseArgs(args []string, w io.Writer) (*options, error) {
	opts := &options{}
	var help, usage bool
	fs := flag.NewFlagSet("lidas", flag.ContinueOnError)
	fs.SetOutput(w)
	fs.StringVar(&opts.spec, "d", "", "specification (ortografia) of the language")
	fs.StringVar(&opts.program, "p", "", "program to animate the drawing")
	fs.StringVar(&opts.output, "o", "", "HTML output file (default <programa>.html)")
	fs.StringVar(&opts.traceLevel, "trace", "Error", "Trace level [Debug|Info|Error]")
	fs.IntVar(&opts.maxErrors, "max", 0, "stop tokenizing after this many errors (0: never)")
	fs.BoolVar(&opts.boxed, "box", false, "draw boxes around listing tables")
	fs.BoolVar(&opts.posix, "posix", false, "lexeme regexes are POSIX extended regular expressions")
	fs.StringVar(&opts.letterCase, "case", "", "convert programs to [upper|lower] case before scanning")
	fs.BoolVar(&opts.interactive, "i", false, "prompt for input after loading the specification")
	fs.BoolVar(&help, "a", false, "help")
	fs.BoolVar(&help, "ajuda", false, "help")
	fs.BoolVar(&usage, "u", false, "usage")
	fs.BoolVar(&usage, "uso", false, "usage")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: lidas -d <ortografia> -p <programa> [options] <desenho.svg>")
		fmt.Fprintln(fs.Output(), "       lidas -d <ortografia> -i")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, errHelp
		}
		return nil, err
	}
	if usage {
		fs.Usage()
		return nil, errHelp
	}
	if help {
		fs.Usage()
		fmt.Fprintln(fs.Output(), "\noptions:")
		fs.PrintDefaults()
		return nil, errHelp
	}
	if opts.letterCase != "" && opts.letterCase != "upper" && opts.letterCase != "lower" {
		fs.Usage()
		return nil, fmt.Errorf("invalid case conversion %q, expected upper or lower", opts.letterCase)
	}
	if opts.spec == "" {
		fs.Usage()
		return nil, errors.New("no specification given (-d)")
	}
	if !opts.interactive {
		if opts.program == "" || fs.NArg() != 1 {
			fs.Usage()
			return nil, errors.New("need a program (-p) and an SVG drawing")
		}
		opts.svg = fs.Arg(0)
	}
	if opts.output == "" && opts.program != "" {
		opts.output = opts.program + ".html"
	}
	return opts, nil
}

// configure sets up the global configuration and the tracers. Flags
// override values from a configuration file.
func configure(opts *options) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := koanfadapter.New(nil, "lidas", []string{".nt"})
	gconf.Initialize(conf)
	if opts.maxErrors > 0 {
		conf.Set("lidas.max-errors", opts.maxErrors)
	}
	if opts.boxed {
		conf.Set("lidas.report.boxed", true)
	}
	if opts.posix {
		conf.Set("lidas.regex.syntax", "posix")
	}
	if opts.letterCase != "" {
		conf.Set("lidas.program.case", opts.letterCase)
	}
	conf.Set("tracelevel.root", opts.traceLevel)
	for _, key := range tracerKeys {
		conf.Set("tracelevel."+key, opts.traceLevel)
	}
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("trace level is %s", opts.traceLevel)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Erro",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
