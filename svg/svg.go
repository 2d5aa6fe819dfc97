/*
Package svg finds the identifiers of elements in SVG documents.

The statements of a LiDAS program refer to SVG elements by their id
attribute. Scrape lists these ids in document order. The document is
tokenized by a DFA compiled with lexmachine (see package scanner/lexmach);
no XML parsing takes place.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package svg

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/lidas/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
)

// tracer traces with key 'lidas.svg'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.svg")
}

// Token types of the SVG lexer.
const (
	IDAttribute lidas.TokType = 100 + iota
)

var tokenIds = map[string]lidas.TokType{
	"ID": IDAttribute,
}

const blanks = `( |\t|\r|\n)*`

var svgDFA struct {
	once sync.Once
	dfa  *lexmach.DFA
	err  error
}

// lexer returns the SVG lexer, compiling its DFA on first use.
func lexer() (*lexmach.DFA, error) {
	svgDFA.once.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`[iI][dD]`+blanks+`=`+blanks+`\"[^"]*\"`), lexmach.Emit("ID", IDAttribute))
			lexer.Add([]byte(`[iI][dD]`+blanks+`=`+blanks+`'[^']*'`), lexmach.Emit("ID", IDAttribute))
			lexer.Add([]byte(`([a-z]|[A-Z]|_|:)([a-z]|[A-Z]|[0-9]|_|:|\.|-)*`), lexmach.Skip)
			lexer.Add([]byte(`\"[^"]*\"`), lexmach.Skip)
			lexer.Add([]byte(`'[^']*'`), lexmach.Skip)
			lexer.Add([]byte(`[^a-zA-Z_:"']`), lexmach.Skip)
		}
		svgDFA.dfa, svgDFA.err = lexmach.Compile(init, nil, nil, tokenIds)
	})
	return svgDFA.dfa, svgDFA.err
}

// Scrape returns the ids of the elements of the SVG document at path, in
// document order. Duplicate ids are listed once.
func Scrape(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read SVG: %w", err)
	}
	return ScrapeBytes(data)
}

// ScrapeBytes returns the ids of the elements of an SVG document, in
// document order. Duplicate ids are listed once.
func ScrapeBytes(data []byte) ([]string, error) {
	dfa, err := lexer()
	if err != nil {
		return nil, err
	}
	sc, err := dfa.Scan(data)
	if err != nil {
		return nil, err
	}
	sc.SetErrorHandler(func(e error) {
		tracer().Infof("SVG: skipping unexpected input: %v", e)
	})
	var ids []string
	seen := make(map[string]bool)
	for token := sc.NextToken(); token.TokType() != scanner.EndOfFile; token = sc.NextToken() {
		id := attributeValue(token.Lexeme())
		if id == "" {
			continue
		}
		if seen[id] {
			tracer().Infof("SVG: duplicate id %q at %s", id, token.Pos())
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	tracer().Debugf("SVG: found %d ids", len(ids))
	return ids, nil
}

// attributeValue extracts the value from `id = "value"`.
func attributeValue(attr string) string {
	eq := strings.IndexByte(attr, '=')
	if eq < 0 {
		return ""
	}
	v := strings.TrimSpace(attr[eq+1:])
	if len(v) < 2 {
		return ""
	}
	return strings.TrimSpace(v[1 : len(v)-1])
}
