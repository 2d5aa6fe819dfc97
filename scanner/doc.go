/*
Package scanner implements a regex-driven tokenizer whose vocabulary is
configured at run time.

A scanner job is started for one input, together with an ordered list of
token specifications. Each specification pairs a token category with a
regular expression. The job hands out one token at a time: it skips blanks,
skips over comments, tries every specification at the current position and
selects the winner by the longest token. Ties are resolved in favour of
reserved words, then in favour of the specification registered first.

	specs := []scanner.Spec{
		{Kind: scanner.ReservedWord, Pattern: `if`},
		{Kind: scanner.Identifier, Pattern: `[A-Za-z]+`},
		{Kind: scanner.Delimiter, Pattern: `[;]`},
	}
	job, err := scanner.StartJob("prog.txt", specs)
	if err != nil {
		// do error handling
	}
	defer job.Close()
	for {
		token, err := job.Next()
		…
		if token.Kind() == scanner.EndOfFile {
			break
		}
	}

Lexical errors do not stop a job. They are collected by the job, passed to
an error handler and returned from Next, and scanning continues with the
next call.

Jobs are independent of each other and any number of them may be open at the
same time. A single job is not safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lidas.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.scanner")
}
