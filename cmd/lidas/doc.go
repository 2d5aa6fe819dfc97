/*
Package main provides lidas, the command line front end for LiDAS
animations.

	lidas -d <ortografia> -p <programa> [options] <desenho.svg>

lidas reads the specification (“ortografia”) of a LiDAS language, then
tokenizes and parses a program written in that language and writes an HTML
page which animates the SVG drawing. Listings are written next to the input
files:

	<ortografia>.mtk  <ortografia>.mer
	<programa>.tok    <programa>.err    <programa>.tbl

A program is never read if its specification contains errors. With flag -i,
lidas opens a prompt after loading the specification and tokenizes lines
typed by the user.

Exit codes are 0 for success, 1 for usage errors and unreadable files, 2 for
errors in the specification and 3 for errors in the program.

Configuration is read from a NestedText file 'lidas.nt' at the standard
locations, if present. Flags override configuration values. Keys are

	lidas.max-errors     stop tokenizing after this many errors (-max)
	lidas.report.boxed   draw boxes around listing tables (-box)
	lidas.regex.syntax   perl or posix, syntax of lexeme regexes (-posix)
	lidas.program.case   upper or lower, case conversion of programs (-case)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lidas.cli'
func tracer() tracing.Trace {
	return tracing.Select("lidas.cli")
}
