/*
Package lidas is a front end for LiDAS, a small language for animating
SVG drawings.

LiDAS is peculiar in that its vocabulary is not fixed: reserved words,
comment delimiters and the lexical rules for identifiers, numbers and strings
are read from an “ortografia” file at run time. The ortografia file is
tokenized by the very same regex-driven scanner which is afterwards
re-configured with the discovered vocabulary to tokenize the actual program.
Package structure is as follows:

■ scanner: Package scanner implements the job-based, regex-driven tokenizer.
Sub-package rx wraps the regular expression engine, sub-package lexmach adapts
lexmachine for DFA-based scanning.

■ ortho: Package ortho reads ortografia files and produces a table of
lexical rules.

■ program: Package program tokenizes LiDAS programs with a discovered table.

■ script, svg, html, report, symtab: statement parsing, SVG identifier
scraping, HTML generation, report files and the symbol table.

■ cmd/lidas: the command line tool, which ties all of the above together.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lidas
