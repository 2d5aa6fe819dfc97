/*
Package ortho reads the orthography of a LiDAS language: the specification
file which defines the vocabulary of LiDAS programs.

A specification file is written in a small fixed language of its own. It is
tokenized by package scanner with a set of bootstrap token specs (see
BootstrapSpecs) and checked by a finite-state driver. Parsing results in a
Table, which holds everything package program needs to tokenize programs:
the case rules for identifiers and commands, the comment markers, the
regular expressions for literals and the commands with their labels.

	// Sections of a specification file
	Caixa
	    Identificadores Distinguem      // or Ignoram
	    Comandos Ignoram                // or Distinguem
	Comentarios
	    Linha '//'                      // any of Linha, Abre, Fecha
	    Abre '(*'  Fecha '*)'
	Lexemas
	    Identificador 'ID'  '[a-z]+'    // any of Identificador, Inteiro,
	    Inteiro 'INT' '[0-9]+'          // Decimal, String: label and regex
	Comandos
	    'show' 'tk_show';               // literal text and label
	    'hide' 'tk_hide'

Reserved words of the specification language are not case-sensitive.
Quoted meta-strings are either single- or double-quoted.

Violations of the grammar are collected as errors of type *Error. They never
stop the parse; a table is produced for every input. Result.OK tells whether
the specification may be used to tokenize programs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ortho

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lidas.ortho'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.ortho")
}
