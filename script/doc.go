/*
Package script parses the statements of LiDAS programs into animation
frames.

A Parser consumes the tokens produced by package program. Commands are
recognized by the labels given to them in the specification file, so a
language may name its commands freely:

	role      labels (case does not matter, prefix "tk_" is optional)
	show      mostre, show
	hide      apague, hide
	define    defina, define
	after     apos, after
	during    durante, during

Statements are

	instrucao := (SHOW | HIDE) alvos [ AFTER inteiro ] [ DURING inteiro ] ';'
	           | DEFINE ident '=' alvos ';'
	alvos     := ident { ',' ident }

A target is either the id of an SVG element or a group defined earlier.
Showing or hiding a group produces one frame per member.

Errors do not stop parsing. The parser skips to the next ';' and continues
with the next statement.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package script

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lidas.script'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.script")
}
