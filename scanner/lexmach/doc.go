/*
Package lexmach tokenizes with a DFA built by lexmachine
(https://github.com/timtadh/lexmachine).

Package scanner interprets a list of regular expressions for every token.
LiDAS languages are only known at run time, so this is what programs and
ortografia files are scanned with. Inputs with a vocabulary fixed at compile
time, like the SVG documents a LiDAS program animates, are better served by
a DFA built once up front.

Patterns are given in lexmachine syntax, each with an action: Skip drops the
match, Emit turns it into a token.

	tokens := map[string]lidas.TokType{"ID": idAttr}
	dfa, err := lexmach.Compile(func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`id="[^"]*"`), lexmach.Emit("ID", idAttr))
		lexer.Add([]byte(`.|\n`), lexmach.Skip)
	}, nil, nil, tokens)

The resulting scanners implement scanner.Tokenizer:

	sc, err := dfa.Scan(data)
	for token := sc.NextToken(); token.TokType() != scanner.EndOfFile; token = sc.NextToken() {
		…
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
