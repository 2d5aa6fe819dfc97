package ortho

import (
	"github.com/npillmayer/lidas/scanner"
)

// Reserved words of the specification language.
var reservedWords = []string{
	"abre", "caixa", "comandos", "comentarios", "decimal", "distinguem", "fecha",
	"identificador", "identificadores", "ignoram", "inteiro", "lexemas", "linha", "string",
}

// labelWord is the label of bootstrap tokens which look like words but are
// not reserved.
const labelWord = "palavra"

// BootstrapSpecs returns the token specs for tokenizing specification files.
// Reserved word tokens are labelled with the lower-case reserved word.
func BootstrapSpecs() []scanner.Spec {
	specs := make([]scanner.Spec, 0, len(reservedWords)+8)
	for _, w := range reservedWords {
		specs = append(specs, scanner.Spec{
			Kind:    scanner.ReservedWord,
			Label:   w,
			Pattern: ReservedRegex(w, false),
		})
	}
	return append(specs,
		scanner.Spec{Kind: scanner.Identifier, Label: labelWord, Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		scanner.Spec{Kind: scanner.SingleQuoteString, Label: "meta'", Pattern: `'[^'\n]*'`},
		scanner.Spec{Kind: scanner.DoubleQuoteString, Label: `meta"`, Pattern: `"[^"\n]*"`},
		scanner.Spec{Kind: scanner.Delimiter, Label: ";", Pattern: `;`},
		scanner.Spec{Kind: scanner.LineComment, Pattern: `//`},
		scanner.Spec{Kind: scanner.OpenComment, Pattern: `\(#`},
		scanner.Spec{Kind: scanner.CloseComment, Pattern: `#\)`},
	)
}
