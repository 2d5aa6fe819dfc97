package symtab

import (
	"testing"

	"github.com/npillmayer/lidas"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNewSymTab(t *testing.T) {
	symtab := NewSymbolTable(true)
	if symtab == nil || symtab.Size() != 0 {
		t.Error("no empty symbol table created")
	}
}

func TestNewSymbol(t *testing.T) {
	symtab := NewSymbolTable(true)
	sym, _ := symtab.DefineTag("new-sym")
	if sym == nil {
		t.Error("no symbol created for table")
	}
	sym.UData = 5
	if sym.UData != 5 {
		t.Errorf("UData does not work")
	}
	if symtab.DefineTag(""); symtab.Size() != 1 {
		t.Errorf("empty name should not be defined")
	}
}

func TestTwoSymbolsDistinct(t *testing.T) {
	symtab := NewSymbolTable(true)
	sym1, _ := symtab.DefineTag("new-sym1")
	sym2, _ := symtab.DefineTag("new-sym2")
	if sym1 == sym2 {
		t.Error("2 symbols with equal name")
	}
}

func TestResolveTag(t *testing.T) {
	symtab := NewSymbolTable(true)
	sym, _ := symtab.DefineTag("new-sym")
	if s := symtab.ResolveTag(sym.Name()); s != sym {
		t.Error("cannot find stored symbol in table")
	}
	if s := symtab.ResolveTag("New-Sym"); s != nil {
		t.Error("case sensitive table should not fold names")
	}
}

func TestResolveOrDefineTag(t *testing.T) {
	symtab := NewSymbolTable(true)
	sym, _ := symtab.DefineTag("new-sym")
	if _, found := symtab.ResolveOrDefineTag(sym.Name()); !found {
		t.Error("cannot find stored symbol in table")
	}
}

func TestDefineTag(t *testing.T) {
	symtab := NewSymbolTable(true)
	sym, _ := symtab.DefineTag("new-sym")
	if _, old := symtab.DefineTag("new-sym"); old != sym {
		t.Error("symbol should have been replaced")
	}
}

func TestInstallOccurrences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.program")
	defer teardown()
	//
	symtab := NewSymbolTable(false)
	tag, found := symtab.Install("Circle", "ID", lidas.Pos{Line: 1, Col: 7})
	if found || tag.First != (lidas.Pos{Line: 1, Col: 7}) {
		t.Errorf("expected Circle to be defined at (1:7), is %v", tag.First)
	}
	tag2, found := symtab.Install("CIRCLE", "ID", lidas.Pos{Line: 3, Col: 1})
	if !found || tag2 != tag {
		t.Fatalf("expected CIRCLE to resolve to Circle")
	}
	if tag.Name() != "Circle" || len(tag.Occurrences) != 2 {
		t.Errorf("expected 2 occurrences of Circle, have %v", tag.Occurrences)
	}
	if tag.First != (lidas.Pos{Line: 1, Col: 7}) || tag.Label != "ID" {
		t.Errorf("later occurrence must not redefine tag")
	}
}

func TestOrderedIteration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lidas.program")
	defer teardown()
	//
	symtab := NewSymbolTable(true)
	for _, name := range []string{"zeta", "alpha", "mu"} {
		symtab.ResolveOrDefineTag(name)
	}
	var names []string
	symtab.Each(func(name string, tag *Tag) {
		names = append(names, name)
	})
	if len(names) != 3 || names[0] != "alpha" || names[1] != "mu" || names[2] != "zeta" {
		t.Errorf("expected names in order, got %v", names)
	}
	if tags := symtab.Tags(); len(tags) != 3 || tags[2].Name() != "zeta" {
		t.Errorf("expected tags in order, got %v", tags)
	}
}
