/*
Package symtab implements the symbol table for identifiers of LiDAS programs.

Identifiers are entered while a program is tokenized. The first occurrence
of a name defines a tag, later occurrences are recorded with the tag. The
statement parser later classifies tags as SVG elements or as groups.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package symtab

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/lidas"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lidas.program'.
func tracer() tracing.Trace {
	return tracing.Select("lidas.program")
}

// --- Tags -------------------------------------------------------

// Tag is the symbols type to be stored into symbol tables. It may be a
// little surprising this type is not called 'Symbol', but I prefer the
// name 'Tag' because it is less confusing when dealing with grammars:
// grammars consist of symbols, too.
//
type Tag struct {
	name        string
	Kind        Kind
	Label       string      // label of the token spec which produced the name
	First       lidas.Pos   // position of the defining occurrence
	Occurrences []lidas.Pos // all occurrences, including the first one
	UData       interface{} // user data
}

// Kind classifies tags.
type Kind int8

// Tag kinds.
const (
	Unknown Kind = iota // not yet classified
	Element             // identifier of an SVG element
	Group               // group of elements, defined by the program
)

func (k Kind) String() string {
	switch k {
	case Element:
		return "element"
	case Group:
		return "group"
	}
	return "unknown"
}

// NewTag creates a new tag.
func NewTag(nm string) *Tag {
	var tag = &Tag{
		name: nm,
	}
	return tag
}

// WithKind sets the initial kind of a tag. Use as
//
//    tag := NewTag("myTag").WithKind(Group)
//
func (s *Tag) WithKind(k Kind) *Tag {
	s.Kind = k
	return s
}

// String is a debug Stringer for symbols.
func (s *Tag) String() string {
	return fmt.Sprintf("<tag '%s':%s>", s.Name(), s.Kind)
}

// Name gets the tag's name.
func (s *Tag) Name() string {
	return s.name
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
// Iteration is in order of names.
type SymbolTable struct {
	table         *treemap.Map
	caseSensitive bool
	createTag     func(string) *Tag
}

// NewSymbolTable creates an empty symbol table. If caseSensitive is false,
// names differing in case only denote the same tag. Tags keep the spelling
// of their first definition.
//
func NewSymbolTable(caseSensitive bool) *SymbolTable {
	var symtab = SymbolTable{
		table:         treemap.NewWithStringComparator(),
		caseSensitive: caseSensitive,
		createTag:     NewTag,
	}
	return &symtab
}

func (t *SymbolTable) key(tagname string) string {
	if t.caseSensitive {
		return tagname
	}
	return strings.ToLower(tagname)
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
//
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	if tag, found := t.table.Get(t.key(tagname)); found {
		return tag.(*Tag)
	}
	return nil
}

// ResolveOrDefineTag finds
// a tag in the table, inserts a new one if not found.
// Creates non-existent tags on the fly.
// Returns the tag and a flag, signalling wether the tag
// has already been present.
//
func (t *SymbolTable) ResolveOrDefineTag(tagname string) (*Tag, bool) {
	if len(tagname) == 0 {
		return nil, false
	}
	found := true
	tag := t.ResolveTag(tagname)
	if tag == nil { // if not already there, insert it
		tag, _ = t.DefineTag(tagname)
		found = false
	}
	return tag, found
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty
// Overwrites existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
//
func (t *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := t.createTag(tagname)
	old := t.InsertTag(tag)
	return tag, old
}

// InsertTag inserts a pre-created symbol.
func (t *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := t.ResolveTag(tag.name)
	t.table.Put(t.key(tag.name), tag)
	return old
}

// Install records an occurrence of an identifier at pos. The first
// occurrence of a name defines its tag. Returns the tag and a flag,
// signalling wether the tag has already been present.
func (t *SymbolTable) Install(tagname, label string, pos lidas.Pos) (*Tag, bool) {
	tag, found := t.ResolveOrDefineTag(tagname)
	if tag == nil {
		return nil, false
	}
	if !found {
		tag.First = pos
		tag.Label = label
		tracer().Debugf("new symbol %q at %s", tagname, pos)
	}
	tag.Occurrences = append(tag.Occurrences, pos)
	return tag, found
}

// Size counts the tags in a symbol table.
func (t *SymbolTable) Size() int {
	return t.table.Size()
}

// Each iterates over each tag in the table in order of names, executing a
// mapper function.
func (t *SymbolTable) Each(mapper func(string, *Tag)) {
	it := t.table.Iterator()
	for it.Next() {
		tag := it.Value().(*Tag)
		mapper(tag.name, tag)
	}
}

// Tags returns all tags, in order of names.
func (t *SymbolTable) Tags() []*Tag {
	tags := make([]*Tag, 0, t.table.Size())
	for _, v := range t.table.Values() {
		tags = append(tags, v.(*Tag))
	}
	return tags
}
