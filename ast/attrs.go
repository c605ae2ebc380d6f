package ast

import "github.com/thrush-lang/thrushc/token"

type AttrKind int

const (
	AttrHeap AttrKind = iota
	AttrPublic
	AttrExtern
	AttrIgnore
	AttrHot
	AttrNoInline
	AttrInlineHint
	AttrAlwaysInline
	AttrConvention
	AttrAsmSideEffects
	AttrAsmAlignStack
	AttrAsmThrow
	AttrAsmSyntax
)

// Attribute is one parsed `@name` or `@name("value")`.
type Attribute struct {
	Kind  AttrKind
	Value string
	Sp    token.Span
}

type Attributes []Attribute

func (a Attributes) find(k AttrKind) (Attribute, bool) {
	for _, attr := range a {
		if attr.Kind == k {
			return attr, true
		}
	}
	return Attribute{}, false
}

func (a Attributes) Has(k AttrKind) bool {
	_, ok := a.find(k)
	return ok
}

func (a Attributes) HasHeap() bool   { return a.Has(AttrHeap) }
func (a Attributes) HasPublic() bool { return a.Has(AttrPublic) }
func (a Attributes) HasExtern() bool { return a.Has(AttrExtern) }
func (a Attributes) HasIgnore() bool { return a.Has(AttrIgnore) }

// ExternName is the symbol name given to @extern, if any.
func (a Attributes) ExternName() (string, bool) {
	attr, ok := a.find(AttrExtern)
	if !ok || attr.Value == "" {
		return "", false
	}
	return attr.Value, true
}

// Convention returns the calling convention name from @convention.
func (a Attributes) Convention() (string, bool) {
	attr, ok := a.find(AttrConvention)
	return attr.Value, ok
}

// AsmSyntax returns the assembler dialect, "Intel" or "AT&T".
func (a Attributes) AsmSyntax() string {
	if attr, ok := a.find(AttrAsmSyntax); ok {
		return attr.Value
	}
	return "AT&T"
}
