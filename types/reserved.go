package types

import "sort"

// reserved maps source type keywords to their types. It is built once and
// never written afterwards.
var reserved = map[string]Type{
	"s8":       S8,
	"s16":      S16,
	"s32":      S32,
	"s64":      S64,
	"ssize":    SSize,
	"u8":       U8,
	"u16":      U16,
	"u32":      U32,
	"u64":      U64,
	"u128":     U128,
	"usize":    USize,
	"f32":      F32,
	"f64":      F64,
	"f128":     F128,
	"fx86_80":  FX86,
	"fppc_128": FPPC,
	"bool":     Bool,
	"char":     Char,
	"addr":     Addr,
	"void":     Void,
	"ptr":      OpaquePtr,
}

var reservedTypeNames = func() []string {
	names := make([]string, 0, len(reserved))
	for n := range reserved {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}()

// Lookup resolves a reserved type keyword.
func Lookup(name string) (Type, bool) {
	t, ok := reserved[name]
	return t, ok
}

// ReservedTypeNames returns a sorted copy of the reserved type keywords.
func ReservedTypeNames() []string {
	return append([]string(nil), reservedTypeNames...)
}

// IsReservedTypeName reports whether name is a built-in type keyword.
func IsReservedTypeName(name string) bool {
	_, ok := reserved[name]
	return ok
}
