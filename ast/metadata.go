package ast

type LocalMetadata struct {
	Undefined bool
	Mutable   bool
	Volatile  bool
}

type StaticMetadata struct {
	Global        bool
	Mutable       bool
	Uninitialized bool
	ThreadLocal   bool
	Volatile      bool
	External      bool
}

type ConstantMetadata struct {
	Global      bool
	ThreadLocal bool
	Volatile    bool
}

// RefKind says what a reference resolved to at parse time.
type RefKind int

const (
	RefNone RefKind = iota
	RefConstant
	RefStatic
)

type ReferenceMetadata struct {
	Allocated bool
	Mutable   bool
	Kind      RefKind
}

func (m ReferenceMetadata) IsConstant() bool { return m.Kind == RefConstant }
func (m ReferenceMetadata) IsStatic() bool   { return m.Kind == RefStatic }

type CastMetadata struct {
	Constant  bool
	Allocated bool
}

type IndexMetadata struct {
	Mutable bool
}

type PropertyMetadata struct {
	Allocated bool
}

type FunctionParameterMetadata struct {
	Mutable bool
}
