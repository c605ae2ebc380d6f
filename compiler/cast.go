package compiler

import (
	"fmt"

	"github.com/thrush-lang/thrushc/token"
	"github.com/thrush-lang/thrushc/types"
	"tinygo.org/x/go-llvm"
)

// convert lowers a value of type from to type to. Legality was settled by
// the checker, so an unsupported pair is a backend bug.
func (c *Context) convert(v llvm.Value, from, to types.Type, span token.Span) llvm.Value {
	from, to = constless(from), constless(to)
	if types.Equal(from, to) {
		return v
	}
	target := c.LLVMType(to)

	switch {
	case isIntLike(from) && isIntLike(to):
		return c.intCast(v, from, to, target)

	case isIntLike(from) && types.IsFloat(to):
		if types.IsSigned(from) {
			return c.Builder.CreateSIToFP(v, target, "")
		}
		return c.Builder.CreateUIToFP(v, target, "")

	case types.IsFloat(from) && isIntLike(to):
		if types.IsSigned(to) {
			return c.Builder.CreateFPToSI(v, target, "")
		}
		return c.Builder.CreateFPToUI(v, target, "")

	case types.IsFloat(from) && types.IsFloat(to):
		fw, tw := types.BitWidth(from), types.BitWidth(to)
		switch {
		case fw < tw:
			return c.Builder.CreateFPExt(v, target, "")
		case fw > tw:
			return c.Builder.CreateFPTrunc(v, target, "")
		}
		return v

	case types.IsPtrLike(from) && isIntLike(to):
		return c.Builder.CreatePtrToInt(v, target, "")

	case isIntLike(from) && types.IsPtrLike(to):
		return c.Builder.CreateIntToPtr(v, target, "")

	case types.IsPtrLike(from) && types.IsPtrLike(to):
		// opaque pointers all share one LLVM type
		return v

	case isAggregate(from) && types.IsPtrLike(to):
		// casting a value held by address hands out that address
		if v.Type().TypeKind() == llvm.PointerTypeKind {
			return v
		}
	}

	c.abort(fmt.Sprintf("Unsupported cast from '%s' to '%s'.", from, to), span, 1)
	return llvm.Value{}
}

func isIntLike(t types.Type) bool {
	return types.IsInteger(t) || types.IsBool(t)
}

// intCast extends by the signedness of the source or truncates.
func (c *Context) intCast(v llvm.Value, from, to types.Type, target llvm.Type) llvm.Value {
	fw, tw := types.BitWidth(from), types.BitWidth(to)
	switch {
	case fw < tw:
		if types.IsSigned(from) {
			return c.Builder.CreateSExt(v, target, "")
		}
		return c.Builder.CreateZExt(v, target, "")
	case fw > tw:
		return c.Builder.CreateTrunc(v, target, "")
	}
	return v
}
