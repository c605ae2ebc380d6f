package compiler

import "tinygo.org/x/go-llvm"

// PointerAnchor lets an aggregate constructor build straight into the storage
// of the local it initializes instead of a temporary.
type PointerAnchor struct {
	Ptr       llvm.Value
	Triggered bool
}

// WithAnchor runs fn with ptr as the anchor and reports whether a
// constructor claimed it. The previous anchor is restored on return.
func (c *Context) WithAnchor(ptr llvm.Value, fn func()) (triggered bool) {
	saved := c.anchor
	anchor := &PointerAnchor{Ptr: ptr}
	c.anchor = anchor
	defer func() { c.anchor = saved }()

	fn()
	return anchor.Triggered
}

// claimAnchor hands out the anchor pointer to the first constructor that
// asks. Nested constructors get nothing and build their own temporary.
func (c *Context) claimAnchor() (llvm.Value, bool) {
	if c.anchor == nil || c.anchor.Triggered {
		return llvm.Value{}, false
	}
	c.anchor.Triggered = true
	return c.anchor.Ptr, true
}

// Anchor returns the active anchor, or nil.
func (c *Context) Anchor() *PointerAnchor {
	return c.anchor
}
