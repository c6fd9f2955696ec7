package runtime

// Holder is a reference-carrying wrapper over a runtime value. Every
// slot that can contain a value (environment entries, operator results,
// method arguments) passes holders around, never bare objects.
//
// The source discipline distinguishes owning holders (contribute to the
// value's lifetime) from sharing holders (observe a value kept alive
// elsewhere). Under Go's garbage collector both keep the value alive for
// exactly as long as they are reachable, so the two constructors build
// identical holders; Share remains as the explicit marker for values
// whose lifetime is held elsewhere: the receiver passed as self, a
// freshly constructed instance handed back from a new expression, and a
// constant node's value, which the tree owns.
type Holder struct {
	data Object
}

// Own wraps a value the holder is responsible for.
func Own(obj Object) Holder {
	return Holder{data: obj}
}

// Share wraps a value whose lifetime is guaranteed elsewhere.
func Share(obj Object) Holder {
	return Holder{data: obj}
}

// None is the empty holder representing absence.
func None() Holder {
	return Holder{}
}

// Get returns the held object, or nil for the empty holder.
func (h Holder) Get() Object {
	return h.data
}

func (h Holder) IsEmpty() bool {
	return h.data == nil
}

// Same reports pointer identity of the held objects. This is distinct
// from language-level equality: two empty holders are Same, two holders
// over different Number objects with equal payloads are not.
func (h Holder) Same(other Holder) bool {
	return h.data == other.data
}

// As yields a typed view of the held value, or false when the holder is
// empty or holds a different variant.
func As[T Object](h Holder) (T, bool) {
	v, ok := h.data.(T)
	return v, ok
}
