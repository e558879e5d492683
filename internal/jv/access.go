package jv

import (
	"iter"
	"slices"
	"unicode/utf8"
)

// Key returns the member stored under key, inserting a Null member when the
// key is absent. A Null receiver first becomes an empty Object.
//
// The returned pointer stays valid until key is erased or v is reassigned.
func (v *Value) Key(key string) (*Value, error) {
	if v.kind == KindNull {
		*v = Value{kind: KindObject, obj: &object{}}
	}
	if v.kind != KindObject {
		return nil, typeError("key", v.kind, "object")
	}
	return v.obj.upsert(key), nil
}

// At returns the member stored under key without inserting it.
func (v Value) At(key string) (*Value, error) {
	if v.kind != KindObject {
		return nil, typeError("at", v.kind, "object")
	}
	elem, ok := v.obj.get(key)
	if !ok {
		return nil, newError(ErrKey, "at", "key %q not found", key)
	}
	return elem, nil
}

// Has reports whether v is an Object with a member named key.
func (v Value) Has(key string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj.search(key)
	return ok
}

// Index returns the element at i for writing. A Null receiver is treated as
// an empty Array; since every index of an empty Array is out of bounds, the
// receiver is left Null and ErrIndex is returned.
//
// The returned pointer is invalidated by any insertion or removal on v.
func (v *Value) Index(i int) (*Value, error) {
	if v.kind == KindNull {
		return nil, newError(ErrIndex, "index", "index %d out of range [0:0]", i)
	}
	if v.kind != KindArray {
		return nil, typeError("index", v.kind, "array")
	}
	return v.element("index", i)
}

// AtIndex returns the element at i, bounds-checked. It never vivifies.
func (v Value) AtIndex(i int) (*Value, error) {
	if v.kind != KindArray {
		return nil, typeError("at", v.kind, "array")
	}
	return v.element("at", i)
}

func (v Value) element(op string, i int) (*Value, error) {
	elems := *v.arr
	if i < 0 || i >= len(elems) {
		return nil, newError(ErrIndex, op, "index %d out of range [0:%d]", i, len(elems))
	}
	return &elems[i], nil
}

// Len returns the element count of an Array, the member count of an Object,
// the character count of a String, and 0 for Null.
func (v Value) Len() (int, error) {
	switch v.kind {
	case KindNull:
		return 0, nil
	case KindString:
		return utf8.RuneCountInString(*v.str), nil
	case KindArray:
		return len(*v.arr), nil
	case KindObject:
		return len(v.obj.members), nil
	default:
		return 0, typeError("len", v.kind, "container, string or null")
	}
}

// Empty reports whether Len is zero.
func (v Value) Empty() (bool, error) {
	n, err := v.Len()
	if err != nil {
		return false, newError(ErrType, "empty", "value is %s, want container, string or null", v.kind)
	}
	return n == 0, nil
}

// Clear empties an Array, Object or String in place; the kind is unchanged.
// Clearing Null is a no-op.
func (v *Value) Clear() error {
	switch v.kind {
	case KindNull:
	case KindString:
		*v.str = ""
	case KindArray:
		clear(*v.arr)
		*v.arr = (*v.arr)[:0]
	case KindObject:
		v.obj.members = nil
	default:
		return typeError("clear", v.kind, "container, string or null")
	}
	return nil
}

// PushBack appends a deep copy of elem to an Array. Later changes to elem
// do not reach the array, and pushing an array onto itself is safe.
func (v *Value) PushBack(elem Value) error {
	if v.kind != KindArray {
		return typeError("push_back", v.kind, "array")
	}
	*v.arr = append(*v.arr, elem.Clone())
	return nil
}

// PopBack removes and returns the last element of an Array.
func (v *Value) PopBack() (Value, error) {
	if v.kind != KindArray {
		return Value{}, typeError("pop_back", v.kind, "array")
	}
	elems := *v.arr
	if len(elems) == 0 {
		return Value{}, newError(ErrRange, "pop_back", "array is empty")
	}
	last := elems[len(elems)-1]
	elems[len(elems)-1] = Value{}
	*v.arr = elems[:len(elems)-1]
	return last, nil
}

// Insert stores a deep copy of elem under key, overwriting any existing
// member. A Null receiver first becomes an empty Object.
func (v *Value) Insert(key string, elem Value) error {
	if v.kind != KindNull && v.kind != KindObject {
		return typeError("insert", v.kind, "object")
	}
	c := elem.Clone()
	slot, err := v.Key(key)
	if err != nil {
		return err
	}
	*slot = c
	return nil
}

// EraseIndex removes the element at i from an Array.
func (v *Value) EraseIndex(i int) error {
	if v.kind != KindArray {
		return typeError("erase", v.kind, "array")
	}
	elems := *v.arr
	if i < 0 || i >= len(elems) {
		return newError(ErrIndex, "erase", "index %d out of range [0:%d]", i, len(elems))
	}
	*v.arr = slices.Delete(elems, i, i+1)
	return nil
}

// EraseKey removes key from an Object. Erasing an absent key is a no-op.
func (v *Value) EraseKey(key string) error {
	if v.kind != KindObject {
		return typeError("erase", v.kind, "object")
	}
	v.obj.remove(key)
	return nil
}

// Keys returns the member names of an Object in iteration order, or nil for
// any other kind.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.obj.members))
	for i, m := range v.obj.members {
		keys[i] = m.key
	}
	return keys
}

// Elements yields the index and element of each Array entry. Other kinds
// yield nothing.
func (v Value) Elements() iter.Seq2[int, *Value] {
	return func(yield func(int, *Value) bool) {
		if v.kind != KindArray {
			return
		}
		elems := *v.arr
		for i := range elems {
			if !yield(i, &elems[i]) {
				return
			}
		}
	}
}

// Members yields each Object member in ascending key order. Other kinds
// yield nothing.
func (v Value) Members() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if v.kind != KindObject {
			return
		}
		for _, m := range v.obj.members {
			if !yield(m.key, &m.value) {
				return
			}
		}
	}
}
