package jv

// CursorKind tells which container a Cursor walks.
type CursorKind uint8

const (
	CursorUnbound CursorKind = iota
	CursorArray
	CursorObject
)

func (k CursorKind) String() string {
	switch k {
	case CursorArray:
		return "array cursor"
	case CursorObject:
		return "object cursor"
	default:
		return "unbound cursor"
	}
}

// Cursor is a position inside an Array (sequence order) or an Object
// (ascending key order). The zero Cursor is unbound.
//
// Cursors are plain values: copying one gives an independent position.
// Any insertion or removal on the underlying container invalidates every
// outstanding cursor into it; this is not detected.
type Cursor struct {
	kind CursorKind
	arr  *[]Value
	obj  *object
	pos  int
}

// Begin returns a cursor at the first element of an Array or Object.
func (v Value) Begin() (Cursor, error) {
	return v.cursorAt("begin", false)
}

// End returns a cursor one past the last element of an Array or Object.
func (v Value) End() (Cursor, error) {
	return v.cursorAt("end", true)
}

func (v Value) cursorAt(op string, end bool) (Cursor, error) {
	var c Cursor
	switch v.kind {
	case KindArray:
		c = Cursor{kind: CursorArray, arr: v.arr}
	case KindObject:
		c = Cursor{kind: CursorObject, obj: v.obj}
	default:
		return Cursor{}, typeError(op, v.kind, "array or object")
	}
	if end {
		c.pos = c.len()
	}
	return c, nil
}

func (c Cursor) Kind() CursorKind { return c.kind }
func (c Cursor) IsArray() bool { return c.kind == CursorArray }
func (c Cursor) IsObject() bool { return c.kind == CursorObject }
func (c Cursor) IsUnbound() bool { return c.kind == CursorUnbound }

func (c Cursor) len() int {
	switch c.kind {
	case CursorArray:
		return len(*c.arr)
	case CursorObject:
		return len(c.obj.members)
	default:
		return 0
	}
}

func (c Cursor) unsupported(op string) *Error {
	return newError(ErrType, op, "not supported by %s", c.kind)
}

func (c Cursor) outOfRange(op string, pos int) *Error {
	return newError(ErrIndex, op, "cursor position %d out of range [0:%d]", pos, c.len())
}

// Value dereferences the cursor: the element of an Array cursor, the member
// value of an Object cursor.
func (c Cursor) Value() (*Value, error) {
	if c.kind == CursorUnbound {
		return nil, c.unsupported("deref")
	}
	if c.pos < 0 || c.pos >= c.len() {
		return nil, c.outOfRange("deref", c.pos)
	}
	if c.kind == CursorArray {
		return &(*c.arr)[c.pos], nil
	}
	return &c.obj.members[c.pos].value, nil
}

// Key returns the member name under an Object cursor.
func (c Cursor) Key() (string, error) {
	if c.kind != CursorObject {
		return "", c.unsupported("key")
	}
	if c.pos < 0 || c.pos >= c.len() {
		return "", c.outOfRange("key", c.pos)
	}
	return c.obj.members[c.pos].key, nil
}

// Next advances one position. Moving past End fails with ErrIndex.
func (c *Cursor) Next() error {
	if c.kind == CursorUnbound {
		return c.unsupported("next")
	}
	if c.pos >= c.len() {
		return c.outOfRange("next", c.pos+1)
	}
	c.pos++
	return nil
}

// Prev retreats one position. Moving before Begin fails with ErrIndex.
func (c *Cursor) Prev() error {
	if c.kind == CursorUnbound {
		return c.unsupported("prev")
	}
	if c.pos <= 0 {
		return c.outOfRange("prev", c.pos-1)
	}
	c.pos--
	return nil
}

// Advance moves an Array cursor by n positions (negative n moves back).
func (c *Cursor) Advance(n int) error {
	if c.kind != CursorArray {
		return c.unsupported("advance")
	}
	pos := c.pos + n
	if pos < 0 || pos > c.len() {
		return c.outOfRange("advance", pos)
	}
	c.pos = pos
	return nil
}

// Offset returns a copy of an Array cursor moved by n positions.
func (c Cursor) Offset(n int) (Cursor, error) {
	out := c
	if err := out.Advance(n); err != nil {
		return Cursor{}, err
	}
	return out, nil
}

// Elem returns the element n positions from an Array cursor.
func (c Cursor) Elem(n int) (*Value, error) {
	if c.kind != CursorArray {
		return nil, c.unsupported("elem")
	}
	pos := c.pos + n
	if pos < 0 || pos >= c.len() {
		return nil, c.outOfRange("elem", pos)
	}
	return &(*c.arr)[pos], nil
}

// Distance returns c minus other for two cursors over the same Array.
func (c Cursor) Distance(other Cursor) (int, error) {
	if c.kind != CursorArray || other.kind != CursorArray {
		return 0, newError(ErrType, "distance", "not supported between %s and %s", c.kind, other.kind)
	}
	if c.arr != other.arr {
		return 0, newError(ErrType, "distance", "cursors walk different arrays")
	}
	return c.pos - other.pos, nil
}

// Equal compares two cursors of the same kind. Cursors over different
// containers are never equal. Mixing kinds, or comparing unbound cursors,
// fails with ErrType.
func (c Cursor) Equal(other Cursor) (bool, error) {
	if c.kind != other.kind || c.kind == CursorUnbound {
		return false, newError(ErrType, "equal", "cannot compare %s with %s", c.kind, other.kind)
	}
	if c.kind == CursorArray {
		return c.arr == other.arr && c.pos == other.pos, nil
	}
	return c.obj == other.obj && c.pos == other.pos, nil
}

// Less orders two cursors over the same Array.
func (c Cursor) Less(other Cursor) (bool, error) {
	d, err := c.Distance(other)
	if err != nil {
		return false, err
	}
	return d < 0, nil
}
