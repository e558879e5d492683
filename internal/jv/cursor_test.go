package jv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorWalksArray(t *testing.T) {
	v := ArrayOf(Int(1), Int(2), Int(3))
	it, err := v.Begin()
	require.NoError(t, err)
	end, err := v.End()
	require.NoError(t, err)

	var got []int64
	for {
		done, err := it.Equal(end)
		require.NoError(t, err)
		if done {
			break
		}
		e, err := it.Value()
		require.NoError(t, err)
		n, err := e.Int64()
		require.NoError(t, err)
		got = append(got, n)
		require.NoError(t, it.Next())
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
	assert.True(t, it.IsArray())
}

func TestCursorWalksObjectInKeyOrder(t *testing.T) {
	v := ObjectOf(O("b", Int(2)), O("a", Int(1)))
	it, err := v.Begin()
	require.NoError(t, err)

	key, err := it.Key()
	require.NoError(t, err)
	assert.Equal(t, "a", key)

	require.NoError(t, it.Next())
	key, err = it.Key()
	require.NoError(t, err)
	assert.Equal(t, "b", key)

	e, err := it.Value()
	require.NoError(t, err)
	assert.True(t, e.Equal(Int(2)))

	require.NoError(t, it.Next())
	end, err := v.End()
	require.NoError(t, err)
	eq, err := it.Equal(end)
	require.NoError(t, err)
	assert.True(t, eq)
	assert.Equal(t, CursorObject, it.Kind())
}

func TestCursorWritesThrough(t *testing.T) {
	v := ArrayOf(Int(1))
	it, err := v.Begin()
	require.NoError(t, err)

	e, err := it.Value()
	require.NoError(t, err)
	*e = Str("x")

	assert.True(t, v.Equal(ArrayOf(Str("x"))))
}

func TestCursorOnScalarFails(t *testing.T) {
	_, err := Int(1).Begin()
	assert.True(t, IsTypeError(err))
	_, err = Null().End()
	assert.True(t, IsTypeError(err))
}

func TestCursorBounds(t *testing.T) {
	v := ArrayOf(Int(1))
	it, err := v.Begin()
	require.NoError(t, err)

	assert.True(t, IsIndexError(it.Prev()))

	require.NoError(t, it.Next())
	_, err = it.Value()
	assert.True(t, IsIndexError(err), "End does not dereference")
	assert.True(t, IsIndexError(it.Next()))

	require.NoError(t, it.Prev())
	_, err = it.Value()
	require.NoError(t, err)
}

func TestCursorRandomAccess(t *testing.T) {
	v := ArrayOf(Int(10), Int(20), Int(30), Int(40))
	begin, err := v.Begin()
	require.NoError(t, err)
	end, err := v.End()
	require.NoError(t, err)

	d, err := end.Distance(begin)
	require.NoError(t, err)
	assert.Equal(t, 4, d)

	third, err := begin.Offset(2)
	require.NoError(t, err)
	e, err := third.Value()
	require.NoError(t, err)
	assert.True(t, e.Equal(Int(30)))

	e, err = third.Elem(-1)
	require.NoError(t, err)
	assert.True(t, e.Equal(Int(20)))

	_, err = third.Elem(2)
	assert.True(t, IsIndexError(err))

	less, err := begin.Less(third)
	require.NoError(t, err)
	assert.True(t, less)

	it := begin
	require.NoError(t, it.Advance(4))
	eq, err := it.Equal(end)
	require.NoError(t, err)
	assert.True(t, eq)

	assert.True(t, IsIndexError(it.Advance(1)))
	_, err = begin.Offset(-1)
	assert.True(t, IsIndexError(err))
}

func TestCursorRandomAccessNeedsArray(t *testing.T) {
	v := ObjectOf(O("a", Int(1)))
	it, err := v.Begin()
	require.NoError(t, err)

	assert.True(t, IsTypeError(it.Advance(1)))
	_, err = it.Elem(0)
	assert.True(t, IsTypeError(err))
	_, err = it.Distance(it)
	assert.True(t, IsTypeError(err))
	_, err = it.Less(it)
	assert.True(t, IsTypeError(err))
}

func TestCursorComparison(t *testing.T) {
	a := ArrayOf(Int(1))
	b := ArrayOf(Int(1))
	o := ObjectOf()

	ab, err := a.Begin()
	require.NoError(t, err)
	bb, err := b.Begin()
	require.NoError(t, err)
	ob, err := o.Begin()
	require.NoError(t, err)

	eq, err := ab.Equal(bb)
	require.NoError(t, err)
	assert.False(t, eq, "cursors over different arrays are never equal")

	_, err = ab.Distance(bb)
	assert.True(t, IsTypeError(err))

	_, err = ab.Equal(ob)
	assert.True(t, IsTypeError(err))

	var unbound Cursor
	assert.True(t, unbound.IsUnbound())
	_, err = unbound.Equal(Cursor{})
	assert.True(t, IsTypeError(err))
	_, err = unbound.Value()
	assert.True(t, IsTypeError(err))
	assert.True(t, IsTypeError(unbound.Next()))
	_, err = ab.Key()
	assert.True(t, IsTypeError(err))
}

func TestCursorKindString(t *testing.T) {
	assert.Equal(t, "array cursor", CursorArray.String())
	assert.Equal(t, "unbound cursor", Cursor{}.Kind().String())
}
