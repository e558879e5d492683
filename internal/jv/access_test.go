package jv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyVivifiesNull(t *testing.T) {
	var v Value
	slot, err := v.Key("name")
	require.NoError(t, err)
	*slot = Str("cart")

	assert.True(t, v.IsObject())
	assert.True(t, v.Equal(ObjectOf(O("name", Str("cart")))))
}

func TestKeyInsertsNullMember(t *testing.T) {
	v := ObjectOf()
	slot, err := v.Key("missing")
	require.NoError(t, err)

	assert.True(t, slot.IsNull())
	assert.True(t, v.Has("missing"))
}

func TestKeyOnScalarFails(t *testing.T) {
	v := Int(1)
	_, err := v.Key("a")
	assert.True(t, IsTypeError(err))
	assert.True(t, v.Equal(Int(1)), "failed access leaves the value unchanged")
}

func TestKeyPointerSurvivesOtherInserts(t *testing.T) {
	v := ObjectOf(O("m", Int(1)))
	slot, err := v.Key("m")
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c", "z"} {
		require.NoError(t, v.Insert(k, Null()))
	}
	*slot = Int(2)

	got, err := v.At("m")
	require.NoError(t, err)
	assert.True(t, got.Equal(Int(2)))
}

func TestAt(t *testing.T) {
	v := ObjectOf(O("a", Int(1)))

	got, err := v.At("a")
	require.NoError(t, err)
	assert.True(t, got.Equal(Int(1)))

	_, err = v.At("b")
	assert.True(t, IsKeyError(err))
	assert.False(t, v.Has("b"), "At does not insert")

	_, err = ArrayOf().At("a")
	assert.True(t, IsTypeError(err))
}

func TestIndex(t *testing.T) {
	v := ArrayOf(Int(1), Int(2))

	slot, err := v.Index(1)
	require.NoError(t, err)
	*slot = Str("two")
	assert.True(t, v.Equal(ArrayOf(Int(1), Str("two"))))

	_, err = v.Index(2)
	assert.True(t, IsIndexError(err))

	_, err = v.Index(-1)
	assert.True(t, IsIndexError(err))

	s := Str("abc")
	_, err = s.Index(0)
	assert.True(t, IsTypeError(err))
}

func TestIndexOnNullStaysNull(t *testing.T) {
	var v Value
	_, err := v.Index(0)

	assert.True(t, IsIndexError(err))
	assert.True(t, v.IsNull())
}

func TestAtIndex(t *testing.T) {
	v := ArrayOf(Str("a"))

	got, err := v.AtIndex(0)
	require.NoError(t, err)
	assert.True(t, got.Equal(Str("a")))

	_, err = v.AtIndex(1)
	assert.True(t, IsIndexError(err))

	_, err = Null().AtIndex(0)
	assert.True(t, IsTypeError(err))
}

func TestLenAndEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		n     int
	}{
		{"null", Null(), 0},
		{"string counts characters", Str("héllo"), 5},
		{"array", ArrayOf(Int(1), Int(2)), 2},
		{"object", ObjectOf(O("a", Null())), 1},
		{"empty array", ArrayOf(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.value.Len()
			require.NoError(t, err)
			assert.Equal(t, tt.n, n)

			empty, err := tt.value.Empty()
			require.NoError(t, err)
			assert.Equal(t, tt.n == 0, empty)
		})
	}

	_, err := Int(1).Len()
	assert.True(t, IsTypeError(err))
	_, err = Bool(true).Empty()
	assert.True(t, IsTypeError(err))
}

func TestClear(t *testing.T) {
	arr := ArrayOf(Int(1))
	require.NoError(t, arr.Clear())
	assert.True(t, arr.Equal(ArrayOf()))

	obj := ObjectOf(O("a", Int(1)))
	require.NoError(t, obj.Clear())
	assert.True(t, obj.Equal(ObjectOf()))

	s := Str("abc")
	require.NoError(t, s.Clear())
	assert.True(t, s.Equal(Str("")))

	var null Value
	require.NoError(t, null.Clear())
	assert.True(t, null.IsNull())

	n := Float(1)
	assert.True(t, IsTypeError(n.Clear()))
}

func TestPushPop(t *testing.T) {
	v := ArrayOf()
	require.NoError(t, v.PushBack(Int(1)))
	require.NoError(t, v.PushBack(Str("x")))

	last, err := v.PopBack()
	require.NoError(t, err)
	assert.True(t, last.Equal(Str("x")))

	last, err = v.PopBack()
	require.NoError(t, err)
	assert.True(t, last.Equal(Int(1)))

	_, err = v.PopBack()
	assert.True(t, IsRangeError(err))

	var null Value
	assert.True(t, IsTypeError(null.PushBack(Int(1))))
	_, err = null.PopBack()
	assert.True(t, IsTypeError(err))
}

func TestInsert(t *testing.T) {
	var v Value
	require.NoError(t, v.Insert("b", Int(2)))
	require.NoError(t, v.Insert("a", Int(1)))
	require.NoError(t, v.Insert("b", Int(3)))

	assert.Equal(t, []string{"a", "b"}, v.Keys())
	got, err := v.At("b")
	require.NoError(t, err)
	assert.True(t, got.Equal(Int(3)))

	arr := ArrayOf()
	assert.True(t, IsTypeError(arr.Insert("a", Null())))
}

func TestPushBackCopiesElement(t *testing.T) {
	arr := ArrayOf()
	s := Str("x")
	require.NoError(t, arr.PushBack(s))
	require.NoError(t, s.Clear())

	assert.Equal(t, `["x"]`, arr.String())
}

func TestPushBackSelf(t *testing.T) {
	a := ArrayOf(Int(1))
	require.NoError(t, a.PushBack(a))
	assert.Equal(t, `[1,[1]]`, a.String())

	require.NoError(t, a.PushBack(a))
	assert.Equal(t, `[1,[1],[1,[1]]]`, a.String())
}

func TestInsertCopiesElement(t *testing.T) {
	var obj Value
	inner := ArrayOf(Int(1))
	require.NoError(t, obj.Insert("list", inner))
	require.NoError(t, inner.PushBack(Int(2)))

	assert.Equal(t, `{"list":[1]}`, obj.String())
}

func TestInsertSelf(t *testing.T) {
	obj := ObjectOf(O("a", Int(1)))
	require.NoError(t, obj.Insert("self", obj))
	assert.Equal(t, `{"a":1,"self":{"a":1}}`, obj.String())
	assert.False(t, obj.Equal(ObjectOf(O("a", Int(1)))))
}

func TestEraseIndex(t *testing.T) {
	v := ArrayOf(Int(0), Int(1), Int(2))
	require.NoError(t, v.EraseIndex(1))
	assert.True(t, v.Equal(ArrayOf(Int(0), Int(2))))

	assert.True(t, IsIndexError(v.EraseIndex(2)))
	assert.True(t, IsIndexError(v.EraseIndex(-1)))

	obj := ObjectOf()
	assert.True(t, IsTypeError(obj.EraseIndex(0)))
}

func TestEraseKey(t *testing.T) {
	v := ObjectOf(O("a", Int(1)), O("b", Int(2)))
	require.NoError(t, v.EraseKey("a"))
	assert.Equal(t, []string{"b"}, v.Keys())

	require.NoError(t, v.EraseKey("absent"), "erasing an absent key is a no-op")
	assert.Equal(t, []string{"b"}, v.Keys())

	arr := ArrayOf()
	assert.True(t, IsTypeError(arr.EraseKey("a")))
}

func TestKeysAreSortedBytewise(t *testing.T) {
	v := ObjectOf(O("b", Null()), O("B", Null()), O("a", Null()), O("é", Null()), O("", Null()))
	assert.Equal(t, []string{"", "B", "a", "b", "é"}, v.Keys())

	assert.Nil(t, ArrayOf().Keys())
}

func TestElementsIterator(t *testing.T) {
	v := ArrayOf(Int(1), Int(2), Int(3))
	for _, e := range v.Elements() {
		n, err := e.Int64()
		require.NoError(t, err)
		*e = Int(n * 10)
	}
	assert.True(t, v.Equal(ArrayOf(Int(10), Int(20), Int(30))))

	var seen []int
	for i := range v.Elements() {
		if i == 1 {
			break
		}
		seen = append(seen, i)
	}
	assert.Equal(t, []int{0}, seen)
}

func TestMembersIterator(t *testing.T) {
	v := ObjectOf(O("z", Int(1)), O("a", Int(2)))

	var keys []string
	for k, e := range v.Members() {
		keys = append(keys, k)
		*e = Null()
	}
	assert.Equal(t, []string{"a", "z"}, keys)
	assert.True(t, v.Equal(ObjectOf(O("a", Null()), O("z", Null()))))

	for range Str("x").Members() {
		t.Fatal("scalars yield no members")
	}
}
