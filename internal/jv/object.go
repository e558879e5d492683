package jv

import (
	"slices"
	"strings"
)

// member is allocated individually so pointers to its value survive inserts
// of other keys.
type member struct {
	key   string
	value Value
}

// object keeps members sorted by key (byte-wise, i.e. code point order).
type object struct {
	members []*member
}

func (o *object) search(key string) (int, bool) {
	return slices.BinarySearchFunc(o.members, key, func(m *member, k string) int {
		return strings.Compare(m.key, k)
	})
}

func (o *object) get(key string) (*Value, bool) {
	i, ok := o.search(key)
	if !ok {
		return nil, false
	}
	return &o.members[i].value, true
}

// upsert returns the slot for key, inserting a Null member when absent.
func (o *object) upsert(key string) *Value {
	i, ok := o.search(key)
	if ok {
		return &o.members[i].value
	}
	m := &member{key: key}
	o.members = slices.Insert(o.members, i, m)
	return &m.value
}

func (o *object) remove(key string) bool {
	i, ok := o.search(key)
	if !ok {
		return false
	}
	o.members[i] = nil
	o.members = slices.Delete(o.members, i, i+1)
	return true
}

func (o *object) clone() *object {
	out := &object{members: make([]*member, len(o.members))}
	for i, m := range o.members {
		out.members[i] = &member{key: m.key, value: m.value.Clone()}
	}
	return out
}

func (o *object) equal(p *object) bool {
	if len(o.members) != len(p.members) {
		return false
	}
	// Both sides are sorted, so matching keys sit at matching positions.
	for i, m := range o.members {
		n := p.members[i]
		if m.key != n.key || !m.value.Equal(n.value) {
			return false
		}
	}
	return true
}
