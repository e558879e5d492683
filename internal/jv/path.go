package jv

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a member name or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// Path addresses a value inside a document. The empty Path is the root.
type Path []Segment

func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		switch {
		case s.IsIndex:
			sb.WriteString(s.String())
		case needsQuoting(s.Key):
			sb.WriteString("[" + strconv.Quote(s.Key) + "]")
		default:
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(s.Key)
		}
	}
	return sb.String()
}

func needsQuoting(key string) bool {
	return key == "" || strings.ContainsAny(key, ".[]\"")
}

// ParsePath parses dotted member names and bracketed indexes, e.g.
// `a.b[2].c`. A member name containing dots or brackets is written as a
// quoted bracket segment: `a["x.y"]`. The empty string is the root path.
func ParsePath(s string) (Path, error) {
	var p Path
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			if i == 0 || i == len(s)-1 || s[i+1] == '.' || s[i+1] == '[' {
				return nil, pathError(s, i, "empty member name")
			}
			i++
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if i+1 < len(s) && s[i+1] == '"' {
				key, rest, err := unquotePrefix(s[i+1:])
				if err != nil || !strings.HasPrefix(rest, "]") {
					return nil, pathError(s, i, "invalid quoted member name")
				}
				p = append(p, Segment{Key: key})
				i = len(s) - len(rest) + 1
				if err := afterBracket(s, i); err != nil {
					return nil, err
				}
				continue
			}
			if end < 0 {
				return nil, pathError(s, i, "unterminated index")
			}
			n, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil || n < 0 {
				return nil, pathError(s, i, "invalid index %q", s[i+1:i+end])
			}
			p = append(p, Segment{Index: n, IsIndex: true})
			i += end + 1
			if err := afterBracket(s, i); err != nil {
				return nil, err
			}
		default:
			end := strings.IndexAny(s[i:], ".[")
			if end < 0 {
				end = len(s) - i
			}
			if j := strings.IndexByte(s[i:i+end], ']'); j >= 0 {
				return nil, pathError(s, i+j, "unexpected ']' in member name")
			}
			p = append(p, Segment{Key: s[i : i+end]})
			i += end
		}
	}
	return p, nil
}

// afterBracket checks that a closing bracket at s[i-1] is followed by the
// end of the path or another segment.
func afterBracket(s string, i int) error {
	if i < len(s) && s[i] != '.' && s[i] != '[' {
		return pathError(s, i, "expected '.' or '[' after ']'")
	}
	return nil
}

func unquotePrefix(s string) (string, string, error) {
	prefix, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", err
	}
	key, err := strconv.Unquote(prefix)
	if err != nil {
		return "", "", err
	}
	return key, s[len(prefix):], nil
}

func pathError(path string, off int, format string, args ...any) *ParseError {
	return &ParseError{Offset: off, Line: 1, Column: off + 1, Message: fmt.Sprintf("path %q: ", path) + fmt.Sprintf(format, args...)}
}

// Find resolves p without modifying v, using At and AtIndex.
func (v Value) Find(p Path) (*Value, error) {
	cur := &v
	for i, seg := range p {
		var err error
		if seg.IsIndex {
			cur, err = cur.AtIndex(seg.Index)
		} else {
			cur, err = cur.At(seg.Key)
		}
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", p[:i+1], err)
		}
	}
	return cur, nil
}

// Put stores elem at p, creating intermediate Objects for member segments.
// An index segment may address an existing element or the position right
// after the last one, which appends. elem is stored as a deep copy. The
// work happens on a copy that replaces v only when every step succeeded.
func (v *Value) Put(p Path, elem Value) error {
	if len(p) == 0 {
		v.Assign(elem)
		return nil
	}
	work := v.Clone()
	cur := &work
	for i, seg := range p {
		var err error
		if seg.IsIndex {
			cur, err = cur.slot(seg.Index)
		} else {
			cur, err = cur.Key(seg.Key)
		}
		if err != nil {
			return fmt.Errorf("at %s: %w", p[:i+1], err)
		}
	}
	*cur = elem.Clone()
	*v = work
	return nil
}

// slot is Index that also accepts len(array) and appends a Null there.
// A Null receiver becomes an Array only when appending at index 0.
func (v *Value) slot(i int) (*Value, error) {
	if v.kind == KindNull && i == 0 {
		*v = Array(nil)
	}
	if v.kind == KindArray && i == len(*v.arr) {
		*v.arr = append(*v.arr, Value{})
	}
	return v.Index(i)
}

// Remove deletes the member or element addressed by p. Removing an absent
// member is a no-op, matching EraseKey.
func (v *Value) Remove(p Path) error {
	if len(p) == 0 {
		return newError(ErrType, "remove", "cannot remove the root value")
	}
	parent, err := v.Find(p[:len(p)-1])
	if err != nil {
		return err
	}
	last := p[len(p)-1]
	if last.IsIndex {
		return parent.EraseIndex(last.Index)
	}
	return parent.EraseKey(last.Key)
}
