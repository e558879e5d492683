package transcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jsondoc/internal/jv"
)

// FromYAML decodes the first document of a YAML stream. Anchors and aliases
// are expanded, "<<" merge keys are applied (explicit keys win), timestamps
// are kept as their source text and an empty stream decodes to Null.
func FromYAML(data []byte) (jv.Value, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return jv.Null(), nil
		}
		return jv.Value{}, fmt.Errorf("%w: %w", jv.ErrParse, err)
	}
	y := &yamlDecoder{}
	return y.node(&doc)
}

type yamlDecoder struct {
	depth int
}

func yamlError(n *yaml.Node, kind error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if kind == jv.ErrParse {
		return &jv.ParseError{Line: n.Line, Column: n.Column, Message: "yaml: " + msg}
	}
	return &jv.Error{Kind: kind, Op: "from_yaml", Message: fmt.Sprintf("line %d: %s", n.Line, msg)}
}

func (y *yamlDecoder) node(n *yaml.Node) (jv.Value, error) {
	y.depth++
	defer func() { y.depth-- }()
	if y.depth > jv.MaxDepth {
		return jv.Value{}, yamlError(n, jv.ErrParse, "nesting deeper than %d levels", jv.MaxDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jv.Null(), nil
		}
		return y.node(n.Content[0])
	case yaml.AliasNode:
		return y.node(n.Alias)
	case yaml.ScalarNode:
		return y.scalar(n)
	case yaml.SequenceNode:
		out := jv.ArrayOf()
		for _, c := range n.Content {
			elem, err := y.node(c)
			if err != nil {
				return jv.Value{}, err
			}
			if err := out.PushBack(elem); err != nil {
				return jv.Value{}, err
			}
		}
		return out, nil
	case yaml.MappingNode:
		return y.mapping(n)
	default:
		return jv.Value{}, yamlError(n, jv.ErrParse, "unexpected node kind %d", n.Kind)
	}
}

func (y *yamlDecoder) mapping(n *yaml.Node) (jv.Value, error) {
	out := jv.ObjectOf()
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return jv.Value{}, yamlError(keyNode, jv.ErrType, "mapping key must be a scalar")
		}
		if keyNode.ShortTag() == "!!merge" {
			merges = append(merges, valNode)
			continue
		}
		key := keyNode.Value
		if out.Has(key) {
			return jv.Value{}, yamlError(keyNode, jv.ErrParse, "duplicate key %q", key)
		}
		elem, err := y.node(valNode)
		if err != nil {
			return jv.Value{}, err
		}
		if err := out.Insert(key, elem); err != nil {
			return jv.Value{}, err
		}
	}

	for _, m := range merges {
		if m.Kind == yaml.AliasNode {
			m = m.Alias
		}
		sources := []*yaml.Node{m}
		if m.Kind == yaml.SequenceNode {
			sources = m.Content
		}
		for _, src := range sources {
			merged, err := y.node(src)
			if err != nil {
				return jv.Value{}, err
			}
			if !merged.IsObject() {
				return jv.Value{}, yamlError(src, jv.ErrType, "merge value must be a mapping")
			}
			for key, elem := range merged.Members() {
				if !out.Has(key) {
					if err := out.Insert(key, elem.Take()); err != nil {
						return jv.Value{}, err
					}
				}
			}
		}
	}
	return out, nil
}

func (y *yamlDecoder) scalar(n *yaml.Node) (jv.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return jv.Null(), nil
	case "!!str", "!!timestamp":
		return jv.Str(n.Value), nil
	}

	var x any
	if err := n.Decode(&x); err != nil {
		return jv.Value{}, yamlError(n, jv.ErrParse, "%v", err)
	}
	switch t := x.(type) {
	case int:
		return integral(int64(t)), nil
	case int64:
		return integral(t), nil
	}
	return jv.FromAny(x)
}

// integral applies the JSON numeral rule: non-negative integers are
// UInteger.
func integral(n int64) jv.Value {
	if n >= 0 {
		return jv.Uint(uint64(n))
	}
	return jv.Int(n)
}

// ToYAML renders v as a block-style YAML document with two-space indent.
// Object members keep ascending key order; empty containers use flow style.
func ToYAML(v jv.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return nil, fmt.Errorf("to_yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("to_yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v jv.Value) *yaml.Node {
	scalar := func(tag, value string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
	}

	switch v.Kind() {
	case jv.KindBoolean:
		b, _ := v.Bool()
		if b {
			return scalar("!!bool", "true")
		}
		return scalar("!!bool", "false")
	case jv.KindInteger, jv.KindUInteger:
		return scalar("!!int", v.String())
	case jv.KindFloating:
		f := v.Interface().(float64)
		switch {
		case math.IsNaN(f):
			return scalar("!!float", ".nan")
		case math.IsInf(f, 1):
			return scalar("!!float", ".inf")
		case math.IsInf(f, -1):
			return scalar("!!float", "-.inf")
		}
		return scalar("!!float", v.String())
	case jv.KindString:
		s, _ := v.Text()
		return scalar("!!str", s)
	case jv.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.Elements() {
			n.Content = append(n.Content, toYAMLNode(*e))
		}
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	case jv.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, e := range v.Members() {
			n.Content = append(n.Content, scalar("!!str", key), toYAMLNode(*e))
		}
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	default:
		return scalar("!!null", "null")
	}
}
