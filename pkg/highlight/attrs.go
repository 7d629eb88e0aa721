package highlight

import (
	"slices"
	"strings"
)

// AttributeSet is the opaque value a run carries. The store never inspects
// it beyond Equal, which must be reflexive and symmetric. A nil AttributeSet
// means "no attributes" and is never reported by a query.
type AttributeSet interface {
	Equal(other AttributeSet) bool
}

// Attr is a single key/value pair of an Attrs set.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an immutable AttributeSet of string key/value pairs sorted by key.
type Attrs struct {
	pairs []Attr
}

// NewAttrs builds an Attrs from alternating key, value arguments. A trailing
// key without a value is ignored. Later duplicates of a key win.
func NewAttrs(kv ...string) *Attrs {
	pairs := make([]Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, Attr{Key: kv[i], Value: kv[i+1]})
	}
	return FromPairs(pairs)
}

// FromPairs builds an Attrs from pairs. The input is not retained.
func FromPairs(pairs []Attr) *Attrs {
	sorted := slices.Clone(pairs)
	slices.SortStableFunc(sorted, func(a, b Attr) int {
		return strings.Compare(a.Key, b.Key)
	})

	out := sorted[:0]
	for _, p := range sorted {
		if n := len(out); n > 0 && out[n-1].Key == p.Key {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return &Attrs{pairs: out}
}

// Get returns the value stored under key.
func (a *Attrs) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	i, ok := slices.BinarySearchFunc(a.pairs, key, func(p Attr, k string) int {
		return strings.Compare(p.Key, k)
	})
	if !ok {
		return "", false
	}
	return a.pairs[i].Value, true
}

// Len returns the number of pairs.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.pairs)
}

// Pairs returns a copy of the pairs in key order.
func (a *Attrs) Pairs() []Attr {
	if a == nil {
		return nil
	}
	return slices.Clone(a.pairs)
}

// Map returns the pairs as a new map.
func (a *Attrs) Map() map[string]string {
	m := make(map[string]string, a.Len())
	if a == nil {
		return m
	}
	for _, p := range a.pairs {
		m[p.Key] = p.Value
	}
	return m
}

// With returns a copy of a with key set to value.
func (a *Attrs) With(key, value string) *Attrs {
	pairs := append(a.Pairs(), Attr{Key: key, Value: value})
	return FromPairs(pairs)
}

// Equal implements AttributeSet. Two Attrs are equal when they hold the same
// pairs; any other AttributeSet implementation is never equal.
func (a *Attrs) Equal(other AttributeSet) bool {
	b, ok := other.(*Attrs)
	if !ok {
		return false
	}
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return slices.Equal(a.pairs, b.pairs)
}

// String renders the set as "k=v k=v".
func (a *Attrs) String() string {
	if a.Len() == 0 {
		return "{}"
	}
	var sb strings.Builder
	for i, p := range a.pairs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// sameAttributes reports whether two run values are interchangeable.
// Two gaps always are; two non-gap values are compared with Equal.
func sameAttributes(a, b AttributeSet) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// orNil turns a nil *Attrs held in the interface into a plain nil, so it
// erases like any other missing attribute set.
//
//nolint:ireturn // Attribute sets are opaque.
func orNil(attrs AttributeSet) AttributeSet {
	if a, ok := attrs.(*Attrs); ok && a == nil {
		return nil
	}
	return attrs
}
