package value

import "strconv"

// MapValue is an insertion-ordered mapping from Value to Value. Iteration
// order is implementation-defined but stable per instance (spec.md §3):
// here, insertion order, with a re-def of an existing key keeping its
// original slot and replacing only the value (duplicate keys during parsing
// keep the last value, per spec.md §4.2).
type MapValue struct {
	keys   []Value
	vals   []Value
	index  map[string]int // fast path for hashable keys
	linear []int          // indices of entries whose key isn't in `index`
}

// NewMap builds a MapValue from alternating key/value pairs, later pairs
// overwriting earlier ones with the same key (spec.md: "duplicate keys keep
// the last").
func NewMap(pairs ...Value) *MapValue {
	m := &MapValue{index: map[string]int{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func (m *MapValue) Len() int { return len(m.keys) }

// Pairs returns the key/value entries in stable iteration order.
func (m *MapValue) Pairs() ([]Value, []Value) { return m.keys, m.vals }

func (m *MapValue) findLinear(key Value) int {
	for _, i := range m.linear {
		if Equal(m.keys[i], key) {
			return i
		}
	}
	return -1
}

// Get looks up key, reporting whether it was present.
func (m *MapValue) Get(key Value) (Value, bool) {
	if hk, ok := hashKey(key); ok {
		if i, ok := m.index[hk]; ok {
			return m.vals[i], true
		}
		return Nil, false
	}
	if i := m.findLinear(key); i >= 0 {
		return m.vals[i], true
	}
	return Nil, false
}

// Set inserts or overwrites key -> val, preserving key's original position
// on overwrite.
func (m *MapValue) Set(key, val Value) {
	if hk, ok := hashKey(key); ok {
		if i, exists := m.index[hk]; exists {
			m.vals[i] = val
			return
		}
		m.index[hk] = len(m.keys)
		m.keys = append(m.keys, key)
		m.vals = append(m.vals, val)
		return
	}
	if i := m.findLinear(key); i >= 0 {
		m.vals[i] = val
		return
	}
	m.linear = append(m.linear, len(m.keys))
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// Clone returns a shallow copy safe to mutate independently (used by .conj,
// which merges without mutating the original map).
func (m *MapValue) Clone() *MapValue {
	out := &MapValue{
		keys:   append([]Value(nil), m.keys...),
		vals:   append([]Value(nil), m.vals...),
		index:  make(map[string]int, len(m.index)),
		linear: append([]int(nil), m.linear...),
	}
	for k, v := range m.index {
		out.index[k] = v
	}
	return out
}

// hashKey produces a canonical string form for the kinds cheap to hash
// (nil, bool, int, float, char, str, keyword, symbol). Other kinds (list,
// vector, map, function, ...) fall back to MapValue's linear scan.
func hashKey(v Value) (string, bool) {
	switch v.Kind {
	case KindNil:
		return "n", true
	case KindBool:
		if v.Bool {
			return "bt", true
		}
		return "bf", true
	case KindInt:
		return "i" + strconv.FormatInt(v.Int, 10), true
	case KindFloat:
		return "f" + strconv.FormatFloat(v.Float, 'g', -1, 64), true
	case KindChar:
		return "c" + string(v.Char), true
	case KindStr:
		return "s" + v.Str, true
	case KindKeyword:
		return "k" + strconv.Itoa(int(v.Sym)), true
	case KindSymbol:
		return "y" + strconv.Itoa(int(v.Sym)), true
	default:
		return "", false
	}
}
