package matcher

import "github.com/bits-and-blooms/bloom/v3"

func newExactIndex(expected uint) *exactIndex {
	idx := &exactIndex{entries: make(map[string]string, expected)}
	if expected > 0 {
		idx.bf = bloom.NewWithEstimates(expected, 1e-4)
	}
	return idx
}

func (x *exactIndex) put(key, content string) {
	k := Normalize(key)
	x.entries[k] = content
	if x.bf != nil {
		x.bf.AddString(k)
	}
}

func (x *exactIndex) get(key string) (string, bool) {
	k := Normalize(key)
	// A negative from the filter is definitive; positives still hit the map.
	if x.bf != nil && !x.bf.TestString(k) {
		return "", false
	}
	v, ok := x.entries[k]
	return v, ok
}

func (x *exactIndex) len() int {
	return len(x.entries)
}
