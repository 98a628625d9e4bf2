package matcher

import (
	"slices"
)

// NewTrie returns a trie holding only an empty root.
func NewTrie() *Trie {
	return &Trie{nodes: []trieNode{{}}}
}

func (t *Trie) child(n int32, ch rune) (int32, bool) {
	c, ok := t.nodes[n].children[ch]
	return c, ok
}

func (t *Trie) addChild(n int32, ch rune) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, trieNode{})
	if t.nodes[n].children == nil {
		t.nodes[n].children = make(map[rune]int32, 1)
	}
	t.nodes[n].children[ch] = idx
	return idx
}

// Insert indexes content under the normalized form of text. Once the node
// addressed by text holds NodeContentCap entries, further inserts for it
// are dropped.
func (t *Trie) Insert(text, content string) {
	term := Normalize(text)
	n := int32(0)
	for _, ch := range term {
		c, ok := t.child(n, ch)
		if !ok {
			c = t.addChild(n, ch)
		}
		n = c
	}

	if len(t.nodes[n].entries) < NodeContentCap {
		t.nodes[n].entries = append(t.nodes[n].entries, TrieEntry{Term: term, Content: content})
	}
}

// Search returns up to limit distinct contents stored at or below the node
// addressed by prefix.
func (t *Trie) Search(prefix string, limit int) []string {
	entries := t.SearchEntries(prefix, limit)
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Content
	}
	return out
}

// SearchEntries is Search, but keeps the term each content was indexed under.
// A node's own entries come before its descendants; children are visited in
// ascending character order. Entries whose content was already collected are
// skipped.
func (t *Trie) SearchEntries(prefix string, limit int) []TrieEntry {
	if limit <= 0 {
		return nil
	}

	n := int32(0)
	for _, ch := range Normalize(prefix) {
		c, ok := t.child(n, ch)
		if !ok {
			return nil
		}
		n = c
	}

	var (
		results []TrieEntry
		seen    = make(map[string]struct{}, limit)
		stack   = []int32{n}
		keys    []rune
	)
	for len(stack) > 0 {
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &t.nodes[n]

		for _, e := range node.entries {
			if len(results) >= limit {
				return results
			}
			if _, dup := seen[e.Content]; dup {
				continue
			}
			seen[e.Content] = struct{}{}
			results = append(results, e)
		}
		if len(results) >= limit {
			return results
		}

		keys = keys[:0]
		for ch := range node.children {
			keys = append(keys, ch)
		}
		// Pushed in descending order so the smallest character is popped first.
		slices.Sort(keys)
		for i := len(keys) - 1; i >= 0; i-- {
			stack = append(stack, node.children[keys[i]])
		}
	}
	return results
}

// Nodes reports the number of allocated nodes, root included.
func (t *Trie) Nodes() int {
	return len(t.nodes)
}
