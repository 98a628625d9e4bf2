package matcher

import (
	"strings"
)

// Option configures an Engine.
type Option func(*Engine)

// WithExpectedKeys sizes the exact index and enables a Bloom filter in front
// of it. Zero disables the filter.
func WithExpectedKeys(n uint) Option {
	return func(e *Engine) {
		e.expected = n
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	e.exact = newExactIndex(e.expected)
	e.trie = NewTrie()
	return e
}

// Insert stores content under key in the exact index and indexes the first
// significant tokens of key, and short or email-like keys as a whole, in the
// prefix trie.
func (e *Engine) Insert(key, content string) {
	norm := Normalize(key)
	e.exact.put(norm, content)

	tokens := strings.Fields(norm)
	if len(tokens) > MaxTokens {
		tokens = tokens[:MaxTokens]
	}
	for _, tok := range tokens {
		if len(tok) >= MinTokenLen {
			e.trie.Insert(tok, content)
		}
	}

	if strings.Contains(norm, "@") || len(norm) < WholeKeyMaxLen {
		e.trie.Insert(norm, content)
	}
}

// Search tries the exact index first and falls back to a verified prefix
// search for queries of at least MinQueryLen bytes.
func (e *Engine) Search(query string) MatchResult {
	q := Normalize(query)

	if content, ok := e.exact.get(q); ok {
		return MatchResult{Matched: true, Kind: ExactMatch, Confidence: ExactConfidence, Content: content}
	}

	if len(q) < MinQueryLen {
		return MatchResult{}
	}

	found := e.trie.SearchEntries(q, PrefixSearchLimit)
	if len(found) == 0 {
		return MatchResult{}
	}
	if first := found[0]; strings.HasPrefix(Normalize(first.Term), q) {
		return MatchResult{Matched: true, Kind: PrefixMatch, Confidence: PrefixConfidence, Content: first.Content}
	}
	return MatchResult{}
}

// Clear drops every stored key and trie node.
func (e *Engine) Clear() {
	e.exact = newExactIndex(e.expected)
	e.trie = NewTrie()
}

// Size is the number of distinct normalized keys in the exact index.
func (e *Engine) Size() int {
	return e.exact.len()
}

// InsertAll inserts entries in order.
func (e *Engine) InsertAll(entries []Entry) {
	for _, en := range entries {
		e.Insert(en.Key, en.Content)
	}
}
