package matcher

import "github.com/bits-and-blooms/bloom/v3"

// MatchKind tags which stage of the engine produced a result.
type MatchKind uint8

const (
	NoMatch MatchKind = iota
	ExactMatch
	PrefixMatch
)

func (k MatchKind) String() string {
	switch k {
	case ExactMatch:
		return "ExactMatch"
	case PrefixMatch:
		return "PrefixMatch"
	default:
		return "NoMatch"
	}
}

const (
	ExactConfidence  = 1.0
	PrefixConfidence = 0.9

	// NodeContentCap bounds the contents retained at a single trie node.
	NodeContentCap = 10
	// PrefixSearchLimit is how many candidates a fallback search collects.
	PrefixSearchLimit = 5
	// MinQueryLen is the shortest normalized query that may use prefix search.
	MinQueryLen = 3
	// MaxTokens is how many leading tokens of a key are indexed as terms.
	MaxTokens = 3
	// MinTokenLen is the shortest token that is indexed as a term.
	MinTokenLen = 3
	// WholeKeyMaxLen is the length under which a whole key is indexed as a term.
	WholeKeyMaxLen = 50
)

// MatchResult is the outcome of Engine.Search. The zero value means no match.
type MatchResult struct {
	Matched    bool
	Kind       MatchKind
	Confidence float64
	Content    string
}

// Entry is a key/content pair as supplied by callers of Insert.
type Entry struct {
	Key     string `json:"key"`
	Content string `json:"content"`
}

// Engine answers exact and prefix lookups over inserted keys.
// It is not safe for concurrent use.
type Engine struct {
	exact    *exactIndex
	trie     *Trie
	expected uint
}

type exactIndex struct {
	entries map[string]string
	bf      *bloom.BloomFilter
}

type trieNode struct {
	children map[rune]int32
	entries  []TrieEntry
}

// TrieEntry is a content value together with the term it was indexed under.
type TrieEntry struct {
	Term    string
	Content string
}

// Trie is a character trie whose nodes live in a single arena slice and
// reference each other by index. Node 0 is the root.
type Trie struct {
	nodes []trieNode
}
