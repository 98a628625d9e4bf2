package lookup

import (
	"sync"

	"fastpath/pkg/matcher"
)

type Handler struct {
	Verbose bool
	engine  *matcher.Engine
	opts    []matcher.Option
	mu      sync.RWMutex
}

// Response is the envelope returned to callers of the fast path.
type Response struct {
	Matched    bool          `json:"matched"`
	Type       string        `json:"type,omitempty"`
	Confidence float64       `json:"confidence,omitempty"`
	Data       *ResponseData `json:"data,omitempty"`
}

type ResponseData struct {
	Entities []Entity `json:"entities"`
	Chunks   []Entity `json:"chunks"`
}

type Entity struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Score    float64           `json:"score"`
}

// SourceFastPath marks entities produced by the engine.
const SourceFastPath = "fast_path"
