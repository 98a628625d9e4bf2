package lookup

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"fastpath/internal/metrics"
	"fastpath/pkg/matcher"
)

// NewHandler wraps an empty engine built with opts. Replace builds its new
// engines with the same options.
func NewHandler(verbose bool, opts ...matcher.Option) *Handler {
	return &Handler{
		Verbose: verbose,
		engine:  matcher.New(opts...),
		opts:    opts,
	}
}

// Insert adds entries to the current engine and returns its new size.
func (h *Handler) Insert(entries []matcher.Entry) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.InsertAll(entries)
	size := h.engine.Size()

	metrics.InsertsTotal.Add(float64(len(entries)))
	metrics.Entries.Set(float64(size))
	if h.Verbose {
		log.Info().Msgf("Inserted %d entries, engine size %d", len(entries), size)
	}
	return size
}

// Replace swaps in a new engine holding only entries. The new engine is
// built before the lock is taken, so searches keep hitting the old data
// until the swap.
func (h *Handler) Replace(entries []matcher.Entry, source string) int {
	e := matcher.New(h.opts...)
	e.InsertAll(entries)
	size := e.Size()

	h.mu.Lock()
	h.engine = e
	h.mu.Unlock()

	metrics.InsertsTotal.Add(float64(len(entries)))
	metrics.Entries.Set(float64(size))
	metrics.ReloadsTotal.WithLabelValues(source).Inc()
	log.Info().Msgf("Engine replaced from %s with %d entries (%d keys)", source, len(entries), size)
	return size
}

func (h *Handler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.Clear()
	metrics.Entries.Set(0)
	if h.Verbose {
		log.Info().Msg("Engine cleared")
	}
}

func (h *Handler) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.engine.Size()
}

// Search runs query against the engine and records the outcome under the
// given transport label.
func (h *Handler) Search(query, transport string) matcher.MatchResult {
	start := time.Now()

	h.mu.RLock()
	result := h.engine.Search(query)
	h.mu.RUnlock()

	metrics.SearchDuration.WithLabelValues(transport).Observe(time.Since(start).Seconds())
	switch result.Kind {
	case matcher.ExactMatch:
		metrics.SearchesTotal.WithLabelValues(metrics.KindExact).Inc()
	case matcher.PrefixMatch:
		metrics.SearchesTotal.WithLabelValues(metrics.KindPrefix).Inc()
	default:
		metrics.SearchesTotal.WithLabelValues(metrics.KindMiss).Inc()
	}

	if h.Verbose {
		log.Info().Msgf("[%s] query: %q, matched: %v (%s)", transport, query, result.Matched, result.Kind)
	}
	return result
}

// HandleQuery searches and encodes the response envelope as JSON.
func (h *Handler) HandleQuery(query, transport string) ([]byte, error) {
	return json.Marshal(NewResponse(h.Search(query, transport)))
}

func NewResponse(r matcher.MatchResult) Response {
	if !r.Matched {
		return Response{}
	}
	return Response{
		Matched:    true,
		Type:       r.Kind.String(),
		Confidence: r.Confidence,
		Data: &ResponseData{
			Entities: []Entity{{
				Content:  r.Content,
				Metadata: map[string]string{"source": SourceFastPath},
				Score:    r.Confidence,
			}},
			Chunks: []Entity{},
		},
	}
}
