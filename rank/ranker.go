// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rank

import (
	"log/slog"
	"math"
	"sort"

	"github.com/poiesic/pinpoint/core"
	"github.com/poiesic/pinpoint/normalize"
)

const (
	// DefaultMaxResults caps the ranked output.
	DefaultMaxResults = 10

	// DefaultReplaceThreshold is the relative score advantage a duplicate
	// needs to displace the result already holding its signature. A tuning
	// heuristic, not a correctness invariant.
	DefaultReplaceThreshold = 0.20

	// signaturePrefixLen bounds the canonical value prefix used for
	// near-duplicate detection.
	signaturePrefixLen = 16
)

// Weights are the relative contributions of the component scores. They must
// sum to 1.
type Weights struct {
	Relevance  float64
	Confidence float64
	Context    float64
	Freshness  float64
	Feedback   float64
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Relevance:  0.4,
		Confidence: 0.3,
		Context:    0.15,
		Freshness:  0.1,
		Feedback:   0.05,
	}
}

// Validate checks that the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Relevance, w.Confidence, w.Context, w.Freshness, w.Feedback} {
		if v < 0 {
			return ErrInvalidWeights
		}
	}
	sum := w.Relevance + w.Confidence + w.Context + w.Freshness + w.Feedback
	if math.Abs(sum-1.0) > 1e-9 {
		return ErrInvalidWeights
	}
	return nil
}

// FeedbackFunc supplies an external feedback score in [0,1] for a result,
// e.g. from prior user interactions.
type FeedbackFunc func(r *core.SearchResult) float64

// Ranker fuses candidate results into one ordered, deduplicated list.
type Ranker struct {
	weights          Weights
	maxResults       int
	replaceThreshold float64
	feedback         FeedbackFunc
	logger           *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithWeights overrides the scoring weights.
func WithWeights(w Weights) Option {
	return func(r *Ranker) error {
		if err := w.Validate(); err != nil {
			return err
		}
		r.weights = w
		return nil
	}
}

// WithMaxResults overrides the output cap.
func WithMaxResults(n int) Option {
	return func(r *Ranker) error {
		if n > 0 {
			r.maxResults = n
		}
		return nil
	}
}

// WithReplaceThreshold overrides the duplicate-displacement threshold.
func WithReplaceThreshold(t float64) Option {
	return func(r *Ranker) error {
		if t > 0 {
			r.replaceThreshold = t
		}
		return nil
	}
}

// WithFeedback sets the external feedback source.
func WithFeedback(f FeedbackFunc) Option {
	return func(r *Ranker) error {
		r.feedback = f
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker with the default weights.
func NewRanker(opts ...Option) (*Ranker, error) {
	r := &Ranker{
		weights:          DefaultWeights(),
		maxResults:       DefaultMaxResults,
		replaceThreshold: DefaultReplaceThreshold,
		logger:           slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Rank scores, deduplicates, orders, and truncates the candidate results.
// The returned slice is freshly allocated; candidates are not mutated apart
// from their Score and Rank fields.
func (r *Ranker) Rank(candidates []*core.SearchResult, query string) []*core.SearchResult {
	if len(candidates) == 0 {
		return []*core.SearchResult{}
	}

	for _, c := range candidates {
		c.Score = r.totalScore(c, query)
	}

	deduped := r.dedupe(candidates)

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].Score != deduped[j].Score {
			return deduped[i].Score > deduped[j].Score
		}
		if ci, cj := deduped[i].Confidence(), deduped[j].Confidence(); ci != cj {
			return ci > cj
		}
		pi, pj := deduped[i].Position(), deduped[j].Position()
		if pi < 0 {
			return false
		}
		if pj < 0 {
			return true
		}
		return pi < pj
	})

	if len(deduped) > r.maxResults {
		deduped = deduped[:r.maxResults]
	}
	for i, res := range deduped {
		res.Rank = i + 1
	}
	return deduped
}

func (r *Ranker) totalScore(c *core.SearchResult, query string) float64 {
	feedback := 0.0
	if r.feedback != nil {
		feedback = r.feedback(c)
	}

	return r.weights.Relevance*relevanceScore(c, query) +
		r.weights.Confidence*c.Confidence() +
		r.weights.Context*contextScore(c) +
		r.weights.Freshness*freshnessScore(c) +
		r.weights.Feedback*feedback
}

// dedupe collapses results sharing a canonical signature. The held result
// wins unless the newcomer outscores it by the replace threshold.
func (r *Ranker) dedupe(candidates []*core.SearchResult) []*core.SearchResult {
	held := make(map[string]int)
	out := make([]*core.SearchResult, 0, len(candidates))

	for _, c := range candidates {
		sig := signature(c)
		idx, seen := held[sig]
		if !seen {
			held[sig] = len(out)
			out = append(out, c)
			continue
		}
		if c.Score > out[idx].Score*(1.0+r.replaceThreshold) {
			r.logger.Debug("duplicate displaced", "signature", sig, "old", out[idx].Score, "new", c.Score)
			out[idx] = c
		}
	}
	return out
}

// signature builds the canonical near-duplicate key: the label (or the value
// type when no label is set) plus a bounded prefix of the folded value.
func signature(c *core.SearchResult) string {
	head := normalize.Fold(c.Label)
	if head == "" {
		head = normalize.Fold(c.Type.String())
	}

	value := []rune(normalize.Fold(c.Value))
	if len(value) > signaturePrefixLen {
		value = value[:signaturePrefixLen]
	}
	return head + "\x00" + string(value)
}
