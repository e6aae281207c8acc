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


package pinpoint

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/pinpoint/ai"
	"github.com/poiesic/pinpoint/cache"
	"github.com/poiesic/pinpoint/core"
	"github.com/poiesic/pinpoint/extract"
	"github.com/poiesic/pinpoint/fuzzy"
	"github.com/poiesic/pinpoint/highlight"
	"github.com/poiesic/pinpoint/match"
	"github.com/poiesic/pinpoint/normalize"
	"github.com/poiesic/pinpoint/rank"
)

const (
	// DefaultMaxDocumentSize is the document size ceiling in bytes.
	DefaultMaxDocumentSize = 1 << 20

	// DefaultCacheTTL bounds how long ranked results stay cached.
	DefaultCacheTTL = 15 * time.Minute

	// DefaultFuzzyBudget is the wall-clock budget for fuzzy candidate
	// generation; on exceedance the search degrades to whatever the other
	// matchers produced.
	DefaultFuzzyBudget = 2 * time.Second

	// oracleFuzzyMinScore is the similarity floor for re-localizing an
	// oracle candidate that has no exact occurrence in the document.
	oracleFuzzyMinScore = 0.85
)

// Engine is the façade over normalization, matching, ranking, and
// highlighting. A single Engine is safe for concurrent use.
type Engine struct {
	registry        *extract.Registry
	matcher         *match.Matcher
	ranker          *rank.Ranker
	provider        ai.Provider
	cache           cache.Cache
	pool            *ants.Pool
	logger          *slog.Logger
	maxDocumentSize int
	fuzzyOpts       fuzzy.Options
	fuzzyBudget     time.Duration
	cacheTTL        time.Duration
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithProvider sets the AI oracle provider. Without one, searches run on
// the local matchers only.
func WithProvider(provider ai.Provider) Option {
	return func(e *Engine) error {
		e.provider = provider
		return nil
	}
}

// WithCache sets the result cache. Without one, every search recomputes.
func WithCache(c cache.Cache) Option {
	return func(e *Engine) error {
		e.cache = c
		return nil
	}
}

// WithCacheTTL overrides the cache entry lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) error {
		if ttl > 0 {
			e.cacheTTL = ttl
		}
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent matching.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithMaxDocumentSize overrides the document size ceiling in bytes.
func WithMaxDocumentSize(size int) Option {
	return func(e *Engine) error {
		if size > 0 {
			e.maxDocumentSize = size
		}
		return nil
	}
}

// WithFuzzyOptions overrides the fuzzy matcher configuration.
func WithFuzzyOptions(opts fuzzy.Options) Option {
	return func(e *Engine) error {
		e.fuzzyOpts = opts
		return nil
	}
}

// WithFuzzyBudget overrides the fuzzy wall-clock budget.
func WithFuzzyBudget(budget time.Duration) Option {
	return func(e *Engine) error {
		if budget > 0 {
			e.fuzzyBudget = budget
		}
		return nil
	}
}

// WithRegistry replaces the entity extraction registry.
func WithRegistry(r *extract.Registry) Option {
	return func(e *Engine) error {
		if r != nil {
			e.registry = r
		}
		return nil
	}
}

// WithRanker replaces the result ranker.
func WithRanker(r *rank.Ranker) Option {
	return func(e *Engine) error {
		if r != nil {
			e.ranker = r
		}
		return nil
	}
}

// NewEngine creates an engine with the default registry, ranker, and fuzzy
// configuration.
func NewEngine(opts ...Option) (*Engine, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		registry:        extract.DefaultRegistry(),
		pool:            pool,
		logger:          slog.Default(),
		maxDocumentSize: DefaultMaxDocumentSize,
		fuzzyOpts:       fuzzy.DefaultOptions(),
		fuzzyBudget:     DefaultFuzzyBudget,
		cacheTTL:        DefaultCacheTTL,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.pool.Release()
			return nil, err
		}
	}

	// Dependent components are built after options so they see the final
	// registry and logger.
	matcher, err := match.NewMatcher(
		match.WithRegistry(e.registry),
		match.WithLogger(e.logger),
	)
	if err != nil {
		e.pool.Release()
		return nil, err
	}
	e.matcher = matcher

	if e.ranker == nil {
		ranker, err := rank.NewRanker(rank.WithLogger(e.logger))
		if err != nil {
			e.pool.Release()
			return nil, err
		}
		e.ranker = ranker
	}

	return e, nil
}

// Close releases the worker pool and any injected provider and cache.
func (e *Engine) Close() error {
	e.pool.Release()

	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			e.logger.Error("error closing cache", "err", err)
			return err
		}
	}
	return nil
}

// Search finds the values in document that answer query. The hint restricts
// results to one value type; pass core.ValueTypeUnknown for an open search.
// Returns results ordered best-first with offsets into document.
func (e *Engine) Search(ctx context.Context, document, query string, hint core.ValueType) ([]*core.SearchResult, error) {
	return e.SearchWithMonitor(ctx, document, query, hint, nil)
}

// SearchWithMonitor runs Search with monitoring. The monitor receives
// callbacks at each stage of the search process, including a warning
// callback for every oracle candidate that was silently dropped.
func (e *Engine) SearchWithMonitor(ctx context.Context, document, query string, hint core.ValueType, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := e.validateInput(document, query); err != nil {
		return nil, err
	}

	monitor.Start(query)

	key := cache.Key(document, query, hint)
	if e.cache != nil {
		cached, err := e.cache.GetResults(ctx, key)
		if err == nil {
			monitor.CacheHit(key)
			monitor.Finish(cached)
			return cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			e.logger.Warn("cache lookup failed", "err", err)
		}
	}

	doc := normalize.Normalize(document)

	var (
		wg             sync.WaitGroup
		exactMatches   []core.SearchMatch
		fuzzyMatches   []core.SearchMatch
		patternMatches []core.SearchMatch
	)

	fuzzyCtx, cancelFuzzy := context.WithTimeout(ctx, e.fuzzyBudget)
	defer cancelFuzzy()

	e.submit(&wg, func() {
		exactMatches = e.matcher.FindExact(query, doc, hint)
	})
	e.submit(&wg, func() {
		fuzzyMatches = fuzzy.Find(fuzzyCtx, query, doc, e.fuzzyOpts)
	})
	e.submit(&wg, func() {
		patternMatches = e.registry.Extract(document)
	})
	wg.Wait()

	if errors.Is(fuzzyCtx.Err(), context.DeadlineExceeded) {
		e.logger.Warn("fuzzy search exceeded its budget, results may be partial",
			"budget", e.fuzzyBudget, "query", query)
	}

	monitor.AfterExactSearch(exactMatches)
	monitor.AfterFuzzySearch(fuzzyMatches)
	monitor.AfterPatternExtraction(patternMatches)

	candidates := e.buildResults(query, hint, exactMatches, fuzzyMatches, patternMatches)

	if e.provider != nil {
		proposed, err := e.provider.ValueExtractor().ExtractValues(ctx, query, document)
		if err != nil {
			// The oracle is advisory: local results still stand.
			e.logger.Warn("oracle extraction failed", "err", err)
		} else {
			candidates = append(candidates, e.verifyCandidates(ctx, doc, proposed, monitor)...)
		}
	}

	if hint != core.ValueTypeUnknown {
		candidates = filterByType(candidates, hint)
	}

	results := e.ranker.Rank(candidates, query)

	if e.cache != nil {
		if err := e.cache.SetResults(ctx, key, results, e.cacheTTL); err != nil {
			e.logger.Warn("cache store failed", "err", err)
		}
	}

	monitor.Finish(results)
	return results, nil
}

// ExtractEntities runs pattern extraction over the whole document without a
// query: every validated typed value it contains, in document order.
func (e *Engine) ExtractEntities(ctx context.Context, document string) ([]core.SearchMatch, error) {
	if document == "" {
		return nil, ErrEmptyDocument
	}
	if len(document) > e.maxDocumentSize {
		return nil, ErrDocumentTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.registry.Extract(document), nil
}

// VerifyCandidates re-localizes externally supplied (label, value) pairs
// against the document. Candidates that cannot be positionally verified are
// dropped.
func (e *Engine) VerifyCandidates(ctx context.Context, document string, candidates []ai.Candidate) []*core.SearchResult {
	return e.verifyCandidates(ctx, normalize.Normalize(document), candidates, &noopMonitor{})
}

// Highlight renders ranked results back onto the document as segments.
// Earlier-ranked results win attribution when their spans collide.
func (e *Engine) Highlight(document string, results []*core.SearchResult, opts highlight.Options) []core.Segment {
	var ranges []core.HighlightRange
	for i, r := range results {
		for _, m := range r.Matches {
			ranges = append(ranges, core.HighlightRange{
				Start:    m.Start,
				End:      m.End,
				Id:       r.Id,
				Type:     r.Type,
				Score:    m.Score,
				Priority: len(results) - i,
			})
		}
	}
	return highlight.Render(document, ranges, opts)
}

func (e *Engine) validateInput(document, query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	if document == "" {
		return ErrEmptyDocument
	}
	if len(document) > e.maxDocumentSize {
		return ErrDocumentTooLarge
	}
	return nil
}

// submit schedules fn on the worker pool, falling back to inline execution
// when the pool rejects it.
func (e *Engine) submit(wg *sync.WaitGroup, fn func()) {
	wg.Add(1)
	task := func() {
		defer wg.Done()
		fn()
	}
	if err := e.pool.Submit(task); err != nil {
		task()
	}
}

// buildResults groups raw matches into candidate results. Pattern matches
// group by (type, canonical value); fuzzy matches by matched text; exact
// matches collapse into a single result for the query.
func (e *Engine) buildResults(query string, hint core.ValueType, exact, fuzzyMatches, pattern []core.SearchMatch) []*core.SearchResult {
	var results []*core.SearchResult

	if len(exact) > 0 {
		results = append(results, &core.SearchResult{
			Id:      core.IDFromContent("exact\x00" + query),
			Label:   query,
			Value:   exact[0].Text,
			Type:    hint,
			Matches: exact,
		})
	}

	byValue := map[string]*core.SearchResult{}
	for _, m := range fuzzyMatches {
		key := normalize.Fold(m.Text)
		r, ok := byValue[key]
		if !ok {
			r = &core.SearchResult{
				Id:    core.IDFromContent("fuzzy\x00" + key),
				Label: query,
				Value: m.Text,
				Type:  core.ValueTypeUnknown,
			}
			byValue[key] = r
			results = append(results, r)
		}
		r.Matches = append(r.Matches, m)
	}

	byEntity := map[string]*core.SearchResult{}
	for _, m := range pattern {
		canonical := e.registry.CanonicalValue(m.Type, m.Text)
		key := m.Type.String() + "\x00" + normalize.Fold(canonical)
		r, ok := byEntity[key]
		if !ok {
			r = &core.SearchResult{
				Id:    core.IDFromContent(key),
				Value: canonical,
				Type:  m.Type,
			}
			byEntity[key] = r
			results = append(results, r)
		}
		r.Matches = append(r.Matches, m)
	}

	return results
}

// verifyCandidates re-localizes oracle candidates. Verification prefers an
// exact occurrence of the value; failing that, a high-similarity fuzzy hit.
// The claimed positions are never trusted.
func (e *Engine) verifyCandidates(ctx context.Context, doc *normalize.NormalizedDocument, candidates []ai.Candidate, monitor SearchMonitor) []*core.SearchResult {
	var results []*core.SearchResult

	for _, c := range candidates {
		if strings.TrimSpace(c.Value) == "" {
			monitor.OracleCandidateRejected(c.Label, c.Value, "empty value")
			continue
		}

		claimed := core.ParseValueType(c.Label)
		if claimed != core.ValueTypeUnknown && !e.registry.ValidateValue(claimed, c.Value) {
			monitor.OracleCandidateRejected(c.Label, c.Value, "value does not match claimed type")
			continue
		}

		matches := e.matcher.FindExact(c.Value, doc, claimed)
		if len(matches) == 0 {
			opts := e.fuzzyOpts
			opts.Algorithm = core.AlgorithmHybrid
			opts.MinScore = oracleFuzzyMinScore
			opts.MaxResults = 3
			matches = fuzzy.Find(ctx, c.Value, doc, opts)
		}
		if len(matches) == 0 {
			monitor.OracleCandidateRejected(c.Label, c.Value, "position mismatch")
			continue
		}

		for i := range matches {
			matches[i].Algorithm = core.AlgorithmOracle
			matches[i].Type = claimed
		}

		monitor.OracleCandidateAccepted(c.Label, c.Value)
		results = append(results, &core.SearchResult{
			Id:      core.IDFromContent("oracle\x00" + c.Label + "\x00" + c.Value),
			Label:   c.Label,
			Value:   matches[0].Text,
			Type:    claimed,
			Matches: matches,
		})
	}
	return results
}

func filterByType(results []*core.SearchResult, hint core.ValueType) []*core.SearchResult {
	kept := results[:0]
	for _, r := range results {
		if r.Type == hint {
			kept = append(kept, r)
		}
	}
	return kept
}
