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

package match

import (
	"log/slog"
	"strings"

	"github.com/poiesic/pinpoint/core"
	"github.com/poiesic/pinpoint/extract"
	"github.com/poiesic/pinpoint/normalize"
)

const defaultContextWindow = 48

// Matcher finds exact occurrences of a query in a normalized document.
type Matcher struct {
	registry *extract.Registry
	log      *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithRegistry replaces the extraction registry used for canonicalizing and
// re-validating typed queries.
func WithRegistry(r *extract.Registry) Option {
	return func(m *Matcher) error {
		m.registry = r
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Matcher) error {
		m.log = log
		return nil
	}
}

// NewMatcher creates a Matcher with the default registry and a no-op logger.
func NewMatcher(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		registry: extract.DefaultRegistry(),
		log:      slog.Default().With("component", "matcher"),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FindExact returns every occurrence of query in the document, including
// overlapping ones. The query is folded before searching; when valueType is
// known and the query itself is a valid value of that type, the canonical
// form is searched instead. With a known valueType every hit's original text
// must pass that type's validator, so a label phrase like "rodné číslo" never
// comes back typed as a birth number.
func (m *Matcher) FindExact(query string, doc *normalize.NormalizedDocument, valueType core.ValueType) []core.SearchMatch {
	if query == "" || doc == nil || doc.Normalized == "" {
		return []core.SearchMatch{}
	}

	needle := normalize.Fold(query)
	if valueType != core.ValueTypeUnknown && m.registry.ValidateValue(valueType, query) {
		if canonical := m.registry.CanonicalValue(valueType, query); canonical != "" {
			needle = normalize.Fold(canonical)
		}
	}
	if needle == "" {
		return []core.SearchMatch{}
	}

	matches := []core.SearchMatch{}
	hay := doc.Normalized
	for from := 0; ; {
		idx := strings.Index(hay[from:], needle)
		if idx < 0 {
			break
		}
		start := from + idx
		from = start + 1

		origStart, origEnd := doc.OriginalSpan(start, start+len(needle))
		text := doc.Original[origStart:origEnd]
		if valueType != core.ValueTypeUnknown && !m.registry.ValidateValue(valueType, text) {
			m.log.Debug("exact hit failed type validation", "type", valueType, "text", text)
			continue
		}

		matches = append(matches, core.SearchMatch{
			Start:      origStart,
			End:        origEnd,
			Text:       text,
			Score:      1.0,
			Confidence: 1.0,
			Type:       valueType,
			Algorithm:  core.AlgorithmExact,
			Context:    core.ContextAround(doc.Original, origStart, origEnd, defaultContextWindow),
		})
	}
	return matches
}
