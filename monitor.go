package pinpoint

import "github.com/poiesic/pinpoint/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during
// search; it doubles as the warning channel for silently dropped candidates.
type SearchMonitor interface {
	Start(query string)
	CacheHit(key core.ID)
	AfterExactSearch(matches []core.SearchMatch)
	AfterFuzzySearch(matches []core.SearchMatch)
	AfterPatternExtraction(matches []core.SearchMatch)
	OracleCandidateAccepted(label, value string)
	OracleCandidateRejected(label, value, reason string)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) CacheHit(_ core.ID)                          {}
func (n *noopMonitor) AfterExactSearch(_ []core.SearchMatch)       {}
func (n *noopMonitor) AfterFuzzySearch(_ []core.SearchMatch)       {}
func (n *noopMonitor) AfterPatternExtraction(_ []core.SearchMatch) {}
func (n *noopMonitor) OracleCandidateAccepted(_, _ string)         {}
func (n *noopMonitor) OracleCandidateRejected(_, _, _ string)      {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)               {}
