package model

// FailureRecord holds a rejected candidate together with the issues it failed on
type FailureRecord struct {
	Item   *Item    `json:"item"`
	Issues []string `json:"issues"`
}

// GenerationStats accumulates counters over one batch generation run.
// It is a report artifact, never persisted.
type GenerationStats struct {
	Attempted int             `json:"attempted"`
	Passed    int             `json:"passed"`
	Failed    int             `json:"failed"`
	Failures  []FailureRecord `json:"failures,omitempty"`
}

// RecordFailure counts a rejected candidate and keeps it for the report
func (s *GenerationStats) RecordFailure(item *Item, issues []string) {
	s.Failed++
	s.Failures = append(s.Failures, FailureRecord{Item: item, Issues: issues})
}

// RecordPass counts an accepted candidate
func (s *GenerationStats) RecordPass() {
	s.Passed++
}
