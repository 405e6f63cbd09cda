package tfidf

import "math"

// Sample is one labeled observation from the timesheet log. Samples with an
// empty Task are ignored during training.
type Sample struct {
	Task   string
	Remark string
}

// WordEntry holds the per-word statistics accumulated during training.
type WordEntry struct {
	// TotalOccurrence is the raw term count across all labeled remarks.
	TotalOccurrence int

	// DocumentFrequency counts labeled remarks containing the word at least
	// once. Always ≤ TotalOccurrence, and ≥ 1 for any stored entry.
	DocumentFrequency int

	// TaskCooccurrence counts occurrences (with repetition) of the word
	// within remarks labeled with each task.
	TaskCooccurrence map[string]int

	// IDFScore is ln(TotalLabeledRemarks/DocumentFrequency), derived once
	// after all samples are counted.
	IDFScore float64
}

// Model is the trained TF-IDF co-occurrence model. It is built once per run,
// read-only after Train returns, and never persisted.
type Model struct {
	TotalLabeledRemarks int
	Words               map[string]*WordEntry
}

// Train builds a Model from the labeled samples. Unlabeled samples are
// skipped; a labeled sample whose remark tokenizes to nothing still counts
// toward TotalLabeledRemarks. Document frequency and occurrence counting are
// fused into one traversal with per-remark dedup tracking; the result is
// order-independent.
func Train(samples []Sample) *Model {
	m := &Model{Words: make(map[string]*WordEntry)}

	for _, s := range samples {
		if s.Task == "" {
			continue
		}
		m.TotalLabeledRemarks++

		seen := make(map[string]bool)
		for _, w := range Tokenize(s.Remark) {
			entry, ok := m.Words[w]
			if !ok {
				entry = &WordEntry{TaskCooccurrence: make(map[string]int)}
				m.Words[w] = entry
			}
			entry.TotalOccurrence++
			entry.TaskCooccurrence[s.Task]++
			if !seen[w] {
				seen[w] = true
				entry.DocumentFrequency++
			}
		}
	}

	// Derive IDF only after every sample is counted. DocumentFrequency ≥ 1
	// for every stored entry, so the log argument is always positive.
	total := float64(m.TotalLabeledRemarks)
	for _, entry := range m.Words {
		entry.IDFScore = math.Log(total / float64(entry.DocumentFrequency))
	}

	return m
}
