package tfidf

import "sort"

// Presentation defaults for Rank. Callers usually take these from config.
const (
	DefaultMinProbability = 0.05
	DefaultMaxCandidates  = 5
)

// Infer scores every candidate task for an untagged remark and returns a
// probability distribution over tasks. It returns nil when no prediction is
// possible: the remark tokenizes to nothing, no token matches the trained
// vocabulary, or the aggregate score is zero. Inference never fails.
func (m *Model) Infer(remark string) map[string]float64 {
	tokens := Tokenize(remark)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	for _, w := range tokens {
		counts[w]++
	}

	totalTokens := float64(len(tokens))
	scores := make(map[string]float64)
	for w, n := range counts {
		entry, ok := m.Words[w]
		if !ok {
			// Never seen during training; contributes nothing.
			continue
		}
		tfidf := float64(n) / totalTokens * entry.IDFScore
		for task, co := range entry.TaskCooccurrence {
			scores[task] += tfidf * float64(co)
		}
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	if sum == 0 {
		return nil
	}
	for task := range scores {
		scores[task] /= sum
	}
	return scores
}

// Candidate is one ranked task suggestion.
type Candidate struct {
	Task        string  `json:"task"`
	Probability float64 `json:"probability"`
}

// Rank turns a probability distribution into a ranked candidate list:
// descending by probability (ties broken by task name so output is
// reproducible), dropping candidates below minProbability and capping at
// maxCandidates. An empty result means no task meets the criteria; that is a
// reportable outcome, not an error.
func Rank(dist map[string]float64, minProbability float64, maxCandidates int) []Candidate {
	candidates := make([]Candidate, 0, len(dist))
	for task, p := range dist {
		if p < minProbability {
			continue
		}
		candidates = append(candidates, Candidate{Task: task, Probability: p})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Probability != candidates[j].Probability {
			return candidates[i].Probability > candidates[j].Probability
		}
		return candidates[i].Task < candidates[j].Task
	})

	if maxCandidates > 0 && len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}
