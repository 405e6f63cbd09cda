package ops

import (
	"database/sql"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/db"
	"github.com/hpungsan/tally/internal/tfidf"
	"github.com/hpungsan/tally/internal/timesheet"
)

// Suggestion is the ranked candidate list for one untagged entry. An empty
// Candidates slice means no task met the confidence criteria; the remark is
// still reported for audit.
type Suggestion struct {
	EntryID    string            `json:"entry_id"`
	From       string            `json:"from,omitempty"`
	Remark     string            `json:"remark"`
	Candidates []tfidf.Candidate `json:"candidates"`
}

// SuggestInput contains parameters for the Suggest operation.
type SuggestInput struct {
	Limit int // cap reported suggestions; 0 means all
}

// SuggestOutput contains the result of the Suggest operation.
type SuggestOutput struct {
	TrainedOn  int          `json:"trained_on"` // labeled remarks in the model
	Vocabulary int          `json:"vocabulary"` // distinct trained words
	Items      []Suggestion `json:"items"`
	Skipped    int          `json:"skipped"` // untagged entries with no usable tokens
}

// Suggest trains a TF-IDF model on every tagged entry and infers candidate
// tasks for every untagged one. The model lives only for this call; nothing
// is persisted. Untagged remarks that tokenize to nothing are skipped
// entirely; remarks with vocabulary but no candidate above the confidence
// floor are reported with an empty candidate list.
func Suggest(database *sql.DB, cfg *config.Config, input SuggestInput) (*SuggestOutput, error) {
	entries, err := db.All(database)
	if err != nil {
		return nil, err
	}

	lookup := lookupFromConfig(cfg)

	samples := make([]tfidf.Sample, 0, len(entries))
	var untagged []timesheet.Entry
	for _, e := range entries {
		if e.Labeled() {
			samples = append(samples, tfidf.Sample{
				Task:   lookup.Canonical(e.Task),
				Remark: e.Remark,
			})
		} else {
			untagged = append(untagged, e)
		}
	}

	model := tfidf.Train(samples)

	minProbability := tfidf.DefaultMinProbability
	maxCandidates := tfidf.DefaultMaxCandidates
	if cfg != nil {
		if cfg.MinProbability > 0 {
			minProbability = cfg.MinProbability
		}
		if cfg.MaxCandidates > 0 {
			maxCandidates = cfg.MaxCandidates
		}
	}

	out := &SuggestOutput{
		TrainedOn:  model.TotalLabeledRemarks,
		Vocabulary: len(model.Words),
		Items:      []Suggestion{},
	}

	for _, e := range untagged {
		if len(tfidf.Tokenize(e.Remark)) == 0 {
			// No signal at all; not even worth reporting.
			out.Skipped++
			continue
		}
		if input.Limit > 0 && len(out.Items) >= input.Limit {
			break
		}

		dist := model.Infer(e.Remark)
		out.Items = append(out.Items, Suggestion{
			EntryID:    e.ID,
			From:       e.From,
			Remark:     e.Remark,
			Candidates: tfidf.Rank(dist, minProbability, maxCandidates),
		})
	}

	return out, nil
}
