package similarity

import "github.com/intelfusion/case-similarity-api/models"

// Decision is the outcome of the merge-vs-new-case policy for one report
type Decision struct {
	// CaseID the report will be stored under
	CaseID string
	// CaseName of the adopted case; empty means a title must be generated
	// (new case, or a matched case missing its title)
	CaseName string
	// Merged is true when an existing case was adopted
	Merged bool
	// SimilarCount is the number of qualifying hits returned by the store,
	// reported even when policy rejects the merge
	SimilarCount int
}

// Policy tunes the merge decision. MinScoreMargin demands the top hit beat
// the runner-up by at least that much before a merge is accepted; zero
// disables the check and any qualifying hit wins, which matches the
// historical behavior.
type Policy struct {
	MinScoreMargin float64
}

// Decide applies the merge-vs-new-case policy. Hits arrive ordered by
// descending similarity score and already filtered by threshold; the
// top-ranked hit is authoritative, ties resolve to store order. Pure
// function, no I/O.
func Decide(candidateCaseID string, hits []models.SimilarHit, policy Policy) Decision {
	if len(hits) == 0 {
		return Decision{CaseID: candidateCaseID}
	}

	if policy.MinScoreMargin > 0 && len(hits) > 1 {
		if hits[0].Score-hits[1].Score < policy.MinScoreMargin {
			return Decision{CaseID: candidateCaseID, SimilarCount: len(hits)}
		}
	}

	top := hits[0]
	caseID := top.IDCase
	if caseID == "" {
		caseID = candidateCaseID
	}
	return Decision{
		CaseID:       caseID,
		CaseName:     top.CaseName,
		Merged:       true,
		SimilarCount: len(hits),
	}
}
