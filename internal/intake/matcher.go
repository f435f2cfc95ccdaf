package intake

import (
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

// MatchResult is the matcher's answer for one raw project reference.
// CandidateCount >= 2 means ProjectID is only the first of several
// candidates and the caller must ask the user to disambiguate.
type MatchResult struct {
	ProjectID      *string
	Source         domain.MatchSource
	CandidateCount int
}

// Candidate is one project that matched a reference, tagged with the pass
// that matched it first.
type Candidate struct {
	ProjectID string
	Source    domain.MatchSource
}

type matchPass struct {
	source domain.MatchSource
	terms  func(p domain.ProjectForMatching) []string
}

// passes run in priority order. A project is tagged by the first pass that hits.
var passes = []matchPass{
	{source: domain.MatchAlias, terms: func(p domain.ProjectForMatching) []string { return p.Aliases }},
	{source: domain.MatchName, terms: func(p domain.ProjectForMatching) []string { return []string{p.Name} }},
	{source: domain.MatchClient, terms: func(p domain.ProjectForMatching) []string {
		if p.ClientName == nil {
			return nil
		}
		return []string{*p.ClientName}
	}},
}

// MatchCandidates returns every project the reference matches, in discovery
// order: all alias hits first, then name hits, then client hits.
func MatchCandidates(ref string, projects []domain.ProjectForMatching) []Candidate {
	needle := normalizeTerm(ref)
	if needle == "" {
		return nil
	}

	var candidates []Candidate
	seen := make(map[string]bool, len(projects))
	for _, pass := range passes {
		for _, p := range projects {
			if seen[p.ID] {
				continue
			}
			if anyOverlap(needle, pass.terms(p)) {
				seen[p.ID] = true
				candidates = append(candidates, Candidate{ProjectID: p.ID, Source: pass.source})
			}
		}
	}
	return candidates
}

// MatchProject resolves a free-text project reference against projects.
func MatchProject(ref string, projects []domain.ProjectForMatching) MatchResult {
	candidates := MatchCandidates(ref, projects)
	if len(candidates) == 0 {
		return MatchResult{Source: domain.MatchNone}
	}
	first := candidates[0]
	id := first.ProjectID
	return MatchResult{
		ProjectID:      &id,
		Source:         first.Source,
		CandidateCount: len(candidates),
	}
}

// anyOverlap reports whether needle contains, or is contained by, any term.
// Blank terms never match; an empty alias would otherwise match everything.
func anyOverlap(needle string, terms []string) bool {
	for _, t := range terms {
		term := normalizeTerm(t)
		if term == "" {
			continue
		}
		if strings.Contains(needle, term) || strings.Contains(term, needle) {
			return true
		}
	}
	return false
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
