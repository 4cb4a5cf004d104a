package rigcat

import (
	"sort"
	"strings"
)

// SearchByField returns the rigs whose named field contains the query,
// case-insensitively. Catalog order is preserved. Query length validation
// is a caller concern.
func SearchByField(rigs []Rig, c Component, query string) []Rig {
	q := strings.ToLower(query)
	var results []Rig
	for _, r := range rigs {
		if strings.Contains(strings.ToLower(r.Field(c)), q) {
			results = append(results, r)
		}
	}
	return results
}

// SearchByFullConfig matches rigs against a free-text configuration query.
// The query is split on whitespace into case-folded terms; each rig is
// matched against the joined lowercase text of its cpu, gpu and ram labels.
// A rig qualifies when at least half the terms occur as substrings — the
// threshold is real division, so for a two-term query a single match is
// enough. Qualifying rigs are ranked by descending match ratio; ties keep
// catalog order. An empty query yields no results.
func SearchByFullConfig(rigs []Rig, query string) []Rig {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	type scored struct {
		rig   Rig
		score float64
	}
	var matched []scored
	for _, r := range rigs {
		text := strings.ToLower(r.CPU + " " + r.GPU + " " + r.RAM)
		matches := 0
		for _, t := range terms {
			if strings.Contains(text, t) {
				matches++
			}
		}
		if float64(matches) >= float64(len(terms))/2 {
			matched = append(matched, scored{
				rig:   r,
				score: float64(matches) / float64(len(terms)),
			})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	results := make([]Rig, 0, len(matched))
	for _, m := range matched {
		results = append(results, m.rig)
	}
	return results
}
