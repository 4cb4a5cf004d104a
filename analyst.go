package rigcat

import "context"

// CatalogSummary is the condensed catalog view handed to the analysis
// service when building prompts. Component lists hold distinct values in
// first-encountered order.
type CatalogSummary struct {
	Total     int
	HasPrices bool
	MinPrice  int
	MaxPrice  int
	CPUs      []string
	GPUs      []string
	RAMs      []string
}

// Summarize condenses the catalog for prompt building.
func Summarize(rigs []Rig) *CatalogSummary {
	s := &CatalogSummary{Total: len(rigs)}
	s.CPUs = distinctValues(rigs, ComponentCPU)
	s.GPUs = distinctValues(rigs, ComponentGPU)
	s.RAMs = distinctValues(rigs, ComponentRAM)
	if ps := SummarizePrices(rigs); ps != nil {
		s.HasPrices = true
		s.MinPrice = ps.Min
		s.MaxPrice = ps.Max
	}
	return s
}

func distinctValues(rigs []Rig, c Component) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, r := range rigs {
		v := r.Field(c)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// Analyst provides natural-language analysis over the catalog via an
// external text-generation service. Implementations fail with EUNAVAILABLE
// on network errors, timeouts and empty responses; callers surface an
// "analysis unavailable" message and never retry automatically.
type Analyst interface {
	// Analyze produces a general analysis of the summarized catalog.
	Analyze(ctx context.Context, summary *CatalogSummary) (string, error)

	// Answer answers a free-text question grounded in the summarized
	// catalog. Returns EINVALID if the question is empty.
	Answer(ctx context.Context, summary *CatalogSummary, question string) (string, error)
}
