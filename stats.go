package rigcat

import (
	"math"
	"sort"
)

// PriceSummary describes the distribution of numeric prices in a catalog.
type PriceSummary struct {
	// Considered is the number of rigs with a numeric price.
	Considered int

	// Total is the catalog size the prices were drawn from.
	Total int

	Mean   int // integer-truncated mean
	Min    int
	Max    int
	Median int // lower-middle element for even-sized inputs
}

// SummarizePrices computes price statistics over the catalog, ignoring
// rigs whose price is unspecified or not purely numeric. Returns nil when
// no numeric prices exist.
//
// The median is the element at index n/2 of the ascending-sorted prices,
// so for even-sized inputs it is the lower-middle element rather than the
// average of the two middle values.
func SummarizePrices(rigs []Rig) *PriceSummary {
	var prices []int
	for _, r := range rigs {
		if n, ok := ParsePrice(r.Price); ok {
			prices = append(prices, n)
		}
	}
	if len(prices) == 0 {
		return nil
	}

	sorted := make([]int, len(prices))
	copy(sorted, prices)
	sort.Ints(sorted)

	sum := 0
	for _, p := range prices {
		sum += p
	}

	return &PriceSummary{
		Considered: len(prices),
		Total:      len(rigs),
		Mean:       sum / len(prices),
		Min:        sorted[0],
		Max:        sorted[len(sorted)-1],
		Median:     sorted[len(sorted)/2],
	}
}

// ComponentCount is one entry of a component frequency table.
type ComponentCount struct {
	Value   string
	Count   int
	Percent float64 // share of the whole catalog, one decimal place
}

// CountComponents builds a frequency table for the given component field.
// Entries are ordered by descending count; ties keep first-encountered
// order. Percentages are relative to the full catalog size.
func CountComponents(rigs []Rig, c Component) []ComponentCount {
	if len(rigs) == 0 {
		return nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string
	for i, r := range rigs {
		v := r.Field(c)
		if _, ok := counts[v]; !ok {
			firstSeen[v] = i
			order = append(order, v)
		}
		counts[v]++
	}

	entries := make([]ComponentCount, 0, len(order))
	for _, v := range order {
		pct := float64(counts[v]) / float64(len(rigs)) * 100
		entries = append(entries, ComponentCount{
			Value:   v,
			Count:   counts[v],
			Percent: math.Round(pct*10) / 10,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Value] < firstSeen[entries[j].Value]
	})

	return entries
}

// CatalogOverview is a compact headline view of the catalog.
type CatalogOverview struct {
	Total        int
	MeanPrice    int // 0 when no rig has a numeric price
	DistinctCPUs int
	DistinctGPUs int
}

// Overview computes the headline statistics for the catalog.
func Overview(rigs []Rig) *CatalogOverview {
	o := &CatalogOverview{Total: len(rigs)}
	if ps := SummarizePrices(rigs); ps != nil {
		o.MeanPrice = ps.Mean
	}
	cpus := make(map[string]struct{})
	gpus := make(map[string]struct{})
	for _, r := range rigs {
		cpus[r.CPU] = struct{}{}
		gpus[r.GPU] = struct{}{}
	}
	o.DistinctCPUs = len(cpus)
	o.DistinctGPUs = len(gpus)
	return o
}
