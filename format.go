package rigcat

import (
	"fmt"
	"strings"
)

// listingSoftLimit caps the "all configurations" style listing so a single
// reply stays well under the transport message limit.
const listingSoftLimit = 3000

// FormatRigs formats rigs as a numbered listing for display. Output is
// truncated near listingSoftLimit with a trailer noting omitted entries.
func FormatRigs(rigs []Rig) string {
	if len(rigs) == 0 {
		return "No configurations found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d configurations:\n", len(rigs))
	for i, r := range rigs {
		fmt.Fprintf(&b, "\n#%d\n", i+1)
		fmt.Fprintf(&b, "  CPU: %s\n", r.CPU)
		fmt.Fprintf(&b, "  GPU: %s\n", r.GPU)
		fmt.Fprintf(&b, "  RAM: %s\n", r.RAM)
		fmt.Fprintf(&b, "  Price: %s\n", r.Price)

		if b.Len() > listingSoftLimit && i < len(rigs)-1 {
			fmt.Fprintf(&b, "\n... and %d more configurations\n", len(rigs)-i-1)
			break
		}
	}
	return b.String()
}

// FormatPriceSummary formats price statistics for display.
func FormatPriceSummary(ps *PriceSummary) string {
	if ps == nil {
		return "No price data available."
	}

	var b strings.Builder
	b.WriteString("Price analysis\n")
	fmt.Fprintf(&b, "  priced: %d of %d\n", ps.Considered, ps.Total)
	fmt.Fprintf(&b, "  mean: %s\n", FormatPrice(ps.Mean))
	fmt.Fprintf(&b, "  min: %s\n", FormatPrice(ps.Min))
	fmt.Fprintf(&b, "  max: %s\n", FormatPrice(ps.Max))
	fmt.Fprintf(&b, "  median: %s\n", FormatPrice(ps.Median))
	return b.String()
}

// FormatComponentCounts formats a component frequency table for display.
// A positive limit shows only the top entries; zero or negative shows all.
func FormatComponentCounts(title string, counts []ComponentCount, limit int) string {
	if len(counts) == 0 {
		return "No component data available."
	}
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, c := range counts {
		value := c.Value
		if value == "" {
			value = "(not listed)"
		}
		fmt.Fprintf(&b, "  %s: %d (%.1f%%)\n", value, c.Count, c.Percent)
	}
	return b.String()
}

// FormatOverview formats the headline catalog view for display.
func FormatOverview(o *CatalogOverview) string {
	var b strings.Builder
	b.WriteString("Catalog overview\n")
	fmt.Fprintf(&b, "  configurations: %d\n", o.Total)
	fmt.Fprintf(&b, "  mean price: %s\n", FormatPrice(o.MeanPrice))
	fmt.Fprintf(&b, "  distinct CPU models: %d\n", o.DistinctCPUs)
	fmt.Fprintf(&b, "  distinct GPU models: %d\n", o.DistinctGPUs)
	return b.String()
}
