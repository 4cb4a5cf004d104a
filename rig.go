package rigcat

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Currency is the currency symbol attached to extracted prices.
const Currency = "₽"

// PriceUnspecified is the sentinel stored when a listing carries no price.
const PriceUnspecified = "unspecified"

// Rig represents one computer-configuration listing. Fields that were
// absent in the source are empty strings; Price is either
// "<integer> <currency>" or PriceUnspecified.
type Rig struct {
	CPU   string `json:"cpu"`
	GPU   string `json:"gpu"`
	RAM   string `json:"ram"`
	Price string `json:"price"`
}

// Key returns the rig's identity key: the case-folded, whitespace-normalized
// cpu, gpu and ram labels joined by "|". Two rigs with the same key are
// duplicates regardless of price or surface formatting.
func (r Rig) Key() string {
	return normalizeLabel(r.CPU) + "|" + normalizeLabel(r.GPU) + "|" + normalizeLabel(r.RAM)
}

// KeyHash returns an xxhash of the identity key as a hex string.
// Used as a cheap probabilistic pre-check before exact key comparison.
func (r Rig) KeyHash() string {
	h := xxhash.Sum64String(r.Key())
	return fmt.Sprintf("%x", h)
}

// normalizeLabel lowercases a component label and collapses internal
// whitespace so formatting differences don't defeat deduplication.
func normalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Component identifies one of the rig's searchable fields.
type Component string

// Component constants for search and statistics.
const (
	ComponentCPU Component = "cpu"
	ComponentGPU Component = "gpu"
	ComponentRAM Component = "ram"
)

// Valid reports whether c names a known component.
func (c Component) Valid() bool {
	switch c {
	case ComponentCPU, ComponentGPU, ComponentRAM:
		return true
	}
	return false
}

// Field returns the rig field named by c. Unknown components return "".
func (r Rig) Field(c Component) string {
	switch c {
	case ComponentCPU:
		return r.CPU
	case ComponentGPU:
		return r.GPU
	case ComponentRAM:
		return r.RAM
	}
	return ""
}

// ParsePrice parses a formatted price label into an integer amount.
// It strips the currency symbol and all whitespace; the remainder must be
// purely numeric. PriceUnspecified and anything else non-numeric report ok
// as false.
func ParsePrice(price string) (amount int, ok bool) {
	s := strings.ReplaceAll(price, Currency, "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n, true
}

// FormatPrice formats an integer amount as a stored price label.
func FormatPrice(amount int) string {
	return fmt.Sprintf("%d %s", amount, Currency)
}
