package rigcat

// ExtractResult holds the rigs extracted from an HTML snapshot together
// with a per-batch report. Malformed cards are skipped, not fatal: the
// extractor keeps going and accounts for them here.
type ExtractResult struct {
	// Rigs are the extracted records in document order.
	Rigs []Rig

	// Parsed is the number of cards successfully extracted.
	Parsed int

	// Skipped is the number of cards that failed to parse.
	Skipped int

	// LastErr is the most recent card-level parse error, nil if none.
	LastErr error
}

// Extractor extracts rig records from an HTML document.
type Extractor interface {
	// Extract parses a full HTML document and returns the rigs found in
	// its listing cards. A structurally empty or card-less document
	// yields an empty result, not an error.
	Extract(html string) (*ExtractResult, error)
}
