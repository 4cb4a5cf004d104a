// Package goquery implements HTML card extraction using PuerkitoBio/goquery.
package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/avolkov/rigcat"
)

// cardClassFragment identifies listing cards in the snapshot markup.
const cardClassFragment = "card card-outside computer-"

// Localized label fragments mapped to rig fields. Matching is
// case-insensitive and tolerates trailing punctuation in the label.
const (
	labelCPU = "процессор"
	labelGPU = "видеокарта"
	labelRAM = "оперативная память"
)

// Ensure Extractor implements rigcat.Extractor at compile time.
var _ rigcat.Extractor = (*Extractor)(nil)

// Extractor extracts rig records from listing-card HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses a full HTML document and returns the rigs found in its
// listing cards. Cards that fail to parse are skipped and accounted for in
// the result; a document with no cards yields an empty result.
func (e *Extractor) Extract(html string) (*rigcat.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, rigcat.Errorf(rigcat.EINVALID, "failed to parse HTML: %v", err)
	}

	res := &rigcat.ExtractResult{}

	doc.Find("div").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		return strings.Contains(class, cardClassFragment)
	}).Each(func(_ int, card *goquery.Selection) {
		rig, err := extractCard(card)
		if err != nil {
			res.Skipped++
			res.LastErr = err
			return
		}
		res.Rigs = append(res.Rigs, rig)
		res.Parsed++
	})

	return res, nil
}

// extractCard pulls the labeled component fields and the price out of a
// single card. A card with no recognizable structure at all is an error;
// a card merely missing some fields still produces a record.
func extractCard(card *goquery.Selection) (rigcat.Rig, error) {
	var rig rigcat.Rig

	items := card.Find("li.card__system__item")
	fields := 0
	items.Each(func(_ int, item *goquery.Selection) {
		title := item.Find("span.card__system__title").First()
		value := item.Find("span.card__system__value").First()
		if title.Length() == 0 || value.Length() == 0 {
			return
		}

		key := normalizeKey(title.Text())
		val := strings.TrimSpace(value.Text())

		switch {
		case strings.Contains(key, labelCPU):
			rig.CPU = val
			fields++
		case strings.Contains(key, labelGPU):
			rig.GPU = val
			fields++
		case strings.Contains(key, labelRAM):
			rig.RAM = val
			fields++
		}
	})

	price, hasPriceElement := extractPrice(card)
	rig.Price = price

	if fields == 0 && !hasPriceElement {
		return rigcat.Rig{}, rigcat.Errorf(rigcat.EINVALID, "card has no recognizable fields")
	}

	return rig, nil
}

// extractPrice locates the card's price element, preferring the primary
// selector and falling back to the legacy one. The element text is reduced
// to its digits; no digits (or no element) means the price is unspecified.
func extractPrice(card *goquery.Selection) (price string, found bool) {
	el := card.Find("div.card__price").First()
	if el.Length() == 0 {
		el = card.Find("div.price").First()
	}
	if el.Length() == 0 {
		return rigcat.PriceUnspecified, false
	}

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, el.Text())

	if digits == "" {
		return rigcat.PriceUnspecified, true
	}

	// Reformat through the integer value so leading zeros and grouping
	// separators collapse into a canonical label.
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return rigcat.FormatPrice(n), true
}

// normalizeKey lowercases a field label and strips the trailing colon the
// markup attaches to titles.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, ":", "")))
}
