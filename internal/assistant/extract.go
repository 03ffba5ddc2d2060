package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

// ExtractQuantity reads an item count such as "2개". It returns 1 and false
// when the message has none. Counts below 1 are raised to 1.
func (v *Vocabulary) ExtractQuantity(text string) (int, bool) {
	n, ok := firstNumber(v.quantity, text)
	if !ok {
		return 1, false
	}
	return max(n, 1), true
}

// MaxQuantity is the largest quantity an order message may ask for.
func (v *Vocabulary) MaxQuantity() int {
	return v.maxQuantity
}

// ExtractLimit reads the same count as ExtractQuantity but unclamped, for use
// as a search result limit. Zero means no limit.
func (v *Vocabulary) ExtractLimit(text string) (int, bool) {
	return firstNumber(v.quantity, text)
}

// ExtractOrdinal reads a list position such as "3번".
func (v *Vocabulary) ExtractOrdinal(text string) (int, bool) {
	return firstNumber(v.ordinal, text)
}

// OrderQuery strips purchase words and counts from an order message, leaving
// the product reference.
func (v *Vocabulary) OrderQuery(text string) string {
	return stripAll(v.orderStrip, text)
}

// SearchQuery strips counts and display verbs from a search message.
func (v *Vocabulary) SearchQuery(text string) string {
	return stripAll(v.searchStrip, text)
}

func firstNumber(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func stripAll(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		text = re.ReplaceAllString(text, "")
	}
	return strings.Join(strings.Fields(text), " ")
}
