package assistant

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/studio101-core/server/internal/catalog"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

// VocabularyConfig is the keyword and pattern data behind classification and
// extraction.
type VocabularyConfig struct {
	OrderKeywords       []string `yaml:"order_keywords"`
	SearchExclusions    []string `yaml:"search_exclusions"`
	ProductKeywords     []string `yaml:"product_keywords"`
	QuestionPatterns    []string `yaml:"question_patterns"`
	OrderStripPatterns  []string `yaml:"order_strip_patterns"`
	SearchStripPatterns []string `yaml:"search_strip_patterns"`
	QuantityPattern     string   `yaml:"quantity_pattern"`
	OrdinalPattern      string   `yaml:"ordinal_pattern"`
	MinTokenRunes       int      `yaml:"min_token_runes"`
	MaxQuantity         int      `yaml:"max_quantity"`
}

// DefaultVocabularyConfig returns the embedded vocabulary.
func DefaultVocabularyConfig() VocabularyConfig {
	var cfg VocabularyConfig
	if err := yaml.Unmarshal(defaultVocabulary, &cfg); err != nil {
		panic(fmt.Sprintf("embedded vocabulary: %v", err))
	}
	return cfg
}

// ParseVocabularyConfig decodes a YAML document over the embedded defaults.
// Keys missing from data keep their default value.
func ParseVocabularyConfig(data []byte) (VocabularyConfig, error) {
	cfg := DefaultVocabularyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return VocabularyConfig{}, fmt.Errorf("parse vocabulary: %w", err)
	}
	return cfg, nil
}

// LoadVocabularyConfig reads the vocabulary file at path. An empty path
// yields the embedded defaults.
func LoadVocabularyConfig(path string) (VocabularyConfig, error) {
	if path == "" {
		return DefaultVocabularyConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return VocabularyConfig{}, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	return ParseVocabularyConfig(data)
}

// Vocabulary is a compiled VocabularyConfig plus the words of the catalog it
// was built for. It is immutable and safe for concurrent use.
type Vocabulary struct {
	orderKeywords    []string
	searchExclusions []string
	productKeywords  []string
	questionPatterns []*regexp.Regexp
	orderStrip       []*regexp.Regexp
	searchStrip      []*regexp.Regexp
	quantity         *regexp.Regexp
	ordinal          *regexp.Regexp
	maxQuantity      int
	catalogTokens    []string
}

func NewVocabulary(cfg VocabularyConfig, products []catalog.Product) (*Vocabulary, error) {
	v := &Vocabulary{
		orderKeywords:    normalizeTerms(cfg.OrderKeywords),
		searchExclusions: normalizeTerms(cfg.SearchExclusions),
		productKeywords:  normalizeTerms(cfg.ProductKeywords),
		maxQuantity:      cfg.MaxQuantity,
	}
	if len(v.orderKeywords) == 0 {
		return nil, fmt.Errorf("vocabulary: order keywords are required")
	}
	if v.maxQuantity < 1 {
		return nil, fmt.Errorf("vocabulary: max quantity must be positive, got %d", v.maxQuantity)
	}

	var err error
	if v.questionPatterns, err = compileAll("question pattern", cfg.QuestionPatterns); err != nil {
		return nil, err
	}
	if v.orderStrip, err = compileAll("order strip pattern", cfg.OrderStripPatterns); err != nil {
		return nil, err
	}
	if v.searchStrip, err = compileAll("search strip pattern", cfg.SearchStripPatterns); err != nil {
		return nil, err
	}
	if v.quantity, err = compileCapture("quantity pattern", cfg.QuantityPattern); err != nil {
		return nil, err
	}
	if v.ordinal, err = compileCapture("ordinal pattern", cfg.OrdinalPattern); err != nil {
		return nil, err
	}

	v.catalogTokens = catalogTokens(products, cfg.MinTokenRunes)
	return v, nil
}

// DefaultVocabulary compiles the embedded vocabulary for the default catalog.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultVocabularyConfig(), catalog.DefaultProducts)
	if err != nil {
		panic(err)
	}
	return v
}

func normalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func compileAll(kind string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("vocabulary: %s %q: %w", kind, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func compileCapture(kind, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: %s %q: %w", kind, pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("vocabulary: %s %q must capture the number", kind, pattern)
	}
	return re, nil
}

// catalogTokens collects the distinct lower-cased words of product names and
// descriptions that have at least minRunes characters.
func catalogTokens(products []catalog.Product, minRunes int) []string {
	if minRunes < 1 {
		minRunes = 1
	}
	seen := map[string]struct{}{}
	var out []string
	for _, p := range products {
		for _, w := range strings.Fields(strings.ToLower(p.Name + " " + p.Description)) {
			if utf8.RuneCountInString(w) < minRunes {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
