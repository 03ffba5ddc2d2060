package assistant

import "strings"

type Intent string

const (
	IntentOrder   Intent = "order"
	IntentSearch  Intent = "search"
	IntentGeneral Intent = "general"
)

// Rule names the classification step that decided an intent.
type Rule string

const (
	RuleOrderKeyword    Rule = "order_keyword"
	RuleSearchExclusion Rule = "search_exclusion"
	RuleProductKeyword  Rule = "product_keyword"
	RuleCatalogToken    Rule = "catalog_token"
	RuleQuestionPattern Rule = "question_pattern"
	RuleFallback        Rule = "fallback"
)

type Classification struct {
	Intent Intent
	Rule   Rule
	// Term is the keyword, catalog word, or pattern match that fired.
	Term string
}

// Classify returns the intent of a chat message.
func Classify(text string, v *Vocabulary) Intent {
	return Explain(text, v).Intent
}

// Explain classifies text and reports which rule fired. Rules are tried in
// this order, first match wins:
//
//  1. order keyword      -> order
//  2. search exclusion   -> general
//  3. product keyword    -> search
//  4. catalog word       -> search
//  5. question pattern   -> search
//  6. anything else      -> general
func Explain(text string, v *Vocabulary) Classification {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return Classification{Intent: IntentGeneral, Rule: RuleFallback}
	}

	if term, ok := containsAny(t, v.orderKeywords); ok {
		return Classification{Intent: IntentOrder, Rule: RuleOrderKeyword, Term: term}
	}
	if term, ok := containsAny(t, v.searchExclusions); ok {
		return Classification{Intent: IntentGeneral, Rule: RuleSearchExclusion, Term: term}
	}
	if term, ok := containsAny(t, v.productKeywords); ok {
		return Classification{Intent: IntentSearch, Rule: RuleProductKeyword, Term: term}
	}
	if term, ok := containsAny(t, v.catalogTokens); ok {
		return Classification{Intent: IntentSearch, Rule: RuleCatalogToken, Term: term}
	}
	for _, re := range v.questionPatterns {
		if m := re.FindString(t); m != "" {
			return Classification{Intent: IntentSearch, Rule: RuleQuestionPattern, Term: m}
		}
	}
	return Classification{Intent: IntentGeneral, Rule: RuleFallback}
}

func containsAny(text string, terms []string) (string, bool) {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return term, true
		}
	}
	return "", false
}
