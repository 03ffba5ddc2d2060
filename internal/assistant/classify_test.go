package assistant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studio101-core/server/internal/assistant"
)

func TestExplain(t *testing.T) {
	v := assistant.DefaultVocabulary()

	tests := []struct {
		text   string
		intent assistant.Intent
		rule   assistant.Rule
		term   string
	}{
		{"1번 주문", assistant.IntentOrder, assistant.RuleOrderKeyword, "주문"},
		{"3번 2개 구매", assistant.IntentOrder, assistant.RuleOrderKeyword, "구매"},
		{"회전형 수납함 살래", assistant.IntentOrder, assistant.RuleOrderKeyword, "살래"},
		// order keywords win over product keywords
		{"데스크 매트 주문하고 싶어요", assistant.IntentOrder, assistant.RuleOrderKeyword, "주문"},
		{"추천 상품 구매할게요", assistant.IntentOrder, assistant.RuleOrderKeyword, "구매"},
		{"장바구니에 담아줘", assistant.IntentGeneral, assistant.RuleSearchExclusion, "장바구니"},
		{"장바구니 상품 추천", assistant.IntentGeneral, assistant.RuleSearchExclusion, "장바구니"},
		{"데스크 매트 보여줘", assistant.IntentSearch, assistant.RuleProductKeyword, "보여"},
		{"전체 상품", assistant.IntentSearch, assistant.RuleProductKeyword, "상품"},
		{"RGB 라이트", assistant.IntentSearch, assistant.RuleProductKeyword, "라이트"},
		{"포근한 느낌이 좋네요", assistant.IntentSearch, assistant.RuleCatalogToken, "포근한"},
		{"그거 있 어?", assistant.IntentSearch, assistant.RuleQuestionPattern, "있 어"},
		{"안녕하세요", assistant.IntentGeneral, assistant.RuleFallback, ""},
		{"오늘 날씨 어때", assistant.IntentGeneral, assistant.RuleFallback, ""},
		{"   ", assistant.IntentGeneral, assistant.RuleFallback, ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := assistant.Explain(tt.text, v)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, tt.rule, got.Rule)
			assert.Equal(t, tt.term, got.Term)
			assert.Equal(t, tt.intent, assistant.Classify(tt.text, v))
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	v := assistant.DefaultVocabulary()

	assert.Equal(t, assistant.IntentSearch, assistant.Classify("USB 있어?", v))
	assert.Equal(t, assistant.IntentSearch, assistant.Classify("Led", v))
}
