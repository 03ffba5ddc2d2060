package model_test

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"

	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/catalog"
)

func TestComputeCost(t *testing.T) {
	usage := &schema.TokenUsage{PromptTokens: 1_000_000, CompletionTokens: 200_000}
	in, out, total := model.ComputeCost(usage, model.ResolvePricing("gemini-2.5-flash"))

	assert.InDelta(t, 0.30, in, 1e-9)
	assert.InDelta(t, 0.50, out, 1e-9)
	assert.InDelta(t, 0.80, total, 1e-9)
}

func TestComputeCostUnknownModelOrUsage(t *testing.T) {
	_, _, total := model.ComputeCost(&schema.TokenUsage{PromptTokens: 10}, model.ResolvePricing("unknown"))
	assert.Zero(t, total)

	_, _, total = model.ComputeCost(nil, model.ResolvePricing("gemini-2.5-flash"))
	assert.Zero(t, total)
}

func TestProductFrom(t *testing.T) {
	p, _ := catalog.Default().ByID(1)
	got := model.ProductFrom(p)

	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "desk-mats", got.Category)
	assert.Equal(t, "데스크 매트/패드", got.CategoryLabel)
	assert.Equal(t, int64(89000), got.PriceWon)
}
