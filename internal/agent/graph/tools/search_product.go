package tools

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/catalog"
)

type SearchProductInput struct {
	Query      string `json:"query"`
	Category   string `json:"category,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

type SearchProductOutput struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}

func createSearchProductTool(cat *catalog.Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchProduct,
			Desc: "Search the STUDIO 101 desk setup catalog. Matches Korean keywords against product name, description and category (e.g. 매트, 조명, 선반, 수납, 거치대). Use \"전체\" to list every product. Returns product ID, name, price and category.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Search keywords in Korean, e.g. 데스크 매트, 조명, 모니터 선반, 전체.",
					Required: true,
				},
				"category": {
					Type: "string",
					Desc: "Optional category filter: desk-mats, storage, lighting, stands, accessories.",
				},
				"max_results": {
					Type: "number",
					Desc: "Maximum number of products to return (default: 10, max: 20)",
				},
			}),
		},
		func(ctx context.Context, in *SearchProductInput) (*SearchProductOutput, error) {
			limit := in.MaxResults
			if limit <= 0 {
				limit = defaultMaxResults
			}
			if limit > maxMaxResults {
				limit = maxMaxResults
			}

			// An empty query lists the whole catalog.
			var matched []catalog.Product
			for _, p := range cat.Search(in.Query, 0) {
				if inCategory(p, in.Category) {
					matched = append(matched, p)
				}
			}
			if len(matched) > limit {
				matched = matched[:limit]
			}

			out := &SearchProductOutput{Products: make([]model.Product, 0, len(matched))}
			for _, p := range matched {
				out.Products = append(out.Products, model.ProductFrom(p))
			}
			out.Total = len(out.Products)
			return out, nil
		},
	)
}

// inCategory accepts either the category slug or its Korean label.
func inCategory(p catalog.Product, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" || catalog.Category(category) == catalog.CategoryAll {
		return true
	}
	return strings.EqualFold(string(p.Category), category) || p.Category.Label() == category
}
