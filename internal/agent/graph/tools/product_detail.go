package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/catalog"
)

type GetProductDetailsInput struct {
	ProductID int `json:"product_id"`
}

type ProductDetails struct {
	model.Product
	Image string `json:"image"`
}

// GetProductDetailsOutput reports a miss as Found=false so the model can
// recover instead of failing the run.
type GetProductDetailsOutput struct {
	Found   bool            `json:"found"`
	Product *ProductDetails `json:"product,omitempty"`
}

func createGetProductDetailsTool(cat *catalog.Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetProductDetails,
			Desc: "Get the full details of one product: name, full description, price in won, category and image. Use this when the customer asks about a specific product.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     "integer",
					Desc:     "Product ID taken from search_product results or the product list in the system prompt.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetProductDetailsInput) (*GetProductDetailsOutput, error) {
			p, ok := cat.ByID(in.ProductID)
			if !ok {
				return &GetProductDetailsOutput{}, nil
			}
			return &GetProductDetailsOutput{
				Found:   true,
				Product: &ProductDetails{Product: model.ProductFrom(p), Image: p.Image},
			}, nil
		},
	)
}
