package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/studio101-core/server/internal/catalog"
)

const (
	ToolSearchProduct     = "search_product"
	ToolGetProductDetails = "get_product_details"

	defaultMaxResults = 10
	maxMaxResults     = 20
)

// GetQueryTools returns the read-only catalog tools offered to the response model.
func GetQueryTools(cat *catalog.Catalog) []tool.BaseTool {
	return []tool.BaseTool{
		createSearchProductTool(cat),
		createGetProductDetailsTool(cat),
	}
}

// GetToolInfos collects the schemas to bind on the chat model.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
