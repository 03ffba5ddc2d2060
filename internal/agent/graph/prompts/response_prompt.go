package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/studio101-core/server/internal/agent/graph/tools"
	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/catalog"
)

//go:embed template/response_prompt.txt
var coreSystemPrompt string

type productLine struct {
	Position      int
	Name          string
	Price         string
	CategoryLabel string
	Description   string
}

// RenderResponseSystem renders the system prompt with the full product list
// through the Eino prompt component, which also fires prompt callbacks.
func RenderResponseSystem(ctx context.Context, config model.ResponsePromptConfig, cat *catalog.Catalog) (string, error) {
	if cat == nil {
		return "", fmt.Errorf("response prompt render: catalog is nil")
	}

	products := cat.All()
	lines := make([]productLine, 0, len(products))
	for i, p := range products {
		lines = append(lines, productLine{
			Position:      i + 1,
			Name:          p.Name,
			Price:         p.Price,
			CategoryLabel: p.Category.Label(),
			Description:   p.Description,
		})
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"BusinessName": config.BusinessName,
		"Products":     lines,
		"SearchTool":   tools.ToolSearchProduct,
		"DetailsTool":  tools.ToolGetProductDetails,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("response prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("response prompt render: empty result")
	}
	return msgs[0].Content, nil
}
