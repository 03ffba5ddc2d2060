package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/studio101-core/server/internal/agent/graph/conversations"
	"github.com/studio101-core/server/internal/agent/graph/nodes"
	"github.com/studio101-core/server/internal/agent/graph/observers"
	"github.com/studio101-core/server/internal/agent/graph/tools"
	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/catalog"
	logx "github.com/studio101-core/server/pkg/logger"
)

// Runner executes the compiled graph for one user turn.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (string, error)
	// Complete answers text for the session; it satisfies assistant.Completer.
	Complete(ctx context.Context, sessionID, text string) (string, error)
}

// Config holds everything needed to compose the response graph end-to-end,
// including the Gemini client.
type Config struct {
	APIKey         string
	BaseURL        string
	ResponseModel  model.ResponseModelConfig
	ResponsePrompt model.ResponsePromptConfig
	Conversation   model.ConversationConfig
	History        model.HistoryReader
	Catalog        *catalog.Catalog
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModels           *nodes.ChatModels
	MessagesManager      *conversations.MessagesManager
	ResponsePromptConfig *model.ResponsePromptConfig
	Catalog              *catalog.Catalog
	ToolMaxCalls         int
}

// GraphBuilder handles the construction of the agent conversation graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	if cost, ok := out.Extra["usage_cost_total_usd"].(float64); ok {
		logx.Debug().Str("session_id", in.SessionID).Float64("total_cost_usd", cost).Msg("Query cost")
	}
	return out.Content, nil
}

func (r *graphRunner) Complete(ctx context.Context, sessionID, text string) (string, error) {
	return r.Invoke(ctx, model.QueryInput{SessionID: sessionID, Query: text})
}

// BuildResponseGraph creates the Gemini model and messages manager, builds the graph, and returns a Runner.
func BuildResponseGraph(ctx context.Context, cfg Config) (Runner, error) {
	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		RespConfig: &cfg.ResponseModel,
	})
	if err != nil {
		return nil, err
	}

	return NewRunner(ctx, &GraphConfig{
		ChatModels:           cms,
		MessagesManager:      conversations.NewMessagesManager(cfg.History, cfg.Conversation),
		ResponsePromptConfig: &cfg.ResponsePrompt,
		Catalog:              cfg.Catalog,
		ToolMaxCalls:         cfg.Conversation.Tools.MaxCalls,
	})
}

// NewRunner compiles the graph around already constructed chat models.
func NewRunner(ctx context.Context, cfg *GraphConfig) (Runner, error) {
	runnable, err := BuildGraph(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logx.Debug().Msg("Response graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled agent graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Response == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.ResponsePromptConfig == nil {
		return nil, fmt.Errorf("response prompt config is nil")
	}
	if config.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.setupTools(ctx); err != nil {
		return nil, err
	}
	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// setupTools binds the catalog tools to the response model and adds the executor node.
func (b *GraphBuilder) setupTools(ctx context.Context) error {
	catalogTools := tools.GetQueryTools(b.config.Catalog)
	toolInfos, err := tools.GetToolInfos(ctx, catalogTools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return fmt.Errorf("failed to get tool infos: %w", err)
	}

	if err := b.config.ChatModels.BindToolsToResponseModel(ctx, toolInfos); err != nil {
		return err
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               catalogTools,
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			logx.Warn().
				Str("tool_name", name).
				Str("arguments", input).
				Msg("Unknown or invalid tool call; returning fallback result")
			return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
		},
		ToolArgumentsHandler: func(ctx context.Context, name, arguments string) (string, error) {
			return sanitizeArguments(name, arguments), nil
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	return b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(nodes.NewToolExecutorPreHandler(b.config.ToolMaxCalls)),
	)
}

// sanitizeArguments coerces model-supplied arguments into the shapes the
// tools decode. Anything it cannot read is passed through unchanged.
func sanitizeArguments(name, arguments string) string {
	var m map[string]any
	if err := json.Unmarshal([]byte(arguments), &m); err != nil {
		return arguments
	}

	switch name {
	case tools.ToolSearchProduct:
		if v, ok := m["query"]; ok {
			if s, isString := v.(string); isString {
				m["query"] = strings.TrimSpace(s)
			} else {
				m["query"] = strings.TrimSpace(fmt.Sprint(v))
			}
		}
		if v, ok := m["category"]; ok {
			if s, isString := v.(string); isString {
				m["category"] = strings.TrimSpace(s)
			} else {
				delete(m, "category")
			}
		}
		if v, ok := m["max_results"]; ok {
			if n, ok := toInt(v); ok {
				m["max_results"] = clampInt(n, 1, 20)
			} else {
				delete(m, "max_results")
			}
		}
	case tools.ToolGetProductDetails:
		if v, ok := m["product_id"]; ok {
			if n, ok := toInt(v); ok {
				m["product_id"] = n
			} else {
				delete(m, "product_id")
			}
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return arguments
	}
	return string(b)
}

// toInt reads JSON numbers and numeric strings.
func toInt(v any) (int, bool) {
	switch vv := v.(type) {
	case float64:
		return int(vv), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(vv))
		return n, err == nil
	}
	return 0, false
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() error {
	if err := b.graph.AddLambdaNode(nodes.NodeInputConverter,
		nodes.NewInputConverterNode(b.config.MessagesManager, b.config.ResponsePromptConfig, b.config.Catalog),
		compose.WithStatePreHandler(nodes.NewInputConverterPreHandler()),
	); err != nil {
		return fmt.Errorf("add %s: %w", nodes.NodeInputConverter, err)
	}

	if err := b.graph.AddChatModelNode(nodes.NodeResponseChatModel,
		b.config.ChatModels.Response,
		compose.WithStatePreHandler(nodes.NewResponseChatModelPreHandler(b.config.ToolMaxCalls)),
		compose.WithStatePostHandler(nodes.NewResponseChatModelPostHandler(b.config.ChatModels.ResponseModelName)),
	); err != nil {
		return fmt.Errorf("add %s: %w", nodes.NodeResponseChatModel, err)
	}
	return nil
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeInputConverter, nodes.NodeResponseChatModel},
		{nodes.NodeToolExecutor, nodes.NodeResponseChatModel},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	decisionBranch := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			compose.END:            true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeResponseChatModel, decisionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding decision branch")
		return fmt.Errorf("error adding decision branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	// Each tool round costs two steps.
	maxSteps := max(20, 10+b.config.ToolMaxCalls*2)

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}

// clampInt returns v limited to [lo, hi].
func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
