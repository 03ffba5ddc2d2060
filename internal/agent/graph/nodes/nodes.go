package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/studio101-core/server/internal/agent/graph/conversations"
	"github.com/studio101-core/server/internal/agent/graph/prompts"
	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/catalog"
	logx "github.com/studio101-core/server/pkg/logger"
)

const (
	NodeInputConverter    = "InputConverter"
	NodeResponseChatModel = "ResponseChatModel"
	NodeToolExecutor      = "ToolExecutor"
)

// NewInputConverterPreHandler seeds the per-query state.
func NewInputConverterPreHandler() func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		s.SessionID = in.SessionID
		s.History = nil
		s.ToolCallCount = 0
		s.ToolCallLimitReached = false
		s.ToolCallIDSeq = 0
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewInputConverterNode renders the catalog system prompt and assembles it
// with the recent conversation.
func NewInputConverterNode(
	mm *conversations.MessagesManager,
	promptCfg *model.ResponsePromptConfig,
	cat *catalog.Catalog,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) ([]*schema.Message, error) {
		systemPrompt, err := prompts.RenderResponseSystem(ctx, *promptCfg, cat)
		if err != nil {
			return nil, err
		}

		messages, err := mm.BuildContext(ctx, input.SessionID, systemPrompt, input.Query)
		if err != nil {
			return nil, fmt.Errorf("build response context: %w", err)
		}
		return messages, nil
	})
}

// NewResponseChatModelPreHandler accumulates the model input in state and
// appends a wrap-up notice once the tool budget is spent.
func NewResponseChatModelPreHandler(maxToolCalls int) func(context.Context, []*schema.Message, *model.AppState) ([]*schema.Message, error) {
	budget := newToolBudget(maxToolCalls)
	return func(ctx context.Context, in []*schema.Message, state *model.AppState) ([]*schema.Message, error) {
		fillToolCallIDs(in, state.History)
		state.History = append(state.History, in...)

		if budget.exhaust(state) {
			state.History = append(state.History, budget.wrapUpNotice())
		}
		return state.History, nil
	}
}

// fillToolCallIDs gives tool results without an id the id of the most recent
// assistant tool call, for providers that drop it.
func fillToolCallIDs(in, history []*schema.Message) {
	if len(in) == 0 {
		return
	}
	last := in[len(in)-1]
	if last == nil || last.Role != schema.Tool || strings.TrimSpace(last.ToolCallID) != "" {
		return
	}
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg == nil || msg.Role != schema.Assistant || len(msg.ToolCalls) == 0 {
			continue
		}
		if id := msg.ToolCalls[0].ID; strings.TrimSpace(id) != "" {
			last.ToolCallID = id
		}
		return
	}
}

// NewResponseChatModelPostHandler records usage cost and normalizes tool call ids.
func NewResponseChatModelPostHandler(modelName string) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		if out == nil {
			return nil, fmt.Errorf("response model returned no message")
		}
		recordUsage(out, state, modelName)

		for i := range out.ToolCalls {
			if strings.TrimSpace(out.ToolCalls[i].ID) == "" {
				state.ToolCallIDSeq++
				out.ToolCalls[i].ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
			}
		}

		state.History = append(state.History, out)

		if len(out.ToolCalls) > 0 {
			logx.Debug().Str("session_id", state.SessionID).Int("tool_count", len(out.ToolCalls)).Msg("Calling tools")
		} else {
			logx.Debug().Str("session_id", state.SessionID).Msg("AI response ready")
		}
		return out, nil
	}
}

func recordUsage(out *schema.Message, state *model.AppState, modelName string) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(modelName))
	state.TotalCostUSD += totalC

	if out.Extra == nil {
		out.Extra = map[string]any{}
	}
	out.Extra["usage_cost"] = map[string]any{
		"currency":          "USD",
		"model":             modelName,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
		"input_cost":        inC,
		"output_cost":       outC,
		"total_cost":        totalC,
	}
	out.Extra["usage_cost_total_usd"] = state.TotalCostUSD

	logx.Debug().
		Str("session_id", state.SessionID).
		Str("node", NodeResponseChatModel).
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

// NewToolExecutorCondition routes tool calls to the executor until the
// budget is spent.
func NewToolExecutorCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, input *schema.Message) (string, error) {
		var limitReached bool
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			limitReached = state.ToolCallLimitReached
			return nil
		})
		if err != nil {
			return "", err
		}

		if limitReached {
			logx.Debug().Msg("Tool limit reached previously - routing to end")
			return compose.END, nil
		}
		if len(input.ToolCalls) > 0 {
			return NodeToolExecutor, nil
		}
		return compose.END, nil
	}
}

// NewToolExecutorPreHandler counts tool executions against the budget.
func NewToolExecutorPreHandler(maxToolCalls int) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	budget := newToolBudget(maxToolCalls)
	return func(ctx context.Context, in *schema.Message, state *model.AppState) (*schema.Message, error) {
		if budget.spend(state) {
			logx.Warn().
				Int("tool_call_count", state.ToolCallCount).
				Int("max_tool_calls", int(budget)).
				Str("session_id", state.SessionID).
				Msg("Tool call limit exceeded - flagging and continuing")
		}
		return in, nil
	}
}
