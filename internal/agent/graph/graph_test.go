package graph_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio101-core/server/internal/agent/graph"
	"github.com/studio101-core/server/internal/agent/graph/conversations"
	"github.com/studio101-core/server/internal/agent/graph/nodes"
	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/chatlog"
)

// scriptedModel answers call n with reply(n) and records every input.
type scriptedModel struct {
	mu     sync.Mutex
	reply  func(call int) (*schema.Message, error)
	inputs [][]*schema.Message
	bound  []*schema.ToolInfo
}

func (m *scriptedModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, append([]*schema.Message(nil), input...))
	return m.reply(len(m.inputs))
}

func (m *scriptedModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *scriptedModel) BindTools(tools []*schema.ToolInfo) error {
	m.bound = tools
	return nil
}

func (m *scriptedModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

type stubHistory struct {
	records []chatlog.Record
}

func (s stubHistory) History(ctx context.Context, sessionID string) ([]chatlog.Record, error) {
	return s.records, nil
}

func toolCall(name, args string) *schema.Message {
	return schema.AssistantMessage("", []schema.ToolCall{{
		Function: schema.FunctionCall{Name: name, Arguments: args},
	}})
}

func newRunner(t *testing.T, cm *scriptedModel, maxToolCalls int, history model.HistoryReader) graph.Runner {
	t.Helper()
	var conv model.ConversationConfig
	conv.MaxTurns = 10
	r, err := graph.NewRunner(context.Background(), &graph.GraphConfig{
		ChatModels:           &nodes.ChatModels{Response: cm, ResponseModelName: "gemini-2.5-flash"},
		MessagesManager:      conversations.NewMessagesManager(history, conv),
		ResponsePromptConfig: &model.ResponsePromptConfig{BusinessName: "STUDIO 101"},
		Catalog:              catalog.Default(),
		ToolMaxCalls:         maxToolCalls,
	})
	require.NoError(t, err)
	return r
}

func TestCompleteDirectAnswer(t *testing.T) {
	cm := &scriptedModel{reply: func(int) (*schema.Message, error) {
		msg := schema.AssistantMessage("네, 89,000원입니다.", nil)
		msg.ResponseMeta = &schema.ResponseMeta{Usage: &schema.TokenUsage{PromptTokens: 1000, CompletionTokens: 100, TotalTokens: 1100}}
		return msg, nil
	}}
	history := stubHistory{records: []chatlog.Record{
		chatlog.NewRecord(nil, "s1", chatlog.SenderUser, "안녕", nil, time.Now()),
		chatlog.NewRecord(nil, "s1", chatlog.SenderBot, "안녕하세요!", nil, time.Now()),
		chatlog.NewRecord(nil, "s1", chatlog.SenderUser, "펠트 매트 얼마예요?", nil, time.Now()),
	}}
	r := newRunner(t, cm, 3, history)

	got, err := r.Complete(context.Background(), "s1", "펠트 매트 얼마예요?")
	require.NoError(t, err)
	assert.Equal(t, "네, 89,000원입니다.", got)

	require.Len(t, cm.bound, 2)
	require.Equal(t, 1, cm.calls())
	in := cm.inputs[0]
	require.Len(t, in, 4)
	assert.Equal(t, schema.System, in[0].Role)
	assert.Contains(t, in[0].Content, "1. 무선 충전 모듈형 펠트 데스크 매트 - 89,000원")
	assert.Equal(t, schema.Assistant, in[2].Role)
	assert.Equal(t, schema.User, in[3].Role)
	assert.Equal(t, "펠트 매트 얼마예요?", in[3].Content)
}

func TestCompleteRunsCatalogTools(t *testing.T) {
	cm := &scriptedModel{reply: func(call int) (*schema.Message, error) {
		if call == 1 {
			return toolCall("search_product", `{"query":" 데스크 매트 ","max_results":"5"}`), nil
		}
		return schema.AssistantMessage("데스크 매트는 3종이 있어요.", nil), nil
	}}
	r := newRunner(t, cm, 3, nil)

	got, err := r.Complete(context.Background(), "s1", "데스크 매트 종류 알려줘")
	require.NoError(t, err)
	assert.Equal(t, "데스크 매트는 3종이 있어요.", got)

	require.Equal(t, 2, cm.calls())
	second := cm.inputs[1]
	assistant := second[len(second)-2]
	require.Len(t, assistant.ToolCalls, 1)
	assert.Equal(t, "call_1", assistant.ToolCalls[0].ID)

	result := second[len(second)-1]
	assert.Equal(t, schema.Tool, result.Role)
	assert.Equal(t, "call_1", result.ToolCallID)
	assert.Contains(t, result.Content, "무선 충전 모듈형 펠트 데스크 매트")
	assert.Contains(t, result.Content, `"total":3`)
}

func TestCompleteUnknownToolDoesNotFail(t *testing.T) {
	cm := &scriptedModel{reply: func(call int) (*schema.Message, error) {
		if call == 1 {
			return toolCall("check_inventory", `{}`), nil
		}
		return schema.AssistantMessage("재고 정보는 제공되지 않아요.", nil), nil
	}}
	r := newRunner(t, cm, 3, nil)

	got, err := r.Complete(context.Background(), "s1", "재고 있어요?")
	require.NoError(t, err)
	assert.Equal(t, "재고 정보는 제공되지 않아요.", got)

	second := cm.inputs[1]
	assert.Contains(t, second[len(second)-1].Content, "unknown_tool")
}

func TestCompleteStopsAtToolBudget(t *testing.T) {
	cm := &scriptedModel{reply: func(int) (*schema.Message, error) {
		return toolCall("get_product_details", `{"product_id":"1"}`), nil
	}}
	r := newRunner(t, cm, 1, nil)

	got, err := r.Complete(context.Background(), "s1", "1번 자세히")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.Equal(t, 2, cm.calls())
	second := cm.inputs[1]
	notice := second[len(second)-1]
	assert.Equal(t, schema.System, notice.Role)
	assert.True(t, strings.HasPrefix(notice.Content, "SYSTEM NOTICE"))
	assert.Contains(t, second[len(second)-2].Content, `"found":true`)
}

func TestCompletePropagatesModelError(t *testing.T) {
	cm := &scriptedModel{reply: func(int) (*schema.Message, error) {
		return nil, errors.New("gemini unavailable")
	}}
	r := newRunner(t, cm, 3, nil)

	_, err := r.Complete(context.Background(), "s1", "안녕")
	assert.ErrorContains(t, err, "gemini unavailable")
}

func TestBuildGraphValidatesConfig(t *testing.T) {
	ctx := context.Background()
	cm := &scriptedModel{}
	var conv model.ConversationConfig
	valid := func() *graph.GraphConfig {
		return &graph.GraphConfig{
			ChatModels:           &nodes.ChatModels{Response: cm},
			MessagesManager:      conversations.NewMessagesManager(nil, conv),
			ResponsePromptConfig: &model.ResponsePromptConfig{},
			Catalog:              catalog.Default(),
		}
	}

	_, err := graph.BuildGraph(ctx, nil)
	assert.Error(t, err)

	for name, mutate := range map[string]func(*graph.GraphConfig){
		"no models":  func(c *graph.GraphConfig) { c.ChatModels = nil },
		"no manager": func(c *graph.GraphConfig) { c.MessagesManager = nil },
		"no prompt":  func(c *graph.GraphConfig) { c.ResponsePromptConfig = nil },
		"no catalog": func(c *graph.GraphConfig) { c.Catalog = nil },
	} {
		cfg := valid()
		mutate(cfg)
		_, err := graph.BuildGraph(ctx, cfg)
		assert.Error(t, err, name)
	}

	_, err = graph.BuildGraph(ctx, valid())
	assert.NoError(t, err)
}
