package nodes

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"

	"github.com/studio101-core/server/internal/agent/model"
)

func TestToolBudget(t *testing.T) {
	b := newToolBudget(2)
	s := &model.AppState{}

	assert.False(t, b.exhaust(s))
	assert.False(t, b.spend(s))
	assert.False(t, b.spend(s))
	assert.True(t, b.exhaust(s), "marks once the budget is used up")
	assert.False(t, b.exhaust(s), "only the first call reports marking")
	assert.True(t, s.ToolCallLimitReached)
	assert.True(t, b.spend(s))
}

func TestToolBudgetDefault(t *testing.T) {
	assert.Equal(t, toolBudget(DefaultMaxToolCalls), newToolBudget(0))
	assert.Contains(t, newToolBudget(3).wrapUpNotice().Content, "(3)")
}

func TestFillToolCallIDs(t *testing.T) {
	history := []*schema.Message{
		schema.AssistantMessage("", []schema.ToolCall{{ID: "call_7"}}),
	}
	in := []*schema.Message{{Role: schema.Tool, Content: "{}"}}

	fillToolCallIDs(in, history)
	assert.Equal(t, "call_7", in[0].ToolCallID)
}
