package nodes

import (
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/studio101-core/server/internal/agent/model"
)

const DefaultMaxToolCalls = 5

// toolBudget is the number of tool executions allowed per query.
type toolBudget int

func newToolBudget(n int) toolBudget {
	if n <= 0 {
		return DefaultMaxToolCalls
	}
	return toolBudget(n)
}

// spend counts one tool execution and reports whether the budget is now
// overdrawn, marking the state when it is.
func (b toolBudget) spend(state *model.AppState) bool {
	state.ToolCallCount++
	if state.ToolCallCount > int(b) {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

// exhaust marks the state once the budget is used up. It returns true only on
// the call that marks it.
func (b toolBudget) exhaust(state *model.AppState) bool {
	if !state.ToolCallLimitReached && state.ToolCallCount >= int(b) {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

func (b toolBudget) wrapUpNotice() *schema.Message {
	return schema.SystemMessage(fmt.Sprintf(
		"SYSTEM NOTICE: You have reached the maximum tool call limit (%d). "+
			"Answer now in Korean using the product information you already have. "+
			"Do not call any more tools.",
		int(b),
	))
}
