package model

import (
	"github.com/cloudwego/eino/schema"
)

// AppState stores per-invocation state for the Eino Graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex is required as long as it is never touched outside handlers.
type AppState struct {
	SessionID            string
	History              []*schema.Message // mutated only inside Eino state handlers
	ToolCallCount        int
	ToolCallLimitReached bool
	ToolCallIDSeq        int // local sequence to synthesize tool_call_id when provider omits

	// Accumulated total LLM cost (USD) across model invocations for this query
	TotalCostUSD float64
}

// QueryInput is one user turn handed to the graph.
type QueryInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}
