package conversations

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/chatlog"
	logx "github.com/studio101-core/server/pkg/logger"
)

type MessagesManager struct {
	history  model.HistoryReader
	maxTurns int
}

// NewMessagesManager reads prior turns from history, which may be nil.
func NewMessagesManager(history model.HistoryReader, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		history:  history,
		maxTurns: config.MaxTurns,
	}
}

// BuildContext returns the system prompt followed by the most recent turns of
// the session, ending with query as the user message.
func (cm *MessagesManager) BuildContext(ctx context.Context, sessionID, systemPrompt, query string) ([]*schema.Message, error) {
	turns := cm.loadTurns(ctx, sessionID)

	// The router logs the user message before completion, so it is usually
	// already the last record.
	if n := len(turns); n == 0 || turns[n-1].Role != schema.User || turns[n-1].Content != query {
		turns = append(turns, schema.UserMessage(query))
	}

	messages := []*schema.Message{schema.SystemMessage(systemPrompt)}
	messages = append(messages, trimTail(turns, cm.maxTurns)...)
	return messages, nil
}

// loadTurns is best-effort: without history the model still answers the
// current message.
func (cm *MessagesManager) loadTurns(ctx context.Context, sessionID string) []*schema.Message {
	if cm.history == nil {
		return nil
	}
	records, err := cm.history.History(ctx, sessionID)
	if err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("Conversation history unavailable")
		return nil
	}

	turns := make([]*schema.Message, 0, len(records))
	for _, rec := range records {
		text := strings.TrimSpace(rec.Text())
		if text == "" {
			continue
		}
		switch rec.Sender {
		case chatlog.SenderUser:
			turns = append(turns, schema.UserMessage(text))
		case chatlog.SenderBot:
			turns = append(turns, schema.AssistantMessage(text, nil))
		}
	}
	return turns
}

// ====================== Helper function ======================
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
