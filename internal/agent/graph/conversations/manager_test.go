package conversations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio101-core/server/internal/agent/model"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/chatlog"
)

type stubHistory struct {
	records []chatlog.Record
	err     error
}

func (s *stubHistory) History(ctx context.Context, sessionID string) ([]chatlog.Record, error) {
	return s.records, s.err
}

func rec(sender chatlog.Sender, text string, results ...catalog.Product) chatlog.Record {
	return chatlog.NewRecord(nil, "s1", sender, text, results, time.Now())
}

func config(maxTurns int) model.ConversationConfig {
	var cfg model.ConversationConfig
	cfg.MaxTurns = maxTurns
	return cfg
}

func TestBuildContextUsesLoggedTurns(t *testing.T) {
	mat, _ := catalog.Default().ByID(1)
	h := &stubHistory{records: []chatlog.Record{
		rec(chatlog.SenderUser, "매트 보여줘"),
		rec(chatlog.SenderBot, "검색 결과입니다", mat),
		rec(chatlog.SenderUser, "배송은 얼마나 걸려요?"),
	}}
	mm := NewMessagesManager(h, config(10))

	msgs, err := mm.BuildContext(context.Background(), "s1", "SYS", "배송은 얼마나 걸려요?")
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, "SYS", msgs[0].Content)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Equal(t, schema.Assistant, msgs[2].Role)
	assert.Equal(t, "검색 결과입니다", msgs[2].Content, "attachments are not shown to the model")
	assert.Equal(t, "배송은 얼마나 걸려요?", msgs[3].Content)
}

func TestBuildContextAppendsUnloggedQuery(t *testing.T) {
	h := &stubHistory{records: []chatlog.Record{rec(chatlog.SenderBot, "안녕하세요")}}
	mm := NewMessagesManager(h, config(10))

	msgs, err := mm.BuildContext(context.Background(), "s1", "SYS", "질문")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, schema.User, msgs[2].Role)
	assert.Equal(t, "질문", msgs[2].Content)
}

func TestBuildContextTrimsToMaxTurns(t *testing.T) {
	var records []chatlog.Record
	for i := 0; i < 6; i++ {
		records = append(records, rec(chatlog.SenderUser, "u"), rec(chatlog.SenderBot, "b"))
	}
	mm := NewMessagesManager(&stubHistory{records: records}, config(3))

	msgs, err := mm.BuildContext(context.Background(), "s1", "SYS", "last")
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "last", msgs[3].Content)
}

func TestBuildContextWithoutHistory(t *testing.T) {
	for name, h := range map[string]model.HistoryReader{
		"nil reader":   nil,
		"reader error": &stubHistory{err: errors.New("redis down")},
	} {
		t.Run(name, func(t *testing.T) {
			mm := NewMessagesManager(h, config(10))
			msgs, err := mm.BuildContext(context.Background(), "s1", "SYS", "hi")
			require.NoError(t, err)
			require.Len(t, msgs, 2)
			assert.Equal(t, "hi", msgs[1].Content)
		})
	}
}
