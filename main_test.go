package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio101-core/server/internal/assistant"
	"github.com/studio101-core/server/internal/auth"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/order"
)

type noOrders struct{}

func (noOrders) PlaceOrder(context.Context, *auth.User, catalog.Product, int) (*order.Placement, error) {
	return nil, errors.New("not wired")
}

func TestConverse(t *testing.T) {
	r, err := assistant.NewRouter(assistant.Deps{
		Catalog:    catalog.Default(),
		Vocabulary: assistant.DefaultVocabulary(),
		Orders:     noOrders{},
	})
	require.NoError(t, err)
	s := assistant.NewSession(assistant.NewSessionID(time.Now()), time.Now())

	var out bytes.Buffer
	in := strings.NewReader("조명 2개만 보여줘\n\n안녕\n")
	require.NoError(t, converse(context.Background(), r, s, in, &out))

	got := out.String()
	assert.True(t, strings.HasPrefix(got, assistant.MsgGreeting+"\n"))
	assert.Contains(t, got, "검색 결과: 2개의 상품을 찾았습니다.")
	assert.Contains(t, got, "  1. 사운드 반응형 RGB LED 라이트 바 (AI 연동) - 59,000원 (조명)\n")
	assert.Contains(t, got, "  2. 스마트 LED 책상 조명 (무선 충전 내장) - 79,000원 (조명)\n")
	assert.Contains(t, got, assistant.MsgCompletionFailed)
	assert.Len(t, s.Messages(), 5)
}

func TestConverseStopsWhenCancelled(t *testing.T) {
	r, err := assistant.NewRouter(assistant.Deps{
		Catalog:    catalog.Default(),
		Vocabulary: assistant.DefaultVocabulary(),
		Orders:     noOrders{},
	})
	require.NoError(t, err)
	s := assistant.NewSession("s", time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, converse(ctx, r, s, strings.NewReader("조명 보여줘\n"), &out))
	assert.Len(t, s.Messages(), 1)
}
