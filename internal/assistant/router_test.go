package assistant_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/studio101-core/server/internal/assistant"
	"github.com/studio101-core/server/internal/auth"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/chatlog"
	"github.com/studio101-core/server/internal/order"
	"github.com/studio101-core/server/internal/payment"
	"github.com/studio101-core/server/pkg/retry"
)

type mockOrderer struct {
	mock.Mock
}

func (m *mockOrderer) PlaceOrder(ctx context.Context, user *auth.User, p catalog.Product, quantity int) (*order.Placement, error) {
	args := m.Called(ctx, user, p, quantity)
	placement, _ := args.Get(0).(*order.Placement)
	return placement, args.Error(1)
}

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, sessionID, text string) (string, error) {
	args := m.Called(ctx, sessionID, text)
	return args.String(0), args.Error(1)
}

type memorySink struct {
	mu      sync.Mutex
	records []chatlog.Record
}

func (s *memorySink) Append(_ context.Context, rec chatlog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

type routerFixture struct {
	router    *assistant.Router
	orders    *mockOrderer
	completer *mockCompleter
	sink      *memorySink
	session   *assistant.Session
}

var shopper = &auth.User{ID: "user-1", Email: "jiyoung@example.com"}

func newRouter(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		orders:    &mockOrderer{},
		completer: &mockCompleter{},
		sink:      &memorySink{},
		session:   assistant.NewSession("session_1735689600000_abcdefghi", time.Now()),
	}
	r, err := assistant.NewRouter(assistant.Deps{
		Catalog:         catalog.Default(),
		Vocabulary:      assistant.DefaultVocabulary(),
		Orders:          f.orders,
		Completer:       f.completer,
		Recorder:        chatlog.NewRecorder(retry.Config{MaxAttempts: 1}, f.sink),
		CompletionRetry: retry.Config{MaxAttempts: 2, Backoff: retry.ConstantBackoff(time.Millisecond)},
	})
	require.NoError(t, err)
	f.router = r
	return f
}

func ids(ps []catalog.Product) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func product(t *testing.T, id int) catalog.Product {
	t.Helper()
	p, ok := catalog.Default().ByID(id)
	require.True(t, ok)
	return p
}

func TestNewRouterRequiresCollaborators(t *testing.T) {
	_, err := assistant.NewRouter(assistant.Deps{Vocabulary: assistant.DefaultVocabulary(), Orders: &mockOrderer{}})
	assert.Error(t, err)
	_, err = assistant.NewRouter(assistant.Deps{Catalog: catalog.Default(), Orders: &mockOrderer{}})
	assert.Error(t, err)
	_, err = assistant.NewRouter(assistant.Deps{Catalog: catalog.Default(), Vocabulary: assistant.DefaultVocabulary()})
	assert.Error(t, err)
}

func TestSearchStripsDisplayVerb(t *testing.T) {
	f := newRouter(t)

	reply := f.router.Handle(context.Background(), f.session, "데스크 매트 보여줘")
	assert.Equal(t, assistant.IntentSearch, reply.Intent)
	assert.Equal(t, []int{1, 7, 23}, ids(reply.Results))
	assert.Equal(t, "검색 결과: 3개의 상품을 찾았습니다.", reply.Text)
	assert.Equal(t, []int{1, 7, 23}, ids(f.session.SearchContext()))
}

func TestSearchShowAll(t *testing.T) {
	f := newRouter(t)

	reply := f.router.Handle(context.Background(), f.session, "전체 상품")
	assert.Equal(t, ids(catalog.Default().All()), ids(reply.Results))
	assert.Len(t, reply.Results, 24)
}

func TestSearchLimit(t *testing.T) {
	f := newRouter(t)

	reply := f.router.Handle(context.Background(), f.session, "조명 2개만 보여줘")
	assert.Equal(t, []int{4, 9}, ids(reply.Results))
	assert.Equal(t, []int{4, 9}, ids(f.session.SearchContext()))
}

func TestSearchWithoutResultsKeepsContext(t *testing.T) {
	f := newRouter(t)
	ctx := context.Background()
	f.router.Handle(ctx, f.session, "데스크 매트 보여줘")

	reply := f.router.Handle(ctx, f.session, "유니콘 보여줘")
	assert.Equal(t, assistant.MsgNoResults, reply.Text)
	assert.Empty(t, reply.Results)
	assert.Equal(t, []int{1, 7, 23}, ids(f.session.SearchContext()))
}

func TestOrderByPositionInSearchContext(t *testing.T) {
	f := newRouter(t)
	f.session.SetUser(shopper)
	ctx := context.Background()

	search := f.router.Handle(ctx, f.session, "조명 보여줘")
	require.Len(t, search.Results, 5)

	want := product(t, 13)
	checkout := &payment.Checkout{OrderID: "ORDER_1", RedirectURL: "https://pay.example/ORDER_1"}
	f.orders.On("PlaceOrder", mock.Anything, shopper, want, 2).
		Return(&order.Placement{OrderID: "ORDER_1", Checkout: checkout}, nil).Once()

	reply := f.router.Handle(ctx, f.session, "3번 2개 구매")
	assert.Equal(t, assistant.IntentOrder, reply.Intent)
	assert.Equal(t, want.Name+" 2개 주문 완료!", reply.Text)
	assert.Equal(t, checkout, reply.Checkout)
	assert.Equal(t, "ORDER_1", reply.OrderID)
	f.orders.AssertExpectations(t)
}

func TestOrderPositionBeyondContextUsesCatalog(t *testing.T) {
	f := newRouter(t)
	f.session.SetUser(shopper)
	ctx := context.Background()
	f.router.Handle(ctx, f.session, "데스크 매트 보여줘")

	f.orders.On("PlaceOrder", mock.Anything, shopper, product(t, 7), 1).
		Return(&order.Placement{OrderID: "ORDER_7"}, nil).Once()

	reply := f.router.Handle(ctx, f.session, "7번 주문")
	assert.Equal(t, "ORDER_7", reply.OrderID)
	f.orders.AssertExpectations(t)
}

func TestOrderByNameReplacesContext(t *testing.T) {
	f := newRouter(t)
	f.session.SetUser(shopper)
	f.orders.On("PlaceOrder", mock.Anything, shopper, product(t, 2), 1).
		Return(&order.Placement{OrderID: "ORDER_2"}, nil).Once()

	reply := f.router.Handle(context.Background(), f.session, "선반 1개 주문")
	assert.Equal(t, product(t, 2).Name+" 1개 주문 완료!", reply.Text)
	assert.Equal(t, []int{2}, ids(f.session.SearchContext()))
}

func TestOrderRequiresLogin(t *testing.T) {
	f := newRouter(t)

	reply := f.router.Handle(context.Background(), f.session, "1번 주문")
	assert.Equal(t, assistant.IntentOrder, reply.Intent)
	assert.Equal(t, assistant.MsgLoginRequired, reply.Text)
	assert.Nil(t, reply.Checkout)
	f.orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderQuantityLimit(t *testing.T) {
	const limitMsg = "한 번에 최대 99개까지 주문할 수 있습니다."

	for _, text := range []string{"1번 207266787345052개 구매", "1번 100개 구매"} {
		t.Run(text, func(t *testing.T) {
			f := newRouter(t)
			f.session.SetUser(shopper)

			reply := f.router.Handle(context.Background(), f.session, text)
			assert.Equal(t, assistant.IntentOrder, reply.Intent)
			assert.Equal(t, limitMsg, reply.Text)
			assert.Nil(t, reply.Checkout)
			f.orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	f := newRouter(t)
	f.session.SetUser(shopper)
	f.orders.On("PlaceOrder", mock.Anything, shopper, product(t, 1), 99).
		Return(&order.Placement{OrderID: "ORDER_99"}, nil).Once()

	reply := f.router.Handle(context.Background(), f.session, "1번 99개 구매")
	assert.Equal(t, "ORDER_99", reply.OrderID)
	f.orders.AssertExpectations(t)
}

func TestOrderProductNotFound(t *testing.T) {
	tests := []string{"유니콘 주문", "25번 주문", "0번 주문", "2개 구매"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			f := newRouter(t)
			f.session.SetUser(shopper)
			ctx := context.Background()
			f.router.Handle(ctx, f.session, "데스크 매트 보여줘")

			reply := f.router.Handle(ctx, f.session, text)
			assert.Equal(t, assistant.MsgProductNotFound, reply.Text)
			assert.Equal(t, []int{1, 7, 23}, ids(f.session.SearchContext()))
			f.orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOrderPaymentFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"cancelled", &payment.Error{Code: payment.CodeUserCancel}, assistant.MsgPaymentCanceled},
		{"gateway error", errors.New("connection refused"), assistant.MsgOrderFailed},
		{"session lost user", order.ErrUnauthenticated, assistant.MsgLoginRequired},
		{"quantity rejected", fmt.Errorf("place: %w", order.ErrInvalidQuantity), "한 번에 최대 99개까지 주문할 수 있습니다."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouter(t)
			f.session.SetUser(shopper)
			f.orders.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			reply := f.router.Handle(context.Background(), f.session, "1번 주문")
			assert.Equal(t, tt.want, reply.Text)
			assert.Nil(t, reply.Checkout)
			assert.Empty(t, reply.OrderID)
		})
	}
}

func TestGeneralChatRelaysCompletion(t *testing.T) {
	f := newRouter(t)
	f.completer.On("Complete", mock.Anything, f.session.ID, "안녕하세요").
		Return("안녕하세요! STUDIO 101입니다.", nil).Once()

	reply := f.router.Handle(context.Background(), f.session, "안녕하세요")
	assert.Equal(t, assistant.IntentGeneral, reply.Intent)
	assert.Equal(t, "안녕하세요! STUDIO 101입니다.", reply.Text)
	f.completer.AssertExpectations(t)
}

func TestGeneralChatRetriesCompletion(t *testing.T) {
	f := newRouter(t)
	f.completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("503")).Once()
	f.completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("네, 말씀하세요.", nil).Once()

	reply := f.router.Handle(context.Background(), f.session, "고마워요")
	assert.Equal(t, "네, 말씀하세요.", reply.Text)
	f.completer.AssertNumberOfCalls(t, "Complete", 2)
}

func TestGeneralChatFailures(t *testing.T) {
	f := newRouter(t)
	ctx := context.Background()

	f.completer.On("Complete", mock.Anything, mock.Anything, "오늘 날씨 어때").Return("  ", nil)
	assert.Equal(t, assistant.MsgEmptyCompletion, f.router.Handle(ctx, f.session, "오늘 날씨 어때").Text)

	f.completer.On("Complete", mock.Anything, mock.Anything, "안녕하세요").Return("", errors.New("boom"))
	assert.Equal(t, assistant.MsgCompletionFailed, f.router.Handle(ctx, f.session, "안녕하세요").Text)
}

func TestGeneralChatWithoutCompleter(t *testing.T) {
	r, err := assistant.NewRouter(assistant.Deps{
		Catalog:    catalog.Default(),
		Vocabulary: assistant.DefaultVocabulary(),
		Orders:     &mockOrderer{},
	})
	require.NoError(t, err)

	reply := r.Handle(context.Background(), assistant.NewSession("s", time.Now()), "장바구니에 담아줘")
	assert.Equal(t, assistant.IntentGeneral, reply.Intent)
	assert.Equal(t, assistant.MsgCompletionFailed, reply.Text)
}

func TestHandleRecordsBothSides(t *testing.T) {
	f := newRouter(t)
	f.session.SetUser(shopper)

	reply := f.router.Handle(context.Background(), f.session, "데스크 매트 보여줘")

	require.Len(t, f.sink.records, 2)
	user, bot := f.sink.records[0], f.sink.records[1]

	assert.Equal(t, chatlog.SenderUser, user.Sender)
	assert.Equal(t, "데스크 매트 보여줘", user.Message)
	require.NotNil(t, user.UserID)
	assert.Equal(t, shopper.ID, *user.UserID)
	assert.Equal(t, f.session.ID, user.SessionID)

	assert.Equal(t, chatlog.SenderBot, bot.Sender)
	text, attachments := chatlog.DecodeMessage(bot.Message)
	assert.Equal(t, reply.Text, text)
	require.Len(t, attachments, 3)
	assert.Equal(t, 1, attachments[0].ID)
	assert.Equal(t, product(t, 1).Price, attachments[0].Price)

	msgs := f.session.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, assistant.RoleUser, msgs[1].Role)
	assert.Equal(t, assistant.RoleAssistant, msgs[2].Role)
	assert.Equal(t, []int{1, 7, 23}, ids(msgs[2].Results))
}

func TestHandleRecordsAnonymousLoginPrompt(t *testing.T) {
	f := newRouter(t)

	f.router.Handle(context.Background(), f.session, "1번 주문")

	require.Len(t, f.sink.records, 2)
	assert.Nil(t, f.sink.records[0].UserID)
	assert.Equal(t, assistant.MsgLoginRequired, f.sink.records[1].Message)
}

func TestHandleIgnoresBlankInput(t *testing.T) {
	f := newRouter(t)

	reply := f.router.Handle(context.Background(), f.session, "  \n ")
	assert.Empty(t, reply.Text)
	assert.Empty(t, f.sink.records)
	assert.Len(t, f.session.Messages(), 1)
}
