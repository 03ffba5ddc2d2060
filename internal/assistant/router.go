package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studio101-core/server/internal/auth"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/chatlog"
	"github.com/studio101-core/server/internal/order"
	"github.com/studio101-core/server/internal/payment"
	logx "github.com/studio101-core/server/pkg/logger"
	"github.com/studio101-core/server/pkg/retry"
)

// Orderer starts the payment for a single product.
type Orderer interface {
	PlaceOrder(ctx context.Context, user *auth.User, p catalog.Product, quantity int) (*order.Placement, error)
}

// Completer answers free-form chat. The conversation so far is read from the
// chat log by session id.
type Completer interface {
	Complete(ctx context.Context, sessionID, text string) (string, error)
}

type Deps struct {
	Catalog    *catalog.Catalog
	Vocabulary *Vocabulary
	Orders     Orderer
	// Completer is optional; without it general chat gets the error message.
	Completer Completer
	// Recorder is optional.
	Recorder        *chatlog.Recorder
	CompletionRetry retry.Config
}

// Reply is the assistant's answer to one message.
type Reply struct {
	Intent   Intent            `json:"intent"`
	Text     string            `json:"message"`
	Results  []catalog.Product `json:"searchResults,omitempty"`
	Checkout *payment.Checkout `json:"checkout,omitempty"`
	OrderID  string            `json:"orderId,omitempty"`
}

// Router answers chat messages by intent: orders start a payment, searches
// query the catalog, everything else goes to the completer.
type Router struct {
	catalog   *catalog.Catalog
	vocab     *Vocabulary
	orders    Orderer
	completer Completer
	recorder  *chatlog.Recorder
	retry     retry.Config
	now       func() time.Time
	log       zerolog.Logger
}

func NewRouter(d Deps) (*Router, error) {
	if d.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if d.Vocabulary == nil {
		return nil, fmt.Errorf("vocabulary is nil")
	}
	if d.Orders == nil {
		return nil, fmt.Errorf("orderer is nil")
	}
	return &Router{
		catalog:   d.Catalog,
		vocab:     d.Vocabulary,
		orders:    d.Orders,
		completer: d.Completer,
		recorder:  d.Recorder,
		retry:     d.CompletionRetry,
		now:       time.Now,
		log:       logx.With("assistant"),
	}, nil
}

// Handle processes one user message. It never fails: every problem is turned
// into one of the fixed messages. Blank input is ignored and yields an empty
// reply.
func (r *Router) Handle(ctx context.Context, s *Session, text string) Reply {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{Intent: IntentGeneral}
	}

	s.turn.Lock()
	defer s.turn.Unlock()

	user := s.User()
	s.appendMessage(Message{Role: RoleUser, Text: text})
	r.recorder.Record(ctx, chatlog.NewRecord(user, s.ID, chatlog.SenderUser, text, nil, r.now()))

	c := Explain(text, r.vocab)
	r.log.Debug().
		Str("session_id", s.ID).
		Str("intent", string(c.Intent)).
		Str("rule", string(c.Rule)).
		Str("term", c.Term).
		Msg("message classified")

	var reply Reply
	switch c.Intent {
	case IntentOrder:
		reply = r.handleOrder(ctx, s, user, text)
	case IntentSearch:
		reply = r.handleSearch(s, text)
	default:
		reply = r.handleGeneral(ctx, s, text)
	}

	s.appendMessage(Message{Role: RoleAssistant, Text: reply.Text, Results: reply.Results})
	r.recorder.Record(ctx, chatlog.NewRecord(user, s.ID, chatlog.SenderBot, reply.Text, reply.Results, r.now()))
	return reply
}

func (r *Router) handleOrder(ctx context.Context, s *Session, user *auth.User, text string) Reply {
	reply := Reply{Intent: IntentOrder}

	quantity, _ := r.vocab.ExtractQuantity(text)
	p, ok := r.resolveOrderTarget(s, text)
	if !ok {
		reply.Text = MsgProductNotFound
		return reply
	}
	if quantity > r.vocab.MaxQuantity() {
		reply.Text = quantityLimitMessage(r.vocab.MaxQuantity())
		return reply
	}
	if user == nil || user.ID == "" {
		reply.Text = MsgLoginRequired
		return reply
	}

	placement, err := r.orders.PlaceOrder(ctx, user, p, quantity)
	switch {
	case err == nil:
		reply.Text = orderPlacedMessage(p.Name, quantity)
		reply.Checkout = placement.Checkout
		reply.OrderID = placement.OrderID
	case errors.Is(err, payment.ErrCancelled):
		reply.Text = MsgPaymentCanceled
	case errors.Is(err, order.ErrUnauthenticated):
		reply.Text = MsgLoginRequired
	case errors.Is(err, order.ErrInvalidQuantity):
		reply.Text = quantityLimitMessage(r.vocab.MaxQuantity())
	default:
		r.log.Error().Err(err).Str("session_id", s.ID).Int("product_id", p.ID).Msg("order failed")
		reply.Text = MsgOrderFailed
	}
	return reply
}

// resolveOrderTarget finds the product an order message refers to. A list
// position like "2번" points into the last search results when they are long
// enough, otherwise into the catalog. Without a position the message is
// searched by name and the matches become the new search context.
func (r *Router) resolveOrderTarget(s *Session, text string) (catalog.Product, bool) {
	if n, ok := r.vocab.ExtractOrdinal(text); ok {
		if recent := s.SearchContext(); n >= 1 && n <= len(recent) {
			return recent[n-1], true
		}
		return r.catalog.At(n)
	}

	query := r.vocab.OrderQuery(text)
	if query == "" {
		return catalog.Product{}, false
	}
	matches := r.catalog.Search(query, 0)
	if len(matches) == 0 {
		return catalog.Product{}, false
	}
	s.setSearchContext(matches)
	return matches[0], true
}

func (r *Router) handleSearch(s *Session, text string) Reply {
	limit, _ := r.vocab.ExtractLimit(text)
	results := r.catalog.Search(r.vocab.SearchQuery(text), limit)
	if len(results) == 0 {
		return Reply{Intent: IntentSearch, Text: MsgNoResults}
	}
	s.setSearchContext(results)
	return Reply{
		Intent:  IntentSearch,
		Text:    searchResultsMessage(len(results)),
		Results: results,
	}
}

func (r *Router) handleGeneral(ctx context.Context, s *Session, text string) Reply {
	reply := Reply{Intent: IntentGeneral}
	if r.completer == nil {
		reply.Text = MsgCompletionFailed
		return reply
	}

	answer, err := retry.DoWithResult(ctx, r.retry, func() (string, error) {
		return r.completer.Complete(ctx, s.ID, text)
	})
	switch {
	case err != nil:
		r.log.Error().Err(err).Str("session_id", s.ID).Msg("completion failed")
		reply.Text = MsgCompletionFailed
	case strings.TrimSpace(answer) == "":
		reply.Text = MsgEmptyCompletion
	default:
		reply.Text = answer
	}
	return reply
}
