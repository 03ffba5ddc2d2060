package assistant

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/studio101-core/server/internal/auth"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/store"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a session transcript.
type Message struct {
	Role    Role              `json:"role"`
	Text    string            `json:"content"`
	Results []catalog.Product `json:"searchResults,omitempty"`
}

// Session is the per-visitor chat state: transcript, last search results,
// cart and favorites. Handle calls on one session are serialized.
type Session struct {
	ID string

	turn sync.Mutex

	mu            sync.Mutex
	user          *auth.User
	messages      []Message
	searchContext []catalog.Product
	cart          *store.Cart
	favorites     *store.Favorites
	lastSeen      time.Time
}

// NewSession starts a session whose transcript holds the greeting.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		messages:  []Message{{Role: RoleAssistant, Text: MsgGreeting}},
		cart:      store.NewCart(),
		favorites: store.NewFavorites(),
		lastSeen:  now,
	}
}

func (s *Session) User() *auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser records the signed-in user; nil signs the session out.
func (s *Session) SetUser(u *auth.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) appendMessage(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// SearchContext returns a copy of the most recent search results.
func (s *Session) SearchContext() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Product, len(s.searchContext))
	copy(out, s.searchContext)
	return out
}

func (s *Session) setSearchContext(products []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchContext = make([]catalog.Product, len(products))
	copy(s.searchContext, products)
}

// WithCart runs fn with exclusive access to the session cart.
func (s *Session) WithCart(fn func(*store.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cart)
}

// WithFavorites runs fn with exclusive access to the session favorites.
func (s *Session) WithFavorites(fn func(*store.Favorites)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.favorites)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

var sessionIDPattern = regexp.MustCompile(`^session_\d+_[0-9a-z]{9}$`)

// NewSessionID returns an id of the form session_<unix-ms>_<9 base36 chars>.
func NewSessionID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return "session_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + string(suffix)
}

// LoadOrNewSessionID keeps a well-formed stored id and generates one otherwise.
func LoadOrNewSessionID(stored string, now time.Time) string {
	if sessionIDPattern.MatchString(stored) {
		return stored
	}
	return NewSessionID(now)
}
