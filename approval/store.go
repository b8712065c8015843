package approval

import (
	"sync"
	"time"
)

// Kind is the approval request type.
type Kind string

const (
	KindRegistration Kind = "registration"
	KindNameChange   Kind = "name_change"
	KindBranchChange Kind = "branch_change"
)

// Key identifies a pending request: at most one request per (kind, subject)
// exists at any time.
type Key struct {
	Kind      Kind
	SubjectID int64
}

// Payload holds the request facts needed to render the prompt and apply the
// effect. Which fields are set depends on Kind. Immutable after Create: a new
// request replaces the old one wholesale.
type Payload struct {
	SubjectID  int64
	ChatID     int64  // requester's chat for outcome notifications
	FullName   string // submitted name (registration) or requested new name
	PrevName   string
	Username   string
	Branch     string // relevant branch: target branch for registration/branch-change, current branch for name-change
	PrevBranch string // previous branch for branch-change
}

// Delivery is one approver prompt that reached a chat.
type Delivery struct {
	ChatID    int64
	MessageID int
}

// Request is a pending approval request with its delivered-prompt ledger.
type Request struct {
	Key        Key
	Payload    Payload
	CreatedAt  time.Time
	Deliveries []Delivery
}

// Store keeps pending requests. Claim is the only sanctioned way to act on
// one: it removes and returns the entry in one step, so two racing decisions
// on the same key cannot both proceed.
type Store interface {
	// Create replaces any existing entry at key. The caller is responsible
	// for sweeping the old entry's delivered prompts first.
	Create(key Key, p Payload) Request
	// Get is a read-only lookup used to render and validate, never to act.
	Get(key Key) (Request, bool)
	// Claim atomically removes and returns the entry. ok=false means the
	// request was already resolved or superseded — an expected outcome for
	// the loser of a decision race, not an error.
	Claim(key Key) (Request, bool)
	// AppendDelivery records a delivered prompt; no-op when the key is gone.
	AppendDelivery(key Key, d Delivery)
}

// MemoryStore is the in-process Store. Requests do not survive a restart and
// there is no mutual exclusion across processes: running several bot
// instances against the same chats is not supported.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Key]*Request
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]*Request)}
}

func (s *MemoryStore) Create(key Key, p Payload) Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	req := &Request{Key: key, Payload: p, CreatedAt: time.Now()}
	s.entries[key] = req
	return snapshot(req)
}

func (s *MemoryStore) Get(key Key) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.entries[key]
	if !ok {
		return Request{}, false
	}
	return snapshot(req), true
}

func (s *MemoryStore) Claim(key Key) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.entries[key]
	if !ok {
		return Request{}, false
	}
	delete(s.entries, key)
	return snapshot(req), true
}

func (s *MemoryStore) AppendDelivery(key Key, d Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req, ok := s.entries[key]; ok {
		req.Deliveries = append(req.Deliveries, d)
	}
}

// snapshot copies the entry so callers never share the stored slice.
func snapshot(req *Request) Request {
	out := *req
	out.Deliveries = append([]Delivery(nil), req.Deliveries...)
	return out
}
