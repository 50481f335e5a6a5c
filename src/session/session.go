// backend/src/session/session.go
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/username/saathi/backend/src/models"
)

const (
	DefaultExpiration      = 2 * time.Hour
	DefaultCleanupInterval = 30 * time.Minute
)

// Session is the explicit per-session state the dashboard shell owns: the
// current normalized table and the KPIs/insights derived from it. The core
// pipeline packages never see this struct. One *Session is shared across
// concurrent requests carrying the same id, so all data access goes through
// SetData/SetInsights/Snapshot, which hold the session lock.
type Session struct {
	ID        string
	UpdatedAt time.Time

	mu            sync.Mutex
	transactions  []models.Transaction
	kpis          models.KPISummary
	insights      models.Insights
	insightsReady bool
}

// State is a point-in-time copy of a session's data. The Transactions
// slice is shared with the session and must be treated as read-only;
// mutations always install a fresh slice via SetData.
type State struct {
	Transactions  []models.Transaction
	KPIs          models.KPISummary
	Insights      models.Insights
	InsightsReady bool
}

// SetData replaces the table and KPI summary and invalidates any
// previously generated insights.
func (s *Session) SetData(txs []models.Transaction, kpis models.KPISummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = txs
	s.kpis = kpis
	s.insights = models.Insights{}
	s.insightsReady = false
}

// SetInsights stores generated insights for the current table.
func (s *Session) SetInsights(insights models.Insights) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insights = insights
	s.insightsReady = true
}

// Snapshot returns the session's current data under the lock.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Transactions:  s.transactions,
		KPIs:          s.kpis,
		Insights:      s.insights,
		InsightsReady: s.insightsReady,
	}
}

// Store keeps sessions in a TTL cache. Entries created at session start,
// discarded on expiry or explicit clear.
type Store struct {
	cache *cache.Cache
}

func NewStore(expiration, cleanup time.Duration) *Store {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return &Store{cache: cache.New(expiration, cleanup)}
}

// GetOrCreate returns the session for id, minting a fresh one (with a new
// UUID when id is empty) if none exists.
func (s *Store) GetOrCreate(id string) *Session {
	if id != "" {
		if v, found := s.cache.Get(id); found {
			return v.(*Session)
		}
	}
	if id == "" {
		id = uuid.New().String()
	}
	sess := &Session{ID: id, UpdatedAt: time.Now()}
	s.cache.SetDefault(id, sess)
	return sess
}

// Get returns the session for id if it exists.
func (s *Store) Get(id string) (*Session, bool) {
	v, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	return v.(*Session), true
}

// Put stores the session back, refreshing its TTL.
func (s *Store) Put(sess *Session) {
	sess.mu.Lock()
	sess.UpdatedAt = time.Now()
	sess.mu.Unlock()
	s.cache.SetDefault(sess.ID, sess)
}

// Delete discards the session entirely.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}
