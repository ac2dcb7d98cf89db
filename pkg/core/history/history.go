// Package history keeps the capped log of past analyses. It is a
// cache, not an archive: twenty entries, newest first, oldest evicted
// silently. Durability is best effort; a failed write never surfaces
// beyond a log line and the log stays correct in memory.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"finsight/pkg/core/logger"
	"finsight/pkg/core/profile"
	"finsight/pkg/core/report"
	"finsight/pkg/core/store"
)

// MaxEntries caps the log. Eviction is FIFO on overflow.
const MaxEntries = 20

// Entry is an immutable snapshot: the report plus the profile that was
// in effect when it was captured.
type Entry struct {
	ID      string                    `json:"id"`
	Date    string                    `json:"date"`
	Report  *report.FinancialReport   `json:"report"`
	Profile *profile.FinancialProfile `json:"profile"`
}

// Store is the in-memory log with a durable KV behind it.
type Store struct {
	mu      sync.Mutex
	kv      store.KV
	entries []Entry
	clock   func() time.Time
}

// NewStore loads whatever history the KV holds. An absent or corrupt
// record is a fresh start, not an error.
func NewStore(ctx context.Context, kv store.KV) *Store {
	s := &Store{kv: kv, clock: time.Now}
	s.entries = load(ctx, kv)
	return s
}

func load(ctx context.Context, kv store.KV) []Entry {
	if kv == nil {
		return nil
	}
	raw, ok, err := kv.Get(ctx, store.KeyHistory)
	if err != nil {
		logger.Get().Warn("history load failed, starting empty", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Get().Warn("history record corrupt, starting empty", zap.Error(err))
		return nil
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// Record prepends a snapshot, evicts past the cap, and persists.
func (s *Store) Record(ctx context.Context, r *report.FinancialReport, p *profile.FinancialProfile) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	entry := Entry{
		ID:      fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		Date:    now.Format("Jan 2, 2006 3:04 PM"),
		Report:  r,
		Profile: p.Clone(),
	}

	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}

	s.persist(ctx)
	return entry
}

// persist writes the log through the KV. Failures degrade to
// in-memory-only for the session.
func (s *Store) persist(ctx context.Context) {
	if s.kv == nil {
		return
	}
	raw, err := json.Marshal(s.entries)
	if err != nil {
		logger.Get().Warn("history marshal failed", zap.Error(err))
		return
	}
	if err := s.kv.Put(ctx, store.KeyHistory, raw); err != nil {
		logger.Get().Warn("history persist failed", zap.Error(err))
	}
}

// Entries returns a copy of the log, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Find returns the entry with the given id.
func (s *Store) Find(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len reports the current number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
