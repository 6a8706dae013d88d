package store

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/pantrykit/pantrykit/internal/domain"
	"github.com/pantrykit/pantrykit/internal/eventbus"
	"github.com/pantrykit/pantrykit/pkg/common"
)

// ListStore is a stateless facade over the "listProducts" collection. Entries
// are keyed by their own generated id, never by product code: adding the same
// product twice yields two independent entries. Unlike products, updates
// merge field by field instead of overwriting the whole record.
type ListStore struct {
	backend Backend
	bus     *eventbus.Bus
	now     func() time.Time
}

func NewListStore(backend Backend, bus *eventbus.Bus) *ListStore {
	return &ListStore{backend: backend, bus: bus, now: time.Now}
}

// GetAll returns every list entry, empty on any failure.
func (s *ListStore) GetAll() []domain.ListEntry {
	raw, err := s.backend.GetString(listKey)
	if err != nil {
		if err != ErrKeyNotFound {
			zap.S().Debugf("list store read: %v", err)
		}
		return nil
	}
	var entries []domain.ListEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		zap.S().Debugf("list store: malformed collection: %v", err)
		return nil
	}
	return entries
}

// AddByProduct creates a new entry referencing product.Code.
func (s *ListStore) AddByProduct(product domain.Product) *domain.ListEntry {
	return s.AddByCode(product.Code)
}

// AddByCode always appends a fresh entry for code with a newly generated id,
// amount 1 and createdAt set to now. It never deduplicates. Returns nil if
// the backend write fails, publishes listChanged otherwise.
func (s *ListStore) AddByCode(code string) *domain.ListEntry {
	entries := s.GetAll()
	entry := domain.ListEntry{
		ID:          common.NewEntryID(),
		ProductCode: code,
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
		Amount:      1,
	}
	entries = append(entries, entry)
	if !s.write(entries) {
		return nil
	}
	s.bus.Publish(eventbus.TopicListChanged)
	return &entry
}

// Remove filters out the entry with the given id. A missing id is a no-op,
// not an error, but once the write step is reached listChanged is published
// whether or not anything matched — subscribers stay simple at the cost of a
// spurious reload.
func (s *ListStore) Remove(id string) {
	raw, err := s.backend.GetString(listKey)
	if err != nil {
		if err != ErrKeyNotFound {
			zap.S().Debugf("list store read: %v", err)
		}
		return
	}
	var entries []domain.ListEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		zap.S().Debugf("list store: malformed collection: %v", err)
		return
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if s.write(kept) {
		s.bus.Publish(eventbus.TopicListChanged)
	}
}

// Clear replaces the whole collection with an empty one.
func (s *ListStore) Clear() {
	if s.write(nil) {
		s.bus.Publish(eventbus.TopicListChanged)
	}
}

// Update merges patch into the entry with the given id: nil patch fields keep
// the stored value, the id and createdAt are never altered. Returns the
// updated entry, or nil without writing or publishing when the id is unknown
// or the write fails. NaN and infinite amounts are discarded rather than
// stored.
func (s *ListStore) Update(id string, patch domain.ListPatch) *domain.ListEntry {
	entries := s.GetAll()
	idx := -1
	for i, e := range entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	updated := entries[idx]
	if patch.ProductCode != nil {
		updated.ProductCode = *patch.ProductCode
	}
	if patch.ExpiresAt != nil {
		updated.ExpiresAt = *patch.ExpiresAt
	}
	if patch.Amount != nil && !math.IsNaN(*patch.Amount) && !math.IsInf(*patch.Amount, 0) {
		updated.Amount = *patch.Amount
	}
	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}
	entries[idx] = updated
	if !s.write(entries) {
		return nil
	}
	s.bus.Publish(eventbus.TopicListChanged)
	return &updated
}

func (s *ListStore) write(entries []domain.ListEntry) bool {
	if entries == nil {
		entries = []domain.ListEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		zap.S().Warnf("list store encode: %v", err)
		return false
	}
	if err := s.backend.SetString(listKey, string(data)); err != nil {
		zap.S().Warnf("list store write dropped: %v", err)
		return false
	}
	return true
}
