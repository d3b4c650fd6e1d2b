package store

import (
	"sync"

	"github.com/maskmap-service/internal/domain"
)

// PharmacyStore holds the flat pharmacy list with the search keyword and the
// detail-panel state. The list is replaced wholesale per load; there is no
// incremental merge.
type PharmacyStore struct {
	mu           sync.RWMutex
	data         []domain.Pharmacy
	keyword      string
	currOpenedID string
	showModal    bool
	isLoading    bool
	subscribers  []func()
}

func NewPharmacyStore() *PharmacyStore {
	return &PharmacyStore{}
}

// Subscribe registers fn to run after every mutation, outside the store lock.
func (s *PharmacyStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Load replaces the pharmacy list from an upstream FeatureCollection.
// Features without a usable coordinate pair are dropped; the count of dropped
// features is returned so the caller can log it.
func (s *PharmacyStore) Load(fc *domain.FeatureCollection) (dropped int) {
	pharmacies := make([]domain.Pharmacy, 0, len(fc.Features))
	for _, f := range fc.Features {
		p, ok := f.Pharmacy()
		if !ok {
			dropped++
			continue
		}
		pharmacies = append(pharmacies, p)
	}

	s.mu.Lock()
	s.data = pharmacies
	s.mu.Unlock()

	s.notify()
	return dropped
}

// Pharmacies returns a snapshot of the loaded list in source order.
func (s *PharmacyStore) Pharmacies() []domain.Pharmacy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Pharmacy, len(s.data))
	copy(out, s.data)
	return out
}

// SetKeyword updates the free-text filter keyword.
func (s *PharmacyStore) SetKeyword(keyword string) {
	s.mu.Lock()
	s.keyword = keyword
	s.mu.Unlock()

	s.notify()
}

func (s *PharmacyStore) Keyword() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyword
}

// OpenDetail selects a pharmacy for the detail panel and shows the modal.
// The id is a plain back-reference; it is not checked against the list here.
func (s *PharmacyStore) OpenDetail(id string) {
	s.mu.Lock()
	s.currOpenedID = id
	s.showModal = true
	s.mu.Unlock()

	s.notify()
}

// CloseDetail dismisses the detail panel and clears the selection.
func (s *PharmacyStore) CloseDetail() {
	s.mu.Lock()
	s.currOpenedID = ""
	s.showModal = false
	s.mu.Unlock()

	s.notify()
}

func (s *PharmacyStore) ShowModal() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showModal
}

func (s *PharmacyStore) CurrentOpenedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currOpenedID
}

// CurrentOpenedPharmacy looks up the opened pharmacy by id. A nil result is a
// normal outcome when nothing is opened or the id matches nothing.
func (s *PharmacyStore) CurrentOpenedPharmacy() *domain.Pharmacy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currOpenedID == "" {
		return nil
	}
	for _, p := range s.data {
		if p.ID == s.currOpenedID {
			found := p
			return &found
		}
	}
	return nil
}

// SetLoading flips the fetch-in-progress flag.
func (s *PharmacyStore) SetLoading(loading bool) {
	s.mu.Lock()
	s.isLoading = loading
	s.mu.Unlock()
}

func (s *PharmacyStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

func (s *PharmacyStore) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}
