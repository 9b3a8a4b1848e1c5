// Package memrepo provides in-memory stores with the same contracts as the
// Mongo repositories. They back tests and STORE_DRIVER=memory local runs.
// Every store is safe for concurrent use; data is lost on restart.
package memrepo

import (
	"context"
	"sync"

	"github.com/invisio/invisio-backend/internal/model"
	"github.com/invisio/invisio-backend/internal/repository"
)

// Users is an in-memory account store.
type Users struct {
	mu    sync.RWMutex
	items []model.Account
}

func NewUsers() *Users { return &Users{} }

func (s *Users) Create(_ context.Context, a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = repository.NewID()
	}
	s.items = append(s.items, *a)
	return nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.items {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Account{}, repository.ErrNotFound
}

// Len returns the number of stored accounts.
func (s *Users) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Denylist is an append-only in-memory token denylist.
type Denylist struct {
	mu      sync.RWMutex
	entries []model.DenylistEntry
}

func NewDenylist() *Denylist { return &Denylist{} }

func (s *Denylist) Insert(_ context.Context, e model.DenylistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = repository.NewID()
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *Denylist) Exists(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.Token == token {
			return true, nil
		}
	}
	return false, nil
}

// Entries returns a copy of every stored entry in insertion order.
func (s *Denylist) Entries() []model.DenylistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.DenylistEntry(nil), s.entries...)
}

// News is an in-memory news store preserving insertion order.
type News struct {
	mu    sync.RWMutex
	items []model.NewsItem
}

func NewNews() *News { return &News{} }

func (s *News) InsertMany(_ context.Context, items []model.NewsItem) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = repository.NewID()
		}
		s.items = append(s.items, items[i])
	}
	return len(items), nil
}

func (s *News) All(_ context.Context) ([]model.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.NewsItem{}, s.items...), nil
}

// Suggestions is an in-memory suggestion store.
type Suggestions struct {
	mu    sync.RWMutex
	items []model.Suggestion
}

func NewSuggestions() *Suggestions { return &Suggestions{} }

func (s *Suggestions) Create(_ context.Context, sg *model.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sg.ID == "" {
		sg.ID = repository.NewID()
	}
	s.items = append(s.items, *sg)
	return nil
}

func (s *Suggestions) GetByID(_ context.Context, id string) (model.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.items[i], nil
	}
	return model.Suggestion{}, repository.ErrNotFound
}

func (s *Suggestions) ListPublic(_ context.Context) ([]model.Suggestion, error) {
	return s.filter(func(sg model.Suggestion) bool { return sg.IsPublic && !sg.IsArchived }), nil
}

func (s *Suggestions) ListArchived(_ context.Context, userID string) ([]model.Suggestion, error) {
	return s.filter(func(sg model.Suggestion) bool { return sg.UserID == userID && sg.IsArchived }), nil
}

func (s *Suggestions) ListByIDs(_ context.Context, ids []string) ([]model.Suggestion, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return s.filter(func(sg model.Suggestion) bool {
		_, ok := want[sg.ID]
		return ok
	}), nil
}

func (s *Suggestions) SetPublic(_ context.Context, id string, public bool) (bool, error) {
	return s.update(id, func(sg *model.Suggestion) { sg.IsPublic = public }), nil
}

func (s *Suggestions) SetArchived(_ context.Context, id string, archived bool) (bool, error) {
	return s.update(id, func(sg *model.Suggestion) { sg.IsArchived = archived }), nil
}

func (s *Suggestions) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true, nil
}

// index must be called with mu held.
func (s *Suggestions) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Suggestions) update(id string, fn func(*model.Suggestion)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return false
	}
	fn(&s.items[i])
	return true
}

func (s *Suggestions) filter(keep func(model.Suggestion) bool) []model.Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Suggestion{}
	for _, sg := range s.items {
		if keep(sg) {
			out = append(out, sg)
		}
	}
	return out
}

// Favorites is an in-memory favorite link store.
type Favorites struct {
	mu    sync.RWMutex
	items []model.Favorite
}

func NewFavorites() *Favorites { return &Favorites{} }

func (s *Favorites) Exists(_ context.Context, userID, suggestionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.items {
		if f.UserID == userID && f.SuggestionID == suggestionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Favorites) Add(_ context.Context, f *model.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = repository.NewID()
	}
	s.items = append(s.items, *f)
	return nil
}

// Remove deletes the first matching link, like DeleteOne on the Mongo side.
func (s *Favorites) Remove(_ context.Context, userID, suggestionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.items {
		if f.UserID == userID && f.SuggestionID == suggestionID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Favorites) SuggestionIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for _, f := range s.items {
		if f.UserID == userID {
			ids = append(ids, f.SuggestionID)
		}
	}
	return ids, nil
}
