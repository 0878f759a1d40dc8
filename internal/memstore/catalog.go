package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/PaulBabatuyi/campusChat-gRPC/internal/normalize"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SearchUsers returns up to limit users whose email starts with prefix,
// ordered by email. Password hashes are not copied out.
func (s *Store) SearchUsers(_ context.Context, prefix string, limit int) ([]*data.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix = normalize.Email(prefix)
	var out []*data.User
	for email, id := range s.emails {
		if strings.HasPrefix(email, prefix) {
			u := s.users[id]
			out = append(out, &data.User{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListMenu returns the menu ordered by name.
func (s *Store) ListMenu(context.Context) ([]*data.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*data.MenuItem, len(s.menu))
	for i, item := range s.menu {
		cp := *item
		out[i] = &cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AddMenuItem stores item and sets its ID.
func (s *Store) AddMenuItem(_ context.Context, item *data.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = bson.NewObjectID()
	cp := *item
	s.menu = append(s.menu, &cp)
	return nil
}

// PostBook stores a listing and bumps the seller's post count.
func (s *Store) PostBook(_ context.Context, book *data.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seller, ok := s.userLocked(book.SellerID)
	if !ok {
		return data.ErrNotFound
	}
	book.ID = bson.NewObjectID()
	book.CreatedAt = s.now().UTC()
	seller.PostCount++
	seller.UpdatedAt = book.CreatedAt

	cp := *book
	s.books = append(s.books, &cp)
	return nil
}

// FindBooks returns the listings matching f, newest first.
func (s *Store) FindBooks(_ context.Context, f data.BookFilter) ([]*data.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*data.Book
	for i := len(s.books) - 1; i >= 0; i-- {
		if b := s.books[i]; f.Match(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}
