package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/PaulBabatuyi/campusChat-gRPC/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, email := range []string{"ann@campus.edu", "andy@campus.edu", "bob@campus.edu", "an.y@campus.edu"} {
		_, err := s.CreateUser(ctx, email, "hash", "")
		require.NoError(t, err)
	}

	got, err := s.SearchUsers(ctx, " AN", 10)
	require.NoError(t, err)
	var emails []string
	for _, u := range got {
		emails = append(emails, u.Email)
		assert.Empty(t, u.Password)
	}
	assert.Equal(t, []string{"an.y@campus.edu", "andy@campus.edu", "ann@campus.edu"}, emails)

	got, err = s.SearchUsers(ctx, "an.", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "an.y@campus.edu", got[0].Email)

	got, err = s.SearchUsers(ctx, "an", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.SearchUsers(ctx, "zed", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMenu(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.AddMenuItem(ctx, &data.MenuItem{Name: "Jollof Rice", Price: 3.5}))
	item := &data.MenuItem{Name: "Fried Plantain", Price: 1.5, Status: data.StatusOutOfStock}
	require.NoError(t, s.AddMenuItem(ctx, item))
	assert.False(t, item.ID.IsZero())

	items, err := s.ListMenu(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Fried Plantain", items[0].Name)
	assert.False(t, items[0].Available())
	assert.True(t, items[1].Available())
}

func TestBooks(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
	seller, err := s.CreateUser(ctx, "seller@example.com", "hash", "Seller")
	require.NoError(t, err)

	calc := &data.Book{SellerID: seller.ID.Hex(), Title: "Calculus", Genre: "Math", Price: 40}
	require.NoError(t, s.PostBook(ctx, calc))
	algebra := &data.Book{SellerID: seller.ID.Hex(), Title: "Linear Algebra", Genre: "Math", Price: 25}
	require.NoError(t, s.PostBook(ctx, algebra))
	assert.False(t, algebra.ID.IsZero())

	got, err := s.GetUserByID(ctx, seller.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, got.PostCount)

	all, err := s.FindBooks(ctx, data.BookFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, algebra.ID, all[0].ID)

	cheap, err := s.FindBooks(ctx, data.BookFilter{Genre: "MATH", MaxPrice: 30})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, "Linear Algebra", cheap[0].Title)

	err = s.PostBook(ctx, &data.Book{SellerID: "nope", Title: "Ghost"})
	assert.ErrorIs(t, err, data.ErrNotFound)
	all, _ = s.FindBooks(ctx, data.BookFilter{})
	assert.Len(t, all, 2)
}
