package memory

import (
	"context"
	"testing"

	"auction-ledger/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestListingStore_GetPutCount(t *testing.T) {
	store := NewListingStore()
	ctx := context.Background()

	_, found, err := store.Get(ctx, 0)
	require.NoError(t, err)
	require.False(t, found)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)

	listing := &domain.Listing{ID: 0, Title: "Bike", StartingPrice: 100, CurrentPrice: 100, Owner: "alice"}

	existed, err := store.Put(ctx, 0, listing)
	require.NoError(t, err)
	require.False(t, existed)

	got, found, err := store.Get(ctx, 0)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, listing, got)

	// Overwrite reports the prior record
	updated := *listing
	updated.CurrentPrice = 150
	existed, err = store.Put(ctx, 0, &updated)
	require.NoError(t, err)
	require.True(t, existed)

	got, _, err = store.Get(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(150), got.CurrentPrice)

	count, err = store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), count)
}

func TestListingStore_GetReturnsCopy(t *testing.T) {
	store := NewListingStore()
	ctx := context.Background()

	_, err := store.Put(ctx, 0, &domain.Listing{ID: 0, Title: "Bike"})
	require.NoError(t, err)

	got, _, err := store.Get(ctx, 0)
	require.NoError(t, err)
	got.Title = "mutated"

	fresh, _, err := store.Get(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "Bike", fresh.Title)
}

func TestSequenceAllocator_Dense(t *testing.T) {
	alloc := NewSequenceAllocator()
	ctx := context.Background()

	for want := uint64(0); want < 5; want++ {
		id, err := alloc.Next(ctx)
		require.NoError(t, err)
		require.Equal(t, want, id)
	}
}
