package tests

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/name-service/pkg/registry/data/account"
)

func RunTests(t *testing.T, s account.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s account.Store){
		testHappyPath,
		testAtomicSave,
		testOwnerQueries,
		testConcurrentUpdates,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s account.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()
		start := time.Now().Add(-time.Second)

		record := &account.Record{
			Address:  "address",
			Owner:    "owner",
			Lamports: 1_000,
			Data:     []byte{1, 2, 3},
		}
		cloned := record.Clone()

		_, err := s.Get(ctx, record.Address)
		assert.Equal(t, account.ErrAccountNotFound, err)

		require.NoError(t, s.Save(ctx, record))
		assert.True(t, record.Id > 0)
		assert.EqualValues(t, 1, record.Version)
		assert.True(t, record.CreatedAt.After(start))
		assert.True(t, record.LastUpdatedAt.After(start))

		duplicate := cloned.Clone()
		assert.Equal(t, account.ErrAccountExists, s.Save(ctx, &duplicate))

		actual, err := s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.Equal(t, record.Id, actual.Id)
		assert.EqualValues(t, 1, actual.Version)
		assert.True(t, cloned.IsEquivalent(actual))

		record.Owner = "new_owner"
		record.Lamports = 0
		record.Data = []byte{4, 5, 6}
		require.NoError(t, s.Save(ctx, record))
		assert.EqualValues(t, 2, record.Version)

		actual, err = s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 2, actual.Version)
		assert.Equal(t, "new_owner", actual.Owner)
		assert.EqualValues(t, 0, actual.Lamports)
		assert.Equal(t, []byte{4, 5, 6}, actual.Data)

		// Writing from an outdated view of the account is rejected
		stale := actual.Clone()
		stale.Version = 1
		stale.Lamports = 10
		assert.Equal(t, account.ErrStaleVersion, s.Save(ctx, &stale))

		missing := &account.Record{
			Address: "missing",
			Owner:   "owner",
			Version: 1,
		}
		assert.Equal(t, account.ErrStaleVersion, s.Save(ctx, missing))

		actual, err = s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 2, actual.Version)
		assert.EqualValues(t, 0, actual.Lamports)

		// Mutating a returned record must not leak into the store
		actual.Data[0] = 0xff
		actual, err = s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.Equal(t, []byte{4, 5, 6}, actual.Data)
	})
}

func testAtomicSave(t *testing.T, s account.Store) {
	t.Run("testAtomicSave", func(t *testing.T) {
		ctx := context.Background()

		first := &account.Record{Address: "first", Owner: "owner", Lamports: 10}
		second := &account.Record{Address: "second", Owner: "owner", Lamports: 20}
		require.NoError(t, s.Save(ctx, first, second))
		assert.EqualValues(t, 1, first.Version)
		assert.EqualValues(t, 1, second.Version)

		// The second update is stale, so the first one must not be applied
		updatedFirst := first.Clone()
		updatedFirst.Lamports = 0
		staleSecond := second.Clone()
		staleSecond.Version = 5
		staleSecond.Lamports = 30
		assert.Equal(t, account.ErrStaleVersion, s.Save(ctx, &updatedFirst, &staleSecond))
		assert.EqualValues(t, 1, updatedFirst.Version)

		actual, err := s.Get(ctx, first.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 10, actual.Lamports)
		assert.EqualValues(t, 1, actual.Version)

		// A colliding create rolls back the whole batch
		third := &account.Record{Address: "third", Owner: "owner"}
		collision := &account.Record{Address: "first", Owner: "owner"}
		assert.Equal(t, account.ErrAccountExists, s.Save(ctx, third, collision))

		_, err = s.Get(ctx, third.Address)
		assert.Equal(t, account.ErrAccountNotFound, err)

		duplicated := first.Clone()
		assert.Equal(t, account.ErrDuplicateRecord, s.Save(ctx, first, &duplicated))

		invalid := &account.Record{Address: "invalid"}
		assert.Error(t, s.Save(ctx, invalid))

		require.NoError(t, s.Save(ctx, first, second))
		assert.EqualValues(t, 2, first.Version)
		assert.EqualValues(t, 2, second.Version)
	})
}

func testOwnerQueries(t *testing.T, s account.Store) {
	t.Run("testOwnerQueries", func(t *testing.T) {
		ctx := context.Background()

		count, err := s.CountByOwner(ctx, "owner1")
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)

		_, err = s.GetAllByOwner(ctx, "owner1", 0, 10)
		assert.Equal(t, account.ErrAccountNotFound, err)

		var expected []string
		for i := 0; i < 10; i++ {
			owner := "owner1"
			if i%2 == 1 {
				owner = "owner2"
			} else {
				expected = append(expected, fmt.Sprintf("account%d", i))
			}

			record := &account.Record{
				Address: fmt.Sprintf("account%d", i),
				Owner:   owner,
				Data:    []byte{byte(i)},
			}
			require.NoError(t, s.Save(ctx, record))
		}

		count, err = s.CountByOwner(ctx, "owner1")
		require.NoError(t, err)
		assert.EqualValues(t, 5, count)

		count, err = s.CountByOwner(ctx, "owner2")
		require.NoError(t, err)
		assert.EqualValues(t, 5, count)

		_, err = s.GetAllByOwner(ctx, "owner1", 0, 0)
		assert.Equal(t, account.ErrAccountNotFound, err)

		var actual []string
		var cursor uint64
		for {
			page, err := s.GetAllByOwner(ctx, "owner1", cursor, 2)
			if err == account.ErrAccountNotFound {
				break
			}
			require.NoError(t, err)
			assert.True(t, len(page) <= 2)

			for _, record := range page {
				assert.Equal(t, "owner1", record.Owner)
				assert.True(t, record.Id > cursor)
				cursor = record.Id
				actual = append(actual, record.Address)
			}
		}
		assert.Equal(t, expected, actual)

		// Reassigning moves the account between owners
		record, err := s.Get(ctx, "account0")
		require.NoError(t, err)
		record.Owner = "owner2"
		require.NoError(t, s.Save(ctx, record))

		count, err = s.CountByOwner(ctx, "owner1")
		require.NoError(t, err)
		assert.EqualValues(t, 4, count)

		count, err = s.CountByOwner(ctx, "owner2")
		require.NoError(t, err)
		assert.EqualValues(t, 6, count)
	})
}

func testConcurrentUpdates(t *testing.T, s account.Store) {
	t.Run("testConcurrentUpdates", func(t *testing.T) {
		ctx := context.Background()

		record := &account.Record{
			Address:  "contended",
			Owner:    "owner",
			Lamports: 100,
		}
		require.NoError(t, s.Save(ctx, record))

		writers := 16
		results := make([]error, writers)

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				update := record.Clone()
				update.Lamports = uint64(i)
				results[i] = s.Save(ctx, &update)
			}(i)
		}
		wg.Wait()

		var succeeded int
		for _, err := range results {
			if err == nil {
				succeeded++
				continue
			}
			assert.Equal(t, account.ErrStaleVersion, err)
		}
		assert.Equal(t, 1, succeeded)

		actual, err := s.Get(ctx, "contended")
		require.NoError(t, err)
		assert.EqualValues(t, record.Version+1, actual.Version)
	})
}
