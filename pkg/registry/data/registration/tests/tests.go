package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/name-service/pkg/database/query"
	"github.com/code-payments/name-service/pkg/registry/data/registration"
)

func RunTests(t *testing.T, s registration.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s registration.Store){
		testHappyPath,
		testUniqueness,
		testQueries,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s registration.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		ctx := context.Background()
		start := time.Now().Add(-time.Second)

		record := &registration.Record{
			StorageAccount: "storage",
			Program:        "program",
			Kind:           registration.KindAccount,

			Target: "target",
			Label:  "name that we want to register 12",

			Index: 1,
		}
		cloned := record.Clone()

		_, err := s.GetByStorageAccount(ctx, record.StorageAccount)
		assert.Equal(t, registration.ErrRegistrationNotFound, err)

		_, err = s.GetByIndex(ctx, record.Program, record.Index)
		assert.Equal(t, registration.ErrRegistrationNotFound, err)

		require.NoError(t, s.Put(ctx, record))
		assert.True(t, record.Id > 0)
		assert.True(t, record.CreatedAt.After(start))

		actual, err := s.GetByStorageAccount(ctx, record.StorageAccount)
		require.NoError(t, err)
		assert.Equal(t, record.Id, actual.Id)
		assertEquivalentRecords(t, &cloned, actual)

		actual, err = s.GetByIndex(ctx, record.Program, record.Index)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)

		// Labels are raw bytes
		token := &registration.Record{
			StorageAccount: "token_storage",
			Program:        "token_program",
			Kind:           registration.KindToken,

			Target: "mint",
			Label:  string([]byte{0xff, 0x00, 'a'}),
		}
		cloned = token.Clone()
		require.NoError(t, s.Put(ctx, token))

		actual, err = s.GetByStorageAccount(ctx, token.StorageAccount)
		require.NoError(t, err)
		assertEquivalentRecords(t, &cloned, actual)

		_, err = s.GetByIndex(ctx, token.Program, 0)
		assert.Equal(t, registration.ErrRegistrationNotFound, err)
	})
}

func testUniqueness(t *testing.T, s registration.Store) {
	t.Run("testUniqueness", func(t *testing.T) {
		ctx := context.Background()

		record := &registration.Record{
			StorageAccount: "storage",
			Program:        "program",
			Kind:           registration.KindAccount,
			Target:         "target",
			Label:          "label",
			Index:          1,
		}
		require.NoError(t, s.Put(ctx, record))

		sameStorage := record.Clone()
		sameStorage.Index = 2
		assert.Equal(t, registration.ErrRegistrationExists, s.Put(ctx, &sameStorage))

		sameIndex := record.Clone()
		sameIndex.StorageAccount = "other_storage"
		assert.Equal(t, registration.ErrRegistrationExists, s.Put(ctx, &sameIndex))

		otherProgram := sameIndex.Clone()
		otherProgram.Program = "other_program"
		require.NoError(t, s.Put(ctx, &otherProgram))

		// Tokens carry no index, so many may share a program
		for i := 0; i < 3; i++ {
			require.NoError(t, s.Put(ctx, &registration.Record{
				StorageAccount: fmt.Sprintf("token_storage%d", i),
				Program:        "program",
				Kind:           registration.KindToken,
				Target:         "mint",
			}))
		}

		for _, invalid := range []*registration.Record{
			{Program: "program", Kind: registration.KindAccount, Target: "target", Index: 5},
			{StorageAccount: "a", Kind: registration.KindAccount, Target: "target", Index: 5},
			{StorageAccount: "a", Program: "program", Kind: registration.KindAccount, Index: 5},
			{StorageAccount: "a", Program: "program", Kind: registration.KindAccount, Target: "target"},
			{StorageAccount: "a", Program: "program", Kind: registration.KindToken, Target: "mint", Index: 5},
			{StorageAccount: "a", Program: "program", Target: "target"},
		} {
			assert.Error(t, s.Put(ctx, invalid))
		}

		_, err := s.GetByStorageAccount(ctx, "a")
		assert.Equal(t, registration.ErrRegistrationNotFound, err)
	})
}

func testQueries(t *testing.T, s registration.Store) {
	t.Run("testQueries", func(t *testing.T) {
		ctx := context.Background()

		for _, kind := range []registration.Kind{registration.KindAccount, registration.KindToken} {
			count, err := s.Count(ctx, kind)
			require.NoError(t, err)
			assert.EqualValues(t, 0, count)
		}

		_, err := s.GetAllByLabel(ctx, "label0")
		assert.Equal(t, registration.ErrRegistrationNotFound, err)

		_, err = s.GetAllByTarget(ctx, "target0")
		assert.Equal(t, registration.ErrRegistrationNotFound, err)

		for i := 0; i < 12; i++ {
			record := &registration.Record{
				StorageAccount: fmt.Sprintf("storage%d", i),
				Program:        "program",
				Kind:           registration.KindAccount,
				Target:         fmt.Sprintf("target%d", i%3),
				Label:          fmt.Sprintf("label%d", i%4),
				Index:          uint64(i + 1),
			}
			if i%2 == 1 {
				record.Kind = registration.KindToken
				record.Index = 0
			}
			require.NoError(t, s.Put(ctx, record))
		}

		for _, kind := range []registration.Kind{registration.KindAccount, registration.KindToken} {
			count, err := s.Count(ctx, kind)
			require.NoError(t, err)
			assert.EqualValues(t, 6, count)
		}

		actual, err := s.GetAllByLabel(ctx, "label1")
		require.NoError(t, err)
		require.Len(t, actual, 3)
		for i, record := range actual {
			assert.Equal(t, "label1", record.Label)
			assert.Equal(t, fmt.Sprintf("storage%d", 1+4*i), record.StorageAccount)
		}

		actual, err = s.GetAllByTarget(ctx, "target2")
		require.NoError(t, err)
		require.Len(t, actual, 4)
		for i, record := range actual {
			assert.Equal(t, "target2", record.Target)
			assert.Equal(t, fmt.Sprintf("storage%d", 2+3*i), record.StorageAccount)
		}

		// target2 holds storage2, storage5, storage8 and storage11
		page, err := s.GetAllByTarget(ctx, "target2", query.WithLimit(2))
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "storage2", page[0].StorageAccount)
		assert.Equal(t, "storage5", page[1].StorageAccount)

		page, err = s.GetAllByTarget(ctx, "target2", query.WithLimit(2), query.WithCursor(query.ToCursor(page[1].Id)))
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "storage8", page[0].StorageAccount)
		assert.Equal(t, "storage11", page[1].StorageAccount)

		_, err = s.GetAllByTarget(ctx, "target2", query.WithCursor(query.ToCursor(page[1].Id)))
		assert.Equal(t, registration.ErrRegistrationNotFound, err)

		page, err = s.GetAllByLabel(ctx, "label1", query.WithDirection(query.Descending))
		require.NoError(t, err)
		require.Len(t, page, 3)
		assert.Equal(t, "storage9", page[0].StorageAccount)
		assert.Equal(t, "storage1", page[2].StorageAccount)

		page, err = s.GetAllByLabel(ctx, "label1", query.WithDirection(query.Descending), query.WithLimit(1), query.WithCursor(query.ToCursor(page[0].Id)))
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "storage5", page[0].StorageAccount)

		_, err = s.GetAllByLabel(ctx, "label1", query.WithLimit(0))
		assert.Equal(t, query.ErrQueryNotSupported, err)

		record, err := s.GetByIndex(ctx, "program", 5)
		require.NoError(t, err)
		assert.Equal(t, "storage4", record.StorageAccount)

		_, err = s.GetByIndex(ctx, "program", 6)
		assert.Equal(t, registration.ErrRegistrationNotFound, err)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *registration.Record) {
	assert.Equal(t, obj1.StorageAccount, obj2.StorageAccount)
	assert.Equal(t, obj1.Program, obj2.Program)
	assert.Equal(t, obj1.Kind, obj2.Kind)
	assert.Equal(t, obj1.Target, obj2.Target)
	assert.Equal(t, obj1.Label, obj2.Label)
	assert.Equal(t, obj1.Index, obj2.Index)
}
