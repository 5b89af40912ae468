package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"filegrip/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seed(t *testing.T, store *Store, records ...domain.FileRecord) {
	t.Helper()
	require.NoError(t, store.InsertBatch(context.Background(), records))
}

func TestInsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, err := store.Insert(ctx, domain.FileRecord{FileName: "report.pdf", FileSize: 1024, Year: 2023})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID, "insert should assign an id")
	require.Equal(t, "pdf", rec.FileType, "insert should infer the type")

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "report.pdf", got.FileName)
	require.Equal(t, int64(1024), got.FileSize)
	require.Equal(t, 2023, got.Year)
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSearchSubstringCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	seed(t, store,
		domain.FileRecord{FileName: "Annual-Report-2023.pdf"},
		domain.FileRecord{FileName: "meeting-notes.pdf"},
		domain.FileRecord{FileName: "quarterly-report.pdf"},
	)

	records, err := store.Search(context.Background(), domain.Query{Text: "report"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		require.Contains(t, []string{"Annual-Report-2023.pdf", "quarterly-report.pdf"}, r.FileName)
	}
}

func TestSearchYearAndTypeFilters(t *testing.T) {
	store := newTestStore(t)
	seed(t, store,
		domain.FileRecord{FileName: "a.pdf", Year: 2022},
		domain.FileRecord{FileName: "b.pdf", Year: 2023},
		domain.FileRecord{FileName: "c.mp4", Year: 2023},
	)
	ctx := context.Background()

	records, err := store.Search(ctx, domain.Query{Year: 2023}, 1, 20)
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = store.Search(ctx, domain.Query{Year: 2023, Type: "PDF"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "b.pdf", records[0].FileName)
}

func TestSearchSortOrder(t *testing.T) {
	store := newTestStore(t)
	seed(t, store,
		domain.FileRecord{FileName: "oldest.pdf"},
		domain.FileRecord{FileName: "middle.pdf"},
		domain.FileRecord{FileName: "newest.pdf"},
	)
	ctx := context.Background()

	records, err := store.Search(ctx, domain.Query{Sort: domain.SortDesc}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, "newest.pdf", records[0].FileName, "default order is newest first")

	records, err = store.Search(ctx, domain.Query{Sort: domain.SortAsc}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, "oldest.pdf", records[0].FileName)
}

func TestSearchPagination(t *testing.T) {
	store := newTestStore(t)
	var records []domain.FileRecord
	for i := 0; i < 25; i++ {
		records = append(records, domain.FileRecord{FileName: fmt.Sprintf("file-%02d.pdf", i)})
	}
	seed(t, store, records...)
	ctx := context.Background()

	page1, err := store.Search(ctx, domain.Query{Sort: domain.SortAsc}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page1, 10)
	require.Equal(t, "file-00.pdf", page1[0].FileName)

	page3, err := store.Search(ctx, domain.Query{Sort: domain.SortAsc}, 3, 10)
	require.NoError(t, err)
	require.Len(t, page3, 5, "last page is short")
	require.Equal(t, "file-20.pdf", page3[0].FileName)

	page4, err := store.Search(ctx, domain.Query{Sort: domain.SortAsc}, 4, 10)
	require.NoError(t, err)
	require.Empty(t, page4)
}

func TestSearchEscapesLikeWildcards(t *testing.T) {
	store := newTestStore(t)
	seed(t, store,
		domain.FileRecord{FileName: "progress-100%.pdf"},
		domain.FileRecord{FileName: "progress-report.pdf"},
	)

	records, err := store.Search(context.Background(), domain.Query{Text: "100%"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "progress-100%.pdf", records[0].FileName)
}

func TestPerPageClamped(t *testing.T) {
	store := newTestStore(t)
	seed(t, store, domain.FileRecord{FileName: "a.pdf"})

	records, err := store.Search(context.Background(), domain.Query{}, 0, 100000)
	require.NoError(t, err)
	require.Len(t, records, 1, "out-of-range paging falls back to sane values")
}

func TestCount(t *testing.T) {
	store := newTestStore(t)
	seed(t, store,
		domain.FileRecord{FileName: "a.pdf"},
		domain.FileRecord{FileName: "b.pdf"},
	)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
