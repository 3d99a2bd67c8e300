package chapters

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ShivamAmratlalPatel/chapter-portal-backend/pager"
)

var _baseDate = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Chapter{}))

	return db
}

// seedChapters inserts n live chapters sharing created dates and names in
// groups, plus a few deleted ones.
func seedChapters(t *testing.T, db *gorm.DB, n int) []Chapter {
	t.Helper()

	zones := []Zone{ZoneLondon, ZoneSouth, ZoneNorth, ZoneCentral}

	live := make([]Chapter, 0, n)
	for i := range n {
		live = append(live, Chapter{
			ID:          uuid.New(),
			Name:        fmt.Sprintf("Chapter %02d", i%5),
			Zone:        zones[i%len(zones)],
			Email:       fmt.Sprintf("chapter%d@example.com", i),
			CreatedDate: _baseDate.Add(time.Duration(i/3) * time.Hour),
		})
	}
	if n > 0 {
		require.NoError(t, db.Create(&live).Error)
	}

	deleted := []Chapter{
		{Name: "Chapter 00", Zone: ZoneLondon, CreatedDate: _baseDate, IsDeleted: true},
		{Name: "Chapter 99", Zone: ZoneNorth, CreatedDate: _baseDate.Add(time.Hour), IsDeleted: true},
	}
	require.NoError(t, db.Create(&deleted).Error)

	return live
}

func expectedOrder(chapters []Chapter, byName bool) []uuid.UUID {
	sorted := slices.Clone(chapters)
	slices.SortFunc(sorted, func(a, b Chapter) int {
		primary := lo.Ternary(byName, cmp.Compare(a.Name, b.Name), b.CreatedDate.Compare(a.CreatedDate))
		return cmp.Or(primary, cmp.Compare(a.ID.String(), b.ID.String()))
	})

	return lo.Map(sorted, func(c Chapter, _ int) uuid.UUID { return c.ID })
}

func ids(page *pager.Page[ChapterRead]) []uuid.UUID {
	return lo.Map(page.Results, func(c ChapterRead, _ int) uuid.UUID { return c.ID })
}

func Test_Repository_List_Traversal(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		byName bool
	}{
		{"default order", "", false},
		{"newest first", string(pager.SortByDateDesc), false},
		{"action required keeps default order", string(pager.SortByActionRequired), false},
		{"name ascending", string(pager.SortByNameAsc), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newSQLiteDB(t)
			live := seedChapters(t, db, 25)
			repo := NewRepository(db, 10, 100)

			var (
				visited []uuid.UUID
				req     = ListRequest{SortBy: tt.sortBy}
			)
			for i := 0; ; i++ {
				require.Less(t, i, 5, "traversal does not terminate")

				page, err := repo.List(context.Background(), req)
				require.NoError(t, err)
				require.LessOrEqual(t, len(page.Results), 10)

				visited = append(visited, ids(page)...)
				if page.Next == nil {
					break
				}

				req.CursorID = page.Next.ID.(uuid.UUID).String()
				switch v := page.Next.Column.(type) {
				case time.Time:
					// Timestamps travel as RFC 3339 text through the query string.
					req.CursorColumn = v.Format(time.RFC3339Nano)
				default:
					req.CursorColumn = fmt.Sprint(v)
				}
			}

			assert.Equal(t, expectedOrder(live, tt.byName), visited)
		})
	}
}

func Test_Repository_List_Previous(t *testing.T) {
	db := newSQLiteDB(t)
	seedChapters(t, db, 25)
	repo := NewRepository(db, 10, 100)

	first, err := repo.List(context.Background(), ListRequest{SortBy: string(pager.SortByNameAsc)})
	require.NoError(t, err)
	require.Nil(t, first.Previous)

	second, err := repo.List(context.Background(), ListRequest{
		SortBy: string(pager.SortByNameAsc),
		RawKeysetPager: pager.RawKeysetPager{
			CursorColumn: first.Next.Column.(string),
			CursorID:     first.Next.ID.(uuid.UUID).String(),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, second.Previous)

	back, err := repo.List(context.Background(), ListRequest{
		SortBy: string(pager.SortByNameAsc),
		RawKeysetPager: pager.RawKeysetPager{
			CursorColumn: second.Previous.Column.(string),
			CursorID:     second.Previous.ID.(uuid.UUID).String(),
			Previous:     true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, ids(first), ids(back))
	assert.Nil(t, back.Previous)
}

func Test_Repository_List_TimestampShapedNames(t *testing.T) {
	db := newSQLiteDB(t)

	chapters := []Chapter{
		{ID: uuid.New(), Name: "2024-01-01T00:00:00Z", Zone: ZoneLondon, CreatedDate: _baseDate},
		{ID: uuid.New(), Name: "2024-01-01T00:00:00Z", Zone: ZoneSouth, CreatedDate: _baseDate},
		{ID: uuid.New(), Name: "Zeta", Zone: ZoneNorth, CreatedDate: _baseDate},
	}
	require.NoError(t, db.Create(&chapters).Error)

	repo := NewRepository(db, 1, 100)
	req := ListRequest{SortBy: string(pager.SortByNameAsc)}

	var visited []uuid.UUID
	for i := 0; ; i++ {
		require.Less(t, i, len(chapters)+1, "traversal does not terminate")

		page, err := repo.List(context.Background(), req)
		require.NoError(t, err)

		visited = append(visited, ids(page)...)
		if page.Next == nil {
			break
		}

		req.CursorColumn = page.Next.Column.(string)
		req.CursorID = page.Next.ID.(uuid.UUID).String()
	}

	assert.Equal(t, expectedOrder(chapters, true), visited)

	// The opaque token carries the same name as JSON text.
	first, err := repo.List(context.Background(), ListRequest{SortBy: string(pager.SortByNameAsc)})
	require.NoError(t, err)

	second, err := repo.List(context.Background(), ListRequest{
		SortBy:         string(pager.SortByNameAsc),
		RawKeysetPager: pager.RawKeysetPager{Token: first.Next.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, visited[1:2], ids(second))
}

func Test_Repository_List_Empty(t *testing.T) {
	db := newSQLiteDB(t)
	seedChapters(t, db, 0)

	page, err := NewRepository(db, 10, 100).List(context.Background(), ListRequest{})
	require.NoError(t, err)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
	assert.Empty(t, page.Results)
}

func Test_Repository_List_Errors(t *testing.T) {
	db := newSQLiteDB(t)
	seedChapters(t, db, 3)
	repo := NewRepository(db, 10, 100)

	tests := []struct {
		name    string
		req     ListRequest
		wantErr error
	}{
		{
			name:    "unknown sort mode",
			req:     ListRequest{SortBy: "oldest"},
			wantErr: pager.ErrInvalidSortConfiguration,
		},
		{
			name:    "chapters have no move-in date",
			req:     ListRequest{SortBy: string(pager.SortByMoveInAsc)},
			wantErr: pager.ErrInvalidSortConfiguration,
		},
		{
			name:    "partial cursor",
			req:     ListRequest{RawKeysetPager: pager.RawKeysetPager{CursorColumn: "Chapter 01"}},
			wantErr: pager.ErrInvalidCursor,
		},
		{
			name: "date cursor that is not a timestamp",
			req: ListRequest{RawKeysetPager: pager.RawKeysetPager{
				CursorColumn: "Chapter 01",
				CursorID:     uuid.NewString(),
			}},
			wantErr: pager.ErrInvalidCursor,
		},
		{
			name: "cursor id that is not a uuid",
			req: ListRequest{
				SortBy:         string(pager.SortByNameAsc),
				RawKeysetPager: pager.RawKeysetPager{CursorColumn: "Chapter 01", CursorID: "42"},
			},
			wantErr: pager.ErrInvalidCursor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.List(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func Test_NewChapterRead(t *testing.T) {
	c := Chapter{ID: uuid.New(), Name: "North", Zone: ZoneNorth, CreatedDate: _baseDate}

	read, err := NewChapterRead(c)
	require.NoError(t, err)
	assert.Equal(t, c.ID, read.ID)
	assert.Equal(t, ZoneNorth, read.Zone)

	c.Zone = "Atlantis"
	_, err = NewChapterRead(c)
	require.Error(t, err)
}
