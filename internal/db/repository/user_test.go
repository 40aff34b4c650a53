package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenant-api/internal/db"
	"tenant-api/internal/domain"
)

func seedUsers(t *testing.T, repo *UserRepo, n int) []domain.User {
	t.Helper()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	users := make([]domain.User, 0, n)
	for i := 0; i < n; i++ {
		u := domain.User{
			ID:                fmt.Sprintf("user-%03d", i),
			DisplayName:       fmt.Sprintf("User %d", i),
			UserPrincipalName: fmt.Sprintf("user%d@contoso.example", i),
			MailNickname:      fmt.Sprintf("user%d", i),
			CreatedAt:         base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Upsert(context.Background(), &u))
		users = append(users, u)
	}
	return users
}

func TestUserRepo_UpsertAndGet(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)
	ctx := context.Background()

	u := domain.User{
		ID:                "abc-123",
		DisplayName:       "Jane Doe",
		UserPrincipalName: "jane@contoso.example",
		MailNickname:      "jane",
		CreatedAt:         time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Upsert(ctx, &u))

	got, err := repo.GetByID(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, u.DisplayName, got.DisplayName)
	assert.Equal(t, u.UserPrincipalName, got.UserPrincipalName)
	assert.Equal(t, u.MailNickname, got.MailNickname)
	assert.True(t, got.CreatedAt.Equal(u.CreatedAt))
	assert.False(t, got.IsDeleted)
}

func TestUserRepo_UpsertOverwritesMutableFields(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)
	ctx := context.Background()

	u := domain.User{ID: "abc", DisplayName: "Old", CreatedAt: time.UnixMilli(1000)}
	require.NoError(t, repo.Upsert(ctx, &u))

	u.DisplayName = "New"
	u.CreatedAt = time.UnixMilli(2000)
	require.NoError(t, repo.Upsert(ctx, &u))

	got, err := repo.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "New", got.DisplayName)
	assert.Equal(t, int64(2000), got.CreatedAt.UnixMilli())
}

func TestUserRepo_UpsertIdempotent(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)

	seedUsers(t, repo, 5)
	first := dumpUsers(t, writeDB)

	// A second identical pass must leave the table byte-identical.
	seedUsers(t, repo, 5)
	assert.Equal(t, first, dumpUsers(t, writeDB))
}

func TestUserRepo_UpsertPreservesSoftDelete(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)
	ctx := context.Background()

	u := domain.User{ID: "gone", DisplayName: "Gone", CreatedAt: time.UnixMilli(1000)}
	require.NoError(t, repo.Upsert(ctx, &u))
	require.NoError(t, repo.SoftDelete(ctx, "gone"))

	// Sync refreshing the same record must not resurrect it.
	require.NoError(t, repo.Upsert(ctx, &u))
	_, err := repo.GetByID(ctx, "gone")
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestUserRepo_GetByIDNotFound(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)

	_, err := repo.GetByID(context.Background(), "nope")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUserRepo_SoftDelete(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)
	ctx := context.Background()

	seedUsers(t, repo, 12)
	require.NoError(t, repo.SoftDelete(ctx, "user-003"))

	// Hidden from point reads.
	_, err := repo.GetByID(ctx, "user-003")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	// Hidden from listings.
	users, _, err := repo.ListPage(ctx, domain.PageRequest{PageSize: 50})
	require.NoError(t, err)
	for _, u := range users {
		assert.NotEqual(t, "user-003", u.ID)
	}
	assert.Len(t, users, 11)

	// But the row still physically exists.
	var isDeleted int64
	require.NoError(t, writeDB.QueryRow(
		`SELECT is_deleted FROM users WHERE id = 'user-003'`).Scan(&isDeleted))
	assert.Equal(t, int64(1), isDeleted)

	// Deleting again is NotFound.
	err = repo.SoftDelete(ctx, "user-003")
	require.ErrorAs(t, err, &nf)
}

func TestUserRepo_ListPageKeyset(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)
	ctx := context.Background()

	seedUsers(t, repo, 15)

	page1, next, err := repo.ListPage(ctx, domain.PageRequest{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page1, 10)
	require.NotNil(t, next, "15 rows must produce a next cursor for page size 10")

	page2, next2, err := repo.ListPage(ctx, domain.PageRequest{PageSize: 10, Cursor: next})
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	assert.Nil(t, next2, "end of collection must not produce a cursor")

	// No row is skipped or duplicated across the boundary.
	seen := map[string]bool{}
	for _, u := range append(page1, page2...) {
		assert.False(t, seen[u.ID], "duplicate %s across pages", u.ID)
		seen[u.ID] = true
	}
	assert.Len(t, seen, 15)

	// Strictly ascending order within and across pages.
	all := append(append([]domain.User{}, page1...), page2...)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.Before(all[i].CreatedAt) ||
			(all[i-1].CreatedAt.Equal(all[i].CreatedAt) && all[i-1].ID < all[i].ID))
	}
}

func TestUserRepo_ListPageTimestampTies(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)
	ctx := context.Background()

	// All rows share one timestamp; the ID tie-breaker must still yield a
	// duplicate-free traversal.
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		u := domain.User{ID: fmt.Sprintf("tie-%03d", i), CreatedAt: ts}
		require.NoError(t, repo.Upsert(ctx, &u))
	}

	var collected []string
	page := domain.PageRequest{PageSize: 10}
	for {
		users, next, err := repo.ListPage(ctx, page)
		require.NoError(t, err)
		for _, u := range users {
			collected = append(collected, u.ID)
		}
		if next == nil {
			break
		}
		page.Cursor = next
	}
	require.Len(t, collected, 25)
	seen := map[string]bool{}
	for _, id := range collected {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}

func TestUserRepo_ListPageEmpty(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB)

	users, next, err := repo.ListPage(context.Background(), domain.PageRequest{PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Nil(t, next)
}

// dumpUsers snapshots the whole users table for idempotence comparisons.
func dumpUsers(t *testing.T, sqldb *sql.DB) []string {
	t.Helper()
	rows, err := sqldb.Query(`
		SELECT id, display_name, user_principal_name, mail_nickname, created_at, is_deleted
		FROM users ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id, dn, upn, mn string
		var createdAt, isDeleted int64
		require.NoError(t, rows.Scan(&id, &dn, &upn, &mn, &createdAt, &isDeleted))
		out = append(out, fmt.Sprintf("%s|%s|%s|%s|%d|%d", id, dn, upn, mn, createdAt, isDeleted))
	}
	require.NoError(t, rows.Err())
	return out
}
