package users

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cardbank/internal/common"
	"github.com/dmitrijs2005/cardbank/internal/dbx"
	"github.com/dmitrijs2005/cardbank/internal/filex"
	"github.com/dmitrijs2005/cardbank/internal/migrations"
	"github.com/dmitrijs2005/cardbank/internal/models"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

// SQLiteBackend keeps records in a single users table. Save rewrites the
// table inside one transaction.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

// OpenSQLite opens (or creates) the database at dsn and applies migrations.
// The pool is limited to one connection: the store is single-user and this
// keeps ":memory:" databases consistent across calls.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteBackend, error) {
	if dsn != ":memory:" {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewSQLiteBackend(db), nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (b *SQLiteBackend) Load(ctx context.Context) ([]*models.User, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT id, username, password_hash, balance, is_frozen, is_lost,
		       is_using, session_token, created_at, last_login
		FROM users
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u := &models.User{}
		var createdAt, lastLogin string
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Balance, &u.IsFrozen, &u.IsLost,
			&u.IsUsing, &u.SessionToken, &createdAt, &lastLogin); err != nil {
			return nil, fmt.Errorf("%w: scan user row: %w", common.ErrCorruptStore, err)
		}
		if u.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("%w: created_at of %s: %w", common.ErrCorruptStore, u.ID, err)
		}
		if u.LastLogin, err = parseTime(lastLogin); err != nil {
			return nil, fmt.Errorf("%w: last_login of %s: %w", common.ErrCorruptStore, u.ID, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, users []*models.User) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		for _, u := range users {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO users (id, username, password_hash, balance, is_frozen, is_lost,
				                   is_using, session_token, created_at, last_login)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				u.ID, u.Username, u.PasswordHash, u.Balance.String(), u.IsFrozen, u.IsLost,
				u.IsUsing, u.SessionToken, formatTime(u.CreatedAt), formatTime(u.LastLogin))
			if err != nil {
				return fmt.Errorf("insert user %s: %w", u.ID, err)
			}
		}
		return nil
	})
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s)
}
