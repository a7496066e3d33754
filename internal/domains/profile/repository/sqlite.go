package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"profile-backend/internal/domains/profile/model"
)

// sqliteRepository implements RepositoryInterface over database/sql with the
// modernc SQLite driver. The handle is expected to hold a single connection,
// which serialises writers.
type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    email       TEXT NOT NULL UNIQUE,
    education   TEXT NOT NULL DEFAULT '',
    skills      TEXT NOT NULL DEFAULT '[]',
    projects    TEXT NOT NULL DEFAULT '[]',
    work        TEXT NOT NULL DEFAULT '[]',
    links       TEXT NOT NULL DEFAULT '{}',
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
)`

const sqliteProfileColumns = `id, name, email, education, skills, projects, work, links, created_at, updated_at`

// EnsureSQLiteSchema creates the profiles table when it does not exist.
func EnsureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteProfile(row rowScanner) (*model.Profile, error) {
	var (
		p                    model.Profile
		skills, projects     string
		work, links          string
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Education,
		&skills, &projects, &work, &links, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	cols := jsonColumns{
		Skills:   []byte(skills),
		Projects: []byte(projects),
		Work:     []byte(work),
		Links:    []byte(links),
	}
	if err := cols.decodeInto(&p); err != nil {
		return nil, err
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &p, nil
}

func nowText() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func (r *sqliteRepository) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sqliteProfileColumns+` FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.Profile, 0)
	for rows.Next() {
		p, err := scanSQLiteProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

type sqlQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func getSQLiteBy(ctx context.Context, q sqlQuerier, column string, value any) (*model.Profile, error) {
	row := q.QueryRowContext(ctx, `SELECT `+sqliteProfileColumns+` FROM profiles WHERE `+column+` = ?`, value)
	p, err := scanSQLiteProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile by %s: %w", column, err)
	}
	return p, nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, id int64) (*model.Profile, error) {
	return getSQLiteBy(ctx, r.db, "id", id)
}

func (r *sqliteRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return getSQLiteBy(ctx, r.db, "email", email)
}

// upsertSQLite runs inside tx: look up by email, then insert or replace.
func upsertSQLite(ctx context.Context, tx *sql.Tx, p *model.Profile) (*model.Profile, bool, error) {
	cols, err := encodeColumns(p)
	if err != nil {
		return nil, false, err
	}

	existing, err := getSQLiteBy(ctx, tx, "email", p.Email)
	switch {
	case errors.Is(err, model.ErrProfileNotFound):
		now := nowText()
		res, err := tx.ExecContext(ctx, `
            INSERT INTO profiles (name, email, education, skills, projects, work, links, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Email, p.Education,
			string(cols.Skills), string(cols.Projects), string(cols.Work), string(cols.Links),
			now, now,
		)
		if err != nil {
			return nil, false, fmt.Errorf("failed to insert profile: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, false, fmt.Errorf("failed to read inserted id: %w", err)
		}
		stored, err := getSQLiteBy(ctx, tx, "id", id)
		return stored, true, err
	case err != nil:
		return nil, false, err
	}

	if _, err := tx.ExecContext(ctx, `
        UPDATE profiles
        SET name = ?, education = ?, skills = ?, projects = ?, work = ?, links = ?, updated_at = ?
        WHERE id = ?`,
		p.Name, p.Education,
		string(cols.Skills), string(cols.Projects), string(cols.Work), string(cols.Links),
		nowText(), existing.ID,
	); err != nil {
		return nil, false, fmt.Errorf("failed to replace profile: %w", err)
	}
	stored, err := getSQLiteBy(ctx, tx, "id", existing.ID)
	return stored, false, err
}

// withTx commits when fn succeeds and rolls back otherwise.
func (r *sqliteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *sqliteRepository) Upsert(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
	var (
		stored  *model.Profile
		created bool
	)
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		stored, created, err = upsertSQLite(ctx, tx, p)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (r *sqliteRepository) Update(ctx context.Context, id int64, apply func(*model.Profile)) (*model.Profile, error) {
	var updated *model.Profile
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		p, err := getSQLiteBy(ctx, tx, "id", id)
		if err != nil {
			return err
		}
		apply(p)

		cols, err := encodeColumns(p)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
            UPDATE profiles
            SET name = ?, email = ?, education = ?, skills = ?, projects = ?, work = ?, links = ?, updated_at = ?
            WHERE id = ?`,
			p.Name, p.Email, p.Education,
			string(cols.Skills), string(cols.Projects), string(cols.Work), string(cols.Links),
			nowText(), id,
		); err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return model.ErrDuplicateEmail
			}
			return fmt.Errorf("failed to update profile: %w", err)
		}

		updated, err = getSQLiteBy(ctx, tx, "id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *sqliteRepository) SeedExclusive(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
	var (
		stored  *model.Profile
		created bool
	)
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		stored, created, err = upsertSQLite(ctx, tx, p)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE email <> ?`, stored.Email); err != nil {
			return fmt.Errorf("failed to prune profiles: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (r *sqliteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
