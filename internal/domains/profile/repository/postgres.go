package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"profile-backend/internal/domains/profile/model"
	"profile-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface over pgxpool.
// JSON fields live in JSONB columns.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS profiles (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT        NOT NULL,
    email       TEXT        NOT NULL UNIQUE,
    education   TEXT        NOT NULL DEFAULT '',
    skills      JSONB       NOT NULL DEFAULT '[]'::jsonb,
    projects    JSONB       NOT NULL DEFAULT '[]'::jsonb,
    work        JSONB       NOT NULL DEFAULT '[]'::jsonb,
    links       JSONB       NOT NULL DEFAULT '{}'::jsonb,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const pgProfileColumns = `id, name, email, education, skills, projects, work, links, created_at, updated_at`

// EnsurePostgresSchema creates the profiles table when it does not exist.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func scanPgProfile(row pgx.Row, extra ...interface{}) (*model.Profile, error) {
	var (
		p    model.Profile
		cols jsonColumns
	)
	dest := []interface{}{
		&p.ID, &p.Name, &p.Email, &p.Education,
		&cols.Skills, &cols.Projects, &cols.Work, &cols.Links,
		&p.CreatedAt, &p.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := cols.decodeInto(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+pgProfileColumns+` FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.Profile, 0)
	for rows.Next() {
		p, err := scanPgProfile(rows)
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

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+pgProfileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanPgProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+pgProfileColumns+` FROM profiles WHERE email = $1`, email)
	p, err := scanPgProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return p, nil
}

// Upsert relies on ON CONFLICT so the read-modify-write is a single statement;
// xmax = 0 is true only for freshly inserted tuples.
const pgUpsertQuery = `
    INSERT INTO profiles (name, email, education, skills, projects, work, links)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    ON CONFLICT (email) DO UPDATE SET
        name       = EXCLUDED.name,
        education  = EXCLUDED.education,
        skills     = EXCLUDED.skills,
        projects   = EXCLUDED.projects,
        work       = EXCLUDED.work,
        links      = EXCLUDED.links,
        updated_at = NOW()
    RETURNING ` + pgProfileColumns + `, (xmax = 0) AS inserted`

type pgQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func upsertPg(ctx context.Context, q pgQuerier, p *model.Profile) (*model.Profile, bool, error) {
	cols, err := encodeColumns(p)
	if err != nil {
		return nil, false, err
	}

	var inserted bool
	row := q.QueryRow(ctx, pgUpsertQuery,
		p.Name, p.Email, p.Education,
		cols.Skills, cols.Projects, cols.Work, cols.Links,
	)
	stored, err := scanPgProfile(row, &inserted)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return stored, inserted, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
	return upsertPg(ctx, r.pool, p)
}

const pgUpdateQuery = `
    UPDATE profiles
    SET name = $1, email = $2, education = $3,
        skills = $4, projects = $5, work = $6, links = $7,
        updated_at = NOW()
    WHERE id = $8
    RETURNING ` + pgProfileColumns

// Update holds a row lock between the read and the write.
func (r *postgresRepository) Update(ctx context.Context, id int64, apply func(*model.Profile)) (*model.Profile, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Profile, error) {
		row := tx.QueryRow(ctx, `SELECT `+pgProfileColumns+` FROM profiles WHERE id = $1 FOR UPDATE`, id)
		p, err := scanPgProfile(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrProfileNotFound
			}
			return nil, fmt.Errorf("failed to lock profile: %w", err)
		}
		apply(p)

		cols, err := encodeColumns(p)
		if err != nil {
			return nil, err
		}
		row = tx.QueryRow(ctx, pgUpdateQuery,
			p.Name, p.Email, p.Education,
			cols.Skills, cols.Projects, cols.Work, cols.Links,
			id,
		)
		updated, err := scanPgProfile(row)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return nil, model.ErrDuplicateEmail
			}
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
		return updated, nil
	})
}

type seedResult struct {
	profile *model.Profile
	created bool
}

func (r *postgresRepository) SeedExclusive(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
	res, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (seedResult, error) {
		stored, created, err := upsertPg(ctx, tx, p)
		if err != nil {
			return seedResult{}, err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE email <> $1`, stored.Email); err != nil {
			return seedResult{}, fmt.Errorf("failed to prune profiles: %w", err)
		}
		return seedResult{profile: stored, created: created}, nil
	})
	if err != nil {
		return nil, false, err
	}
	return res.profile, res.created, nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
