package userstore

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PGStore is a Store backed by PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to dsn and applies the schema migrations.
func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(dsn); err != nil {
		pool.Close()
		return nil, err
	}

	return &PGStore{pool: pool}, nil
}

func runMigrations(dsn string) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Debug().Msg("database is up to date")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		log.Info().Msg("database migrations completed")
	}
	return nil
}

func (s *PGStore) AddUser(ctx context.Context, name, login string) (uuid.UUID, error) {
	if err := validate(name, login); err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	query := `INSERT INTO users (id, name, login) VALUES ($1, $2, $3)`
	if _, err := s.pool.Exec(ctx, query, id, name, login); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return uuid.Nil, ErrDuplicateLogin
		}
		return uuid.Nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *PGStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.queryUser(ctx, `SELECT id, name, login FROM users WHERE id = $1`, id)
}

func (s *PGStore) FindUserByName(ctx context.Context, name string) (*User, error) {
	return s.queryUser(ctx, `SELECT id, name, login FROM users WHERE name = $1 ORDER BY created_at LIMIT 1`, name)
}

func (s *PGStore) queryUser(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Login)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Truncate removes every user.
func (s *PGStore) Truncate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE users`)
	return err
}

// Close releases the connection pool.
func (s *PGStore) Close() {
	s.pool.Close()
}
