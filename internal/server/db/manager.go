// Package db wires the SQL connection to the repository implementations and
// runs the embedded migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atelieperto/atelieperto/internal/server/migrations"
	"github.com/atelieperto/atelieperto/internal/server/repositories/providers"
	"github.com/atelieperto/atelieperto/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Providers() providers.Repository
}

type PostgresRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	providers providers.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Providers() providers.Repository {
	return m.providers
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	users, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	providers, err := providers.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("provider repo creation error: %w", err)
	}

	return &PostgresRepositoryManager{db: db, users: users, providers: providers}, nil
}
