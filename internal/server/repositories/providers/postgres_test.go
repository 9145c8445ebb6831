package providers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/atelieperto/atelieperto/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE providers (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			photo_key TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT '',
			rating TEXT NOT NULL DEFAULT '0.0',
			review_count INTEGER NOT NULL DEFAULT 0,
			experience INTEGER NOT NULL DEFAULT 0,
			specialization TEXT NOT NULL DEFAULT '',
			education TEXT NOT NULL DEFAULT '',
			working_hours TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			distance TEXT NOT NULL DEFAULT '',
			services TEXT NOT NULL DEFAULT '[]',
			price TEXT NOT NULL DEFAULT '',
			featured BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE provider_offers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			provider_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			price_range TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE provider_reviews (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			provider_id INTEGER NOT NULL,
			customer_name TEXT NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT NOT NULL,
			review_date TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,
	}
	for _, s := range stmts {
		_, err = db.Exec(s)
		require.NoError(t, err)
	}

	_, err = db.Exec(`INSERT INTO providers
		(id, name, email, phone, address, photo_key, bio, rating, review_count, experience,
		 specialization, education, working_hours, status, distance, services, price, featured)
		VALUES
		(1, 'Maria Silva Santos', 'maria.silva@atelieperto.com', '(85) 99876-5432',
		 'Rua das Flores, 100 - Centro, Timon - MA', 'providers/1.jpg',
		 'Especializada em vestidos de festa.', '4.9', 187, 15,
		 'Especialista em Vestidos de Festa', 'Universidade Anhembi Morumbi',
		 'Segunda a Sexta: 9h às 19h', 'Disponível', '12min',
		 '["Vestidos de Festa","Bordados","Ajustes"]', 'R$ 80/hora', TRUE),
		(2, 'Ana Paula Oliveira', 'ana.oliveira@atelieperto.com', '(85) 99765-4321',
		 'Rua das Flores, 150 - Centro, Timon - MA', 'providers/2.jpg',
		 'Alfaiataria masculina.', '4.8', 156, 12,
		 'Expert em Roupas Masculinas', 'SENAI',
		 'Segunda a Sexta: 8h às 18h', 'Ocupada', '8min',
		 '["Alfaiataria","Ajustes","Consertos"]', 'R$ 65/hora', FALSE)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO provider_offers (provider_id, name, price_range, position) VALUES
		(1, 'Vestidos de Festa', 'R$ 200 - R$ 800', 1),
		(1, 'Ajustes Finos', 'R$ 50 - R$ 150', 2)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO provider_reviews (provider_id, customer_name, rating, comment, review_date, position) VALUES
		(1, 'Amanda Silva', 5, 'Ficou perfeito!', '2 semanas atrás', 1),
		(1, 'Camila Santos', 4, 'Prazo cumprido.', '2 meses atrás', 2)`)
	require.NoError(t, err)

	return db
}

func TestList(t *testing.T) {
	repo, err := NewPostgresRepository(newTestDB(t))
	require.NoError(t, err)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, []string{"Vestidos de Festa", "Bordados", "Ajustes"}, list[0].Services)
	assert.Equal(t, "providers/2.jpg", list[1].PhotoKey)
}

func TestFeatured(t *testing.T) {
	repo, err := NewPostgresRepository(newTestDB(t))
	require.NoError(t, err)

	feat, err := repo.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, feat, 1)
	assert.Equal(t, "Maria Silva Santos", feat[0].Name)
}

func TestGetProfile(t *testing.T) {
	repo, err := NewPostgresRepository(newTestDB(t))
	require.NoError(t, err)

	p, err := repo.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva Santos", p.Name)
	assert.Equal(t, 187, p.ReviewCount)
	require.Len(t, p.Offers, 2)
	assert.Equal(t, "Vestidos de Festa", p.Offers[0].Name)
	require.Len(t, p.Reviews, 2)
	assert.Equal(t, "Amanda Silva", p.Reviews[0].CustomerName)
}

func TestGetProfile_NotFound(t *testing.T) {
	repo, err := NewPostgresRepository(newTestDB(t))
	require.NoError(t, err)

	_, err = repo.GetProfile(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
