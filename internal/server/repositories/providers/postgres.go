package providers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atelieperto/atelieperto/internal/common"
	"github.com/atelieperto/atelieperto/internal/dbx"
	"github.com/atelieperto/atelieperto/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// services is stored as a JSON-encoded text column.
func (r *PostgresRepository) scanProviders(rows *sql.Rows) ([]models.Provider, error) {
	var out []models.Provider
	for rows.Next() {
		var p models.Provider
		var services string
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.PhotoKey, &p.Rating,
			&p.Distance, &services, &p.Price); err != nil {
			return nil, fmt.Errorf("error scanning provider row: %v", err)
		}
		if err := json.Unmarshal([]byte(services), &p.Services); err != nil {
			return nil, fmt.Errorf("error decoding services column: %v", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Provider, error) {
	query :=
		`SELECT id, name, address, photo_key, rating, distance, services, price FROM providers
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	return r.scanProviders(rows)
}

func (r *PostgresRepository) Featured(ctx context.Context) ([]models.Provider, error) {
	query :=
		`SELECT id, name, address, photo_key, rating, distance, services, price FROM providers
		 WHERE featured
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	return r.scanProviders(rows)
}

func (r *PostgresRepository) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	query :=
		`SELECT id, name, email, phone, address, photo_key, bio, rating, review_count,
		        experience, specialization, education, working_hours, status, distance
		 FROM providers
		 WHERE id = $1
		 `

	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.Address, &p.PhotoKey, &p.Bio,
		&p.Rating, &p.ReviewCount, &p.Experience, &p.Specialization,
		&p.Education, &p.WorkingHours, &p.Status, &p.Distance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	offers, err := r.getOffers(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Offers = offers

	reviews, err := r.getReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews

	return p, nil
}

func (r *PostgresRepository) getOffers(ctx context.Context, providerID int64) ([]models.ServiceOffer, error) {
	query :=
		`SELECT name, price_range FROM provider_offers
		 WHERE provider_id = $1
		 ORDER BY position
		 `

	rows, err := r.db.QueryContext(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var out []models.ServiceOffer
	for rows.Next() {
		var o models.ServiceOffer
		if err := rows.Scan(&o.Name, &o.PriceRange); err != nil {
			return nil, fmt.Errorf("error scanning offer row: %v", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) getReviews(ctx context.Context, providerID int64) ([]models.Review, error) {
	query :=
		`SELECT id, customer_name, rating, comment, review_date FROM provider_reviews
		 WHERE provider_id = $1
		 ORDER BY position
		 `

	rows, err := r.db.QueryContext(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.CustomerName, &rv.Rating, &rv.Comment, &rv.Date); err != nil {
			return nil, fmt.Errorf("error scanning review row: %v", err)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
