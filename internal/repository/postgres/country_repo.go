package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/vedran77/circle/internal/domain"
)

type CountryRepo struct {
	db DBTX
}

func NewCountryRepo(db DBTX) *CountryRepo {
	return &CountryRepo{db: db}
}

func (r *CountryRepo) List(ctx context.Context) ([]domain.Country, error) {
	return r.list(ctx, `SELECT name, alpha2, alpha3, region FROM countries ORDER BY alpha2`)
}

func (r *CountryRepo) ListByRegion(ctx context.Context, region string) ([]domain.Country, error) {
	return r.list(ctx, `SELECT name, alpha2, alpha3, region FROM countries WHERE region = $1 ORDER BY alpha2`, region)
}

func (r *CountryRepo) GetByAlpha2(ctx context.Context, alpha2 string) (*domain.Country, error) {
	var c domain.Country
	err := r.db.QueryRow(ctx,
		`SELECT name, alpha2, alpha3, region FROM countries WHERE alpha2 = $1`, alpha2,
	).Scan(&c.Name, &c.Alpha2, &c.Alpha3, &c.Region)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CountryRepo) list(ctx context.Context, query string, args ...any) ([]domain.Country, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []domain.Country
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.Name, &c.Alpha2, &c.Alpha3, &c.Region); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}
