package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/circle/internal/domain"
)

// Countries is the reference data loaded into a fresh database.
var Countries = []domain.Country{
	{Name: "Argentina", Alpha2: "AR", Alpha3: "ARG", Region: "Americas"},
	{Name: "Australia", Alpha2: "AU", Alpha3: "AUS", Region: "Oceania"},
	{Name: "Brazil", Alpha2: "BR", Alpha3: "BRA", Region: "Americas"},
	{Name: "Canada", Alpha2: "CA", Alpha3: "CAN", Region: "Americas"},
	{Name: "China", Alpha2: "CN", Alpha3: "CHN", Region: "Asia"},
	{Name: "Croatia", Alpha2: "HR", Alpha3: "HRV", Region: "Europe"},
	{Name: "Egypt", Alpha2: "EG", Alpha3: "EGY", Region: "Africa"},
	{Name: "Fiji", Alpha2: "FJ", Alpha3: "FJI", Region: "Oceania"},
	{Name: "France", Alpha2: "FR", Alpha3: "FRA", Region: "Europe"},
	{Name: "Germany", Alpha2: "DE", Alpha3: "DEU", Region: "Europe"},
	{Name: "Ghana", Alpha2: "GH", Alpha3: "GHA", Region: "Africa"},
	{Name: "India", Alpha2: "IN", Alpha3: "IND", Region: "Asia"},
	{Name: "Indonesia", Alpha2: "ID", Alpha3: "IDN", Region: "Asia"},
	{Name: "Italy", Alpha2: "IT", Alpha3: "ITA", Region: "Europe"},
	{Name: "Japan", Alpha2: "JP", Alpha3: "JPN", Region: "Asia"},
	{Name: "Kazakhstan", Alpha2: "KZ", Alpha3: "KAZ", Region: "Asia"},
	{Name: "Kenya", Alpha2: "KE", Alpha3: "KEN", Region: "Africa"},
	{Name: "Mexico", Alpha2: "MX", Alpha3: "MEX", Region: "Americas"},
	{Name: "Morocco", Alpha2: "MA", Alpha3: "MAR", Region: "Africa"},
	{Name: "New Zealand", Alpha2: "NZ", Alpha3: "NZL", Region: "Oceania"},
	{Name: "Nigeria", Alpha2: "NG", Alpha3: "NGA", Region: "Africa"},
	{Name: "Norway", Alpha2: "NO", Alpha3: "NOR", Region: "Europe"},
	{Name: "Poland", Alpha2: "PL", Alpha3: "POL", Region: "Europe"},
	{Name: "Russian Federation", Alpha2: "RU", Alpha3: "RUS", Region: "Europe"},
	{Name: "Serbia", Alpha2: "RS", Alpha3: "SRB", Region: "Europe"},
	{Name: "South Africa", Alpha2: "ZA", Alpha3: "ZAF", Region: "Africa"},
	{Name: "Spain", Alpha2: "ES", Alpha3: "ESP", Region: "Europe"},
	{Name: "United Kingdom", Alpha2: "GB", Alpha3: "GBR", Region: "Europe"},
	{Name: "United States", Alpha2: "US", Alpha3: "USA", Region: "Americas"},
	{Name: "Vietnam", Alpha2: "VN", Alpha3: "VNM", Region: "Asia"},
}

// SeedCountries inserts the reference countries that are not present yet.
func SeedCountries(ctx context.Context, pool *pgxpool.Pool) error {
	batch := &pgx.Batch{}
	for _, c := range Countries {
		batch.Queue(
			`INSERT INTO countries (name, alpha2, alpha3, region)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (alpha2) DO NOTHING`,
			c.Name, c.Alpha2, c.Alpha3, c.Region,
		)
	}
	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seeding countries: %w", err)
	}
	return nil
}
