package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vedran77/circle/internal/domain"
	"github.com/vedran77/circle/internal/repository"
)

type CountryService struct {
	countries repository.CountryRepository
}

func NewCountryService(countries repository.CountryRepository) *CountryService {
	return &CountryService{countries: countries}
}

// List returns all countries, or those of region when it is non-empty.
func (s *CountryService) List(ctx context.Context, region string) ([]domain.Country, error) {
	var (
		countries []domain.Country
		err       error
	)
	if region == "" {
		countries, err = s.countries.List(ctx)
	} else {
		if !domain.IsKnownRegion(region) {
			return nil, ErrUnknownRegion
		}
		countries, err = s.countries.ListByRegion(ctx, region)
	}
	if err != nil {
		return nil, fmt.Errorf("listing countries: %w", err)
	}
	if countries == nil {
		countries = []domain.Country{}
	}
	return countries, nil
}

func (s *CountryService) Get(ctx context.Context, alpha2 string) (*domain.Country, error) {
	c, err := s.countries.GetByAlpha2(ctx, strings.ToUpper(alpha2))
	if err != nil {
		return nil, fmt.Errorf("looking up country: %w", err)
	}
	if c == nil {
		return nil, ErrCountryNotFound
	}
	return c, nil
}
