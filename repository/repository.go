package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/therealharsh/backflow-tester-sub001/providers"
)

const queryTimeout = time.Second * 5

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var providerColumns = []string{
	"id",
	"coalesce(place_id, '')",
	"name",
	"coalesce(phone, '')",
	"coalesce(website, '')",
	"coalesce(address, '')",
	"city",
	"state_code",
	"coalesce(postal_code, '')",
	"latitude",
	"longitude",
	"coalesce(rating, 0)",
	"coalesce(reviews, 0)",
	"provider_slug",
	"city_slug",
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(connStr string) (*Repository, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	return &Repository{
		pool: pool,
	}, nil
}

func (repo *Repository) Close() {
	repo.pool.Close()
}

// StateProviderCount reports how many providers exist in a state.
func (repo *Repository) StateProviderCount(ctx context.Context, stateCode string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q, args, err := psql.Select("count(*)").
		From("providers").
		Where(sq.Eq{"state_code": strings.ToUpper(stateCode)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build state count query: %w", err)
	}

	var count int
	if err := repo.pool.QueryRow(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("could not count providers in state: %w", err)
	}

	return count, nil
}

// CityByPostalCode returns the city containing an exact postal code, or
// nil when no provider carries it.
func (repo *Repository) CityByPostalCode(ctx context.Context, postalCode string) (*providers.City, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q, args, err := psql.Select("city", "state_code", "city_slug", "count(*) over (partition by city_slug, state_code)").
		From("providers").
		Where(sq.Eq{"postal_code": postalCode}).
		OrderBy("reviews DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build postal code query: %w", err)
	}

	var city providers.City
	err = repo.pool.QueryRow(ctx, q, args...).Scan(&city.Name, &city.StateCode, &city.Slug, &city.ProviderCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query city by postal code: %w", err)
	}

	return &city, nil
}

// SearchCities matches cities by case-insensitive substring, optionally
// scoped to a state, ordered by provider count.
func (repo *Repository) SearchCities(ctx context.Context, name, stateCode string, limit int) ([]providers.City, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	builder := psql.Select("city", "state_code", "city_slug", "provider_count", "latitude", "longitude").
		From("cities").
		Where(sq.ILike{"city": likePattern(name)}).
		OrderBy("provider_count DESC", "city ASC").
		Limit(uint64(limit))
	if stateCode != "" {
		builder = builder.Where(sq.Eq{"state_code": strings.ToUpper(stateCode)})
	}

	q, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build city search query: %w", err)
	}

	rows, err := repo.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query cities: %w", err)
	}
	defer rows.Close()

	var results []providers.City
	for rows.Next() {
		var city providers.City
		if err := rows.Scan(&city.Name, &city.StateCode, &city.Slug, &city.ProviderCount, &city.Latitude, &city.Longitude); err != nil {
			continue
		}
		results = append(results, city)
	}

	return results, nil
}

// ProvidersNear returns providers within radiusMiles of a point,
// annotated with distance, ascending by distance with review count
// breaking ties. Candidates come from a bounding-box window; exact
// haversine filtering happens in-process.
func (repo *Repository) ProvidersNear(ctx context.Context, lat, lon, radiusMiles float64, limit int) ([]providers.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	box := providers.BoxAround(lat, lon, radiusMiles)

	q, args, err := psql.Select(providerColumns...).
		From("providers").
		Where(sq.GtOrEq{"latitude": box.SwLat}).
		Where(sq.LtOrEq{"latitude": box.NeLat}).
		Where(sq.GtOrEq{"longitude": box.SwLng}).
		Where(sq.LtOrEq{"longitude": box.NeLng}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build proximity query: %w", err)
	}

	rows, err := repo.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query nearby providers: %w", err)
	}
	defer rows.Close()

	var results []providers.Provider
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			continue
		}

		d := providers.Haversine(lat, lon, provider.Latitude, provider.Longitude)
		if d > radiusMiles {
			continue
		}
		provider.DistanceMiles = &d
		results = append(results, provider)
	}

	rankByDistance(results)
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// SearchProviders matches providers by case-insensitive substring on
// name or city, most-reviewed first.
func (repo *Repository) SearchProviders(ctx context.Context, query string, limit int) ([]providers.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pattern := likePattern(query)
	q, args, err := psql.Select(providerColumns...).
		From("providers").
		Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"city": pattern},
		}).
		OrderBy("reviews DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build text search query: %w", err)
	}

	return repo.queryProviders(ctx, q, args)
}

// ProvidersByPostalCode matches on exact postal code equality only.
func (repo *Repository) ProvidersByPostalCode(ctx context.Context, postalCode string, limit int) ([]providers.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q, args, err := psql.Select(providerColumns...).
		From("providers").
		Where(sq.Eq{"postal_code": postalCode}).
		OrderBy("reviews DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build postal search query: %w", err)
	}

	return repo.queryProviders(ctx, q, args)
}

func (repo *Repository) queryProviders(ctx context.Context, q string, args []interface{}) ([]providers.Provider, error) {
	rows, err := repo.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query providers: %w", err)
	}
	defer rows.Close()

	var results []providers.Provider
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			continue
		}
		results = append(results, provider)
	}

	return results, nil
}

func scanProvider(rows pgx.Rows) (providers.Provider, error) {
	var p providers.Provider
	err := rows.Scan(
		&p.ID,
		&p.PlaceID,
		&p.Name,
		&p.Phone,
		&p.Website,
		&p.Address,
		&p.City,
		&p.StateCode,
		&p.PostalCode,
		&p.Latitude,
		&p.Longitude,
		&p.Rating,
		&p.Reviews,
		&p.Slug,
		&p.CitySlug,
	)
	return p, err
}

// rankByDistance sorts ascending by distance, descending review count
// on equal distance.
func rankByDistance(list []providers.Provider) {
	sort.SliceStable(list, func(i, j int) bool {
		di, dj := *list[i].DistanceMiles, *list[j].DistanceMiles
		if di != dj {
			return di < dj
		}
		return list[i].Reviews > list[j].Reviews
	})
}

// likePattern wraps a term for substring ILIKE matching, escaping the
// wildcard characters of the input itself.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}
