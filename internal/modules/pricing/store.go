// README: Read-only tariff overrides backed by PostgreSQL.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidTariff = errors.New("invalid tariff row")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListTariffs returns the enabled rows of ride_tariffs. Rows with a non-positive
// rate or a negative minimum are rejected.
func (s *Store) ListTariffs(ctx context.Context) ([]Tariff, error) {
	rows, err := s.db.Query(ctx, `
        SELECT ride_type, rate_per_km, minimum_fare
        FROM ride_tariffs
        WHERE enabled
        ORDER BY ride_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tariff
	for rows.Next() {
		var t Tariff
		if err := rows.Scan(&t.RideType, &t.RatePerKm, &t.MinimumFare); err != nil {
			return nil, err
		}
		if t.RatePerKm <= 0 || t.MinimumFare < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTariff, t.RideType)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
