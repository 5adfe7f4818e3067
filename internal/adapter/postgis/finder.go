// Package postgis implements domain.PlaceFinder over a PostGIS facility table,
// for deployments that maintain their own registry of emergency facilities.
package postgis

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

// maxPlaces caps rows returned per category lookup.
const maxPlaces = 100

const schema = `
CREATE EXTENSION IF NOT EXISTS postgis;

CREATE TABLE IF NOT EXISTS facilities (
	id       BIGSERIAL PRIMARY KEY,
	name     TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	geom     GEOGRAPHY(POINT, 4326)
);

CREATE INDEX IF NOT EXISTS facilities_geom_idx ON facilities USING GIST (geom);
CREATE INDEX IF NOT EXISTS facilities_category_idx ON facilities (category);
`

// Facilities with a NULL geom are returned with a nil Position so the index
// can drop them.
const nearbyQuery = `
	SELECT
		name,
		category,
		ST_Y(geom::geometry) AS latitude,
		ST_X(geom::geometry) AS longitude
	FROM facilities
	WHERE category = $4
	  AND (geom IS NULL OR ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3))
	ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography NULLS LAST
	LIMIT $5
`

// Finder queries the facilities table.
type Finder struct {
	db *pgxpool.Pool
}

// NewFinder creates a finder over an open pool.
func NewFinder(db *pgxpool.Pool) *Finder {
	return &Finder{db: db}
}

// Migrate creates the facilities table and its indexes if missing.
func (f *Finder) Migrate(ctx context.Context) error {
	if _, err := f.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgis: migrate: %w", err)
	}
	return nil
}

// CheckReadiness pings the database.
func (f *Finder) CheckReadiness(ctx context.Context) error {
	if err := f.db.Ping(ctx); err != nil {
		return fmt.Errorf("postgis: ping: %w", err)
	}
	return nil
}

// FindPlaces returns facilities of category within radiusMeters of center,
// nearest first.
func (f *Finder) FindPlaces(ctx context.Context, center domain.Geo, radiusMeters int, category domain.Category) ([]domain.Place, error) {
	rows, err := f.db.Query(ctx, nearbyQuery, center.Lat, center.Lon, float64(radiusMeters), string(category), maxPlaces)
	if err != nil {
		return nil, fmt.Errorf("postgis: failed to execute nearby query: %w", err)
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		var (
			p        domain.Place
			lat, lon *float64
		)
		if err := rows.Scan(&p.Name, &p.Tag, &lat, &lon); err != nil {
			return nil, fmt.Errorf("postgis: failed to scan facility: %w", err)
		}
		if lat != nil && lon != nil {
			p.Position = &domain.Geo{Lat: *lat, Lon: *lon}
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgis: error iterating rows: %w", err)
	}
	return places, nil
}
