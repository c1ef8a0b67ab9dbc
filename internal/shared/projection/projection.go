package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection represents a fully-materialized aggregate view plus persistence
// metadata. Repositories return these so no storage proxies ever cross the
// service boundary.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}
