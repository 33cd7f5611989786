package database

import "context"

const getSegmentByCode = `
SELECT id, code, description FROM segments WHERE code = $1
`

// GetSegmentByCode returns the segment with the given natural code.
// Returns pgx.ErrNoRows if no such segment exists.
func (q *Queries) GetSegmentByCode(ctx context.Context, code string) (Segment, error) {
	var s Segment
	err := q.db.QueryRow(ctx, getSegmentByCode, code).Scan(&s.ID, &s.Code, &s.Description)
	return s, err
}

const insertSegment = `
INSERT INTO segments (code, description)
VALUES ($1, $2)
RETURNING id, code, description
`

// InsertSegmentParams holds the values for a new segment.
type InsertSegmentParams struct {
	Code        string
	Description string
}

// InsertSegment creates a segment and returns the stored row.
func (q *Queries) InsertSegment(ctx context.Context, arg InsertSegmentParams) (Segment, error) {
	var s Segment
	err := q.db.QueryRow(ctx, insertSegment, arg.Code, arg.Description).
		Scan(&s.ID, &s.Code, &s.Description)
	return s, err
}
