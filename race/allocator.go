package race

import (
	"database/sql"

	"github.com/shaze/lennsmith/models"
)

// Allocator hands out the overall and per-bucket position counters. It is
// seeded from the store at startup, so a restarted recorder resumes exactly
// where the previous run left off without any extra sequence table.
//
// Single-writer: one recorder session holds the counters at a time. Two
// concurrent recorders would race to the same position; that is an
// operational constraint, not something enforced here.
type Allocator struct {
	overall int
	gender  map[models.Gender]int
}

// LoadAllocator derives the next counter values from the finished rows:
// 1 + MAX(position) overall, and 1 + MAX(gender_pos) per normalized bucket.
// Buckets are normalized in Go so that 'Male' and 'male' rows seed the same
// counter.
func LoadAllocator(db *sql.DB) (*Allocator, error) {
	a := &Allocator{
		overall: 1,
		gender: map[models.Gender]int{
			models.Male: 1, models.Female: 1, models.Other: 1,
		},
	}

	rows, err := db.Query("SELECT gender, position, gender_pos FROM registrations WHERE position IS NOT NULL")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var gender sql.NullString
		var pos, gpos int
		if err := rows.Scan(&gender, &pos, &gpos); err != nil {
			return nil, err
		}
		if pos >= a.overall {
			a.overall = pos + 1
		}
		bucket := models.NormalizeGender(gender.String)
		if gpos >= a.gender[bucket] {
			a.gender[bucket] = gpos + 1
		}
	}
	return a, rows.Err()
}

// PeekOverall returns the position the next finisher will receive. The
// counter only moves on Advance, after the finish is durably committed, so a
// failed write never leaks a position.
func (a *Allocator) PeekOverall() int {
	return a.overall
}

// PeekGender returns the next position within the given bucket.
func (a *Allocator) PeekGender(bucket models.Gender) int {
	return a.gender[bucket]
}

// Advance moves both the overall counter and the bucket's counter past the
// values last peeked. Call it exactly once per committed finish.
func (a *Allocator) Advance(bucket models.Gender) {
	a.overall++
	a.gender[bucket]++
}
