package race

import (
	"database/sql"
	"regexp"
	"strings"

	"github.com/shaze/lennsmith/models"
)

// Registration numbers are short: 1-3 digits, optionally followed by letters
// (e.g. "12", "12a"). Anything else is treated as a staff/student number.
var regNumberPattern = regexp.MustCompile(`^(\d{1,3})\s*[a-zA-Z]*$`)

const runnerColumns = `id, registration_number, staff_student_number, first_name, last_name,
	gender, organisational_unit, list_results, elapsed, position, gender_pos`

func scanRunner(row interface{ Scan(...interface{}) error }) (*models.Runner, error) {
	var r models.Runner
	err := row.Scan(&r.ID, &r.RegistrationNumber, &r.StaffStudentNumber, &r.FirstName,
		&r.LastName, &r.Gender, &r.OrganisationalUnit, &r.ListResults,
		&r.Elapsed, &r.Position, &r.GenderPos)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FindRunner resolves a finish-line identifier to exactly one runner.
//
// Registration-style tokens try an exact registration_number match first,
// then fall back to a prefix match on the digit portion. A prefix fallback
// that matches more than one runner is rejected with ErrAmbiguous: the
// operator has to type the full number rather than get an arbitrary pick.
// Everything else is an exact staff/student number match.
func FindRunner(db *sql.DB, identifier string) (*models.Runner, error) {
	token := strings.TrimSpace(identifier)

	m := regNumberPattern.FindStringSubmatch(token)
	if m == nil {
		runner, err := scanRunner(db.QueryRow(
			"SELECT "+runnerColumns+" FROM registrations WHERE staff_student_number = ?", token))
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return runner, err
	}

	runner, err := scanRunner(db.QueryRow(
		"SELECT "+runnerColumns+" FROM registrations WHERE registration_number = ?", token))
	if err == nil {
		return runner, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	// Fallback: prefix match on the digit portion. Fetch two rows so a
	// multiple match is detectable.
	rows, err := db.Query(
		"SELECT "+runnerColumns+" FROM registrations WHERE registration_number LIKE ? LIMIT 2", m[1]+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*models.Runner
	for rows.Next() {
		r, err := scanRunner(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, ErrAmbiguous
	}
}
