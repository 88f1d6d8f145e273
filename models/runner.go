package models

import "database/sql"

// Runner is one row of the registrations table.
type Runner struct {
	ID                 int            `json:"id"`
	RegistrationNumber string         `json:"registration_number"`
	StaffStudentNumber string         `json:"staff_student_number"`
	FirstName          string         `json:"first_name"`
	LastName           string         `json:"last_name"`
	Gender             sql.NullString `json:"gender"` // raw value as registered, may be NULL
	OrganisationalUnit string         `json:"organisational_unit"`
	ListResults        string         `json:"list_results"` // "yes"/"no"; "no" renders as Anonymous
	Elapsed            sql.NullInt64  `json:"elapsed"`      // seconds; NULL until finished
	Position           sql.NullInt64  `json:"position"`     // arrival-order counter, NULL until finished
	GenderPos          sql.NullInt64  `json:"gender_pos"`   // per-bucket counter, NULL until finished
}

// Finished reports whether the runner has a recorded finish.
func (r Runner) Finished() bool {
	return r.Elapsed.Valid
}

// Bucket returns the runner's normalized gender bucket.
func (r Runner) Bucket() Gender {
	return NormalizeGender(r.Gender.String)
}

// DisplayName honours the list_results preference: runners who opted out are
// shown as Anonymous in every rendered output. Ranking is unaffected.
func (r Runner) DisplayName() string {
	if r.ListResults == "no" {
		return "Anonymous"
	}
	return r.FirstName + " " + r.LastName
}
