package models

// FinishRecord is what a successful finish commit produces.
type FinishRecord struct {
	Runner    Runner `json:"runner"`
	Elapsed   int    `json:"elapsed"`
	Position  int    `json:"position"`
	GenderPos int    `json:"gender_pos"`
}

// RankedRunner is one line of a report listing. Rank is recomputed from the
// listing's own ordering at query time; it is not the stored position column.
type RankedRunner struct {
	Rank               int    `json:"rank"`
	Name               string `json:"name"`
	OrganisationalUnit string `json:"organisational_unit"`
	RegistrationNumber string `json:"registration_number"`
	Elapsed            int    `json:"elapsed"`
	Position           int    `json:"position"` // arrival-order audit trail
}

// TeamMember is one of the four scoring runners of a team.
type TeamMember struct {
	Name    string `json:"name"`
	Elapsed int    `json:"elapsed"`
}

// TeamResult is a derived team standing for one organisational unit and
// gender: the four lowest elapsed times, summed. Units with fewer than four
// finishers never appear.
type TeamResult struct {
	OrganisationalUnit string       `json:"organisational_unit"`
	TotalTime          int          `json:"total_time"`
	Runners            []TeamMember `json:"runners"`
}

// Statistics is the aggregate bundle shown at the bottom of every report.
type Statistics struct {
	TotalFinishers  int           `json:"total_finishers"`
	TotalRegistered int           `json:"total_registered"`
	TopUnit         string        `json:"top_unit"` // unit with the most finishers, ties alphabetical
	TopUnitCount    int           `json:"top_unit_count"`
	Fastest         *RankedRunner `json:"fastest,omitempty"`   // min elapsed
	Endurance       *RankedRunner `json:"endurance,omitempty"` // max elapsed
}
