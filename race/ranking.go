package race

import (
	"database/sql"
	"sort"

	"github.com/shaze/lennsmith/models"
)

// The ranking queries below are pure reads: safe to call from the live viewer
// at any frequency, concurrently with the recorder. Report ranks are computed
// by elapsed time; the stored position column is an arrival-order audit trail
// and only LatestFinishers and CompleteResults order by it, because those two
// listings are about recording order by definition.

// finishedRunners loads every finisher ordered by elapsed ascending, ties
// broken by arrival position so orderings stay deterministic.
func finishedRunners(db *sql.DB) ([]models.Runner, error) {
	rows, err := db.Query("SELECT " + runnerColumns +
		" FROM registrations WHERE elapsed IS NOT NULL ORDER BY elapsed ASC, position ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runners []models.Runner
	for rows.Next() {
		r, err := scanRunner(rows)
		if err != nil {
			return nil, err
		}
		runners = append(runners, *r)
	}
	return runners, rows.Err()
}

func ranked(rank int, r models.Runner) models.RankedRunner {
	return models.RankedRunner{
		Rank:               rank,
		Name:               r.DisplayName(),
		OrganisationalUnit: r.OrganisationalUnit,
		RegistrationNumber: r.RegistrationNumber,
		Elapsed:            int(r.Elapsed.Int64),
		Position:           int(r.Position.Int64),
	}
}

// TopByGender returns the first n finishers of a bucket, fastest first. Rank
// is recomputed from the sorted order, not read from the gender_pos column,
// so out-of-order recording cannot skew the listing.
func TopByGender(db *sql.DB, bucket models.Gender, n int) ([]models.RankedRunner, error) {
	runners, err := finishedRunners(db)
	if err != nil {
		return nil, err
	}
	var out []models.RankedRunner
	for _, r := range runners {
		if r.Bucket() != bucket {
			continue
		}
		out = append(out, ranked(len(out)+1, r))
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// LatestFinishers returns the n most recently recorded finishers, newest
// first. This one is explicitly about recording order: it answers "who just
// came in", so it orders by assigned position, not elapsed time.
func LatestFinishers(db *sql.DB, n int) ([]models.RankedRunner, error) {
	runners, err := finishedRunners(db)
	if err != nil {
		return nil, err
	}
	sort.Slice(runners, func(i, j int) bool {
		return runners[i].Position.Int64 > runners[j].Position.Int64
	})
	if len(runners) > n {
		runners = runners[:n]
	}
	out := make([]models.RankedRunner, 0, len(runners))
	for _, r := range runners {
		out = append(out, ranked(int(r.Position.Int64), r))
	}
	return out, nil
}

// CompleteResults lists every finisher in arrival order, for the final
// report's full listing.
func CompleteResults(db *sql.DB) ([]models.RankedRunner, error) {
	runners, err := finishedRunners(db)
	if err != nil {
		return nil, err
	}
	sort.Slice(runners, func(i, j int) bool {
		return runners[i].Position.Int64 < runners[j].Position.Int64
	})
	out := make([]models.RankedRunner, 0, len(runners))
	for _, r := range runners {
		out = append(out, ranked(int(r.Position.Int64), r))
	}
	return out, nil
}

// TeamStandings scores each organisational unit within a bucket by the
// best-4 rule: units with at least four finishers enter with their four
// lowest elapsed times summed. Teams are ordered by total time, ties broken
// by unit name so standings are stable.
func TeamStandings(db *sql.DB, bucket models.Gender) ([]models.TeamResult, error) {
	runners, err := finishedRunners(db)
	if err != nil {
		return nil, err
	}

	// finishedRunners is already elapsed-ascending, so each unit's slice
	// starts with its four fastest.
	units := make(map[string][]models.Runner)
	for _, r := range runners {
		if r.Bucket() != bucket {
			continue
		}
		units[r.OrganisationalUnit] = append(units[r.OrganisationalUnit], r)
	}

	var teams []models.TeamResult
	for unit, members := range units {
		if len(members) < 4 {
			continue
		}
		team := models.TeamResult{OrganisationalUnit: unit}
		for _, m := range members[:4] {
			team.TotalTime += int(m.Elapsed.Int64)
			team.Runners = append(team.Runners, models.TeamMember{
				Name:    m.DisplayName(),
				Elapsed: int(m.Elapsed.Int64),
			})
		}
		teams = append(teams, team)
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].TotalTime != teams[j].TotalTime {
			return teams[i].TotalTime < teams[j].TotalTime
		}
		return teams[i].OrganisationalUnit < teams[j].OrganisationalUnit
	})
	return teams, nil
}

// Stats assembles the aggregate bundle: totals, the unit with the most
// finishers (ties alphabetical), the fastest finisher and the endurance
// winner. The endurance winner is the maximum elapsed time, not the last
// recorded position; the two differ when finishes are entered out of order.
func Stats(db *sql.DB) (*models.Statistics, error) {
	runners, err := finishedRunners(db)
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{TotalFinishers: len(runners)}
	if err := db.QueryRow("SELECT COUNT(*) FROM registrations").Scan(&stats.TotalRegistered); err != nil {
		return nil, err
	}
	if len(runners) == 0 {
		return stats, nil
	}

	counts := make(map[string]int)
	for _, r := range runners {
		counts[r.OrganisationalUnit]++
	}
	for unit, n := range counts {
		switch {
		case n > stats.TopUnitCount:
			stats.TopUnit, stats.TopUnitCount = unit, n
		case n == stats.TopUnitCount && unit < stats.TopUnit:
			stats.TopUnit = unit
		}
	}

	fastest := ranked(1, runners[0])
	endurance := ranked(1, runners[len(runners)-1])
	stats.Fastest = &fastest
	stats.Endurance = &endurance
	return stats, nil
}
