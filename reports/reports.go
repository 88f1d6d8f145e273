// Package reports renders the final results files written when the recorder
// stops. It is pure formatting over the race package's queries: rankings come
// out already ordered and the renderer never reorders them.
package reports

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shaze/lennsmith/models"
	"github.com/shaze/lennsmith/race"
	"github.com/shaze/lennsmith/utils"
)

// bundle is everything a final report shows, gathered in one pass.
type bundle struct {
	TopMen     []models.RankedRunner
	TopWomen   []models.RankedRunner
	MenTeams   []models.TeamResult
	WomenTeams []models.TeamResult
	Complete   []models.RankedRunner
	Stats      *models.Statistics
}

// Generator writes the final results files. An empty race (stop with no
// finishers) is valid: every section simply renders empty.
type Generator struct {
	DB    *sql.DB
	Title string

	// Now stamps the generated-at line; tests pin it.
	Now func() time.Time
}

func (g Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g Generator) gather(topN int) (*bundle, error) {
	var b bundle
	var err error
	if b.TopMen, err = race.TopByGender(g.DB, models.Male, topN); err != nil {
		return nil, err
	}
	if b.TopWomen, err = race.TopByGender(g.DB, models.Female, topN); err != nil {
		return nil, err
	}
	if b.MenTeams, err = race.TeamStandings(g.DB, models.Male); err != nil {
		return nil, err
	}
	if b.WomenTeams, err = race.TeamStandings(g.DB, models.Female); err != nil {
		return nil, err
	}
	if b.Complete, err = race.CompleteResults(g.DB); err != nil {
		return nil, err
	}
	if b.Stats, err = race.Stats(g.DB); err != nil {
		return nil, err
	}
	if len(b.MenTeams) > 2 {
		b.MenTeams = b.MenTeams[:2]
	}
	if len(b.WomenTeams) > 2 {
		b.WomenTeams = b.WomenTeams[:2]
	}
	return &b, nil
}

// Text renders the console/plain-text final report: top 5 per gender, top 2
// teams per gender, most-finishers unit, endurance winner, totals, fastest.
func (g Generator) Text() (string, error) {
	b, err := g.gather(5)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	section := func(title string) { fmt.Fprintf(&sb, "=== %s ===\n", title) }

	section("TOP 5 MEN")
	for _, r := range b.TopMen {
		fmt.Fprintf(&sb, "%d. %s - %s\n", r.Rank, r.Name, utils.FormatElapsed(r.Elapsed))
	}
	sb.WriteString("\n")

	section("TOP 5 WOMEN")
	for _, r := range b.TopWomen {
		fmt.Fprintf(&sb, "%d. %s - %s\n", r.Rank, r.Name, utils.FormatElapsed(r.Elapsed))
	}
	sb.WriteString("\n")

	writeTeams := func(title string, teams []models.TeamResult) {
		section(title)
		for i, t := range teams {
			fmt.Fprintf(&sb, "%d. %s - Total Time: %s\n", i+1, t.OrganisationalUnit, utils.FormatElapsed(t.TotalTime))
			for j, m := range t.Runners {
				fmt.Fprintf(&sb, "   %d. %s - %s\n", j+1, m.Name, utils.FormatElapsed(m.Elapsed))
			}
		}
		sb.WriteString("\n")
	}
	writeTeams("TOP 2 MEN'S TEAMS", b.MenTeams)
	writeTeams("TOP 2 WOMEN'S TEAMS", b.WomenTeams)

	section("MOST PARTICIPANTS (FINISHED)")
	if b.Stats.TopUnit != "" {
		fmt.Fprintf(&sb, "%s: %d finishers\n", b.Stats.TopUnit, b.Stats.TopUnitCount)
	}
	sb.WriteString("\n")

	section("ENDURANCE WINNER")
	if b.Stats.Endurance != nil {
		fmt.Fprintf(&sb, "%s - %s\n", b.Stats.Endurance.Name, utils.FormatElapsed(b.Stats.Endurance.Elapsed))
	}
	sb.WriteString("\n")

	section("RACE STATISTICS")
	fmt.Fprintf(&sb, "Total finishers: %d\n", b.Stats.TotalFinishers)
	fmt.Fprintf(&sb, "Total registered: %d\n", b.Stats.TotalRegistered)
	sb.WriteString("\n")

	section("FASTEST RUNNER OVERALL")
	if b.Stats.Fastest != nil {
		fmt.Fprintf(&sb, "%s - %s\n", b.Stats.Fastest.Name, utils.FormatElapsed(b.Stats.Fastest.Elapsed))
	}

	return sb.String(), nil
}

// WriteFiles writes results.txt and results.html into dir.
func (g Generator) WriteFiles(dir string) error {
	text, err := g.Text()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "results.txt"), []byte(text), 0644); err != nil {
		return err
	}
	html, err := g.HTML()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "results.html"), []byte(html), 0644)
}
