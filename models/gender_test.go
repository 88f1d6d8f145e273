package models_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shaze/lennsmith/models"
)

func TestNormalizeGender(t *testing.T) {
	cases := []struct {
		raw  string
		want models.Gender
	}{
		{"male", models.Male},
		{"Male", models.Male},
		{"FEMALE", models.Female},
		{"", models.Other},
		{"prefer-not-to-say", models.Other},
		{"Prefer-Not-To-Say", models.Other},
		{"nonbinary", models.Other},
		{"  male ", models.Male},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, models.NormalizeGender(c.raw), "raw=%q", c.raw)
	}
}

func TestRunnerDisplayName(t *testing.T) {
	r := models.Runner{FirstName: "Ada", LastName: "Lovelace", ListResults: "yes"}
	assert.Equal(t, "Ada Lovelace", r.DisplayName())

	r.ListResults = "no"
	assert.Equal(t, "Anonymous", r.DisplayName())
}

func TestRunnerFinished(t *testing.T) {
	var r models.Runner
	assert.False(t, r.Finished())

	r.Elapsed = sql.NullInt64{Int64: 120, Valid: true}
	assert.True(t, r.Finished())
}
