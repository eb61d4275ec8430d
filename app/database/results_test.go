package database

import (
	"testing"

	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/stretchr/testify/assert"
)

func TestResultFilterClause(t *testing.T) {
	tests := []struct {
		name       string
		filters    models.ResultFilters
		wantClause string
		wantArgs   []interface{}
	}{
		{
			"empty",
			models.ResultFilters{},
			"",
			nil,
		},
		{
			"session substring",
			models.ResultFilters{Session: "2024"},
			" AND r.session ILIKE $1",
			[]interface{}{"%2024%"},
		},
		{
			"session exact",
			models.ResultFilters{SessionExact: "2024-2026"},
			" AND r.session = $1",
			[]interface{}{"2024-2026"},
		},
		{
			"year exact",
			models.ResultFilters{Year: "first"},
			" AND r.year = $1",
			[]interface{}{"first"},
		},
		{
			"exact session with year",
			models.ResultFilters{SessionExact: "2024-2026", Year: "second"},
			" AND r.session = $1 AND r.year = $2",
			[]interface{}{"2024-2026", "second"},
		},
		{
			"student sub-filters",
			models.ResultFilters{Name: "sara", Enrollment: "BED"},
			" AND s.name ILIKE $1 AND s.enrollment ILIKE $2",
			[]interface{}{"%sara%", "%BED%"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := resultFilterClause(tt.filters)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
