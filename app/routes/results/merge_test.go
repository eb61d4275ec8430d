package results

import (
	"testing"

	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func subjectPatch(name string, marks SubjectPatchMarks) SubjectPatch {
	return SubjectPatch{Name: name, Marks: marks}
}

func TestScaleToFive(t *testing.T) {
	tests := []struct {
		name string
		raw  *float64
		want float64
	}{
		{"missing counts as zero", nil, 0},
		{"zero", f(0), 0},
		{"sixty", f(60), 4},
		{"forty five", f(45), 3},
		{"full marks", f(75), 5},
		{"rounds half away from zero", f(52.5), 4}, // 3.5 -> 4
		{"rounds down below half", f(50), 3},       // 3.33 -> 3
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scaleToFive(tt.raw))
		})
	}
}

func TestDeriveSubjectsRecomputesEverySubject(t *testing.T) {
	subjects := []models.Subject{
		{Name: "Math", Marks: models.SubjectMarks{CT1: models.CTMark{OutOf75: f(60)}}},
		{Name: "Physics", Marks: models.SubjectMarks{
			CT1:        models.CTMark{OutOf75: f(75), OutOf5: f(1)}, // stale derived value
			CT2:        models.CTMark{OutOf75: f(30)},
			OtherMarks: models.OtherMarks{Assignment: f(4), Attendance: f(3)},
		}},
	}

	deriveSubjects(subjects)

	require.NotNil(t, subjects[0].Marks.CT1.OutOf5)
	assert.Equal(t, 4.0, *subjects[0].Marks.CT1.OutOf5)
	assert.Equal(t, 0.0, *subjects[0].Marks.CT2.OutOf5)
	assert.Equal(t, 4.0, *subjects[0].Marks.TotalOutOf25)

	// The stale outOf5 is overwritten, not trusted.
	assert.Equal(t, 5.0, *subjects[1].Marks.CT1.OutOf5)
	assert.Equal(t, 2.0, *subjects[1].Marks.CT2.OutOf5)
	assert.Equal(t, 14.0, *subjects[1].Marks.TotalOutOf25) // 5+2+4+0+3
}

func TestMergeSubjectPatchUpsertsByName(t *testing.T) {
	var subjects []models.Subject

	subjects = mergeSubjectPatch(subjects, subjectPatch("Math",
		SubjectPatchMarks{CT1: &models.CTMark{OutOf75: f(60)}}))
	require.Len(t, subjects, 1)

	// Same name merges instead of duplicating.
	subjects = mergeSubjectPatch(subjects, subjectPatch("Math",
		SubjectPatchMarks{CT2: &models.CTMark{OutOf75: f(45)}}))
	require.Len(t, subjects, 1)
	assert.Equal(t, 60.0, *subjects[0].Marks.CT1.OutOf75)
	assert.Equal(t, 45.0, *subjects[0].Marks.CT2.OutOf75)

	// A different name appends, preserving insertion order.
	subjects = mergeSubjectPatch(subjects, subjectPatch("Physics",
		SubjectPatchMarks{CT1: &models.CTMark{OutOf75: f(30)}}))
	require.Len(t, subjects, 2)
	assert.Equal(t, "Math", subjects[0].Name)
	assert.Equal(t, "Physics", subjects[1].Name)
}

func TestMergeSubjectPatchShallowMergesSubObjects(t *testing.T) {
	subjects := []models.Subject{{Name: "Math", Marks: models.SubjectMarks{
		CT1:        models.CTMark{OutOf75: f(60)},
		OtherMarks: models.OtherMarks{Assignment: f(5), Attendance: f(4)},
	}}}

	// Patch touches only assignment; attendance and ct1 survive.
	subjects = mergeSubjectPatch(subjects, subjectPatch("Math",
		SubjectPatchMarks{OtherMarks: &models.OtherMarks{Assignment: f(3)}}))

	marks := subjects[0].Marks
	assert.Equal(t, 60.0, *marks.CT1.OutOf75)
	assert.Equal(t, 3.0, *marks.OtherMarks.Assignment)
	assert.Equal(t, 4.0, *marks.OtherMarks.Attendance)
}

func TestMergeSubjectPatchIgnoresEmptyName(t *testing.T) {
	subjects := mergeSubjectPatch(nil, subjectPatch("",
		SubjectPatchMarks{CT1: &models.CTMark{OutOf75: f(60)}}))
	assert.Empty(t, subjects)
}

func TestMergeSubjectPatchIdempotent(t *testing.T) {
	patch := subjectPatch("Math", SubjectPatchMarks{
		CT1:        &models.CTMark{OutOf75: f(60)},
		OtherMarks: &models.OtherMarks{Assignment: f(4)},
	})

	once := mergeSubjectPatch(nil, patch)
	deriveSubjects(once)

	twice := mergeSubjectPatch(nil, patch)
	twice = mergeSubjectPatch(twice, patch)
	deriveSubjects(twice)

	assert.Equal(t, once, twice)
}

func TestMergePracticalPatch(t *testing.T) {
	var practicals []models.Practical

	practicals = mergePracticalPatch(practicals, PracticalPatch{Name: "Chemistry Lab", Marks: f(80)})
	require.Len(t, practicals, 1)
	assert.Equal(t, 80.0, *practicals[0].Marks)

	// Numeric patch overwrites the scalar mark.
	practicals = mergePracticalPatch(practicals, PracticalPatch{Name: "Chemistry Lab", Marks: f(85)})
	require.Len(t, practicals, 1)
	assert.Equal(t, 85.0, *practicals[0].Marks)

	// A patch without a numeric mark leaves the existing value alone.
	practicals = mergePracticalPatch(practicals, PracticalPatch{Name: "Chemistry Lab"})
	assert.Equal(t, 85.0, *practicals[0].Marks)

	// Empty names are ignored.
	practicals = mergePracticalPatch(practicals, PracticalPatch{Name: "", Marks: f(10)})
	assert.Len(t, practicals, 1)
}

// Two partial submissions for the same subject accumulate into one derived
// entry: ct1 60/75 then ct2 45/75 ends at outOf5 4 and 3 with a 7/25 total.
func TestMergeResultPartialSubmissions(t *testing.T) {
	result := &models.Result{
		StudentID: "s1",
		Session:   "2024-2026",
		Year:      models.YearFirst,
	}

	mergeResult(result, []SubjectPatch{
		subjectPatch("Math", SubjectPatchMarks{CT1: &models.CTMark{OutOf75: f(60)}}),
	}, nil)
	mergeResult(result, []SubjectPatch{
		subjectPatch("Math", SubjectPatchMarks{CT2: &models.CTMark{OutOf75: f(45)}}),
	}, nil)

	require.Len(t, result.Subjects, 1)
	marks := result.Subjects[0].Marks
	assert.Equal(t, 60.0, *marks.CT1.OutOf75)
	assert.Equal(t, 4.0, *marks.CT1.OutOf5)
	assert.Equal(t, 45.0, *marks.CT2.OutOf75)
	assert.Equal(t, 3.0, *marks.CT2.OutOf5)
	assert.Equal(t, 7.0, *marks.TotalOutOf25)
}

func TestMergeResultMixedPayload(t *testing.T) {
	result := &models.Result{StudentID: "s1", Session: "2024-2026", Year: models.YearSecond}

	mergeResult(result,
		[]SubjectPatch{subjectPatch("Math", SubjectPatchMarks{CT1: &models.CTMark{OutOf75: f(75)}})},
		[]PracticalPatch{{Name: "Physics Lab", Marks: f(90)}},
	)

	require.Len(t, result.Subjects, 1)
	require.Len(t, result.Practicals, 1)
	assert.Equal(t, 5.0, *result.Subjects[0].Marks.CT1.OutOf5)
	assert.Equal(t, 90.0, *result.Practicals[0].Marks)
}

func TestValidYear(t *testing.T) {
	assert.True(t, models.ValidYear("first"))
	assert.True(t, models.ValidYear("second"))
	assert.False(t, models.ValidYear("third"))
	assert.False(t, models.ValidYear(""))
	assert.False(t, models.ValidYear("First"))
}

func TestMergeKey(t *testing.T) {
	assert.Equal(t, "s1|2024-2026|first", mergeKey("s1", "2024-2026", "first"))
	assert.NotEqual(t, mergeKey("s1", "2024-2026", "first"), mergeKey("s1", "2024-2026", "second"))
}
