package results

import (
	"database/sql"
	"math"

	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/adeebkhans/StudentManagementExe/app/services"
)

// SubjectPatchMarks carries the optional mark sub-objects of a subject
// patch. A nil sub-object leaves the corresponding stored block untouched; a
// present one is shallow-merged field by field.
type SubjectPatchMarks struct {
	CT1        *models.CTMark     `json:"ct1"`
	CT2        *models.CTMark     `json:"ct2"`
	OtherMarks *models.OtherMarks `json:"otherMarks"`
}

// SubjectPatch is one partial mark submission for a named subject. Patches
// with an empty name are ignored.
type SubjectPatch struct {
	Name  string            `json:"name"`
	Marks SubjectPatchMarks `json:"marks"`
}

// PracticalPatch is one partial mark submission for a named practical.
type PracticalPatch struct {
	Name  string   `json:"name"`
	Marks *float64 `json:"marks"`
}

func mergeCT(dst *models.CTMark, patch *models.CTMark) {
	if patch == nil {
		return
	}
	if patch.OutOf75 != nil {
		dst.OutOf75 = patch.OutOf75
	}
	// A caller-supplied outOf5 is accepted here but overwritten by the
	// derivation pass before anything is persisted.
	if patch.OutOf5 != nil {
		dst.OutOf5 = patch.OutOf5
	}
}

func mergeOtherMarks(dst *models.OtherMarks, patch *models.OtherMarks) {
	if patch == nil {
		return
	}
	if patch.Assignment != nil {
		dst.Assignment = patch.Assignment
	}
	if patch.ExtraCurricular != nil {
		dst.ExtraCurricular = patch.ExtraCurricular
	}
	if patch.Attendance != nil {
		dst.Attendance = patch.Attendance
	}
}

// mergeSubjectPatch upserts a subject by exact name. Existing entries are
// merged in place; unknown names append, so insertion order is preserved and
// a name never appears twice.
func mergeSubjectPatch(subjects []models.Subject, patch SubjectPatch) []models.Subject {
	if patch.Name == "" {
		return subjects
	}
	for i := range subjects {
		if subjects[i].Name == patch.Name {
			mergeCT(&subjects[i].Marks.CT1, patch.Marks.CT1)
			mergeCT(&subjects[i].Marks.CT2, patch.Marks.CT2)
			mergeOtherMarks(&subjects[i].Marks.OtherMarks, patch.Marks.OtherMarks)
			return subjects
		}
	}

	subject := models.Subject{Name: patch.Name}
	mergeCT(&subject.Marks.CT1, patch.Marks.CT1)
	mergeCT(&subject.Marks.CT2, patch.Marks.CT2)
	mergeOtherMarks(&subject.Marks.OtherMarks, patch.Marks.OtherMarks)
	return append(subjects, subject)
}

// mergePracticalPatch upserts a practical by exact name. An existing entry's
// mark is only overwritten by a numeric patch value.
func mergePracticalPatch(practicals []models.Practical, patch PracticalPatch) []models.Practical {
	if patch.Name == "" {
		return practicals
	}
	for i := range practicals {
		if practicals[i].Name == patch.Name {
			if patch.Marks != nil {
				practicals[i].Marks = patch.Marks
			}
			return practicals
		}
	}
	return append(practicals, models.Practical{Name: patch.Name, Marks: patch.Marks})
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// scaleToFive maps a 0-75 raw class test score onto the 0-5 contribution.
func scaleToFive(raw *float64) float64 {
	return math.Round(orZero(raw) / 15)
}

// deriveSubjects is the derivation pass: it recomputes outOf5 and
// totalOutOf25 for every subject of the result, not just patched ones, so
// derived fields can never go stale or be smuggled in by a caller. Missing
// raw inputs count as zero; totals are intentionally not clamped.
func deriveSubjects(subjects []models.Subject) {
	for i := range subjects {
		marks := &subjects[i].Marks

		ct1 := scaleToFive(marks.CT1.OutOf75)
		marks.CT1.OutOf5 = &ct1

		ct2 := scaleToFive(marks.CT2.OutOf75)
		marks.CT2.OutOf5 = &ct2

		total := math.Round(ct1 + ct2 +
			orZero(marks.OtherMarks.Assignment) +
			orZero(marks.OtherMarks.ExtraCurricular) +
			orZero(marks.OtherMarks.Attendance))
		marks.TotalOutOf25 = &total
	}
}

// mergeResult applies the patches to the in-memory result and runs the
// derivation pass. Pure in-memory step of the merge.
func mergeResult(result *models.Result, subjects []SubjectPatch, practicals []PracticalPatch) {
	for _, patch := range subjects {
		result.Subjects = mergeSubjectPatch(result.Subjects, patch)
	}
	for _, patch := range practicals {
		result.Practicals = mergePracticalPatch(result.Practicals, patch)
	}
	deriveSubjects(result.Subjects)
}

// resultLocks serializes merges per (student, session, year) so concurrent
// read-modify-write sequences cannot lose updates.
var resultLocks = services.NewKeyedMutex()

func mergeKey(studentID, session, year string) string {
	return studentID + "|" + session + "|" + year
}

// saveMerge loads or creates the result document for the triple, merges the
// patches, derives, and persists. The whole sequence holds the key lock.
func saveMerge(db *sql.DB, studentID, session, year string, subjects []SubjectPatch, practicals []PracticalPatch) (*models.Result, error) {
	key := mergeKey(studentID, session, year)
	resultLocks.Lock(key)
	defer resultLocks.Unlock(key)

	result, err := database.GetResultByKey(db, studentID, session, year)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &models.Result{
			StudentID:  studentID,
			Session:    session,
			Year:       year,
			Subjects:   []models.Subject{},
			Practicals: []models.Practical{},
		}
	}

	mergeResult(result, subjects, practicals)

	if result.ID == "" {
		err = database.CreateResult(db, result)
	} else {
		err = database.UpdateResult(db, result)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
