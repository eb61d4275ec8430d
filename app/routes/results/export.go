package results

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
	}
}

func cellValue(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// ExportResultsAPI renders the mark sheet: one row per subject or practical,
// with the student columns of each result merged vertically across its rows.
func ExportResultsAPI(c *fiber.Ctx, db *sql.DB) error {
	// The export targets one cohort, so the session matches exactly rather
	// than as a substring.
	filters := models.ResultFilters{
		SessionExact: c.Query("session"),
		Year:         c.Query("year"),
	}

	results, err := database.GetAllResults(db, filters)
	if err != nil {
		log.Printf("Export results error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to export results")
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{
		"S.No.", "Student Name", "Enrollment", "Session", "Year",
		"Subject/Practical Name", "CT1/75", "CT1/5", "CT2/75", "CT2/5",
		"Assignment", "Extra Curricular", "Attendance", "Max Marks", "Total Marks",
	}
	f.SetSheetRow(sheet, "A1", &headers)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center", WrapText: true},
	})
	f.SetCellStyle(sheet, "A1", "O1", headerStyle)

	bodyStyle, _ := f.NewStyle(&excelize.Style{Border: thinBorders()})
	centerStyle, _ := f.NewStyle(&excelize.Style{
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center", WrapText: true},
	})

	rowNum := 2
	for idx, result := range results {
		startRow := rowNum
		itemCount := len(result.Subjects) + len(result.Practicals)

		writeRow := func(name string, cells []interface{}) {
			row := make([]interface{}, 0, 15)
			if rowNum == startRow {
				row = append(row, idx+1, result.StudentName, result.StudentEnrollment,
					result.Session, result.Year)
			} else {
				row = append(row, "", "", "", "", "")
			}
			row = append(row, name)
			row = append(row, cells...)

			f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &row)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("E%d", rowNum), centerStyle)
			f.SetCellStyle(sheet, fmt.Sprintf("F%d", rowNum), fmt.Sprintf("F%d", rowNum), bodyStyle)
			f.SetCellStyle(sheet, fmt.Sprintf("G%d", rowNum), fmt.Sprintf("O%d", rowNum), centerStyle)
			rowNum++
		}

		for _, subject := range result.Subjects {
			marks := subject.Marks
			writeRow(subject.Name, []interface{}{
				cellValue(marks.CT1.OutOf75), cellValue(marks.CT1.OutOf5),
				cellValue(marks.CT2.OutOf75), cellValue(marks.CT2.OutOf5),
				cellValue(marks.OtherMarks.Assignment),
				cellValue(marks.OtherMarks.ExtraCurricular),
				cellValue(marks.OtherMarks.Attendance),
				25, cellValue(marks.TotalOutOf25),
			})
		}
		for _, practical := range result.Practicals {
			writeRow(practical.Name, []interface{}{
				"", "", "", "", "", "", "",
				100, cellValue(practical.Marks),
			})
		}

		if itemCount > 1 {
			endRow := rowNum - 1
			for _, col := range []string{"A", "B", "C", "D", "E"} {
				f.MergeCell(sheet, fmt.Sprintf("%s%d", col, startRow), fmt.Sprintf("%s%d", col, endRow))
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "E", 14)
	f.SetColWidth(sheet, "F", "F", 26)
	f.SetColWidth(sheet, "G", "O", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Export results error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render spreadsheet")
	}

	filename := "results"
	if filters.SessionExact != "" {
		filename += "_" + filters.SessionExact
	}
	if filters.Year != "" {
		filename += "_" + filters.Year
	}
	filename += ".xlsx"

	c.Set(fiber.HeaderContentType, excelContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
