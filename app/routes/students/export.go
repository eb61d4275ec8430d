package students

import (
	"fmt"
	"log"

	"github.com/adeebkhans/StudentManagementExe/app/config"
	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportStudentsAPI renders the student register as a spreadsheet, sorted by
// name, optionally limited to one session.
func ExportStudentsAPI(c *fiber.Ctx) error {
	session := c.Query("session")

	students, err := database.GetStudentsBySession(config.GetDB(), session)
	if err != nil {
		log.Printf("Export students error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to export students")
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Students"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{
		"S.No.", "Name", "Father Name", "Mother Name", "Student Mobile",
		"Parents Mobile", "Enrollment", "Aadhar Card", "Aadhaar Image", "Course",
	}
	f.SetSheetRow(sheet, "A1", &headers)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "J1", headerStyle)

	linkStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "0000FF", Underline: "single"},
	})

	for i, student := range students {
		rowNum := i + 2

		enrollment := student.Enrollment
		if enrollment == "" {
			enrollment = "N/A"
		}
		course := student.Course
		if course == "" {
			course = "N/A"
		}
		aadharImage := "N/A"
		if student.AadharImageURL != "" {
			aadharImage = "View Aadhaar"
		}

		row := []interface{}{
			i + 1, student.Name, student.FatherName, student.MotherName,
			student.StudentMob, student.ParentsMob, enrollment,
			student.AadharCard, aadharImage, course,
		}
		f.SetSheetRow(sheet, fmt.Sprintf("A%d", rowNum), &row)

		if student.AadharImageURL != "" {
			cell := fmt.Sprintf("I%d", rowNum)
			f.SetCellHyperLink(sheet, cell, student.AadharImageURL, "External")
			f.SetCellStyle(sheet, cell, cell, linkStyle)
		}
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "F", 20)
	f.SetColWidth(sheet, "G", "H", 20)
	f.SetColWidth(sheet, "I", "I", 30)
	f.SetColWidth(sheet, "J", "J", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Export students error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render spreadsheet")
	}

	filename := "students.xlsx"
	if session != "" {
		filename = fmt.Sprintf("students-%s.xlsx", session)
	}
	c.Set(fiber.HeaderContentType, excelContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%s`, filename))
	return c.Send(buf.Bytes())
}
