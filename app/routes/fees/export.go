package fees

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportFeesAPI renders the fee ledger as a spreadsheet, rows sorted by
// student name, optionally limited to one session.
func ExportFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	session := c.Query("session")

	fees, err := database.GetAllFees(db, database.FeeFilters{Session: session})
	if err != nil {
		log.Printf("Export fees error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to export fees")
	}

	sort.Slice(fees, func(i, j int) bool {
		nameI, nameJ := "", ""
		if fees[i].Student != nil {
			nameI = strings.ToLower(fees[i].Student.Name)
		}
		if fees[j].Student != nil {
			nameJ = strings.ToLower(fees[j].Student.Name)
		}
		return nameI < nameJ
	})

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Fees"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{
		"S.No", "Student Name", "Father's Name", "Enrollment", "Fee Code",
		"Session", "Total Fee", "Deposited", "Remaining", "Updated At",
	}
	f.SetSheetRow(sheet, "A1", &headers)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "J1", headerStyle)

	for i, fee := range fees {
		studentName, fatherName, enrollment := "N/A", "N/A", "N/A"
		if fee.Student != nil {
			studentName = fee.Student.Name
			fatherName = fee.Student.FatherName
			if fee.Student.Enrollment != "" {
				enrollment = fee.Student.Enrollment
			}
		}

		row := []interface{}{
			i + 1, studentName, fatherName, enrollment, fee.Code,
			fee.Session, fee.Fee, fee.Deposited, fee.Remaining,
			fee.UpdatedAt.Format("02/01/2006, 15:04:05"),
		}
		f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row)
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "C", 20)
	f.SetColWidth(sheet, "D", "D", 18)
	f.SetColWidth(sheet, "E", "E", 12)
	f.SetColWidth(sheet, "F", "I", 14)
	f.SetColWidth(sheet, "J", "J", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Export fees error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render spreadsheet")
	}

	filename := "fees.xlsx"
	if session != "" {
		filename = fmt.Sprintf("fees_%s.xlsx", session)
	}
	c.Set(fiber.HeaderContentType, excelContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%s`, filename))
	return c.Send(buf.Bytes())
}
