package report

import (
	"fmt"
	"time"

	"novamd-bot/pkg/api"

	"github.com/xuri/excelize/v2"
)

const usersSheet = "Users"

var usersHeaders = []string{"Chat ID", "First Name", "Username", "Plan", "End Date"}

// UsersFilename names the export for the given moment.
func UsersFilename(now time.Time) string {
	return fmt.Sprintf("active_users_%s.xlsx", now.Format("20060102_1504"))
}

// ActiveUsersWorkbook renders the active users list as an xlsx document.
func ActiveUsersWorkbook(users []api.User) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", usersSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range usersHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(usersSheet, cell, header)
	}

	for row, u := range users {
		data := []interface{}{
			u.ChatID.String(),
			u.FirstName,
			u.Username,
			u.Plan,
			u.EndDate,
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(usersSheet, cell, value)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		f.SetCellStyle(usersSheet, "A1", "E1", style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
