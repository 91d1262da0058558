// Package export renders resource lists into download formats for
// clients: the user roster as an Excel workbook and the announcement
// board as an iCalendar feed.
package export

import (
	"bytes"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"

	"github.com/Sumanth789856/Get-Updated/models"
)

const usersSheet = "Users"

// UsersWorkbook builds an xlsx roster of accounts. Returns the file
// bytes and a suggested filename.
func UsersWorkbook(users []models.User) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", usersSheet)

	headers := []string{"ID", "Username", "Email", "Role", "Created", "Last Login"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(usersSheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("set header: %w", err)
		}
	}

	for row, u := range users {
		lastLogin := ""
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format("2006-01-02 15:04:05")
		}
		values := []any{
			u.ID, u.Username, u.Email, u.Role,
			u.CreatedAt.Format("2006-01-02 15:04:05"), lastLogin,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(usersSheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("set cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}
	filename := fmt.Sprintf("users-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// AnnouncementsCalendar serializes announcements as an ICS feed, one
// event per announcement at its posting time.
func AnnouncementsCalendar(anns []models.Announcement) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Get-Updated//Announcements//EN")

	for _, a := range anns {
		ev := cal.AddEvent(fmt.Sprintf("announcement-%d@get-updated", a.ID))
		ev.SetCreatedTime(a.Date)
		ev.SetDtStampTime(a.Date)
		ev.SetStartAt(a.Date)
		ev.SetEndAt(a.Date.Add(time.Hour))
		ev.SetSummary(summaryOf(a.Content))
		ev.SetDescription(a.Content)
		ev.SetOrganizer(a.Author)
	}
	return cal.Serialize()
}

func summaryOf(content string) string {
	const max = 60
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "…"
}
