package export

import (
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Sumanth789856/Get-Updated/models"
)

func TestUsersWorkbook(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	users := []models.User{
		{ID: 1, Username: "alice", Email: "alice@example.com", Role: "student", CreatedAt: now},
		{ID: 2, Username: "bob", Email: "bob@example.com", Role: "teacher", CreatedAt: now, LastLogin: &now},
	}

	buf, filename, err := UsersWorkbook(users)
	if err != nil {
		t.Fatalf("UsersWorkbook: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Users")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][1] != "Username" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "alice" || rows[2][3] != "teacher" {
		t.Errorf("rows = %v", rows[1:])
	}
}

func TestAnnouncementsCalendar(t *testing.T) {
	when := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	anns := []models.Announcement{
		{ID: 7, Content: "exam moved to friday", Author: "mr-t", Date: when},
	}

	out := AnnouncementsCalendar(anns)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"announcement-7@get-updated",
		"SUMMARY:exam moved to friday",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q", want)
		}
	}
}

func TestAnnouncementsCalendarEmpty(t *testing.T) {
	out := AnnouncementsCalendar(nil)
	if !strings.Contains(out, "BEGIN:VCALENDAR") {
		t.Error("empty feed is still a valid calendar")
	}
}
