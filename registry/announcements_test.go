package registry

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Sumanth789856/Get-Updated/models"
)

func TestAnnouncementsCreate(t *testing.T) {
	db := testDB(t)
	anns := NewAnnouncements(db, zap.NewNop())

	// any authenticated role may post
	a, err := anns.Create(studentA, "  exam moved to friday  ")
	if err != nil {
		t.Fatalf("Create by student: %v", err)
	}
	if a.Content != "exam moved to friday" {
		t.Errorf("content not trimmed: %q", a.Content)
	}
	if a.Author != "alice" {
		t.Errorf("author = %q, want alice", a.Author)
	}
	if a.Date.IsZero() {
		t.Error("date not server-assigned")
	}

	if _, err := anns.Create(teacher, "staff meeting"); err != nil {
		t.Errorf("Create by teacher: %v", err)
	}

	// unauthenticated caller fails
	if _, err := anns.Create(nobody, "spam"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("unauthenticated create = %v, want ErrUnauthenticated", err)
	}

	// blank content after trim
	var verr *ValidationError
	if _, err := anns.Create(studentA, "   "); !errors.As(err, &verr) {
		t.Errorf("blank content = %v, want ValidationError", err)
	}
}

func TestAnnouncementsListNewestFirst(t *testing.T) {
	db := testDB(t)
	anns := NewAnnouncements(db, zap.NewNop())

	for _, msg := range []string{"first", "second", "third"} {
		if _, err := anns.Create(teacher, msg); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	list, err := anns.List(studentA)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d announcements", len(list))
	}
	if list[0].Content != "third" || list[2].Content != "first" {
		t.Errorf("not ordered newest first: %+v", list)
	}

	if _, err := anns.List(nobody); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("unauthenticated list = %v", err)
	}
}

func TestAnnouncementsDelete(t *testing.T) {
	db := testDB(t)
	anns := NewAnnouncements(db, zap.NewNop())

	a, err := anns.Create(teacher, "to be removed")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// students may not delete, even their own
	mine, _ := anns.Create(studentA, "mine")
	if err := anns.Delete(studentA, mine.ID); !errors.Is(err, ErrDenied) {
		t.Errorf("delete by student = %v, want ErrDenied", err)
	}

	if err := anns.Delete(teacher, a.ID); err != nil {
		t.Fatalf("delete by teacher: %v", err)
	}
	if err := anns.Delete(admin, mine.ID); err != nil {
		t.Fatalf("delete by admin: %v", err)
	}

	var count int64
	db.Model(&models.Announcement{}).Count(&count)
	if count != 0 {
		t.Errorf("count = %d after deletes", count)
	}

	// missing id is a silent no-op
	if err := anns.Delete(admin, 9999); err != nil {
		t.Errorf("delete missing = %v, want nil", err)
	}
}
