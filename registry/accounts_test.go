package registry

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Sumanth789856/Get-Updated/models"
)

func TestAccountsRegisterAndVerify(t *testing.T) {
	db := testDB(t)
	acc := NewAccounts(db, zap.NewNop())

	u, err := acc.Register("Alice", "Alice@Example.com", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Role != models.RoleStudent {
		t.Errorf("public registration role = %q, want student", u.Role)
	}

	// case-insensitive username/email, exact password
	got, err := acc.Verify("alice", "ALICE@example.COM", "secret")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("Verify returned wrong account")
	}

	if _, err := acc.Verify("alice", "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password = %v, want ErrInvalidCredentials", err)
	}
	if _, err := acc.Verify("alice", "other@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad email = %v, want ErrInvalidCredentials", err)
	}
	if _, err := acc.Verify("nobody", "alice@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad username = %v, want ErrInvalidCredentials", err)
	}
}

func TestAccountsRegisterDuplicate(t *testing.T) {
	db := testDB(t)
	acc := NewAccounts(db, zap.NewNop())

	if _, err := acc.Register("alice", "alice@example.com", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []struct{ username, email string }{
		{"alice", "new@example.com"},   // same username
		{"ALICE", "new@example.com"},   // same username, different case
		{"newuser", "alice@example.com"},
		{"newuser", "Alice@Example.COM"},
	}
	for _, tc := range cases {
		if _, err := acc.Register(tc.username, tc.email, "pw"); !errors.Is(err, ErrDuplicate) {
			t.Errorf("Register(%q, %q) = %v, want ErrDuplicate", tc.username, tc.email, err)
		}
	}

	// count invariant: failed registrations leave the table unchanged
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}

func TestAccountsInsertRace(t *testing.T) {
	db := testDB(t)
	acc := NewAccounts(db, zap.NewNop())

	if _, err := acc.Register("alice", "alice@example.com", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// a concurrent registration can pass the duplicate pre-check before
	// the first insert lands; the unique index then rejects it, and that
	// rejection must read as a duplicate, not a storage fault
	err := acc.insert(&models.User{
		Username: "alice",
		Email:    "race@example.com",
		Password: "hash",
		Role:     models.RoleStudent,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("insert with taken username = %v, want ErrDuplicate", err)
	}

	err = acc.insert(&models.User{
		Username: "racer",
		Email:    "alice@example.com",
		Password: "hash",
		Role:     models.RoleStudent,
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("insert with taken email = %v, want ErrDuplicate", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}

func TestAccountsRegisterValidation(t *testing.T) {
	acc := NewAccounts(testDB(t), zap.NewNop())

	var verr *ValidationError
	if _, err := acc.Register("", "a@b.com", "pw"); !errors.As(err, &verr) {
		t.Errorf("missing username: %v", err)
	}
	if _, err := acc.Register("a", "", "pw"); !errors.As(err, &verr) {
		t.Errorf("missing email: %v", err)
	}
	if _, err := acc.Register("a", "a@b.com", "  "); !errors.As(err, &verr) {
		t.Errorf("blank password: %v", err)
	}
}

func TestAccountsTouchLastLogin(t *testing.T) {
	db := testDB(t)
	acc := NewAccounts(db, zap.NewNop())

	u, err := acc.Register("alice", "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.LastLogin != nil {
		t.Error("LastLogin set before any login")
	}

	at := time.Now().Truncate(time.Second)
	if err := acc.TouchLastLogin(u.ID, at); err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}
	var again models.User
	if err := db.First(&again, u.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.LastLogin == nil || !again.LastLogin.Equal(at) {
		t.Errorf("LastLogin = %v, want %v", again.LastLogin, at)
	}
}

func TestAccountsAdminFlows(t *testing.T) {
	db := testDB(t)
	acc := NewAccounts(db, zap.NewNop())

	// non-admin actors are denied every management operation
	if _, err := acc.AddTeacher(teacher, "t2", "t2@example.com", "pw"); !errors.Is(err, ErrDenied) {
		t.Errorf("AddTeacher by teacher = %v, want ErrDenied", err)
	}
	if _, err := acc.AddStudent(studentA, "s2", "s2@example.com", "pw"); !errors.Is(err, ErrDenied) {
		t.Errorf("AddStudent by student = %v, want ErrDenied", err)
	}
	if _, _, err := acc.List(teacher, "", 1, 20); !errors.Is(err, ErrDenied) {
		t.Errorf("List by teacher = %v, want ErrDenied", err)
	}
	if err := acc.Delete(studentA, 1); !errors.Is(err, ErrDenied) {
		t.Errorf("Delete by student = %v, want ErrDenied", err)
	}
	if _, _, err := acc.List(nobody, "", 1, 20); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("List unauthenticated = %v, want ErrUnauthenticated", err)
	}

	tu, err := acc.AddTeacher(admin, "newteacher", "nt@example.com", "pw")
	if err != nil {
		t.Fatalf("AddTeacher: %v", err)
	}
	if tu.Role != models.RoleTeacher {
		t.Errorf("AddTeacher role = %q", tu.Role)
	}
	su, err := acc.AddStudent(admin, "newstudent", "ns@example.com", "pw")
	if err != nil {
		t.Fatalf("AddStudent: %v", err)
	}
	if su.Role != models.RoleStudent {
		t.Errorf("AddStudent role = %q", su.Role)
	}

	users, total, err := acc.List(admin, "", 1, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Errorf("List = %d/%d users, want 2", len(users), total)
	}

	// filtered list
	users, _, err = acc.List(admin, "newteacher", 1, 20)
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(users) != 1 || users[0].Username != "newteacher" {
		t.Errorf("filtered List = %+v", users)
	}
}

func TestAccountsDelete(t *testing.T) {
	db := testDB(t)
	acc := NewAccounts(db, zap.NewNop())

	u, err := acc.Register("alice", "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := acc.Delete(admin, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Error("account not deleted")
	}

	// missing id is a silent no-op
	if err := acc.Delete(admin, 9999); err != nil {
		t.Errorf("Delete missing = %v, want nil", err)
	}
}
