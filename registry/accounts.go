package registry

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Sumanth789856/Get-Updated/models"
	"github.com/Sumanth789856/Get-Updated/policy"
)

// Accounts is the credential store: it owns user rows, credential
// verification and the admin-only account management operations.
type Accounts struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAccounts(db *gorm.DB, log *zap.Logger) *Accounts {
	return &Accounts{db: db, log: log}
}

// Verify checks username + email + password against one account.
// Username and email match case-insensitively, the password exactly
// (against its bcrypt hash). Any mismatch returns ErrInvalidCredentials
// with no detail about which field failed.
func (a *Accounts) Verify(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, invalid("credentials", "username, email and password are required")
	}

	var u models.User
	err := a.db.
		Where("LOWER(username) = ? AND LOWER(email) = ?",
			strings.ToLower(username), strings.ToLower(email)).
		First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, storageErr("verify", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// TouchLastLogin records a successful authentication. Best-effort by
// contract: the caller may log and ignore the returned error.
func (a *Accounts) TouchLastLogin(id uint, at time.Time) error {
	return a.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login", at).Error
}

// Register creates a student account on the public path. The role is
// always student here: teacher accounts only come from admin flows.
func (a *Accounts) Register(username, email, password string) (*models.User, error) {
	return a.create(username, email, password, models.RoleStudent)
}

// AddStudent and AddTeacher are the admin-initiated account flows.
func (a *Accounts) AddStudent(actor policy.Actor, username, email, password string) (*models.User, error) {
	if !policy.Decide(policy.OpAddStudent, actor, "") {
		return nil, deny(actor)
	}
	return a.create(username, email, password, models.RoleStudent)
}

func (a *Accounts) AddTeacher(actor policy.Actor, username, email, password string) (*models.User, error) {
	if !policy.Decide(policy.OpAddTeacher, actor, "") {
		return nil, deny(actor)
	}
	return a.create(username, email, password, models.RoleTeacher)
}

func (a *Accounts) create(username, email, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	fields := map[string]string{}
	if username == "" {
		fields["username"] = "username is required"
	}
	if email == "" {
		fields["email"] = "email is required"
	}
	if password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	// global, case-insensitive uniqueness across both identifiers
	var count int64
	err := a.db.Model(&models.User{}).
		Where("LOWER(username) = ? OR LOWER(email) = ?",
			strings.ToLower(username), strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return nil, storageErr("duplicate check", err)
	}
	if count > 0 {
		return nil, ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, storageErr("hash password", err)
	}
	u := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := a.insert(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// insert writes one user row. Two creations can pass the pre-check
// concurrently, so a unique-index violation here is still a duplicate,
// not a storage fault.
func (a *Accounts) insert(u *models.User) error {
	if err := a.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return storageErr("create user", err)
	}
	return nil
}

// List returns accounts for the admin user screen, newest first, with a
// substring filter and teacher-style pagination.
func (a *Accounts) List(actor policy.Actor, q string, page, size int) ([]models.User, int64, error) {
	if !policy.Decide(policy.OpViewUsers, actor, "") {
		return nil, 0, deny(actor)
	}
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	tx := a.db.Model(&models.User{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, storageErr("count users", err)
	}
	var users []models.User
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&users).Error; err != nil {
		return nil, 0, storageErr("list users", err)
	}
	return users, total, nil
}

// All returns every account in id order, for the admin export.
func (a *Accounts) All(actor policy.Actor) ([]models.User, error) {
	if !policy.Decide(policy.OpViewUsers, actor, "") {
		return nil, deny(actor)
	}
	var users []models.User
	if err := a.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

// Delete removes an account. Notes and announcements authored by the
// user keep their denormalized owner tag and are left in place; the
// orphan counts are logged so the behavior is visible.
func (a *Accounts) Delete(actor policy.Actor, id uint) error {
	if !policy.Decide(policy.OpDeleteUser, actor, "") {
		return deny(actor)
	}

	var u models.User
	if err := a.db.First(&u, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil // silent no-op
		}
		return storageErr("load user", err)
	}

	if err := a.db.Delete(&models.User{}, id).Error; err != nil {
		return storageErr("delete user", err)
	}

	var notes, anns int64
	a.db.Model(&models.Note{}).Where("uploaded_by = ?", u.Username).Count(&notes)
	a.db.Model(&models.Announcement{}).Where("author = ?", u.Username).Count(&anns)
	if notes > 0 || anns > 0 {
		a.log.Warn("deleted account leaves orphaned resources",
			zap.String("username", u.Username),
			zap.Int64("notes", notes),
			zap.Int64("announcements", anns))
	}
	return nil
}

func deny(actor policy.Actor) error {
	if !actor.Authenticated() {
		return ErrUnauthenticated
	}
	return ErrDenied
}
