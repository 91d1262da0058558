// Package policy is the pure access decision function gating every
// mutating operation on shared resources. It has no storage or transport
// dependencies: callers pass in the acting identity and, where ownership
// matters, the resource owner's username.
package policy

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Operation names a guarded action.
type Operation string

const (
	OpCreateAnnouncement   Operation = "create_announcement"
	OpDeleteAnnouncement   Operation = "delete_announcement"
	OpDeleteNote           Operation = "delete_note"
	OpEditNote             Operation = "edit_note"
	OpCreateTeacherAccount Operation = "create_teacher_account"
	OpViewUsers            Operation = "view_users"
	OpDeleteUser           Operation = "delete_user"
	OpAddStudent           Operation = "add_student"
	OpAddTeacher           Operation = "add_teacher"
)

// Actor is the authenticated identity for one request. The zero value is
// an unauthenticated caller and is denied everything.
type Actor struct {
	Username string
	Role     Role
}

func (a Actor) Authenticated() bool { return a.Username != "" }

func (a Actor) staff() bool { return a.Role == RoleTeacher || a.Role == RoleAdmin }

// Decide evaluates one operation for one actor. resourceOwner is the
// username recorded on the resource at creation time; it is ignored for
// operations without an ownership rule. A deny is terminal: callers must
// not execute any part of the operation after a false return.
func Decide(op Operation, actor Actor, resourceOwner string) bool {
	if !actor.Authenticated() {
		return false
	}
	switch op {
	case OpCreateAnnouncement:
		return true
	case OpDeleteAnnouncement:
		return actor.staff()
	case OpDeleteNote, OpEditNote:
		return actor.staff() || actor.Username == resourceOwner
	case OpCreateTeacherAccount, OpViewUsers, OpDeleteUser, OpAddStudent, OpAddTeacher:
		return actor.Role == RoleAdmin
	}
	return false
}
