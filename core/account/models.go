package account

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// Role determines which portal an Account may access.
type Role string

const (
	RoleAdmin   Role = "admin"   // -> ADMIN PORTAL
	RoleStudent Role = "student" // -> STUDENT PORTAL
)

var AllRoles = []Role{RoleAdmin, RoleStudent}

func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Status is the access-review state of an Account.
type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusInactive Status = "inactive" // reserved; no transition reaches it yet
	StatusBlocked  Status = "blocked"
)

var AllStatuses = []Status{StatusActive, StatusPending, StatusInactive, StatusBlocked}

// statusTransitions is the closed set of admin-driven status changes.
var statusTransitions = map[Status][]Status{
	StatusPending: {StatusActive},
	StatusActive:  {StatusBlocked},
	StatusBlocked: {StatusActive},
}

func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether an admin may move an account from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type Account struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"` // unique, matched case-insensitively
	Role         Role        `json:"role"`
	Status       Status      `json:"status"`
	RegisteredAt time.Time   `json:"registered_at"` // UTC
	PaymentDate  null.Time   `json:"payment_date,omitempty"`
	PhotoURL     null.String `json:"photo_url,omitempty"`
}

func (a Account) IsAdmin() bool   { return a.Role == RoleAdmin }
func (a Account) IsStudent() bool { return a.Role == RoleStudent }
func (a Account) IsActive() bool  { return a.Status == StatusActive }

// NewAccount contains information needed to sign up a new Account.
// Role and Status are never caller-supplied; they are derived from the
// master-email rule at signup.
type NewAccount struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (na *NewAccount) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	return validate.Struct(na)
}

var (
	// custom validation tags & texts
	statusTag  = "accountstatus"
	statusText = "unknown account status"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func statusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).IsValid()
}
