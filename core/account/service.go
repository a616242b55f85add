package account

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/session"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrEmailExists       = errors.New("an account with this email already exists")
	ErrNoSession         = errors.New("no current session")
	ErrUnauthorized      = errors.New("operation not permitted")
	ErrInvalidTransition = errors.New("status change not allowed")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string) error
		// CreateAccount fails with ErrEmailExists if the email is already
		// taken, verified atomically with the insert.
		CreateAccount(acct Account) (Account, error)
		QueryAllAccounts() ([]Account, error)
		GetAccountByID(id string) (Account, error)
		// GetAccountByEmail matches email case-insensitively.
		GetAccountByEmail(email string) (Account, error)
		UpdateAccountStatus(id string, status Status) (Account, error)
	}

	Service interface {
		Signup(na NewAccount) (Account, error)
		Login(email string) (Account, error)
		Logout() error
		Current() (Account, error)
		Query() ([]Account, error)
		GetByID(id string) (Account, error)
		GetByEmail(email string) (Account, error)
		SetStatus(actor Account, id string, status Status) (Account, error)
	}

	service struct {
		repo     Repository
		sessions *session.Manager
		mailSvc  core.EmailService
		conf     *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, sessions *session.Manager, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:     repo,
		sessions: sessions,
		mailSvc:  mailSvc,
		conf:     conf,
	}
}

// Signup registers a new Account and establishes it as the current session.
// The master email is granted admin role and active status immediately;
// everyone else starts as a student pending review.
func (svc *service) Signup(na NewAccount) (Account, error) {
	email := core.CleanString(na.Email, true /* lower */)
	if err := svc.repo.CheckEmailUniqueness(email); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return Account{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return Account{}, errors.Wrap(err, "checking email uniqueness")
	}

	acct := Account{
		ID:           uuid.New().String(),
		Name:         core.CleanString(na.Name),
		Email:        email,
		Role:         RoleStudent,
		Status:       StatusPending,
		RegisteredAt: time.Now().UTC(),
	}
	if email == core.CleanString(svc.conf.MasterEmail, true /* lower */) {
		acct.Role = RoleAdmin
		acct.Status = StatusActive
	}

	acct, err := svc.repo.CreateAccount(acct)
	if err != nil {
		// a concurrent signup may win the race between the check above
		// and the insert; surface it the same way
		if errors.Cause(err) == ErrEmailExists {
			return Account{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return Account{}, errors.Wrap(err, "creating account")
	}
	if err = svc.setSession(acct); err != nil {
		return Account{}, err
	}

	if acct.Status == StatusPending {
		svc.sendPendingReviewMail(acct)
	}
	return acct, nil
}

// Login resolves email case-insensitively and establishes the matching
// Account as the current session. Status is not checked here; access
// gates act on the session/claims instead.
func (svc *service) Login(email string) (Account, error) {
	acct, err := svc.repo.GetAccountByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return Account{}, err
	}
	if err = svc.setSession(acct); err != nil {
		return Account{}, err
	}
	return acct, nil
}

// Logout clears the current session and its durable mirror. It always
// succeeds, logged-in or not.
func (svc *service) Logout() error {
	return errors.Wrap(svc.sessions.Clear(), "clearing session")
}

// Current resolves the current session against the live account table.
// A mirror pointing at an account that no longer exists resolves to absent.
func (svc *service) Current() (Account, error) {
	snap, ok := svc.sessions.Current()
	if !ok {
		return Account{}, ErrNoSession
	}
	acct, err := svc.repo.GetAccountByID(snap.ID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			_ = svc.sessions.Clear()
			return Account{}, ErrNoSession
		}
		return Account{}, errors.Wrap(err, "resolving session account")
	}
	return acct, nil
}

func (svc *service) Query() ([]Account, error) {
	return svc.repo.QueryAllAccounts()
}

func (svc *service) GetByID(id string) (Account, error) {
	return svc.repo.GetAccountByID(id)
}

func (svc *service) GetByEmail(email string) (Account, error) {
	return svc.repo.GetAccountByEmail(core.CleanString(email, true /* lower */))
}

// SetStatus applies an admin-driven status change. Only an active admin
// may call it, and only transitions from the closed transition table are
// accepted.
func (svc *service) SetStatus(actor Account, id string, status Status) (Account, error) {
	if !(actor.IsAdmin() && actor.IsActive()) {
		return Account{}, ErrUnauthorized
	}
	if !status.IsValid() {
		return Account{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "unknown account status"})
	}

	acct, err := svc.repo.GetAccountByID(id)
	if err != nil {
		return Account{}, err
	}
	if !acct.Status.CanTransitionTo(status) {
		return Account{}, core.NewValidationError(ErrInvalidTransition, core.FieldError{
			Field: "status",
			Error: fmt.Sprintf("cannot change status from %q to %q", acct.Status, status),
		})
	}

	wasPending := acct.Status == StatusPending
	acct, err = svc.repo.UpdateAccountStatus(id, status)
	if err != nil {
		return Account{}, errors.Wrap(err, "updating account status")
	}

	if wasPending && status == StatusActive {
		svc.sendActivationMail(acct)
	}
	return acct, nil
}

func (svc *service) setSession(acct Account) error {
	err := svc.sessions.Set(session.Snapshot{ID: acct.ID, Name: acct.Name, Email: acct.Email})
	return errors.Wrap(err, "saving session")
}

func (svc *service) sendPendingReviewMail(acct Account) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: acct.Name, Address: acct.Email}},
		Subject: "Your enrollment is under review",
		BodyStr: fmt.Sprintf(
			"Hi %s,\n\nThanks for signing up! Your enrollment is being reviewed; "+
				"we will let you know as soon as your access is activated.\n\n%s",
			acct.Name, svc.conf.FrontendBaseURL,
		),
	})
}

func (svc *service) sendActivationMail(acct Account) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: acct.Name, Address: acct.Email}},
		Subject: "Your access is now active",
		BodyStr: fmt.Sprintf(
			"Hi %s,\n\nYour enrollment has been approved. Log in and start learning:\n%s",
			acct.Name, svc.conf.FrontendBaseURL,
		),
	})
}
