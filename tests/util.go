package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
)

// NewTestConfig returns a Config suitable for tests: no simulated store
// latency, no upload ticks and throwaway session/media paths.
func NewTestConfig(t *testing.T) *core.Config {
	conf := &core.Config{
		Debug:            true,
		TestMode:         true,
		Env:              "TEST",
		Build:            "test",
		AppName:          "Darasa",
		SecretKey:        "s3cr3t",
		MasterEmail:      "prof@darasa.dev",
		DefaultFromEmail: "noreply@localhost",
		FrontendBaseURL:  "http://localhost:3000",
		SessionFile:      filepath.Join(t.TempDir(), ".session.json"),
		MediaRoot:        filepath.Join(t.TempDir(), "media"),
	}
	conf.Server.JWTExpirationDelta = time.Hour
	conf.Server.JWTRefreshExpirationDelta = 4 * time.Hour
	return conf
}

func CreateAccount(
	t *testing.T,
	repo account.Repository,
	name, email string,
	role account.Role,
	status account.Status,
) account.Account {
	acct, err := repo.CreateAccount(account.Account{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Role:         role,
		Status:       status,
		RegisteredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acct
}

// NopLogger discards everything; good enough for tests.
type NopLogger struct{}

var _ core.Logger = (*NopLogger)(nil)

func (NopLogger) Debug(msg string, args ...interface{}) {}
func (NopLogger) Info(msg string, args ...interface{})  {}
func (NopLogger) Warn(msg string, args ...interface{})  {}
func (NopLogger) Error(msg string, args ...interface{}) {}
func (NopLogger) Fatal(msg string, args ...interface{}) {}
