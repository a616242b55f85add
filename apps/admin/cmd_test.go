package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/session"
	emailsvc "github.com/trezcool/darasa/services/email"
	inmemdb "github.com/trezcool/darasa/storage/inmem"
	testutil "github.com/trezcool/darasa/tests"
)

// newCLI builds a CLI over a freshly seeded store, the way main does.
// The session mirror lives at conf.SessionFile, so two CLIs sharing a
// conf model two runs of the program.
func newCLI(t *testing.T, conf *core.Config) (*commandLine, *bytes.Buffer) {
	db, err := inmemdb.Open(0)
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	inmemdb.Seed(db, conf)

	sessions := session.NewManager(conf.SessionFile)
	acctSvc := account.NewService(inmemdb.NewAccountRepository(db), sessions, emailsvc.NewConsoleServiceMock(conf), conf)

	out := new(bytes.Buffer)
	return &commandLine{acctSvc: acctSvc, out: out}, out
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	wantOut string
}

func Test_commandLine_run(t *testing.T) {
	cli, out := newCLI(t, testutil.NewTestConfig(t))

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "login: no email", args: []string{"login"}, wantErr: errHelp},
		{name: "login: unknown email", args: []string{"login", "-email", "nobody@example.com"}, wantErr: account.ErrNotFound},
		{name: "whoami: no session", args: []string{"whoami"}, wantErr: account.ErrNoSession},
		{name: "setstatus: missing flags", args: []string{"setstatus", "-id", "acct-student-001"}, wantErr: errHelp},
		{name: "setstatus: no session", args: []string{"setstatus", "-id", "acct-student-001", "-status", "blocked"}, wantErr: account.ErrNoSession},
		{name: "login: master", args: []string{"login", "-email", "PROF@Darasa.DEV"}, wantOut: "Logged in as Professor"},
		{name: "whoami", args: []string{"whoami"}, wantOut: "Professor <prof@darasa.dev> (admin, active)"},
		{name: "accounts", args: []string{"accounts"}, wantOut: "acct-student-001"},
		{name: "setstatus: block student", args: []string{"setstatus", "-id", "acct-student-001", "-status", "blocked"}, wantOut: "is now blocked"},
		{name: "logout", args: []string{"logout"}, wantOut: "Logged out."},
		{name: "whoami: after logout", args: []string{"whoami"}, wantErr: account.ErrNoSession},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			if tt.wantErr != nil {
				if errors.Cause(err) != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cli.run() unexpected error = %v", err)
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_sessionSurvivesRestart(t *testing.T) {
	conf := testutil.NewTestConfig(t)

	cli, _ := newCLI(t, conf)
	if err := cli.run([]string{"admin", "login", "-email", "ana@example.com"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// a second run rebuilds the store from the fixed seed IDs, so the
	// mirrored session still resolves
	restarted, out := newCLI(t, conf)
	if err := restarted.run([]string{"admin", "whoami"}); err != nil {
		t.Fatalf("whoami after restart failed: %v", err)
	}
	if !strings.Contains(out.String(), "Ana Silva <ana@example.com>") {
		t.Errorf("whoami output = %q, want the seeded student", out.String())
	}
}
