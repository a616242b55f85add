package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/trezcool/darasa/core/account"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	acctSvc account.Service
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL              - log in as the account matching EMAIL")
	fmt.Fprintln(cli.out, "  whoami                          - show the current session's account")
	fmt.Fprintln(cli.out, "  logout                          - clear the current session")
	fmt.Fprintln(cli.out, "  accounts                        - list all accounts")
	fmt.Fprintln(cli.out, "  setstatus -id ID -status STATUS - change an account's status (as the logged-in admin)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The account's email.")

	setStatusCmd := flag.NewFlagSet("setstatus", flag.ExitOnError)
	setStatusID := setStatusCmd.String("id", "", "The target account's ID.")
	setStatusStatus := setStatusCmd.String("status", "", "The new status: active|pending|inactive|blocked.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail)
	case "whoami":
		return cli.whoami()
	case "logout":
		return cli.logout()
	case "accounts":
		return cli.queryAccounts()
	case "setstatus":
		if err := setStatusCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setStatusID == "" || *setStatusStatus == "" {
			setStatusCmd.Usage()
			return errHelp
		}
		return cli.setStatus(*setStatusID, *setStatusStatus)
	default:
		cli.printUsage()
		return errHelp
	}
}
