package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/darasa/core/account"
)

func (cli *commandLine) login(email string) error {
	acct, err := cli.acctSvc.Login(email)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Logged in as %s <%s> (%s, %s)\n", acct.Name, acct.Email, acct.Role, acct.Status)
	return nil
}

func (cli *commandLine) whoami() error {
	acct, err := cli.acctSvc.Current()
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s <%s> (%s, %s)\n", acct.Name, acct.Email, acct.Role, acct.Status)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.acctSvc.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Logged out.")
	return nil
}

func (cli *commandLine) queryAccounts() error {
	accts, err := cli.acctSvc.Query()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
	for _, acct := range accts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", acct.ID, acct.Name, acct.Email, acct.Role, acct.Status)
	}
	return w.Flush()
}

// setStatus acts as the logged-in account; an admin must log in first.
func (cli *commandLine) setStatus(id, status string) error {
	actor, err := cli.acctSvc.Current()
	if err != nil {
		return err
	}

	acct, err := cli.acctSvc.SetStatus(actor, id, account.Status(status))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s <%s> is now %s\n", acct.Name, acct.Email, acct.Status)
	return nil
}
