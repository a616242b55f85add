package main

import (
	"log"
	"os"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/session"
	emailsvc "github.com/trezcool/darasa/services/email"
	inmemdb "github.com/trezcool/darasa/storage/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up store; no simulated latency for the CLI
	db, err := inmemdb.Open(0)
	errAndDie(err)
	inmemdb.Seed(db, conf)

	sessions := session.NewManager(conf.SessionFile)
	acctSvc := account.NewService(inmemdb.NewAccountRepository(db), sessions, emailsvc.NewConsoleService(conf), conf)

	// start CLI
	cli := commandLine{
		acctSvc: acctSvc,
		out:     os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
