package inmemdb

import (
	"strings"

	"github.com/trezcool/darasa/core/account"
)

type accountRepository struct {
	db *DB
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) query() []account.Account {
	accts := make([]account.Account, 0, len(repo.db.accounts))
	for _, a := range repo.db.accounts {
		accts = append(accts, *a)
	}
	return accts
}

func (repo *accountRepository) CheckEmailUniqueness(email string) error {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acct := range repo.db.accounts {
		if strings.EqualFold(acct.Email, email) {
			return account.ErrEmailExists
		}
	}
	return nil
}

func (repo *accountRepository) CreateAccount(acct account.Account) (account.Account, error) {
	repo.db.simulate()
	repo.db.Lock()
	defer repo.db.Unlock()

	// the service's earlier uniqueness check ran under a read lock;
	// re-verify here so concurrent signups cannot both insert
	for _, existing := range repo.db.accounts {
		if strings.EqualFold(existing.Email, acct.Email) {
			return account.Account{}, account.ErrEmailExists
		}
	}

	repo.db.accounts = append(repo.db.accounts, &acct)
	return acct, nil
}

func (repo *accountRepository) QueryAllAccounts() ([]account.Account, error) {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *accountRepository) GetAccountByID(id string) (account.Account, error) {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acct := range repo.db.accounts {
		if acct.ID == id {
			return *acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) GetAccountByEmail(email string) (account.Account, error) {
	repo.db.simulate()
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acct := range repo.db.accounts {
		if strings.EqualFold(acct.Email, email) {
			return *acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) UpdateAccountStatus(id string, status account.Status) (account.Account, error) {
	repo.db.simulate()
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, acct := range repo.db.accounts {
		if acct.ID == id {
			acct.Status = status
			return *acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}
