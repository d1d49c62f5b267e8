// Package ledger holds the in-memory registry of customers and accounts and
// orchestrates account creation and transaction execution against it. It owns
// the identifier counters, so uniqueness is deterministic for the life of the
// ledger.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/amirasaad/retailbank/pkg/domain/account"
	"github.com/amirasaad/retailbank/pkg/domain/customer"
	"github.com/amirasaad/retailbank/pkg/domain/money"
)

// Counter seeds. Customer IDs and account numbers live in separate ranges so
// the two are never confused in logs or statements.
const (
	firstCustomerID    = 1001
	firstAccountNumber = 10000001
	firstTransactionID = 1
)

// Ledger is the single mutable registry of the bank core. It is not safe for
// concurrent use; callers serialize access.
type Ledger struct {
	customers map[int64]*customer.Customer
	accounts  map[int64]account.Account

	nextCustomerID    int64
	nextAccountNumber int64
	nextTransactionID int64
}

// New creates an empty ledger with counters at their seeds.
func New() *Ledger {
	return &Ledger{
		customers:         make(map[int64]*customer.Customer),
		accounts:          make(map[int64]account.Account),
		nextCustomerID:    firstCustomerID,
		nextAccountNumber: firstAccountNumber,
		nextTransactionID: firstTransactionID,
	}
}

// CreateCustomer registers a new customer and returns it.
func (l *Ledger) CreateCustomer(name, email, phone, address string) *customer.Customer {
	c := customer.New(l.nextCustomerID, name, email, phone, address, time.Now().UTC())
	l.nextCustomerID++
	l.customers[c.ID] = c
	return c
}

// FindCustomer looks up a customer by ID.
func (l *Ledger) FindCustomer(id int64) (*customer.Customer, bool) {
	c, ok := l.customers[id]
	return c, ok
}

// FindAccount looks up an account by number.
func (l *Ledger) FindAccount(number int64) (account.Account, bool) {
	a, ok := l.accounts[number]
	return a, ok
}

// OpenSavings opens a savings account for the customer.
func (l *Ledger) OpenSavings(customerID int64, opening money.Money, params account.SavingsParams) (*account.Savings, error) {
	c, ok := l.customers[customerID]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	a, err := account.NewSavings(l.nextAccountNumber, customerID, opening, params)
	if err != nil {
		return nil, err
	}
	l.register(a, c)
	return a, nil
}

// OpenChecking opens a checking account for the customer.
func (l *Ledger) OpenChecking(customerID int64, opening money.Money, params account.CheckingParams) (*account.Checking, error) {
	c, ok := l.customers[customerID]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	a, err := account.NewChecking(l.nextAccountNumber, customerID, opening, params)
	if err != nil {
		return nil, err
	}
	l.register(a, c)
	return a, nil
}

// OpenLoan opens a loan account for the customer.
func (l *Ledger) OpenLoan(customerID int64, params account.LoanParams) (*account.Loan, error) {
	c, ok := l.customers[customerID]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	a, err := account.NewLoan(l.nextAccountNumber, customerID, params)
	if err != nil {
		return nil, err
	}
	l.register(a, c)
	return a, nil
}

// register books a freshly numbered account into the account table and the
// holder's account list. The number was just minted, so linking cannot
// collide.
func (l *Ledger) register(a account.Account, c *customer.Customer) {
	l.nextAccountNumber++
	l.accounts[a.Number()] = a
	// A fresh number cannot already be linked.
	_ = c.LinkAccount(a.Number())
}

// NewDeposit builds a pending deposit transaction against a looked-up account.
func (l *Ledger) NewDeposit(accountNumber int64, amount money.Money) (*account.Transaction, error) {
	a, ok := l.accounts[accountNumber]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return account.NewDeposit(l.mintTxID(), a, amount), nil
}

// NewWithdrawal builds a pending withdrawal transaction.
func (l *Ledger) NewWithdrawal(accountNumber int64, amount money.Money) (*account.Transaction, error) {
	a, ok := l.accounts[accountNumber]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return account.NewWithdrawal(l.mintTxID(), a, amount), nil
}

// NewTransfer builds a pending transfer transaction between two accounts.
func (l *Ledger) NewTransfer(sourceNumber, destNumber int64, amount money.Money) (*account.Transaction, error) {
	src, ok := l.accounts[sourceNumber]
	if !ok {
		return nil, fmt.Errorf("source %d: %w", sourceNumber, account.ErrAccountNotFound)
	}
	dst, ok := l.accounts[destNumber]
	if !ok {
		return nil, fmt.Errorf("destination %d: %w", destNumber, account.ErrAccountNotFound)
	}
	return account.NewTransfer(l.mintTxID(), src, dst, amount), nil
}

func (l *Ledger) mintTxID() int64 {
	id := l.nextTransactionID
	l.nextTransactionID++
	return id
}

// FreezeAccount suspends an account.
func (l *Ledger) FreezeAccount(number int64) error {
	a, ok := l.accounts[number]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.Freeze()
	return nil
}

// CloseAccount closes an account; variants may refuse (overdrawn checking).
func (l *Ledger) CloseAccount(number int64) error {
	a, ok := l.accounts[number]
	if !ok {
		return account.ErrAccountNotFound
	}
	return a.Close()
}

// PostInterest credits accrued interest to every active savings account and
// returns the total credited.
func (l *Ledger) PostInterest() money.Money {
	total := money.Zero
	for _, a := range l.AccountsSorted() {
		s, ok := a.(*account.Savings)
		if !ok || s.Status() != account.StatusActive {
			continue
		}
		total = total.Add(s.PostInterest())
	}
	return total
}

// CustomersSorted returns every customer ordered by ID.
func (l *Ledger) CustomersSorted() []*customer.Customer {
	out := make([]*customer.Customer, 0, len(l.customers))
	for _, c := range l.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AccountsSorted returns every account ordered by number.
func (l *Ledger) AccountsSorted() []account.Account {
	out := make([]account.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// Counters exposes the identifier counters for snapshotting.
func (l *Ledger) Counters() (nextCustomerID, nextAccountNumber, nextTransactionID int64) {
	return l.nextCustomerID, l.nextAccountNumber, l.nextTransactionID
}

// RestoreCounters sets the identifier counters while decoding a snapshot.
func (l *Ledger) RestoreCounters(nextCustomerID, nextAccountNumber, nextTransactionID int64) {
	l.nextCustomerID = nextCustomerID
	l.nextAccountNumber = nextAccountNumber
	l.nextTransactionID = nextTransactionID
}

// RestoreCustomer books an already-constructed customer while decoding a
// snapshot.
func (l *Ledger) RestoreCustomer(c *customer.Customer) {
	l.customers[c.ID] = c
}

// RestoreAccount books an already-constructed account and re-links it to its
// holder. Returns customer.ErrCustomerNotFound when the holder identifier
// does not resolve.
func (l *Ledger) RestoreAccount(a account.Account) error {
	c, ok := l.customers[a.HolderID()]
	if !ok {
		return fmt.Errorf("holder %d: %w", a.HolderID(), customer.ErrCustomerNotFound)
	}
	if err := c.LinkAccount(a.Number()); err != nil {
		return err
	}
	l.accounts[a.Number()] = a
	return nil
}
