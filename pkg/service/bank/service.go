// Package bank provides the service facade over the ledger: request
// validation, structured logging and error wrapping around the core account
// and transaction operations.
package bank

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/retailbank/pkg/domain/account"
	"github.com/amirasaad/retailbank/pkg/domain/customer"
	"github.com/amirasaad/retailbank/pkg/domain/money"
	"github.com/amirasaad/retailbank/pkg/ledger"
	"github.com/go-playground/validator/v10"
)

// Service exposes the bank core to callers (CLI, reporting). It serializes no
// access itself; there is one logical caller at a time.
type Service struct {
	ledger   *ledger.Ledger
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates a Service around an existing ledger.
func NewService(l *ledger.Ledger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ledger:   l,
		validate: validator.New(),
		logger:   logger,
	}
}

// Ledger returns the underlying registry, for snapshotting.
func (s *Service) Ledger() *ledger.Ledger { return s.ledger }

// CreateCustomerInput carries the fields for a new customer.
type CreateCustomerInput struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"omitempty,min=7,max=20"`
	Address string `validate:"omitempty,max=200"`
}

// CreateCustomer validates the input and registers a new customer.
func (s *Service) CreateCustomer(in CreateCustomerInput) (*customer.Customer, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid customer input: %w", err)
	}
	c := s.ledger.CreateCustomer(in.Name, in.Email, in.Phone, in.Address)
	s.logger.Info("customer created", "customer_id", c.ID, "name", c.Name)
	return c, nil
}

// OpenSavings opens a savings account for the customer.
func (s *Service) OpenSavings(customerID int64, opening money.Money, params account.SavingsParams) (*account.Savings, error) {
	a, err := s.ledger.OpenSavings(customerID, opening, params)
	if err != nil {
		return nil, fmt.Errorf("open savings for customer %d: %w", customerID, err)
	}
	s.logger.Info("savings account opened",
		"account_number", a.Number(), "customer_id", customerID, "opening_balance", opening)
	return a, nil
}

// OpenChecking opens a checking account for the customer.
func (s *Service) OpenChecking(customerID int64, opening money.Money, params account.CheckingParams) (*account.Checking, error) {
	a, err := s.ledger.OpenChecking(customerID, opening, params)
	if err != nil {
		return nil, fmt.Errorf("open checking for customer %d: %w", customerID, err)
	}
	s.logger.Info("checking account opened",
		"account_number", a.Number(), "customer_id", customerID, "opening_balance", opening)
	return a, nil
}

// OpenLoan opens a loan for the customer.
func (s *Service) OpenLoan(customerID int64, params account.LoanParams) (*account.Loan, error) {
	a, err := s.ledger.OpenLoan(customerID, params)
	if err != nil {
		return nil, fmt.Errorf("open loan for customer %d: %w", customerID, err)
	}
	s.logger.Info("loan opened",
		"account_number", a.Number(), "customer_id", customerID,
		"principal", params.Principal, "monthly_payment", a.MonthlyPayment())
	return a, nil
}

// Deposit executes a deposit transaction against the account. The returned
// transaction carries the outcome even when the error is non-nil.
func (s *Service) Deposit(accountNumber int64, amount money.Money) (*account.Transaction, error) {
	tx, err := s.ledger.NewDeposit(accountNumber, amount)
	if err != nil {
		return nil, err
	}
	return s.run(tx)
}

// Withdraw executes a withdrawal transaction against the account.
func (s *Service) Withdraw(accountNumber int64, amount money.Money) (*account.Transaction, error) {
	tx, err := s.ledger.NewWithdrawal(accountNumber, amount)
	if err != nil {
		return nil, err
	}
	return s.run(tx)
}

// Transfer executes a transfer between two accounts.
func (s *Service) Transfer(sourceNumber, destNumber int64, amount money.Money) (*account.Transaction, error) {
	tx, err := s.ledger.NewTransfer(sourceNumber, destNumber, amount)
	if err != nil {
		return nil, err
	}
	return s.run(tx)
}

func (s *Service) run(tx *account.Transaction) (*account.Transaction, error) {
	if err := tx.Execute(); err != nil {
		s.logger.Warn("transaction failed",
			"transaction_id", tx.ID, "kind", tx.Kind, "amount", tx.Amount,
			"reason", tx.Reason())
		return tx, err
	}
	s.logger.Info("transaction completed",
		"transaction_id", tx.ID, "kind", tx.Kind, "amount", tx.Amount)
	return tx, nil
}

// Reverse undoes a completed transaction.
func (s *Service) Reverse(tx *account.Transaction) error {
	if err := tx.Reverse(); err != nil {
		s.logger.Warn("reversal failed",
			"transaction_id", tx.ID, "kind", tx.Kind, "error", err)
		return err
	}
	s.logger.Info("transaction reversed", "transaction_id", tx.ID, "kind", tx.Kind)
	return nil
}

// Balance returns the account's current balance.
func (s *Service) Balance(accountNumber int64) (money.Money, error) {
	a, ok := s.ledger.FindAccount(accountNumber)
	if !ok {
		return money.Zero, account.ErrAccountNotFound
	}
	return a.Balance(), nil
}

// Statement returns the account's transaction history, oldest first.
func (s *Service) Statement(accountNumber int64) ([]account.Entry, error) {
	a, ok := s.ledger.FindAccount(accountNumber)
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return a.History(), nil
}

// FreezeAccount suspends an account.
func (s *Service) FreezeAccount(accountNumber int64) error {
	if err := s.ledger.FreezeAccount(accountNumber); err != nil {
		return err
	}
	s.logger.Info("account frozen", "account_number", accountNumber)
	return nil
}

// CloseAccount closes an account.
func (s *Service) CloseAccount(accountNumber int64) error {
	if err := s.ledger.CloseAccount(accountNumber); err != nil {
		s.logger.Warn("close refused", "account_number", accountNumber, "error", err)
		return err
	}
	s.logger.Info("account closed", "account_number", accountNumber)
	return nil
}

// PostInterest credits accrued interest on every active savings account.
func (s *Service) PostInterest() money.Money {
	total := s.ledger.PostInterest()
	s.logger.Info("interest posted", "total", total)
	return total
}
