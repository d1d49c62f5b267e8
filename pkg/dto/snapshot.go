// Package dto defines the persisted record shapes. The snapshot codec
// flattens the ledger into these structures and the file store marshals them
// as JSON; nothing in here carries behavior.
package dto

import "time"

// Snapshot is the whole-state persisted record: every customer, every account
// with its full history, and the identifier counters.
type Snapshot struct {
	SnapshotID string    `json:"snapshot_id"`
	CreatedAt  time.Time `json:"created_at"`

	Customers []Customer `json:"customers"`
	Accounts  []Account  `json:"accounts"`

	NextCustomerID    int64 `json:"next_customer_id"`
	NextAccountNumber int64 `json:"next_account_number"`
	NextTransactionID int64 `json:"next_transaction_id"`
}

// Customer is the persisted form of a customer. Accounts are not listed here;
// they re-link through Account.HolderID on load.
type Customer struct {
	CustomerID   int64     `json:"customer_id"`
	CustomerType string    `json:"customer_type"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	DateJoined   time.Time `json:"date_joined"`
}

// Account is the persisted form of an account. AccountType selects the
// variant; the variant-specific fields are omitted for the others. All
// monetary fields are cents.
type Account struct {
	AccountNumber int64          `json:"account_number"`
	AccountType   string         `json:"account_type"`
	Balance       int64          `json:"balance"`
	HolderID      int64          `json:"holder_id"`
	DateOpened    time.Time      `json:"date_opened"`
	Status        string         `json:"status"`
	History       []HistoryEntry `json:"transaction_history"`

	// Savings and checking.
	InterestRate float64 `json:"interest_rate,omitempty"`

	// Savings.
	MinimumBalance  int64 `json:"minimum_balance,omitempty"`
	WithdrawalLimit int   `json:"withdrawal_limit,omitempty"`
	WithdrawalsUsed int   `json:"withdrawals_used,omitempty"`

	// Checking.
	OverdraftLimit int64 `json:"overdraft_limit,omitempty"`
	OverdraftFee   int64 `json:"overdraft_fee,omitempty"`
	MonthlyFee     int64 `json:"monthly_fee,omitempty"`

	// Loan.
	Principal          int64 `json:"principal,omitempty"`
	TermMonths         int   `json:"term_months,omitempty"`
	RemainingPrincipal int64 `json:"remaining_principal,omitempty"`
	MonthlyPayment     int64 `json:"monthly_payment,omitempty"`
	PaymentsMade       int   `json:"payments_made,omitempty"`
}

// HistoryEntry is one persisted transaction-history record. Interest and
// Principal are only present on loan payment entries.
type HistoryEntry struct {
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Interest  int64     `json:"interest,omitempty"`
	Principal int64     `json:"principal,omitempty"`
}
