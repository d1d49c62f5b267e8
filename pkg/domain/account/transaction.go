package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/retailbank/pkg/domain/money"
)

// TxKind tags the transaction variant.
type TxKind string

// Transaction kinds.
const (
	TxDeposit    TxKind = "deposit"
	TxWithdrawal TxKind = "withdrawal"
	TxTransfer   TxKind = "transfer"
)

// TxStatus is the lifecycle state of a transaction.
type TxStatus string

// Transaction statuses. Completed and Failed are terminal for Execute;
// Reverse moves a completed transaction back to pending.
const (
	TxPending   TxStatus = "pending"
	TxCompleted TxStatus = "completed"
	TxFailed    TxStatus = "failed"
)

// Transaction is a money movement against one account (deposit, withdrawal)
// or two (transfer). It is created pending; Execute drives it to completed or
// failed and never runs twice.
//
// Invariants:
//   - A failed transaction leaves every participating balance exactly as it
//     was before Execute, including the transfer second-leg failure case.
type Transaction struct {
	ID        int64
	Kind      TxKind
	Amount    money.Money
	CreatedAt time.Time

	source      Account
	destination Account

	status TxStatus
	reason string
}

// NewDeposit creates a pending deposit into acct.
func NewDeposit(id int64, acct Account, amount money.Money) *Transaction {
	return &Transaction{
		ID: id, Kind: TxDeposit, Amount: amount, CreatedAt: now(),
		source: acct, status: TxPending,
	}
}

// NewWithdrawal creates a pending withdrawal from acct.
func NewWithdrawal(id int64, acct Account, amount money.Money) *Transaction {
	return &Transaction{
		ID: id, Kind: TxWithdrawal, Amount: amount, CreatedAt: now(),
		source: acct, status: TxPending,
	}
}

// NewTransfer creates a pending transfer from src to dst.
func NewTransfer(id int64, src, dst Account, amount money.Money) *Transaction {
	return &Transaction{
		ID: id, Kind: TxTransfer, Amount: amount, CreatedAt: now(),
		source: src, destination: dst, status: TxPending,
	}
}

// Status returns the transaction's lifecycle state.
func (t *Transaction) Status() TxStatus { return t.status }

// Reason returns the retained failure reason, empty unless status is failed.
func (t *Transaction) Reason() string { return t.reason }

// Source returns the account debited (or credited, for a deposit).
func (t *Transaction) Source() Account { return t.source }

// Destination returns the credited account of a transfer, nil otherwise.
func (t *Transaction) Destination() Account { return t.destination }

// Validate is the pure precondition check: participants must be active, the
// amount positive, and withdrawal-side kinds must have the amount available
// in the source's spendable balance. It never mutates state.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	switch t.Kind {
	case TxDeposit:
		if t.source.Status() != StatusActive {
			return ErrAccountNotActive
		}
	case TxWithdrawal:
		if t.source.Status() != StatusActive {
			return ErrAccountNotActive
		}
		if t.source.SpendableBalance().LessThan(t.Amount) {
			return ErrInsufficientFunds
		}
	case TxTransfer:
		if t.destination == nil {
			return ErrAccountNotFound
		}
		if t.source.Number() == t.destination.Number() {
			return ErrSameAccount
		}
		if t.source.Status() != StatusActive || t.destination.Status() != StatusActive {
			return ErrAccountNotActive
		}
		if t.source.SpendableBalance().LessThan(t.Amount) {
			return ErrInsufficientFunds
		}
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	return nil
}

// Execute re-validates and then performs the account mutation(s). On any
// failure the status becomes failed with the reason retained, and every
// participating balance is left untouched. A terminal transaction is
// rejected with ErrAlreadyFinalized.
func (t *Transaction) Execute() error {
	if t.status != TxPending {
		return ErrAlreadyFinalized
	}
	if err := t.Validate(); err != nil {
		return t.fail(err)
	}

	switch t.Kind {
	case TxDeposit:
		if err := t.source.Deposit(t.Amount); err != nil {
			return t.fail(err)
		}
	case TxWithdrawal:
		if err := t.source.Withdraw(t.Amount); err != nil {
			return t.fail(err)
		}
	case TxTransfer:
		if err := t.executeTransfer(); err != nil {
			return t.fail(err)
		}
	}

	t.status = TxCompleted
	return nil
}

// executeTransfer runs withdraw-then-deposit. If the deposit leg fails after
// a successful withdrawal, the source is restored to its exact prior balance
// (a plain re-deposit would not refund an overdraft fee charged by the
// withdrawal) and the composed error carries the deposit failure.
func (t *Transaction) executeTransfer() error {
	before := t.source.Balance()
	if err := t.source.Withdraw(t.Amount); err != nil {
		return err
	}
	if err := t.destination.Deposit(t.Amount); err != nil {
		delta := before.Sub(t.source.Balance())
		t.source.adjust(delta, Entry{
			Type:      EntryReversal,
			Amount:    delta.Abs(),
			Timestamp: now(),
		})
		return fmt.Errorf("transfer deposit leg failed, source compensated: %w", err)
	}
	return nil
}

// Reverse undoes a completed transaction with the inverse balance movements,
// bypassing variant policy (no fees, no withdrawal counting), and returns the
// transaction to pending. Loan payments are not reversible.
func (t *Transaction) Reverse() error {
	if t.status != TxCompleted {
		return ErrNotExecuted
	}

	switch t.Kind {
	case TxDeposit:
		if t.source.Type() == TypeLoan {
			return ErrUnsupportedOperation
		}
		if t.source.Balance().LessThan(t.Amount) {
			return ErrInsufficientFundsForReversal
		}
		t.source.adjust(t.Amount.Negate(), reversalEntry(t.Amount))
	case TxWithdrawal:
		t.source.adjust(t.Amount, reversalEntry(t.Amount))
	case TxTransfer:
		if t.destination.Balance().LessThan(t.Amount) {
			return ErrInsufficientFundsForReversal
		}
		t.destination.adjust(t.Amount.Negate(), reversalEntry(t.Amount))
		t.source.adjust(t.Amount, reversalEntry(t.Amount))
	}

	t.status = TxPending
	return nil
}

func (t *Transaction) fail(err error) error {
	t.status = TxFailed
	t.reason = err.Error()
	return err
}

func reversalEntry(amount money.Money) Entry {
	return Entry{Type: EntryReversal, Amount: amount, Timestamp: now()}
}
