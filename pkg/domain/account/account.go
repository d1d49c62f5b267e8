// Package account implements the bank's account and transaction core: the
// three account variants (savings, checking, loan) with their deposit and
// withdrawal policies, and the validate/execute/reverse transaction state
// machine that mutates them.
//
// The variant set is closed: Account is satisfied only by types in this
// package, via an unexported method. Polymorphic callers hold the interface;
// the ledger and codec reach concrete variants with type switches.
package account

import (
	"time"

	"github.com/amirasaad/retailbank/pkg/domain/money"
)

// Type tags the concrete account variant. Persisted as-is by the codec.
type Type string

// Account variant tags.
const (
	TypeSavings  Type = "savings"
	TypeChecking Type = "checking"
	TypeLoan     Type = "loan"
)

// Status is the lifecycle state of an account.
type Status string

// Account statuses.
const (
	StatusActive Status = "active"
	StatusFrozen Status = "frozen"
	StatusClosed Status = "closed"
)

// EntryType classifies a transaction-history entry.
type EntryType string

// History entry types.
const (
	EntryDeposit     EntryType = "deposit"
	EntryWithdrawal  EntryType = "withdrawal"
	EntryFee         EntryType = "fee"
	EntryLoanPayment EntryType = "loan_payment"
	EntryInterest    EntryType = "interest"
	EntryReversal    EntryType = "reversal"
)

// Entry is one record in an account's append-only transaction history.
// Interest and Principal are only set for loan payment entries, where they
// split the payment into the portion consumed as interest and the portion
// applied to the remaining principal.
type Entry struct {
	Type      EntryType
	Amount    money.Money
	Timestamp time.Time
	Interest  money.Money
	Principal money.Money
}

// Account is the behavior shared by all account variants.
//
// Invariants:
//   - Number is unique and immutable.
//   - History only ever grows; every balance change appends an entry.
//   - A successful Withdraw never leaves the balance under the variant's floor.
type Account interface {
	Number() int64
	HolderID() int64
	Balance() money.Money
	// SpendableBalance is the balance plus any overdraft allowance; it is what
	// withdrawal-side validation checks against.
	SpendableBalance() money.Money
	Status() Status
	OpenedAt() time.Time
	History() []Entry
	Type() Type

	Deposit(amount money.Money) error
	Withdraw(amount money.Money) error
	// CalculateInterest is pure: it computes the variant's interest amount
	// without touching any state.
	CalculateInterest() money.Money

	Freeze()
	Close() error

	// adjust applies a raw balance delta and appends the given history entry,
	// bypassing variant policy. Reversals use it; it also closes the variant
	// set to this package.
	adjust(delta money.Money, e Entry)
}

// base carries the state common to every variant.
type base struct {
	number   int64
	holderID int64
	balance  money.Money
	openedAt time.Time
	status   Status
	history  []Entry
}

func newBase(number, holderID int64, balance money.Money, openedAt time.Time) base {
	return base{
		number:   number,
		holderID: holderID,
		balance:  balance,
		openedAt: openedAt,
		status:   StatusActive,
	}
}

// Data is the hydration form of the shared account state, used when
// reconstructing an account from a persisted snapshot.
type Data struct {
	Number   int64
	HolderID int64
	Balance  money.Money
	OpenedAt time.Time
	Status   Status
	History  []Entry
}

func baseFromData(d Data) base {
	return base{
		number:   d.Number,
		holderID: d.HolderID,
		balance:  d.Balance,
		openedAt: d.OpenedAt,
		status:   d.Status,
		history:  append([]Entry(nil), d.History...),
	}
}

func (b *base) Number() int64 { return b.number }

func (b *base) HolderID() int64 { return b.holderID }

func (b *base) Balance() money.Money { return b.balance }

func (b *base) SpendableBalance() money.Money { return b.balance }

func (b *base) Status() Status { return b.status }

func (b *base) OpenedAt() time.Time { return b.openedAt }

// History returns a copy of the account's transaction history, oldest first.
func (b *base) History() []Entry {
	out := make([]Entry, len(b.history))
	copy(out, b.history)
	return out
}

// Freeze suspends the account. Frozen accounts reject deposits and withdrawals
// until reactivated.
func (b *base) Freeze() { b.status = StatusFrozen }

// Close marks the account closed. Variants may refuse, e.g. an overdrawn
// checking account.
func (b *base) Close() error {
	b.status = StatusClosed
	return nil
}

func (b *base) adjust(delta money.Money, e Entry) {
	b.balance = b.balance.Add(delta)
	b.history = append(b.history, e)
}

// checkDeposit enforces the preconditions shared by every deposit.
func (b *base) checkDeposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if b.status != StatusActive {
		return ErrAccountNotActive
	}
	return nil
}

// checkWithdraw enforces the preconditions shared by every withdrawal.
func (b *base) checkWithdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if b.status != StatusActive {
		return ErrAccountNotActive
	}
	return nil
}

func (b *base) append(e Entry) {
	b.history = append(b.history, e)
}

func now() time.Time {
	return time.Now().UTC()
}

var (
	_ Account = (*Savings)(nil)
	_ Account = (*Checking)(nil)
	_ Account = (*Loan)(nil)
)
