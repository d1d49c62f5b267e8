package account

import (
	"errors"

	"github.com/amirasaad/retailbank/pkg/domain/money"
)

// ErrAccountOverdrawn is returned when a checking account is asked to close
// while its balance is negative.
var ErrAccountOverdrawn = errors.New("account is overdrawn")

// CheckingParams configures a checking account.
type CheckingParams struct {
	// OverdraftLimit is how far below zero the balance may go.
	OverdraftLimit money.Money
	// OverdraftFee is deducted once each time the balance crosses from
	// non-negative to negative.
	OverdraftFee money.Money
	// MonthlyFee is the account maintenance fee. Persisted but not charged by
	// the execution core.
	MonthlyFee money.Money
	// InterestRate is the nominal annual rate used by CalculateInterest.
	InterestRate float64
}

func (p CheckingParams) validate() error {
	if p.OverdraftLimit.IsNegative() || p.OverdraftFee.IsNegative() ||
		p.MonthlyFee.IsNegative() || p.InterestRate < 0 {
		return ErrInvalidParams
	}
	return nil
}

// Checking is a transactional account with an overdraft allowance. Going
// overdrawn costs a fixed fee per crossing.
type Checking struct {
	base
	params CheckingParams
}

// NewChecking opens a checking account with the given opening balance.
func NewChecking(number, holderID int64, opening money.Money, params CheckingParams) (*Checking, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if opening.IsNegative() {
		return nil, ErrInvalidParams
	}
	return &Checking{base: newBase(number, holderID, opening, now()), params: params}, nil
}

// NewCheckingFromData hydrates a checking account from persisted state. It
// bypasses invariants and is only for snapshot decoding and test fixtures.
func NewCheckingFromData(d Data, params CheckingParams) *Checking {
	return &Checking{base: baseFromData(d), params: params}
}

// Type returns the checking variant tag.
func (c *Checking) Type() Type { return TypeChecking }

// Params returns the account's configured policy.
func (c *Checking) Params() CheckingParams { return c.params }

// SpendableBalance is the balance plus the overdraft allowance.
func (c *Checking) SpendableBalance() money.Money {
	return c.balance.Add(c.params.OverdraftLimit)
}

// Deposit credits the full amount.
func (c *Checking) Deposit(amount money.Money) error {
	if err := c.checkDeposit(amount); err != nil {
		return err
	}
	c.balance = c.balance.Add(amount)
	c.append(Entry{Type: EntryDeposit, Amount: amount, Timestamp: now()})
	return nil
}

// Withdraw debits the amount, allowing the balance to go negative down to
// -OverdraftLimit. Crossing from non-negative to negative additionally
// deducts the overdraft fee, recorded as a separate fee entry.
func (c *Checking) Withdraw(amount money.Money) error {
	if err := c.checkWithdraw(amount); err != nil {
		return err
	}
	after := c.balance.Sub(amount)
	if after.LessThan(c.params.OverdraftLimit.Negate()) {
		return ErrInsufficientFunds
	}
	crossed := !c.balance.IsNegative() && after.IsNegative()
	c.balance = after
	c.append(Entry{Type: EntryWithdrawal, Amount: amount, Timestamp: now()})
	if crossed {
		c.balance = c.balance.Sub(c.params.OverdraftFee)
		c.append(Entry{Type: EntryFee, Amount: c.params.OverdraftFee, Timestamp: now()})
	}
	return nil
}

// CalculateInterest returns balance times nominal rate, or zero when the balance
// is not positive.
func (c *Checking) CalculateInterest() money.Money {
	if !c.balance.IsPositive() {
		return money.Zero
	}
	return c.balance.MulRound(c.params.InterestRate)
}

// Close refuses while the account is overdrawn.
func (c *Checking) Close() error {
	if c.balance.IsNegative() {
		return ErrAccountOverdrawn
	}
	return c.base.Close()
}
