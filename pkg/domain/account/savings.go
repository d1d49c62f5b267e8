package account

import (
	"errors"

	"github.com/amirasaad/retailbank/pkg/domain/money"
)

// ErrInvalidParams is returned when account construction parameters are out of range.
var ErrInvalidParams = errors.New("invalid account parameters")

// SavingsParams configures a savings account.
type SavingsParams struct {
	// InterestRate is the annual rate as a fraction, e.g. 0.02 for 2%.
	InterestRate float64
	// MinimumBalance is the floor a withdrawal may never leave the balance under.
	MinimumBalance money.Money
	// WithdrawalLimit caps successful withdrawals per period.
	WithdrawalLimit int
}

func (p SavingsParams) validate() error {
	if p.InterestRate < 0 || p.MinimumBalance.IsNegative() || p.WithdrawalLimit < 0 {
		return ErrInvalidParams
	}
	return nil
}

// Savings is an interest-bearing account with a balance floor and a cap on
// withdrawals per period.
type Savings struct {
	base
	params          SavingsParams
	withdrawalsUsed int
}

// NewSavings opens a savings account with the given opening balance.
func NewSavings(number, holderID int64, opening money.Money, params SavingsParams) (*Savings, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if opening.IsNegative() {
		return nil, ErrInvalidParams
	}
	return &Savings{base: newBase(number, holderID, opening, now()), params: params}, nil
}

// NewSavingsFromData hydrates a savings account from persisted state. It
// bypasses invariants and is only for snapshot decoding and test fixtures.
func NewSavingsFromData(d Data, params SavingsParams, withdrawalsUsed int) *Savings {
	return &Savings{base: baseFromData(d), params: params, withdrawalsUsed: withdrawalsUsed}
}

// Type returns the savings variant tag.
func (s *Savings) Type() Type { return TypeSavings }

// Params returns the account's configured policy.
func (s *Savings) Params() SavingsParams { return s.params }

// WithdrawalsUsed returns how many withdrawals succeeded this period.
func (s *Savings) WithdrawalsUsed() int { return s.withdrawalsUsed }

// Deposit credits the full amount.
func (s *Savings) Deposit(amount money.Money) error {
	if err := s.checkDeposit(amount); err != nil {
		return err
	}
	s.balance = s.balance.Add(amount)
	s.append(Entry{Type: EntryDeposit, Amount: amount, Timestamp: now()})
	return nil
}

// Withdraw debits the amount if the period limit has headroom and the balance
// stays at or above the configured floor. The limit is checked first: once
// exhausted, withdrawals fail regardless of balance.
func (s *Savings) Withdraw(amount money.Money) error {
	if err := s.checkWithdraw(amount); err != nil {
		return err
	}
	if s.withdrawalsUsed >= s.params.WithdrawalLimit {
		return ErrWithdrawalLimitExceeded
	}
	if s.balance.Sub(amount).LessThan(s.params.MinimumBalance) {
		return ErrBelowMinimumBalance
	}
	s.balance = s.balance.Sub(amount)
	s.withdrawalsUsed++
	s.append(Entry{Type: EntryWithdrawal, Amount: amount, Timestamp: now()})
	return nil
}

// CalculateInterest returns balance times annual rate, or zero when the balance
// is not positive.
func (s *Savings) CalculateInterest() money.Money {
	if !s.balance.IsPositive() {
		return money.Zero
	}
	return s.balance.MulRound(s.params.InterestRate)
}

// PostInterest credits the current interest amount and records an interest
// history entry. A no-op when the computed interest is zero.
func (s *Savings) PostInterest() money.Money {
	interest := s.CalculateInterest()
	if interest.IsZero() {
		return money.Zero
	}
	s.balance = s.balance.Add(interest)
	s.append(Entry{Type: EntryInterest, Amount: interest, Timestamp: now()})
	return interest
}

// ResetWithdrawals starts a new withdrawal period.
func (s *Savings) ResetWithdrawals() { s.withdrawalsUsed = 0 }
