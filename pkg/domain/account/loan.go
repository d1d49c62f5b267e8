package account

import (
	"math"

	"github.com/amirasaad/retailbank/pkg/domain/money"
)

// LoanParams configures a loan account.
type LoanParams struct {
	// Principal is the original amount lent.
	Principal money.Money
	// InterestRate is the annual rate as a fraction, e.g. 0.06 for 6%.
	InterestRate float64
	// TermMonths is the repayment term.
	TermMonths int
}

func (p LoanParams) validate() error {
	if !p.Principal.IsPositive() || p.InterestRate < 0 || p.TermMonths <= 0 {
		return ErrInvalidParams
	}
	return nil
}

// Loan is a liability account. Its base balance is the negated outstanding
// principal and only ever moves toward zero; payments come in through Deposit
// and withdrawals are not supported.
type Loan struct {
	base
	params         LoanParams
	remaining      money.Money
	monthlyPayment money.Money
	paymentsMade   int
}

// NewLoan opens a loan. The fixed monthly payment is computed once here with
// the standard amortization formula and never re-rounded.
func NewLoan(number, holderID int64, params LoanParams) (*Loan, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Loan{
		base:           newBase(number, holderID, params.Principal.Negate(), now()),
		params:         params,
		remaining:      params.Principal,
		monthlyPayment: amortizedPayment(params.Principal, params.InterestRate, params.TermMonths),
	}, nil
}

// NewLoanFromData hydrates a loan from persisted state, restoring the
// remaining principal, the originally computed monthly payment and the
// payments-made counter. Only for snapshot decoding and test fixtures.
func NewLoanFromData(d Data, params LoanParams, remaining, monthlyPayment money.Money, paymentsMade int) *Loan {
	return &Loan{
		base:           baseFromData(d),
		params:         params,
		remaining:      remaining,
		monthlyPayment: monthlyPayment,
		paymentsMade:   paymentsMade,
	}
}

// amortizedPayment computes the fixed monthly payment for a fixed-rate,
// fixed-term loan: P*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate and n
// the term in months. A zero rate degenerates to P/n.
func amortizedPayment(principal money.Money, annualRate float64, termMonths int) money.Money {
	n := float64(termMonths)
	r := annualRate / 12
	if r == 0 {
		return principal.MulRound(1 / n)
	}
	pow := math.Pow(1+r, n)
	return principal.MulRound(r * pow / (pow - 1))
}

// Type returns the loan variant tag.
func (l *Loan) Type() Type { return TypeLoan }

// Params returns the loan's original terms.
func (l *Loan) Params() LoanParams { return l.params }

// RemainingPrincipal returns the outstanding principal.
func (l *Loan) RemainingPrincipal() money.Money { return l.remaining }

// MonthlyPayment returns the fixed payment computed at construction.
func (l *Loan) MonthlyPayment() money.Money { return l.monthlyPayment }

// PaymentsMade returns how many payments have been applied.
func (l *Loan) PaymentsMade() int { return l.paymentsMade }

// IsSettled reports whether the principal is fully repaid.
func (l *Loan) IsSettled() bool { return l.remaining.IsZero() }

// Deposit applies a loan payment. A payment must be at least the fixed
// monthly payment unless it retires the remaining principal, in which case
// the applied amount is capped to the remaining principal and goes wholly to
// principal. Otherwise the period's interest is consumed first and only the
// principal portion moves the balance toward zero.
func (l *Loan) Deposit(amount money.Money) error {
	if err := l.checkDeposit(amount); err != nil {
		return err
	}
	if l.IsSettled() {
		return ErrUnsupportedOperation
	}

	if !amount.LessThan(l.remaining) {
		// Retiring payment: excess is silently capped, nothing is lost to
		// interest, and the principal reaches exactly zero.
		applied := l.remaining
		l.balance = l.balance.Add(applied)
		l.remaining = money.Zero
		l.paymentsMade++
		l.append(Entry{
			Type:      EntryLoanPayment,
			Amount:    applied,
			Timestamp: now(),
			Principal: applied,
		})
		return nil
	}

	if amount.LessThan(l.monthlyPayment) {
		return ErrInvalidAmount
	}

	interest := l.CalculateInterest()
	principal := amount.Sub(interest)
	if l.remaining.LessThan(principal) {
		principal = l.remaining
	}
	l.balance = l.balance.Add(principal)
	l.remaining = l.remaining.Sub(principal)
	l.paymentsMade++
	l.append(Entry{
		Type:      EntryLoanPayment,
		Amount:    amount,
		Timestamp: now(),
		Interest:  interest,
		Principal: principal,
	})
	return nil
}

// Withdraw is not supported for loans.
func (l *Loan) Withdraw(money.Money) error {
	return ErrUnsupportedOperation
}

// CalculateInterest returns one month of interest on the remaining principal,
// rounded to the cent. Zero once the loan is settled.
func (l *Loan) CalculateInterest() money.Money {
	if l.remaining.IsZero() {
		return money.Zero
	}
	return l.remaining.MulRound(l.params.InterestRate / 12)
}
