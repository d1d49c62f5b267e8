package account_test

import (
	"testing"

	"github.com/amirasaad/retailbank/pkg/domain/account"
	"github.com/amirasaad/retailbank/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChecking(t *testing.T, balance float64, p account.CheckingParams) *account.Checking {
	t.Helper()
	a, err := account.NewChecking(10000002, 1001, money.MustNew(balance), p)
	require.NoError(t, err)
	return a
}

func stdCheckingParams() account.CheckingParams {
	return account.CheckingParams{
		OverdraftLimit: money.MustNew(500),
		OverdraftFee:   money.MustNew(35),
		MonthlyFee:     money.MustNew(12),
	}
}

func TestCheckingWithdraw(t *testing.T) {
	t.Parallel()

	// Scenario: balance 100, overdraft limit 500, fee 35. Withdrawing 150
	// lands at -50 and the crossing charges the fee: final balance -85.
	t.Run("overdraft crossing charges one fee", func(t *testing.T) {
		a := newChecking(t, 100, stdCheckingParams())

		require.NoError(t, a.Withdraw(money.MustNew(150)))
		assert.Equal(t, money.MustNew(-85), a.Balance())

		history := a.History()
		require.Len(t, history, 2)
		assert.Equal(t, account.EntryWithdrawal, history[0].Type)
		assert.Equal(t, account.EntryFee, history[1].Type)
		assert.Equal(t, money.MustNew(35), history[1].Amount)
	})

	t.Run("already negative withdrawals do not re-charge", func(t *testing.T) {
		a := newChecking(t, 100, stdCheckingParams())
		require.NoError(t, a.Withdraw(money.MustNew(150))) // -85 after fee
		require.NoError(t, a.Withdraw(money.MustNew(100)))
		assert.Equal(t, money.MustNew(-185), a.Balance())

		fees := 0
		for _, e := range a.History() {
			if e.Type == account.EntryFee {
				fees++
			}
		}
		assert.Equal(t, 1, fees)
	})

	t.Run("overdraft floor enforced", func(t *testing.T) {
		a := newChecking(t, 100, stdCheckingParams())
		err := a.Withdraw(money.MustNew(601))
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.Equal(t, money.MustNew(100), a.Balance())
		assert.Empty(t, a.History())
	})

	t.Run("withdrawal to exactly the floor succeeds", func(t *testing.T) {
		a := newChecking(t, 100, stdCheckingParams())
		require.NoError(t, a.Withdraw(money.MustNew(600)))
		// -500 after the withdrawal, then the crossing fee.
		assert.Equal(t, money.MustNew(-535), a.Balance())
	})
}

func TestCheckingSpendableBalance(t *testing.T) {
	t.Parallel()
	a := newChecking(t, 100, stdCheckingParams())
	assert.Equal(t, money.MustNew(600), a.SpendableBalance())
}

func TestCheckingInterest(t *testing.T) {
	t.Parallel()
	p := stdCheckingParams()
	p.InterestRate = 0.001

	a := newChecking(t, 1000, p)
	assert.Equal(t, money.MustNew(1), a.CalculateInterest())

	require.NoError(t, a.Withdraw(money.MustNew(1500)))
	assert.True(t, a.Balance().IsNegative())
	assert.True(t, a.CalculateInterest().IsZero())
}

func TestCheckingClose(t *testing.T) {
	t.Parallel()

	t.Run("refuses while overdrawn", func(t *testing.T) {
		a := newChecking(t, 100, stdCheckingParams())
		require.NoError(t, a.Withdraw(money.MustNew(150)))
		require.True(t, a.Balance().IsNegative())

		assert.ErrorIs(t, a.Close(), account.ErrAccountOverdrawn)
		assert.Equal(t, account.StatusActive, a.Status())
	})

	t.Run("closes at non-negative balance", func(t *testing.T) {
		a := newChecking(t, 100, stdCheckingParams())
		require.NoError(t, a.Close())
		assert.Equal(t, account.StatusClosed, a.Status())
		assert.ErrorIs(t, a.Deposit(money.MustNew(1)), account.ErrAccountNotActive)
	})
}
