package snapshot_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/retailbank/pkg/domain/account"
	"github.com/amirasaad/retailbank/pkg/domain/money"
	"github.com/amirasaad/retailbank/pkg/dto"
	"github.com/amirasaad/retailbank/pkg/ledger"
	"github.com/amirasaad/retailbank/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

// populatedLedger builds a ledger with every variant and enough activity to
// exercise the derived fields: withdrawal counters, overdraft fees, loan
// amortization state.
func populatedLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New()

	ada := l.CreateCustomer("Ada Lovelace", "ada@example.com", "+15550100", "12 Analytical Way")
	grace := l.CreateCustomer("Grace Hopper", "grace@example.com", "", "")

	sav, err := l.OpenSavings(ada.ID, money.MustNew(1000), account.SavingsParams{
		InterestRate:    0.02,
		MinimumBalance:  money.MustNew(500),
		WithdrawalLimit: 2,
	})
	require.NoError(t, err)
	chk, err := l.OpenChecking(grace.ID, money.MustNew(100), account.CheckingParams{
		OverdraftLimit: money.MustNew(500),
		OverdraftFee:   money.MustNew(35),
		MonthlyFee:     money.MustNew(12),
		InterestRate:   0.001,
	})
	require.NoError(t, err)
	loan, err := l.OpenLoan(ada.ID, account.LoanParams{
		Principal:    money.MustNew(10000),
		InterestRate: 0.06,
		TermMonths:   60,
	})
	require.NoError(t, err)

	require.NoError(t, sav.Withdraw(money.MustNew(300)))
	require.NoError(t, chk.Withdraw(money.MustNew(150))) // goes overdrawn, fee entry
	require.NoError(t, loan.Deposit(money.MustNew(193.33)))

	tx, err := l.NewDeposit(sav.Number(), money.MustNew(75))
	require.NoError(t, err)
	require.NoError(t, tx.Execute())

	return l
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	orig := populatedLedger(t)

	snap := snapshot.Encode(orig)
	assert.NotEmpty(t, snap.SnapshotID)

	restored, err := snapshot.Decode(snap, nil)
	require.NoError(t, err)

	t.Run("counters", func(t *testing.T) {
		oc, oa, ot := orig.Counters()
		rc, ra, rt := restored.Counters()
		assert.Equal(t, oc, rc)
		assert.Equal(t, oa, ra)
		assert.Equal(t, ot, rt)
	})

	t.Run("customers", func(t *testing.T) {
		origCustomers := orig.CustomersSorted()
		restoredCustomers := restored.CustomersSorted()
		require.Len(t, restoredCustomers, len(origCustomers))
		for i, oc := range origCustomers {
			rc := restoredCustomers[i]
			assert.Equal(t, oc.ID, rc.ID)
			assert.Equal(t, oc.Name, rc.Name)
			assert.Equal(t, oc.Email, rc.Email)
			assert.Equal(t, oc.Phone, rc.Phone)
			assert.Equal(t, oc.Address, rc.Address)
			assert.Equal(t, oc.AccountNumbers(), rc.AccountNumbers())
		}
	})

	t.Run("accounts", func(t *testing.T) {
		origAccounts := orig.AccountsSorted()
		restoredAccounts := restored.AccountsSorted()
		require.Len(t, restoredAccounts, len(origAccounts))
		for i, oa := range origAccounts {
			ra := restoredAccounts[i]
			assert.Equal(t, oa.Number(), ra.Number())
			assert.Equal(t, oa.Type(), ra.Type())
			assert.Equal(t, oa.HolderID(), ra.HolderID())
			assert.Equal(t, oa.Balance(), ra.Balance())
			assert.Equal(t, oa.Status(), ra.Status())
			assert.Equal(t, oa.History(), ra.History())
		}
	})

	t.Run("variant fields", func(t *testing.T) {
		for _, a := range restored.AccountsSorted() {
			switch v := a.(type) {
			case *account.Savings:
				assert.Equal(t, 1, v.WithdrawalsUsed())
				assert.Equal(t, money.MustNew(500), v.Params().MinimumBalance)
				assert.Equal(t, 2, v.Params().WithdrawalLimit)
			case *account.Checking:
				assert.Equal(t, money.MustNew(500), v.Params().OverdraftLimit)
				assert.Equal(t, money.MustNew(35), v.Params().OverdraftFee)
				assert.Equal(t, money.MustNew(12), v.Params().MonthlyFee)
			case *account.Loan:
				assert.Equal(t, money.MustNew(9856.67), v.RemainingPrincipal())
				assert.Equal(t, money.MustNew(193.33), v.MonthlyPayment())
				assert.Equal(t, 1, v.PaymentsMade())
			}
		}
	})

	t.Run("restored ledger stays usable", func(t *testing.T) {
		nums := restored.CustomersSorted()[0].AccountNumbers()
		tx, err := restored.NewDeposit(nums[0], money.MustNew(10))
		require.NoError(t, err)
		assert.NoError(t, tx.Execute())
	})
}

func TestDecodeSkipsBadRecords(t *testing.T) {
	t.Parallel()

	t.Run("unknown account variant", func(t *testing.T) {
		snap := snapshot.Encode(populatedLedger(t))
		snap.Accounts[0].AccountType = "brokerage"

		restored, err := snapshot.Decode(snap, nil)
		require.NoError(t, err)
		assert.Len(t, restored.AccountsSorted(), len(snap.Accounts)-1)
	})

	t.Run("dangling holder reference", func(t *testing.T) {
		snap := snapshot.Encode(populatedLedger(t))
		snap.Accounts[0].HolderID = 424242

		restored, err := snapshot.Decode(snap, nil)
		require.NoError(t, err)
		assert.Len(t, restored.AccountsSorted(), len(snap.Accounts)-1)

		// Remaining accounts are still linked.
		for _, a := range restored.AccountsSorted() {
			c, ok := restored.FindCustomer(a.HolderID())
			require.True(t, ok)
			assert.True(t, c.HoldsAccount(a.Number()))
		}
	})

	t.Run("nil snapshot is an error", func(t *testing.T) {
		_, err := snapshot.Decode(nil, nil)
		assert.Error(t, err)
	})

	t.Run("unknown customer variant skipped with its accounts dangling", func(t *testing.T) {
		snap := snapshot.Encode(populatedLedger(t))
		snap.Customers[0].CustomerType = "corporate"

		restored, err := snapshot.Decode(snap, nil)
		require.NoError(t, err)
		assert.Len(t, restored.CustomersSorted(), len(snap.Customers)-1)
	})
}

func TestEncodeDeterministicOrder(t *testing.T) {
	t.Parallel()
	l := populatedLedger(t)

	a := snapshot.Encode(l)
	b := snapshot.Encode(l)

	ids := func(s *dto.Snapshot) []int64 {
		out := make([]int64, 0, len(s.Accounts))
		for _, rec := range s.Accounts {
			out = append(out, rec.AccountNumber)
		}
		return out
	}
	assert.Equal(t, ids(a), ids(b))
	require.Len(t, a.Customers, 2)
	assert.Less(t, a.Customers[0].CustomerID, a.Customers[1].CustomerID)
}
