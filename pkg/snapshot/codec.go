// Package snapshot is the persistence codec: it flattens a ledger into the
// dto record tree and reconstructs an observationally identical ledger from
// one. It never touches the filesystem; infra/store owns the file.
package snapshot

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/retailbank/pkg/domain/account"
	"github.com/amirasaad/retailbank/pkg/domain/customer"
	"github.com/amirasaad/retailbank/pkg/domain/money"
	"github.com/amirasaad/retailbank/pkg/dto"
	"github.com/amirasaad/retailbank/pkg/ledger"
	"github.com/google/uuid"
)

// customerTypePersonal tags the single customer variant in persisted records.
const customerTypePersonal = "personal"

var (
	// ErrUnknownVariant is returned when a persisted type tag is not recognized.
	ErrUnknownVariant = errors.New("unknown variant tag")

	// ErrDanglingAccountReference is returned when a persisted account's holder
	// identifier does not match any reconstructed customer.
	ErrDanglingAccountReference = errors.New("account references unknown customer")
)

// Encode flattens the ledger into a snapshot record. Customers and accounts
// come out in identifier order, so equal ledgers encode to equal records.
func Encode(l *ledger.Ledger) *dto.Snapshot {
	nextCustomer, nextAccount, nextTx := l.Counters()
	snap := &dto.Snapshot{
		SnapshotID:        uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
		NextCustomerID:    nextCustomer,
		NextAccountNumber: nextAccount,
		NextTransactionID: nextTx,
	}
	for _, c := range l.CustomersSorted() {
		snap.Customers = append(snap.Customers, dto.Customer{
			CustomerID:   c.ID,
			CustomerType: customerTypePersonal,
			Name:         c.Name,
			Email:        c.Email,
			Phone:        c.Phone,
			Address:      c.Address,
			DateJoined:   c.JoinedAt,
		})
	}
	for _, a := range l.AccountsSorted() {
		snap.Accounts = append(snap.Accounts, encodeAccount(a))
	}
	return snap
}

func encodeAccount(a account.Account) dto.Account {
	rec := dto.Account{
		AccountNumber: a.Number(),
		AccountType:   string(a.Type()),
		Balance:       a.Balance().Cents(),
		HolderID:      a.HolderID(),
		DateOpened:    a.OpenedAt(),
		Status:        string(a.Status()),
		History:       encodeHistory(a.History()),
	}
	switch v := a.(type) {
	case *account.Savings:
		p := v.Params()
		rec.InterestRate = p.InterestRate
		rec.MinimumBalance = p.MinimumBalance.Cents()
		rec.WithdrawalLimit = p.WithdrawalLimit
		rec.WithdrawalsUsed = v.WithdrawalsUsed()
	case *account.Checking:
		p := v.Params()
		rec.InterestRate = p.InterestRate
		rec.OverdraftLimit = p.OverdraftLimit.Cents()
		rec.OverdraftFee = p.OverdraftFee.Cents()
		rec.MonthlyFee = p.MonthlyFee.Cents()
	case *account.Loan:
		p := v.Params()
		rec.InterestRate = p.InterestRate
		rec.Principal = p.Principal.Cents()
		rec.TermMonths = p.TermMonths
		rec.RemainingPrincipal = v.RemainingPrincipal().Cents()
		rec.MonthlyPayment = v.MonthlyPayment().Cents()
		rec.PaymentsMade = v.PaymentsMade()
	}
	return rec
}

func encodeHistory(entries []account.Entry) []dto.HistoryEntry {
	out := make([]dto.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntry{
			Type:      string(e.Type),
			Amount:    e.Amount.Cents(),
			Timestamp: e.Timestamp,
			Interest:  e.Interest.Cents(),
			Principal: e.Principal.Cents(),
		})
	}
	return out
}

// Decode reconstructs a ledger from a snapshot record: customers first, then
// accounts re-linked to their holders. A record with an unknown variant tag
// or a dangling holder reference is logged and skipped; decoding continues
// with the rest.
func Decode(snap *dto.Snapshot, logger *slog.Logger) (*ledger.Ledger, error) {
	if snap == nil {
		return nil, errors.New("nil snapshot")
	}
	if logger == nil {
		logger = slog.Default()
	}

	l := ledger.New()
	l.RestoreCounters(snap.NextCustomerID, snap.NextAccountNumber, snap.NextTransactionID)

	for _, rec := range snap.Customers {
		if rec.CustomerType != customerTypePersonal {
			logger.Warn("skipping customer with unknown variant",
				"customer_id", rec.CustomerID, "customer_type", rec.CustomerType,
				"error", ErrUnknownVariant)
			continue
		}
		l.RestoreCustomer(customer.New(
			rec.CustomerID, rec.Name, rec.Email, rec.Phone, rec.Address, rec.DateJoined))
	}

	for _, rec := range snap.Accounts {
		a, err := decodeAccount(rec)
		if err != nil {
			logger.Warn("skipping unreadable account record",
				"account_number", rec.AccountNumber, "account_type", rec.AccountType,
				"error", err)
			continue
		}
		if err := l.RestoreAccount(a); err != nil {
			logger.Warn("skipping account with dangling holder reference",
				"account_number", rec.AccountNumber, "holder_id", rec.HolderID,
				"error", fmt.Errorf("%w: %v", ErrDanglingAccountReference, err))
			continue
		}
	}
	return l, nil
}

func decodeAccount(rec dto.Account) (account.Account, error) {
	data := account.Data{
		Number:   rec.AccountNumber,
		HolderID: rec.HolderID,
		Balance:  money.FromCents(rec.Balance),
		OpenedAt: rec.DateOpened,
		Status:   account.Status(rec.Status),
		History:  decodeHistory(rec.History),
	}
	switch account.Type(rec.AccountType) {
	case account.TypeSavings:
		return account.NewSavingsFromData(data, account.SavingsParams{
			InterestRate:    rec.InterestRate,
			MinimumBalance:  money.FromCents(rec.MinimumBalance),
			WithdrawalLimit: rec.WithdrawalLimit,
		}, rec.WithdrawalsUsed), nil
	case account.TypeChecking:
		return account.NewCheckingFromData(data, account.CheckingParams{
			OverdraftLimit: money.FromCents(rec.OverdraftLimit),
			OverdraftFee:   money.FromCents(rec.OverdraftFee),
			MonthlyFee:     money.FromCents(rec.MonthlyFee),
			InterestRate:   rec.InterestRate,
		}), nil
	case account.TypeLoan:
		return account.NewLoanFromData(data, account.LoanParams{
			Principal:    money.FromCents(rec.Principal),
			InterestRate: rec.InterestRate,
			TermMonths:   rec.TermMonths,
		}, money.FromCents(rec.RemainingPrincipal),
			money.FromCents(rec.MonthlyPayment), rec.PaymentsMade), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, rec.AccountType)
	}
}

func decodeHistory(records []dto.HistoryEntry) []account.Entry {
	out := make([]account.Entry, 0, len(records))
	for _, r := range records {
		out = append(out, account.Entry{
			Type:      account.EntryType(r.Type),
			Amount:    money.FromCents(r.Amount),
			Timestamp: r.Timestamp,
			Interest:  money.FromCents(r.Interest),
			Principal: money.FromCents(r.Principal),
		})
	}
	return out
}
