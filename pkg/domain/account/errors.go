package account

import "errors"

var (
	// ErrInvalidAmount is returned when a transaction amount is not positive,
	// or when a loan payment is below the required monthly payment.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrAccountNotActive is returned when an operation targets a frozen or closed account.
	ErrAccountNotActive = errors.New("account is not active")

	// ErrInsufficientFunds is returned when an account has insufficient spendable
	// balance for a withdrawal or transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBelowMinimumBalance is returned when a savings withdrawal would leave
	// the balance under the configured floor.
	ErrBelowMinimumBalance = errors.New("balance would fall below minimum")

	// ErrWithdrawalLimitExceeded is returned when a savings account has used up
	// its withdrawals for the period.
	ErrWithdrawalLimitExceeded = errors.New("withdrawal limit exceeded")

	// ErrUnsupportedOperation is returned when a variant does not support the
	// requested operation, e.g. withdrawing from a loan.
	ErrUnsupportedOperation = errors.New("operation not supported for this account type")

	// ErrAccountNotFound is returned when an account cannot be found in the ledger.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAlreadyFinalized is returned when a completed or failed transaction is
	// executed again.
	ErrAlreadyFinalized = errors.New("transaction already finalized")

	// ErrNotExecuted is returned when a reversal is requested for a transaction
	// that has not completed.
	ErrNotExecuted = errors.New("transaction not executed")

	// ErrInsufficientFundsForReversal is returned when the inverse movement of a
	// reversal cannot be satisfied by the participating account.
	ErrInsufficientFundsForReversal = errors.New("insufficient funds for reversal")

	// ErrSameAccount is returned when a transfer names the same account on both sides.
	ErrSameAccount = errors.New("cannot transfer to same account")
)
