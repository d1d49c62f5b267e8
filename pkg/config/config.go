// Package config holds the environment-driven application configuration.
package config

// Log configures the process logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[retailbank]"`
}

// Store configures the snapshot file store.
type Store struct {
	Path string `envconfig:"FILE" default:"retailbank.json"`
}

// SavingsProduct holds the default policy for new savings accounts.
type SavingsProduct struct {
	InterestRate    float64 `envconfig:"INTEREST_RATE" default:"0.02"`
	MinimumBalance  float64 `envconfig:"MINIMUM_BALANCE" default:"500"`
	WithdrawalLimit int     `envconfig:"WITHDRAWAL_LIMIT" default:"6"`
}

// CheckingProduct holds the default policy for new checking accounts.
type CheckingProduct struct {
	OverdraftLimit float64 `envconfig:"OVERDRAFT_LIMIT" default:"500"`
	OverdraftFee   float64 `envconfig:"OVERDRAFT_FEE" default:"35"`
	MonthlyFee     float64 `envconfig:"MONTHLY_FEE" default:"12"`
	InterestRate   float64 `envconfig:"INTEREST_RATE" default:"0.001"`
}

// LoanProduct holds the default terms for new loans.
type LoanProduct struct {
	InterestRate float64 `envconfig:"INTEREST_RATE" default:"0.06"`
	TermMonths   int     `envconfig:"TERM_MONTHS" default:"60"`
}

// Products groups the per-variant account defaults.
type Products struct {
	Savings  *SavingsProduct  `envconfig:"SAVINGS"`
	Checking *CheckingProduct `envconfig:"CHECKING"`
	Loan     *LoanProduct     `envconfig:"LOAN"`
}

// App is the root configuration tree.
type App struct {
	Env      string    `envconfig:"APP_ENV" default:"development"`
	Log      *Log      `envconfig:"LOG"`
	Store    *Store    `envconfig:"STORE"`
	Products *Products `envconfig:"PRODUCT"`
}
