// Command bank is a thin dispatch loop over the bank core: it loads the
// snapshot, runs one operation through the service facade and saves the
// snapshot back. All business rules live in pkg/.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/amirasaad/retailbank/infra/initializer"
	"github.com/amirasaad/retailbank/infra/store"
	"github.com/amirasaad/retailbank/pkg/config"
	"github.com/amirasaad/retailbank/pkg/domain/account"
	"github.com/amirasaad/retailbank/pkg/domain/money"
	"github.com/amirasaad/retailbank/pkg/ledger"
	"github.com/amirasaad/retailbank/pkg/service/bank"
	"github.com/amirasaad/retailbank/pkg/snapshot"
	"github.com/fatih/color"
)

func usage() {
	fmt.Println("Usage: bank <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  create-customer <name> <email> [phone] [address]")
	fmt.Println("  open-savings  <customer_id> <opening_balance>")
	fmt.Println("  open-checking <customer_id> <opening_balance>")
	fmt.Println("  open-loan     <customer_id> <principal>")
	fmt.Println("  deposit  <account_number> <amount>")
	fmt.Println("  withdraw <account_number> <amount>")
	fmt.Println("  transfer <source> <destination> <amount>")
	fmt.Println("  balance  <account_number>")
	fmt.Println("  statement <account_number>")
	fmt.Println("  freeze <account_number> | close <account_number>")
	fmt.Println("  post-interest")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger := initializer.SetupLogger(cfg.Log)

	fileStore := store.NewFileStore(cfg.Store.Path, logger)
	l := loadLedger(fileStore, logger)
	svc := bank.NewService(l, logger)

	if err := dispatch(svc, cfg, os.Args[1], os.Args[2:]); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}

	if err := fileStore.Save(snapshot.Encode(svc.Ledger())); err != nil {
		color.Red("error saving state: %v", err)
		os.Exit(1)
	}
}

func loadLedger(fileStore *store.FileStore, logger *slog.Logger) *ledger.Ledger {
	snap, err := fileStore.Load()
	if err != nil {
		logger.Warn("starting with empty ledger", "error", err)
		return ledger.New()
	}
	l, err := snapshot.Decode(snap, logger)
	if err != nil {
		logger.Warn("snapshot unusable, starting with empty ledger", "error", err)
		return ledger.New()
	}
	return l
}

func dispatch(svc *bank.Service, cfg *config.App, cmd string, args []string) error {
	switch cmd {
	case "create-customer":
		if len(args) < 2 {
			return fmt.Errorf("usage: create-customer <name> <email> [phone] [address]")
		}
		in := bank.CreateCustomerInput{Name: args[0], Email: args[1]}
		if len(args) > 2 {
			in.Phone = args[2]
		}
		if len(args) > 3 {
			in.Address = args[3]
		}
		c, err := svc.CreateCustomer(in)
		if err != nil {
			return err
		}
		color.Green("customer created: id=%d name=%s", c.ID, c.Name)

	case "open-savings":
		id, opening, err := idAndAmount(args)
		if err != nil {
			return err
		}
		p := cfg.Products.Savings
		minBalance, err := money.New(p.MinimumBalance)
		if err != nil {
			return err
		}
		a, err := svc.OpenSavings(id, opening, account.SavingsParams{
			InterestRate:    p.InterestRate,
			MinimumBalance:  minBalance,
			WithdrawalLimit: p.WithdrawalLimit,
		})
		if err != nil {
			return err
		}
		color.Green("savings account opened: number=%d balance=%s", a.Number(), a.Balance())

	case "open-checking":
		id, opening, err := idAndAmount(args)
		if err != nil {
			return err
		}
		p := cfg.Products.Checking
		limit, err := money.New(p.OverdraftLimit)
		if err != nil {
			return err
		}
		fee, err := money.New(p.OverdraftFee)
		if err != nil {
			return err
		}
		monthly, err := money.New(p.MonthlyFee)
		if err != nil {
			return err
		}
		a, err := svc.OpenChecking(id, opening, account.CheckingParams{
			OverdraftLimit: limit,
			OverdraftFee:   fee,
			MonthlyFee:     monthly,
			InterestRate:   p.InterestRate,
		})
		if err != nil {
			return err
		}
		color.Green("checking account opened: number=%d balance=%s", a.Number(), a.Balance())

	case "open-loan":
		id, principal, err := idAndAmount(args)
		if err != nil {
			return err
		}
		p := cfg.Products.Loan
		a, err := svc.OpenLoan(id, account.LoanParams{
			Principal:    principal,
			InterestRate: p.InterestRate,
			TermMonths:   p.TermMonths,
		})
		if err != nil {
			return err
		}
		color.Green("loan opened: number=%d monthly_payment=%s", a.Number(), a.MonthlyPayment())

	case "deposit":
		number, amount, err := idAndAmount(args)
		if err != nil {
			return err
		}
		tx, err := svc.Deposit(number, amount)
		if err != nil {
			return err
		}
		color.Green("deposit completed: tx=%d amount=%s", tx.ID, tx.Amount)

	case "withdraw":
		number, amount, err := idAndAmount(args)
		if err != nil {
			return err
		}
		tx, err := svc.Withdraw(number, amount)
		if err != nil {
			return err
		}
		color.Green("withdrawal completed: tx=%d amount=%s", tx.ID, tx.Amount)

	case "transfer":
		if len(args) < 3 {
			return fmt.Errorf("usage: transfer <source> <destination> <amount>")
		}
		src, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid source account: %w", err)
		}
		dst, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid destination account: %w", err)
		}
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		tx, err := svc.Transfer(src, dst, amount)
		if err != nil {
			return err
		}
		color.Green("transfer completed: tx=%d amount=%s", tx.ID, tx.Amount)

	case "balance":
		number, err := parseNumber(args)
		if err != nil {
			return err
		}
		balance, err := svc.Balance(number)
		if err != nil {
			return err
		}
		color.Cyan("balance of %d: %s", number, balance)

	case "statement":
		number, err := parseNumber(args)
		if err != nil {
			return err
		}
		entries, err := svc.Statement(number)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s  %-12s %10s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, e.Amount)
		}

	case "freeze":
		number, err := parseNumber(args)
		if err != nil {
			return err
		}
		return svc.FreezeAccount(number)

	case "close":
		number, err := parseNumber(args)
		if err != nil {
			return err
		}
		return svc.CloseAccount(number)

	case "post-interest":
		total := svc.PostInterest()
		color.Green("interest posted: total=%s", total)

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func parseNumber(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("account number required")
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account number: %w", err)
	}
	return n, nil
}

func parseAmount(s string) (money.Money, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return money.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	return money.New(f)
}

func idAndAmount(args []string) (int64, money.Money, error) {
	if len(args) < 2 {
		return 0, money.Zero, fmt.Errorf("expected <id> <amount>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, money.Zero, fmt.Errorf("invalid identifier: %w", err)
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return 0, money.Zero, err
	}
	return id, amount, nil
}
