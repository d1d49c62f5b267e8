// Package customer defines the Customer entity. A customer indexes the
// accounts it holds by account number; account lifetime is owned by the
// ledger, never by the customer.
package customer

import (
	"errors"
	"time"
)

var (
	// ErrCustomerNotFound is returned when a customer cannot be found in the ledger.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrAccountAlreadyLinked is returned when an account number is linked to a
	// customer that already references it.
	ErrAccountAlreadyLinked = errors.New("account already linked to customer")
)

// Customer represents a bank customer and the ordered set of accounts it holds.
//
// Invariants:
//   - ID is unique for the lifetime of the ledger.
//   - AccountNumbers never contains a duplicate.
type Customer struct {
	ID       int64
	Name     string
	Email    string
	Phone    string
	Address  string
	JoinedAt time.Time

	accountNumbers []int64
}

// New creates a Customer with the given identity and contact details.
func New(id int64, name, email, phone, address string, joinedAt time.Time) *Customer {
	return &Customer{
		ID:       id,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Address:  address,
		JoinedAt: joinedAt,
	}
}

// LinkAccount appends an account number to the customer's holdings.
// Returns ErrAccountAlreadyLinked if the number is already present.
func (c *Customer) LinkAccount(number int64) error {
	for _, n := range c.accountNumbers {
		if n == number {
			return ErrAccountAlreadyLinked
		}
	}
	c.accountNumbers = append(c.accountNumbers, number)
	return nil
}

// AccountNumbers returns the customer's account numbers in link order.
// The returned slice is a copy.
func (c *Customer) AccountNumbers() []int64 {
	out := make([]int64, len(c.accountNumbers))
	copy(out, c.accountNumbers)
	return out
}

// HoldsAccount reports whether the customer references the given account number.
func (c *Customer) HoldsAccount(number int64) bool {
	for _, n := range c.accountNumbers {
		if n == number {
			return true
		}
	}
	return false
}
