package debt

import (
	"errors"
	"time"
)

// Debt types
const (
	TypeCreditCard   = "credit_card"
	TypeStoreCard    = "store_card"
	TypeLoan         = "loan"
	TypeMortgage     = "mortgage"
	TypeHirePurchase = "hire_purchase"
	TypeOther        = "other"
)

var validTypes = map[string]struct{}{
	TypeCreditCard:   {},
	TypeStoreCard:    {},
	TypeLoan:         {},
	TypeMortgage:     {},
	TypeHirePurchase: {},
	TypeOther:        {},
}

// SourceTypeExpense marks a debt generated from an unpaid expense.
const SourceTypeExpense = "expense"

// Domain errors
var (
	ErrDebtNotFound   = errors.New("debt not found")
	ErrForbidden      = errors.New("access forbidden")
	ErrInvalidType    = errors.New("invalid debt type")
	ErrExemptCategory = errors.New("category is exempt from debt generation")
	ErrSourceLinked   = errors.New("expense-sourced debt with outstanding balance cannot be deleted")
	ErrInvalidPayment = errors.New("payment amount must be positive")
)

// Debt represents a tracked balance owed. CurrentBalance only ever moves
// down as payments are applied and never goes below zero.
//
// A debt may be source-linked to the expense that spawned it. Provenance
// fields identify that expense and are immutable once set.
type Debt struct {
	ID                string     `json:"id"`
	PlanID            string     `json:"planId"`
	Name              string     `json:"name"`
	Type              string     `json:"type"`
	InitialBalance    float64    `json:"initialBalance"`
	CurrentBalance    float64    `json:"currentBalance"`
	MonthlyMinimum    *float64   `json:"monthlyMinimum,omitempty"`
	InstallmentMonths *int       `json:"installmentMonths,omitempty"`
	InterestRate      *float64   `json:"interestRate,omitempty"` // informational only
	Amount            float64    `json:"amount"`                 // manually configured fallback payment
	CreditLimit       *float64   `json:"creditLimit,omitempty"`
	Paid              bool       `json:"paid"`
	PaidAmount        float64    `json:"paidAmount"`
	DueDate           string     `json:"dueDate,omitempty"` // ISO date, empty when unset
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	SourceType         string `json:"sourceType,omitempty"`
	SourceExpenseID    string `json:"sourceExpenseId,omitempty"`
	SourceMonthKey     string `json:"sourceMonthKey,omitempty"`
	SourceYear         int    `json:"sourceYear,omitempty"`
	SourceCategoryID   string `json:"sourceCategoryId,omitempty"`
	SourceCategoryName string `json:"sourceCategoryName,omitempty"`
	SourceExpenseName  string `json:"sourceExpenseName,omitempty"`
}

// Payment represents one recorded payment against a debt.
type Payment struct {
	ID     string    `json:"id"`
	DebtID string    `json:"debtId"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Month  string    `json:"month"` // payment month key, e.g. "2026-02"
}

// CreateParams contains parameters for creating a new manual debt
type CreateParams struct {
	Name              string
	Type              string
	InitialBalance    float64
	MonthlyMinimum    *float64
	InstallmentMonths *int
	InterestRate      *float64
	Amount            float64
	CreditLimit       *float64
	DueDate           string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("debt name is required")
	}
	if !IsValidType(p.Type) {
		return ErrInvalidType
	}
	if p.InitialBalance < 0 {
		return errors.New("initial balance cannot be negative")
	}
	if p.InstallmentMonths != nil && *p.InstallmentMonths < 0 {
		return errors.New("installment months cannot be negative")
	}
	return nil
}

// UpdateParams contains parameters for updating a debt.
// Provenance fields are deliberately absent: they are immutable once set.
type UpdateParams struct {
	Name              *string
	InitialBalance    *float64
	CurrentBalance    *float64
	MonthlyMinimum    *float64
	InstallmentMonths *int
	InterestRate      *float64
	Amount            *float64
	CreditLimit       *float64
	Paid              *bool
	PaidAmount        *float64
	DueDate           *string
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("debt name cannot be empty")
	}
	if p.CurrentBalance != nil && *p.CurrentBalance < 0 {
		return errors.New("current balance cannot be negative")
	}
	return nil
}

// PaymentParams contains parameters for recording a debt payment
type PaymentParams struct {
	DebtID string
	Amount float64
	Month  string
}

// IsValidType checks if the provided debt type is valid
func IsValidType(t string) bool {
	_, ok := validTypes[t]
	return ok
}
