package model

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	case "":
		return PriorityMedium, nil
	}
	return "", &ValidationError{Field: "priority", Msg: fmt.Sprintf("unknown priority %q (want low, medium or high)", s)}
}

type Todo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`

	// DueDate is an RFC 3339 UTC instant, or empty when unset.
	DueDate string `json:"dueDate,omitempty"`
	// Repeat is an RRULE (without the "RRULE:" prefix), or empty.
	Repeat string `json:"repeat,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Due returns the parsed due date. ok is false when unset or malformed.
func (t Todo) Due() (due time.Time, ok bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(time.RFC3339, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Msg: "title is required"}
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	if t.DueDate != "" {
		if _, err := time.Parse(time.RFC3339, t.DueDate); err != nil {
			return &ValidationError{Field: "dueDate", Msg: fmt.Sprintf("invalid due date %q (want RFC 3339)", t.DueDate)}
		}
	}
	return nil
}

// TodoPatch is a partial update; nil fields are left unchanged.
type TodoPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Repeat      *string   `json:"repeat,omitempty"`
}

func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Repeat != nil {
		t.Repeat = *p.Repeat
	}
}

type Category string

const (
	CategoryTravel    Category = "Travel"
	CategoryFood      Category = "Food"
	CategoryOffice    Category = "Office"
	CategorySoftware  Category = "Software"
	CategoryMarketing Category = "Marketing"
	CategoryEquipment Category = "Equipment"
	CategoryOther     Category = "Other"
)

// Categories lists every expense category in display order.
var Categories = []Category{
	CategoryTravel,
	CategoryFood,
	CategoryOffice,
	CategorySoftware,
	CategoryMarketing,
	CategoryEquipment,
	CategoryOther,
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Msg: fmt.Sprintf("unknown category %q", s)}
}

type ExpenseStatus string

const (
	StatusPending  ExpenseStatus = "Pending"
	StatusApproved ExpenseStatus = "Approved"
	StatusRejected ExpenseStatus = "Rejected"
	StatusPaid     ExpenseStatus = "Paid"
)

func ParseExpenseStatus(s string) (ExpenseStatus, error) {
	for _, st := range []ExpenseStatus{StatusPending, StatusApproved, StatusRejected, StatusPaid} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", &ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", s)}
}

// DateLayout is the layout of Expense.Date.
const DateLayout = "2006-01-02"

type Expense struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Merchant    string        `json:"merchant"`
	AmountCents int64         `json:"amountCents"`
	Currency    string        `json:"currency"`
	Category    Category      `json:"category"`
	Description string        `json:"description,omitempty"`
	Status      ExpenseStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Merchant) == "" {
		return &ValidationError{Field: "merchant", Msg: "merchant is required"}
	}
	if e.AmountCents <= 0 {
		return &ValidationError{Field: "amount", Msg: "amount must be positive"}
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return &ValidationError{Field: "date", Msg: fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", e.Date)}
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return err
	}
	if _, err := ParseExpenseStatus(string(e.Status)); err != nil {
		return err
	}
	return nil
}

// ExpensePatch is a partial update; nil fields are left unchanged.
type ExpensePatch struct {
	Date        *string        `json:"date,omitempty"`
	Merchant    *string        `json:"merchant,omitempty"`
	AmountCents *int64         `json:"amountCents,omitempty"`
	Currency    *string        `json:"currency,omitempty"`
	Category    *Category      `json:"category,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *ExpenseStatus `json:"status,omitempty"`
}

func (p ExpensePatch) Apply(e *Expense) {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Merchant != nil {
		e.Merchant = *p.Merchant
	}
	if p.AmountCents != nil {
		e.AmountCents = *p.AmountCents
	}
	if p.Currency != nil {
		e.Currency = *p.Currency
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}

// Budget is a monthly spending limit for one category. Period is the month in
// "January 2006" form. SpentCents is derived from the period's expenses.
type Budget struct {
	Category   Category `json:"category"`
	LimitCents int64    `json:"limitCents"`
	SpentCents int64    `json:"spentCents"`
	Period     string   `json:"period"`
}

type ChangeOp string

const (
	OpInsert ChangeOp = "insert"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// Change describes one committed mutation.
type Change struct {
	Table string   `json:"table"`
	Op    ChangeOp `json:"op"`
	ID    string   `json:"id"`
}

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}
