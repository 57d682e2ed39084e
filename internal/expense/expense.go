package expense

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"extras-cli/internal/calendar"
	"extras-cli/internal/model"

	"github.com/dustin/go-humanize"
)

// Total sums the amounts of list, ignoring rejected expenses.
func Total(list []model.Expense) int64 {
	var sum int64
	for _, e := range list {
		if e.Status == model.StatusRejected {
			continue
		}
		sum += e.AmountCents
	}
	return sum
}

// InMonth returns the expenses dated within m.
func InMonth(list []model.Expense, m calendar.Month) []model.Expense {
	m = m.Normalize()
	prefix := fmt.Sprintf("%04d-%02d-", m.Year, int(m.Month))
	out := []model.Expense{}
	for _, e := range list {
		if strings.HasPrefix(e.Date, prefix) {
			out = append(out, e)
		}
	}
	return out
}

type CategoryTotal struct {
	Category    model.Category `json:"category"`
	AmountCents int64          `json:"amountCents"`
	Count       int            `json:"count"`
}

// ByCategory totals non-rejected expenses per category, largest first.
// Categories without expenses are omitted.
func ByCategory(list []model.Expense) []CategoryTotal {
	idx := map[model.Category]int{}
	out := []CategoryTotal{}
	for _, e := range list {
		if e.Status == model.StatusRejected {
			continue
		}
		i, ok := idx[e.Category]
		if !ok {
			i = len(out)
			idx[e.Category] = i
			out = append(out, CategoryTotal{Category: e.Category})
		}
		out[i].AmountCents += e.AmountCents
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AmountCents != out[j].AmountCents {
			return out[i].AmountCents > out[j].AmountCents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type Progress struct {
	Category model.Category `json:"category"`
	// Percent is spent/limit*100 capped at 100; 0 when no limit is set.
	Percent float64 `json:"percent"`
	Over    bool    `json:"over"`
}

func BudgetProgress(b model.Budget) Progress {
	p := Progress{Category: b.Category}
	if b.LimitCents <= 0 {
		return p
	}
	pct := float64(b.SpentCents) / float64(b.LimitCents) * 100
	p.Over = pct > 100
	if pct > 100 {
		pct = 100
	}
	p.Percent = pct
	return p
}

// FormatAmount renders cents with thousands separators, e.g. "1,234.50 IDR".
func FormatAmount(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	s := fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(cents/100), cents%100)
	if currency != "" {
		s += " " + currency
	}
	return s
}

// ParseAmount parses "12", "12.5" or "1,234.56" into cents. Signs are rejected.
func ParseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, &model.ValidationError{Field: "amount", Msg: "amount is required"}
	}
	invalid := &model.ValidationError{Field: "amount", Msg: fmt.Sprintf("invalid amount %q", s)}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !digits(whole) || (hasFrac && (!digits(frac) || len(frac) > 2)) {
		return 0, invalid
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, invalid
	}
	if w > (math.MaxInt64-99)/100 {
		return 0, &model.ValidationError{Field: "amount", Msg: fmt.Sprintf("amount %q is too large", s)}
	}
	var f int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		f, _ = strconv.ParseInt(frac, 10, 64)
	}
	return w*100 + f, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
