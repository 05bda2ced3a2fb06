package services

import (
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
)

// SpenderTotal is the user with the highest summed spend
type SpenderTotal struct {
	User  models.UserSummary `json:"user"`
	Total decimal.Decimal    `json:"total" swaggertype:"string"`
}

// CategoryTotal is the category with the highest summed spend
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    decimal.Decimal `json:"total" swaggertype:"string"`
}

// DayTotal is the calendar day (UTC) with the highest summed spend
type DayTotal struct {
	Date  string          `json:"date" example:"2024-06-15"`
	Total decimal.Decimal `json:"total" swaggertype:"string"`
}

// Report summarizes a window of expenses. Fields are nil when the window is empty.
type Report struct {
	TopUser     *SpenderTotal  `json:"topUser"`
	TopCategory *CategoryTotal `json:"topCategory"`
	PeakDay     *DayTotal      `json:"peakDay"`
}

// tally sums amounts per key and remembers the order keys were first seen
type tally[V any] struct {
	order  []string
	totals map[string]decimal.Decimal
	values map[string]V
}

func newTally[V any]() *tally[V] {
	return &tally[V]{totals: map[string]decimal.Decimal{}, values: map[string]V{}}
}

func (t *tally[V]) add(key string, value V, amount decimal.Decimal) {
	total, seen := t.totals[key]
	if !seen {
		t.order = append(t.order, key)
		t.values[key] = value
	}
	t.totals[key] = total.Add(amount)
}

// top returns the entry with the highest total after rounding to 2 places. Ties
// go to the key seen first.
func (t *tally[V]) top() (V, decimal.Decimal, bool) {
	var bestKey string
	var best decimal.Decimal
	for i, key := range t.order {
		rounded := t.totals[key].Round(2)
		if i == 0 || rounded.GreaterThan(best) {
			bestKey, best = key, rounded
		}
	}
	if len(t.order) == 0 {
		var zero V
		return zero, decimal.Zero, false
	}
	return t.values[bestKey], best, true
}

// BuildReport aggregates details, which must be ordered by insertion
// (created_at, id). Expenses whose creator was deleted count toward category
// and day totals only.
func BuildReport(details []models.ExpenseDetail) Report {
	users := newTally[models.UserSummary]()
	categories := newTally[models.Category]()
	days := newTally[string]()

	for _, d := range details {
		if d.CreatedByID != "" {
			users.add(d.CreatedByID, d.CreatedBy, d.Amount)
		}
		categories.add(d.CategoryID, d.Category, d.Amount)
		day := d.Date.UTC().Format("2006-01-02")
		days.add(day, day, d.Amount)
	}

	var report Report
	if user, total, ok := users.top(); ok {
		report.TopUser = &SpenderTotal{User: user, Total: total}
	}
	if category, total, ok := categories.top(); ok {
		report.TopCategory = &CategoryTotal{Category: category, Total: total}
	}
	if day, total, ok := days.top(); ok {
		report.PeakDay = &DayTotal{Date: day, Total: total}
	}
	return report
}
