package testutil

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/google/uuid"
)

// Todo options
type TodoOption func(*domain.Todo)

func WithCompleted() TodoOption {
	return func(t *domain.Todo) {
		t.Completed = true
	}
}

func WithTodoID(id string) TodoOption {
	return func(t *domain.Todo) {
		t.ID = id
	}
}

func NewTestTodo(title string, opts ...TodoOption) *domain.Todo {
	t := &domain.Todo{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Financials options
type FinancialsOption func(*domain.FinancialPayload)

func WithAvailability(a domain.DataAvailability) FinancialsOption {
	return func(p *domain.FinancialPayload) {
		p.DataAvailability = a
	}
}

func WithoutProfit() FinancialsOption {
	return func(p *domain.FinancialPayload) {
		p.Profit = nil
	}
}

// NewTestFinancials returns a well-formed payload with three fiscal years of
// revenue and profit.
func NewTestFinancials(opts ...FinancialsOption) *domain.FinancialPayload {
	source := "Annual report"
	p := &domain.FinancialPayload{
		Revenue: &domain.Series{
			Data:   []float64{274515, 365817, 394328},
			Period: []string{"2020", "2021", "2022"},
			Source: &source,
		},
		Profit: &domain.Series{
			Data:   []float64{57411, 94680, 99803},
			Period: []string{"2020", "2021", "2022"},
			Source: &source,
		},
		Summary:          "Designs consumer electronics, software and services.",
		DataAvailability: domain.AvailabilityPublic,
		LastUpdated:      "2023-01-15",
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// MustJSON marshals v or panics. Used to build completion texts.
func MustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
