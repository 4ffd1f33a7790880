package main

import (
	"strings"
	"testing"

	"github.com/iddobarnoon/BudgetWise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadExpenses(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			name:  "header row skipped",
			input: "merchant,amount,description\nStarbucks,5.75,morning coffee\nShell,40.00\n",
			want:  2,
		},
		{
			name:  "no header",
			input: "Costco,120.50\n",
			want:  1,
		},
		{
			name:  "merchant only",
			input: "Trader Joe's #122\n",
			want:  1,
		},
		{
			name:    "bad amount",
			input:   "Shell,forty\n",
			wantErr: true,
		},
		{
			name:  "empty file",
			input: "",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses, err := readExpenses(strings.NewReader(tt.input), "user-1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, expenses, tt.want)
			for _, e := range expenses {
				assert.Equal(t, "user-1", e.UserID)
				assert.NotEmpty(t, e.ID)
			}
		})
	}
}

func TestReadExpensesFields(t *testing.T) {
	expenses, err := readExpenses(strings.NewReader("Starbucks,5.75,latte\n"), "user-1")
	require.NoError(t, err)
	require.Len(t, expenses, 1)

	assert.Equal(t, "Starbucks", expenses[0].Merchant)
	assert.InDelta(t, 5.75, expenses[0].Amount, 1e-9)
	assert.Equal(t, "latte", expenses[0].Description)
}

func TestClosestCategory(t *testing.T) {
	categories := []model.Category{
		{ID: "cat_groceries", Name: "Groceries"},
		{ID: "cat_dining_out", Name: "Dining Out"},
		{ID: "cat_travel", Name: "Travel"},
	}

	assert.Equal(t, "Groceries", closestCategory("grocerys", categories))
	assert.Equal(t, "Dining Out", closestCategory("dining", categories))
	assert.Equal(t, "", closestCategory("cryptocurrency", categories))
}
