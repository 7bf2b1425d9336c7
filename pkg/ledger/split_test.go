package ledger

import (
	"testing"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/expense"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestUserShare(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		amount string
		split  []expense.SplitPercentage
		want   string
	}{
		{name: "no split pays everything", amount: "120", want: "120"},
		{name: "two way split", amount: "100", split: []expense.SplitPercentage{{Name: "A", Percentage: 50}, {Name: "B", Percentage: 50}}, want: "50"},
		{name: "uneven percentages still split by head", amount: "100", split: []expense.SplitPercentage{{Name: "A", Percentage: 10}, {Name: "B", Percentage: 90}}, want: "50"},
		{name: "three way split rounds", amount: "100", split: []expense.SplitPercentage{{Name: "A", Percentage: 33.34}, {Name: "B", Percentage: 33.33}, {Name: "C", Percentage: 33.33}}, want: "33.33"},
		{name: "amount is rounded", amount: "10.005", want: "10.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := UserShare(d(tt.amount), tt.split)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestUserPercentage(t *testing.T) {
	t.Parallel()
	assert.True(t, UserPercentage(nil).Equal(d("100")))
	assert.True(t, UserPercentage(make([]expense.SplitPercentage, 3)).Equal(d("33.33")))
	assert.True(t, UserPercentage(make([]expense.SplitPercentage, 4)).Equal(d("25")))
}

func TestValidateSplit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		split   []expense.SplitPercentage
		wantErr bool
	}{
		{name: "empty", split: nil, wantErr: true},
		{name: "sums to 100", split: []expense.SplitPercentage{{Name: "A", Percentage: 60}, {Name: "B", Percentage: 40}}},
		{name: "within tolerance", split: []expense.SplitPercentage{{Name: "A", Percentage: 33.33}, {Name: "B", Percentage: 33.33}, {Name: "C", Percentage: 33.33}}},
		{name: "sums to 90", split: []expense.SplitPercentage{{Name: "A", Percentage: 50}, {Name: "B", Percentage: 40}}, wantErr: true},
		{name: "zero percentage", split: []expense.SplitPercentage{{Name: "A", Percentage: 100}, {Name: "B", Percentage: 0}}, wantErr: true},
		{name: "negative percentage", split: []expense.SplitPercentage{{Name: "A", Percentage: 110}, {Name: "B", Percentage: -10}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateSplit(tt.split)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrBadRequest)
				return
			}
			assert.NoError(t, err)
		})
	}
}
