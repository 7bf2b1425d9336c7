package domain_test

import (
	"testing"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/bank"
	"github.com/amirasaad/finance/pkg/domain/expense"
	"github.com/amirasaad/finance/pkg/domain/income"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAmount_CentPrecision(t *testing.T) {
	validators := map[string]func(decimal.Decimal) error{
		"bank":    bank.ValidateAmount,
		"expense": expense.ValidateAmount,
		"income":  income.ValidateAmount,
	}
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"one cent", "0.01", false},
		{"rounds up to a cent", "0.005", false},
		{"rounds down to zero", "0.004", true},
		{"sub cent", "0.001", true},
		{"zero", "0", true},
		{"negative", "-5.00", true},
	}

	for kind, validate := range validators {
		for _, tt := range tests {
			t.Run(kind+"/"+tt.name, func(t *testing.T) {
				err := validate(decimal.RequireFromString(tt.amount))
				if tt.wantErr {
					assert.ErrorIs(t, err, domain.ErrBadRequest)
					return
				}
				assert.NoError(t, err)
			})
		}
	}
}
