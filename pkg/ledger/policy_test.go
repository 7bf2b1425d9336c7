package ledger

import (
	"testing"

	"github.com/amirasaad/finance/pkg/domain/expense"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/stretchr/testify/assert"
)

func TestExpenseReversal(t *testing.T) {
	t.Parallel()

	credit, ok := ExpenseReversal(&dto.ExpenseRead{Amount: d("80"), IsActive: true})
	assert.True(t, ok)
	assert.True(t, credit.Equal(d("80")))

	_, ok = ExpenseReversal(&dto.ExpenseRead{Amount: d("80"), IsArchived: true, Reversed: true})
	assert.False(t, ok)
}

func TestExpenseErasureSkipsReversed(t *testing.T) {
	t.Parallel()

	split := []expense.SplitPercentage{{Name: "A", Percentage: 50}, {Name: "B", Percentage: 50}}
	credit, ok := ExpenseErasure(&dto.ExpenseRead{Amount: d("100"), SplitPercentages: split})
	assert.True(t, ok)
	assert.True(t, credit.Equal(d("50")))

	_, ok = ExpenseErasure(&dto.ExpenseRead{Amount: d("100"), Reversed: true})
	assert.False(t, ok)
}

func TestExpenseAdjustment(t *testing.T) {
	t.Parallel()

	before := &dto.ExpenseRead{Amount: d("100")}

	diff, ok := ExpenseAdjustment(before, &dto.ExpenseRead{Amount: d("60")})
	assert.True(t, ok)
	assert.True(t, diff.Equal(d("40")), "a smaller expense credits the bank")

	diff, ok = ExpenseAdjustment(before, &dto.ExpenseRead{Amount: d("130")})
	assert.True(t, ok)
	assert.True(t, diff.Equal(d("-30")))

	_, ok = ExpenseAdjustment(before, &dto.ExpenseRead{Amount: d("100")})
	assert.False(t, ok)

	_, ok = ExpenseAdjustment(&dto.ExpenseRead{Amount: d("100"), Reversed: true}, &dto.ExpenseRead{Amount: d("10")})
	assert.False(t, ok)
}
