package ledger

import (
	"context"

	domainledger "github.com/amirasaad/finance/pkg/domain/ledger"
	"github.com/amirasaad/finance/pkg/dto"
	repo "github.com/amirasaad/finance/pkg/repository/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a ledger repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements ledger.Repository.
func (r *repository) Create(ctx context.Context, create *dto.LedgerEntryCreate) error {
	tx := Transaction{
		ID:              create.ID,
		UserID:          create.UserID,
		Type:            string(create.Type),
		Amount:          create.Amount,
		BalanceAfter:    create.BalanceAfter,
		Description:     create.Description,
		IncomeID:        create.IncomeID,
		ExpenseID:       create.ExpenseID,
		EventID:         create.EventID,
		BudgetID:        create.BudgetID,
		TransactionDate: create.TransactionDate,
	}
	return r.db.WithContext(ctx).Create(&tx).Error
}

// ListByUser implements ledger.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.LedgerEntryRead, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// ListByExpense implements ledger.Repository.
func (r *repository) ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]*dto.LedgerEntryRead, error) {
	return r.list(r.db.WithContext(ctx).Where("expense_id = ?", expenseID))
}

func (r *repository) list(db *gorm.DB) ([]*dto.LedgerEntryRead, error) {
	var txs []Transaction
	if err := db.Order("transaction_date ASC, created_at ASC").Find(&txs).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.LedgerEntryRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapModelToDTO(&txs[i]))
	}
	return result, nil
}

// DeleteByUserID implements ledger.Repository.
func (r *repository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Transaction{}).Error
}

func mapModelToDTO(tx *Transaction) *dto.LedgerEntryRead {
	return &dto.LedgerEntryRead{
		ID:              tx.ID,
		UserID:          tx.UserID,
		Type:            domainledger.EntryType(tx.Type),
		Amount:          tx.Amount,
		BalanceAfter:    tx.BalanceAfter,
		Description:     tx.Description,
		IncomeID:        tx.IncomeID,
		ExpenseID:       tx.ExpenseID,
		EventID:         tx.EventID,
		BudgetID:        tx.BudgetID,
		TransactionDate: tx.TransactionDate,
		CreatedAt:       tx.CreatedAt,
	}
}

var _ repo.Repository = (*repository)(nil)
