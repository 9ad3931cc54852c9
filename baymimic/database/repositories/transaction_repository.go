package repositories

import (
	"context"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/uptrace/bun"
)

type TransactionRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	GetByListingID(ctx context.Context, listingID int64) (*models.Transaction, error)
	GetByBidID(ctx context.Context, bidID int64) (*models.Transaction, error)
	List(ctx context.Context) ([]*models.Transaction, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error
	UpdateShippingStatus(ctx context.Context, id int64, status models.ShippingStatus) error
}

type transactionRepository struct {
	*BaseRepository
}

func NewTransactionRepository(db *bun.DB) TransactionRepository {
	return &transactionRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	txn := new(models.Transaction)
	err := r.GetDB().NewSelect().
		Model(txn).
		Where("transaction_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "transaction", id, err)
	}
	return txn, nil
}

func (r *transactionRepository) GetByListingID(ctx context.Context, listingID int64) (*models.Transaction, error) {
	txn := new(models.Transaction)
	err := r.GetDB().NewSelect().
		Model(txn).
		Where("listing_id = ?", listingID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get_by_listing", "transaction", listingID, err)
	}
	return txn, nil
}

func (r *transactionRepository) GetByBidID(ctx context.Context, bidID int64) (*models.Transaction, error) {
	txn := new(models.Transaction)
	err := r.GetDB().NewSelect().
		Model(txn).
		Where("bid_id = ?", bidID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get_by_bid", "transaction", bidID, err)
	}
	return txn, nil
}

func (r *transactionRepository) List(ctx context.Context) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := r.GetDB().NewSelect().
		Model(&txns).
		Order("sale_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "transaction", err)
	}
	return txns, nil
}

func (r *transactionRepository) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	if !status.Valid() {
		return &ValidationError{Entity: "transaction", Field: "payment_status", Reason: "must be pending, paid or refunded"}
	}
	return r.updateStatus(ctx, id, "payment_status", string(status))
}

func (r *transactionRepository) UpdateShippingStatus(ctx context.Context, id int64, status models.ShippingStatus) error {
	if !status.Valid() {
		return &ValidationError{Entity: "transaction", Field: "shipping_status", Reason: "must be pending, shipped or delivered"}
	}
	return r.updateStatus(ctx, id, "shipping_status", string(status))
}

func (r *transactionRepository) updateStatus(ctx context.Context, id int64, column, value string) error {
	result, err := r.GetDB().NewUpdate().
		Model((*models.Transaction)(nil)).
		Set("? = ?", bun.Ident(column), value).
		Set("updated_at = ?", time.Now()).
		Where("transaction_id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("update_status", "transaction", id, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return &NotFoundError{Entity: "transaction", ID: id}
	}
	return nil
}
