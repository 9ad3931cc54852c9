package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
	"github.com/uptrace/bun"
)

type AccountRepository interface {
	DB() *bun.DB
	Create(ctx context.Context, account *models.UserAccount) error
	GetByID(ctx context.Context, id int64) (*models.UserAccount, error)
	GetByUsername(ctx context.Context, username string) (*models.UserAccount, error)
	List(ctx context.Context) ([]*models.UserAccount, error)
	Update(ctx context.Context, account *models.UserAccount) error
	Delete(ctx context.Context, id int64) error
	DeleteCascade(ctx context.Context, id int64) error
}

type accountRepository struct {
	*BaseRepository
}

func NewAccountRepository(db *bun.DB) AccountRepository {
	return &accountRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *accountRepository) DB() *bun.DB {
	return r.GetDB()
}

func validateAccount(account *models.UserAccount) error {
	if account.Username == "" {
		return &ValidationError{Entity: "account", Field: "username", Reason: "must not be empty"}
	}
	if account.Email == "" {
		return &ValidationError{Entity: "account", Field: "email", Reason: "must not be empty"}
	}
	if !account.UserType.Valid() {
		return &ValidationError{Entity: "account", Field: "user_type", Reason: "must be buyer, seller or both"}
	}
	if !account.Status.Valid() {
		return &ValidationError{Entity: "account", Field: "account_status", Reason: "must be active, suspended or closed"}
	}
	if account.Rating < 0 || account.Rating > 5 {
		return &ValidationError{Entity: "account", Field: "rating", Reason: "must be between 0 and 5"}
	}
	return nil
}

func (r *accountRepository) Create(ctx context.Context, account *models.UserAccount) error {
	if account.UserType == "" {
		account.UserType = models.UserTypeBuyer
	}
	if account.Status == "" {
		account.Status = models.AccountStatusActive
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	_, err := r.GetDB().NewInsert().Model(account).Exec(ctx)
	return r.HandleError("create", "account", err)
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.UserAccount, error) {
	account := new(models.UserAccount)
	err := r.GetDB().NewSelect().
		Model(account).
		Where("user_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "account", id, err)
	}
	return account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.UserAccount, error) {
	account := new(models.UserAccount)
	err := r.GetDB().NewSelect().
		Model(account).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "account", username, err)
	}
	return account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*models.UserAccount, error) {
	var accounts []*models.UserAccount
	err := r.GetDB().NewSelect().
		Model(&accounts).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "account", err)
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, account *models.UserAccount) error {
	if err := validateAccount(account); err != nil {
		return err
	}

	account.UpdatedAt = time.Now()
	result, err := r.GetDB().NewUpdate().
		Model(account).
		WherePK().
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("update", "account", account.ID, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return &NotFoundError{Entity: "account", ID: account.ID}
	}
	return nil
}

// Delete removes an account. Accounts still referenced by listings, bids,
// transactions or feedback fail with an IntegrityError.
func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.GetDB().NewDelete().
		Model((*models.UserAccount)(nil)).
		Where("user_id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("delete", "account", id, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return &NotFoundError{Entity: "account", ID: id}
	}
	return nil
}

// DeleteCascade removes an account and everything that hangs off it, in
// dependency order: feedback, transactions, bids and watches touching the
// account or its listings, then the listings, then the account itself.
func (r *accountRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		var listingIDs []int64
		err := tx.NewSelect().
			Model((*models.Listing)(nil)).
			Column("listing_id").
			Where("seller_id = ?", id).
			Scan(ctx, &listingIDs)
		if err != nil {
			return fmt.Errorf("failed to collect listings: %w", err)
		}

		feedbackDelete := tx.NewDelete().
			Model((*models.Feedback)(nil)).
			Where("author_user_id = ?", id).
			WhereOr("target_user_id = ?", id)
		transactionFilter := tx.NewSelect().
			Model((*models.Transaction)(nil)).
			Column("transaction_id").
			Where("buyer_id = ?", id).
			WhereOr("seller_id = ?", id)
		if len(listingIDs) > 0 {
			transactionFilter = transactionFilter.WhereOr("listing_id IN (?)", bun.In(listingIDs))
		}
		feedbackDelete = feedbackDelete.WhereOr("transaction_id IN (?)", transactionFilter)
		if _, err := feedbackDelete.Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete feedback: %w", err)
		}

		transactionDelete := tx.NewDelete().
			Model((*models.Transaction)(nil)).
			Where("buyer_id = ?", id).
			WhereOr("seller_id = ?", id)
		if len(listingIDs) > 0 {
			transactionDelete = transactionDelete.WhereOr("listing_id IN (?)", bun.In(listingIDs))
		}
		if _, err := transactionDelete.Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete transactions: %w", err)
		}

		bidDelete := tx.NewDelete().
			Model((*models.Bid)(nil)).
			Where("bidder_id = ?", id)
		if len(listingIDs) > 0 {
			bidDelete = bidDelete.WhereOr("listing_id IN (?)", bun.In(listingIDs))
		}
		if _, err := bidDelete.Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete bids: %w", err)
		}

		watchDelete := tx.NewDelete().
			Model((*models.ListingWatch)(nil)).
			Where("user_id = ?", id)
		if len(listingIDs) > 0 {
			watchDelete = watchDelete.WhereOr("listing_id IN (?)", bun.In(listingIDs))
		}
		if _, err := watchDelete.Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete watches: %w", err)
		}

		if _, err := tx.NewDelete().
			Model((*models.Listing)(nil)).
			Where("seller_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete listings: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*models.UserAccount)(nil)).
			Where("user_id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		if rows, err := result.RowsAffected(); err == nil && rows == 0 {
			return &NotFoundError{Entity: "account", ID: id}
		}

		slog.Info("Account deleted with cascade",
			slog.String("type", "db"),
			slog.Int64("user_id", id),
			slog.Int("listings", len(listingIDs)))
		return nil
	})
}
