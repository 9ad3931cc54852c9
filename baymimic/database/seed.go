package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gavelworks/baymimic/baymimic/database/models"
)

// SeedDemoData loads a small demonstration data set: a handful of accounts,
// a two-level category tree, open listings with watches and bids, and one
// already-expired listing left for the sweep to settle. It is a no-op when
// accounts already exist.
func SeedDemoData(ctx context.Context, db *DB) error {
	count, err := db.bunDB.NewSelect().
		Model((*models.UserAccount)(nil)).
		Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if count > 0 {
		slog.Info("Demo data already present, skipping seed")
		return nil
	}

	now := time.Now()

	accounts := []*models.UserAccount{
		{Username: "alice", Email: "alice@example.com", UserType: models.UserTypeSeller, Status: models.AccountStatusActive, PaymentMethods: []string{"card", "wire"}},
		{Username: "bob", Email: "bob@example.com", UserType: models.UserTypeBuyer, Status: models.AccountStatusActive, PaymentMethods: []string{"card"}},
		{Username: "carol", Email: "carol@example.com", UserType: models.UserTypeBoth, Status: models.AccountStatusActive, PaymentMethods: []string{"paypal"}},
		{Username: "dave", Email: "dave@example.com", UserType: models.UserTypeBuyer, Status: models.AccountStatusSuspended, PaymentMethods: []string{"card"}},
	}
	if _, err := db.bunDB.NewInsert().Model(&accounts).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}
	alice, bob, carol, dave := accounts[0], accounts[1], accounts[2], accounts[3]

	electronics := &models.Category{Name: "Electronics", Path: "/Electronics"}
	collectibles := &models.Category{Name: "Collectibles", Path: "/Collectibles"}
	if _, err := db.bunDB.NewInsert().Model(&[]*models.Category{electronics, collectibles}).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed root categories: %w", err)
	}

	phones := &models.Category{
		Name: "Phones", ParentID: &electronics.ID, Path: "/Electronics/Phones",
		Attributes: map[string]any{"fields": []string{"brand", "storage_gb"}},
	}
	laptops := &models.Category{
		Name: "Laptops", ParentID: &electronics.ID, Path: "/Electronics/Laptops",
		Attributes: map[string]any{"fields": []string{"brand", "ram_gb"}},
	}
	if _, err := db.bunDB.NewInsert().Model(&[]*models.Category{phones, laptops}).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed child categories: %w", err)
	}

	listings := []*models.Listing{
		{
			SellerID: alice.ID, CategoryID: phones.ID,
			Title: "Vintage flip phone", Description: "Working condition, original box.",
			StartPrice: 50, Quantity: 1,
			Status:    models.ListingStatusActive,
			StartDate: now.Add(-24 * time.Hour), EndDate: now.Add(48 * time.Hour),
		},
		{
			SellerID: carol.ID, CategoryID: laptops.ID,
			Title: "Refurbished ultrabook", Description: "New battery fitted.",
			StartPrice: 300, Quantity: 1,
			Status:    models.ListingStatusActive,
			StartDate: now.Add(-12 * time.Hour), EndDate: now.Add(72 * time.Hour),
		},
		{
			SellerID: alice.ID, CategoryID: collectibles.ID,
			Title: "Signed concert poster", Description: "Framed.",
			StartPrice: 80, Quantity: 1,
			Status:    models.ListingStatusActive,
			StartDate: now.Add(-96 * time.Hour), EndDate: now.Add(-2 * time.Hour),
		},
	}
	if _, err := db.bunDB.NewInsert().Model(&listings).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed listings: %w", err)
	}

	watches := []*models.ListingWatch{
		{UserID: bob.ID, ListingID: listings[0].ID},
		{UserID: dave.ID, ListingID: listings[0].ID},
		{UserID: bob.ID, ListingID: listings[1].ID},
	}
	if _, err := db.bunDB.NewInsert().Model(&watches).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed watches: %w", err)
	}

	bids := []*models.Bid{
		{ListingID: listings[0].ID, BidderID: bob.ID, Amount: 55, BidTime: now.Add(-20 * time.Hour), Status: models.BidStatusOutbid},
		{ListingID: listings[0].ID, BidderID: carol.ID, Amount: 60, BidTime: now.Add(-18 * time.Hour), Status: models.BidStatusActive},
		{ListingID: listings[2].ID, BidderID: bob.ID, Amount: 95, BidTime: now.Add(-50 * time.Hour), Status: models.BidStatusActive},
	}
	if _, err := db.bunDB.NewInsert().Model(&bids).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed bids: %w", err)
	}

	slog.Info("Demo data seeded",
		slog.Int("accounts", len(accounts)),
		slog.Int("listings", len(listings)),
		slog.Int("bids", len(bids)))
	return nil
}
