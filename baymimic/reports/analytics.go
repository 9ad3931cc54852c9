package reports

import (
	"context"

	"github.com/gavelworks/baymimic/baymimic/database"
)

// AccountRef identifies an account in an analytics result.
type AccountRef struct {
	UserID   int64
	Username string
}

// BidPercentileView holds the quartiles of all bid amounts.
type BidPercentileView struct {
	P25 float64
	P50 float64
	P75 float64
}

// RoleRow is one (username, role) pair; an account typed "both" appears
// once per role.
type RoleRow struct {
	Username string
	Role     string
}

// StatusCubeRow is one cell of the payment/shipping revenue cube. Subtotal
// and grand-total rows carry "**ALL**" in the collapsed dimension.
type StatusCubeRow struct {
	PaymentStatus  string
	ShippingStatus string
	Revenue        int64
}

// Analytics runs the ad-hoc reporting queries straight through the pgx pool.
// These are one-shot reads with window and set operations bun's query
// builder has no vocabulary for.
type Analytics struct {
	db *database.DB
}

func NewAnalytics(db *database.DB) *Analytics {
	return &Analytics{db: db}
}

func (a *Analytics) BidPercentiles(ctx context.Context) (*BidPercentileView, error) {
	rows, err := a.db.QueryWithLog(ctx, `
		SELECT percentile_cont(0.25) WITHIN GROUP (ORDER BY bid_amount),
		       percentile_cont(0.50) WITHIN GROUP (ORDER BY bid_amount),
		       percentile_cont(0.75) WITHIN GROUP (ORDER BY bid_amount)
		FROM bids
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	view := new(BidPercentileView)
	if rows.Next() {
		var p25, p50, p75 *float64
		if err := rows.Scan(&p25, &p50, &p75); err != nil {
			return nil, err
		}
		// NULL percentiles mean there are no bids at all.
		if p25 != nil {
			view.P25, view.P50, view.P75 = *p25, *p50, *p75
		}
	}
	return view, rows.Err()
}

// BuyersAndSellers lists every account under each role it can act in:
// buyers and sellers as one set-union, with "both" accounts in both.
func (a *Analytics) BuyersAndSellers(ctx context.Context) ([]RoleRow, error) {
	rows, err := a.db.QueryWithLog(ctx, `
		SELECT username, 'buyer' AS role FROM user_accounts WHERE user_type IN ('buyer','both')
		UNION
		SELECT username, 'seller' AS role FROM user_accounts WHERE user_type IN ('seller','both')
		ORDER BY username, role
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RoleRow
	for rows.Next() {
		var row RoleRow
		if err := rows.Scan(&row.Username, &row.Role); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// PaymentShippingCube sums revenue over every combination of payment and
// shipping status, including per-dimension subtotals and the grand total.
func (a *Analytics) PaymentShippingCube(ctx context.Context) ([]StatusCubeRow, error) {
	rows, err := a.db.QueryWithLog(ctx, `
		SELECT COALESCE(payment_status::text, '**ALL**') AS payment_status,
		       COALESCE(shipping_status::text, '**ALL**') AS shipping_status,
		       COALESCE(SUM(final_price), 0) AS revenue
		FROM transactions
		GROUP BY CUBE (payment_status, shipping_status)
		ORDER BY CASE WHEN payment_status IS NULL THEN 1 ELSE 0 END,
		         CASE WHEN shipping_status IS NULL THEN 1 ELSE 0 END,
		         payment_status, shipping_status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StatusCubeRow
	for rows.Next() {
		var row StatusCubeRow
		if err := rows.Scan(&row.PaymentStatus, &row.ShippingStatus, &row.Revenue); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// AccountsNeverBid lists accounts that have placed no bid.
func (a *Analytics) AccountsNeverBid(ctx context.Context) ([]AccountRef, error) {
	return a.scanAccounts(ctx, `
		SELECT ua.user_id, ua.username
		FROM user_accounts ua
		WHERE ua.user_id IN (
			SELECT user_id FROM user_accounts
			EXCEPT
			SELECT bidder_id FROM bids
		)
		ORDER BY ua.user_id
	`)
}

// WatchersByCategory lists accounts watching at least one listing in the
// given category.
func (a *Analytics) WatchersByCategory(ctx context.Context, categoryID int64) ([]AccountRef, error) {
	return a.scanAccounts(ctx, `
		SELECT DISTINCT ua.user_id, ua.username
		FROM user_accounts ua
		JOIN listing_watches w ON w.user_id = ua.user_id
		JOIN listings l ON l.listing_id = w.listing_id
		WHERE l.category_id = $1
		ORDER BY ua.user_id
	`, categoryID)
}

func (a *Analytics) scanAccounts(ctx context.Context, sql string, args ...interface{}) ([]AccountRef, error) {
	rows, err := a.db.QueryWithLog(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []AccountRef
	for rows.Next() {
		var ref AccountRef
		if err := rows.Scan(&ref.UserID, &ref.Username); err != nil {
			return nil, err
		}
		accounts = append(accounts, ref)
	}
	return accounts, rows.Err()
}
