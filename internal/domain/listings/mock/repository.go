package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	models "github.com/gavelworks/baymimic/baymimic/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockRepository is a mock of Repository interface.
type MockRepository struct {
	ctrl     *gomock.Controller
	recorder *MockRepositoryMockRecorder
	isgomock struct{}
}

// MockRepositoryMockRecorder is the mock recorder for MockRepository.
type MockRepositoryMockRecorder struct {
	mock *MockRepository
}

// NewMockRepository creates a new mock instance.
func NewMockRepository(ctrl *gomock.Controller) *MockRepository {
	mock := &MockRepository{ctrl: ctrl}
	mock.recorder = &MockRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRepository) EXPECT() *MockRepositoryMockRecorder {
	return m.recorder
}

// CountWatchers mocks base method.
func (m *MockRepository) CountWatchers(ctx context.Context, listingID int64) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountWatchers", ctx, listingID)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountWatchers indicates an expected call of CountWatchers.
func (mr *MockRepositoryMockRecorder) CountWatchers(ctx, listingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountWatchers", reflect.TypeOf((*MockRepository)(nil).CountWatchers), ctx, listingID)
}

// GetBidsForListing mocks base method.
func (m *MockRepository) GetBidsForListing(ctx context.Context, listingID int64) ([]*models.Bid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBidsForListing", ctx, listingID)
	ret0, _ := ret[0].([]*models.Bid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBidsForListing indicates an expected call of GetBidsForListing.
func (mr *MockRepositoryMockRecorder) GetBidsForListing(ctx, listingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBidsForListing", reflect.TypeOf((*MockRepository)(nil).GetBidsForListing), ctx, listingID)
}

// GetBySellerID mocks base method.
func (m *MockRepository) GetBySellerID(ctx context.Context, sellerID int64) ([]*models.Listing, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBySellerID", ctx, sellerID)
	ret0, _ := ret[0].([]*models.Listing)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBySellerID indicates an expected call of GetBySellerID.
func (mr *MockRepositoryMockRecorder) GetBySellerID(ctx, sellerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBySellerID", reflect.TypeOf((*MockRepository)(nil).GetBySellerID), ctx, sellerID)
}

var fixtureEnd = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// SellerListings are canned rows for service tests.
var SellerListings = []*models.Listing{
	{
		ID:         1,
		SellerID:   7,
		CategoryID: 3,
		Title:      "Vintage camera",
		StartPrice: 50,
		Status:     models.ListingStatusActive,
		EndDate:    fixtureEnd,
	},
}

// ListingBids are canned bids on SellerListings[0], highest first.
var ListingBids = []*models.Bid{
	{
		ID:        1,
		ListingID: 1,
		BidderID:  9,
		Amount:    65,
		Status:    models.BidStatusActive,
	},
}

// FixtureEndDate is the end date shared by the canned listings.
func FixtureEndDate() time.Time {
	return fixtureEnd
}
