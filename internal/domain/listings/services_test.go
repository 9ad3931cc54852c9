package listings

import (
	"reflect"
	"testing"

	"github.com/gavelworks/baymimic/internal/domain/listings/mock"
	"go.uber.org/mock/gomock"
)

func repoMock(t *testing.T) *mock.MockRepository {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().
		GetBySellerID(gomock.Any(), int64(7)).
		Return(mock.SellerListings, nil)

	repo.EXPECT().
		GetBidsForListing(gomock.Any(), int64(1)).
		Return(mock.ListingBids, nil).
		AnyTimes()

	repo.EXPECT().
		CountWatchers(gomock.Any(), int64(1)).
		Return(2, nil).
		AnyTimes()

	return repo
}

var mockListings = []Listing{
	{
		ID:           1,
		Title:        "Vintage camera",
		CategoryID:   3,
		Status:       "active",
		StartPrice:   50,
		CurrentPrice: 65,
		BidCount:     1,
		Watchers:     2,
		EndDate:      mock.FixtureEndDate(),
	},
}

func Test_service_GetSellerListings(t *testing.T) {
	type args struct {
		sellerID int64
		filters  FilterInfo
	}
	tests := []struct {
		name      string
		args      args
		want      []Listing
		wantPages int
		wantErr   bool
	}{
		{
			name: "Success",
			args: args{
				sellerID: 7,
				filters:  FilterInfo{},
			},
			want:      mockListings,
			wantPages: 1,
			wantErr:   false,
		},
		{
			name: "NoMatchAfterFilter",
			args: args{
				sellerID: 7,
				filters:  FilterInfo{Title: "typewriter"},
			},
			want:      nil,
			wantPages: 0,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &service{
				repository: repoMock(t),
			}
			got, got1, err := s.GetSellerListings(tt.args.sellerID, tt.args.filters)
			if (err != nil) != tt.wantErr {
				t.Errorf("service.GetSellerListings() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("service.GetSellerListings() got = %v, want %v", got, tt.want)
			}
			if got1 != tt.wantPages {
				t.Errorf("service.GetSellerListings() got1 = %v, want %v", got1, tt.wantPages)
			}
		})
	}
}
