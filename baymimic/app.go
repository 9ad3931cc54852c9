package baymimic

import (
	"time"

	"github.com/gavelworks/baymimic/baymimic/database"
	"github.com/gavelworks/baymimic/baymimic/database/repositories"
	"github.com/gavelworks/baymimic/baymimic/marketplace"
	"github.com/gavelworks/baymimic/baymimic/reports"
	"github.com/gavelworks/baymimic/internal/domain/listings"
)

const defaultSnapshotTTL = 5 * time.Minute

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// App bundles the marketplace core: repositories, the bid/feedback/finalize
// managers, and the reporting surfaces, all sharing one DB.
type App struct {
	Cfg     Config
	Version string
	Commit  string
	DB      *database.DB

	AccountRepository     repositories.AccountRepository
	CategoryRepository    repositories.CategoryRepository
	ListingRepository     repositories.ListingRepository
	WatchRepository       repositories.WatchRepository
	BidRepository         repositories.BidRepository
	TransactionRepository repositories.TransactionRepository
	FeedbackRepository    repositories.FeedbackRepository

	BidManager      *marketplace.BidManager
	FeedbackManager *marketplace.FeedbackManager
	Finalizer       *marketplace.Finalizer

	Reporter       *reports.Reporter
	Snapshots      *reports.Snapshots
	Analytics      *reports.Analytics
	ListingService listings.Service
}

// Setup wires every component against the given database handles.
func (a *App) Setup(db *database.DB) {
	a.DB = db
	bunDB := db.BunDB()

	a.AccountRepository = repositories.NewAccountRepository(bunDB)
	a.CategoryRepository = repositories.NewCategoryRepository(bunDB)
	a.ListingRepository = repositories.NewListingRepository(bunDB)
	a.WatchRepository = repositories.NewWatchRepository(bunDB)
	a.BidRepository = repositories.NewBidRepository(bunDB)
	a.TransactionRepository = repositories.NewTransactionRepository(bunDB)
	a.FeedbackRepository = repositories.NewFeedbackRepository(bunDB)

	a.BidManager = marketplace.NewBidManager(bunDB, a.ListingRepository)
	a.FeedbackManager = marketplace.NewFeedbackManager(bunDB)
	a.Finalizer = marketplace.NewFinalizer(bunDB, a.ListingRepository)

	a.Reporter = reports.NewReporter(a.ListingRepository, a.BidRepository, a.WatchRepository, a.FeedbackRepository)
	a.Snapshots = reports.NewSnapshots(db, a.snapshotTTL())
	a.Analytics = reports.NewAnalytics(db)

	a.ListingService = listings.NewService(
		listings.NewRepository(a.ListingRepository, a.BidRepository, a.WatchRepository),
	)
}

func (a *App) snapshotTTL() time.Duration {
	if a.Cfg.Market.SnapshotTTLSeconds <= 0 {
		return defaultSnapshotTTL
	}
	return time.Duration(a.Cfg.Market.SnapshotTTLSeconds) * time.Second
}
