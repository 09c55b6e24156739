package app

import (
	"fmt"
	"sync"
	"time"

	clienthelpers "cosmossdk.io/client/v2/helpers"
	"cosmossdk.io/collections"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"frensledger/app/metrics"
	issuancekeeper "frensledger/x/issuance/keeper"
	issuancetypes "frensledger/x/issuance/types"
)

const (
	Name    = "frens"
	ChainID = "frens-ledger"

	// EnvPrefix is shared by the home lookup and the CLI's viper instance.
	EnvPrefix = "FRENSD"
)

var DefaultNodeHome string

func init() {
	var err error
	clienthelpers.EnvPrefix = EnvPrefix
	DefaultNodeHome, err = clienthelpers.GetNodeHomeDirectory("." + Name + "d")
	if err != nil {
		panic(err)
	}
}

// App hosts the issuance ledger over a committing multistore. Every
// mutating call runs in its own cache context and is committed only when
// it succeeds.
type App struct {
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore
	keys   map[string]*storetypes.KVStoreKey

	mu sync.Mutex

	IssuanceKeeper issuancekeeper.Keeper
	External       *issuancekeeper.OwnershipRegistry
	Legacy         *issuancekeeper.OwnershipRegistry
}

func New(logger log.Logger, db dbm.DB) (*App, error) {
	keys := storetypes.NewKVStoreKeys(issuancetypes.StoreKey, issuancetypes.ExternalStoreKey, issuancetypes.LegacyStoreKey)

	cms := store.NewCommitMultiStore(db, logger, storemetrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}

	app := &App{
		logger: logger.With("module", "app"),
		db:     db,
		cms:    cms,
		keys:   keys,
	}

	sb := collections.NewSchemaBuilder(runtime.NewKVStoreService(keys[issuancetypes.ExternalStoreKey]))
	app.External = issuancekeeper.NewExternalRegistry(sb)
	if _, err := sb.Build(); err != nil {
		return nil, fmt.Errorf("external schema: %w", err)
	}
	sb = collections.NewSchemaBuilder(runtime.NewKVStoreService(keys[issuancetypes.LegacyStoreKey]))
	app.Legacy = issuancekeeper.NewLegacyRegistry(sb)
	if _, err := sb.Build(); err != nil {
		return nil, fmt.Errorf("legacy schema: %w", err)
	}

	app.IssuanceKeeper = issuancekeeper.NewKeeper(
		runtime.NewKVStoreService(keys[issuancetypes.StoreKey]),
		issuancetypes.HexAddressCodec{},
	)
	app.IssuanceKeeper.SetExternalRegistry(app.External)
	app.IssuanceKeeper.SetLegacyRegistry(app.Legacy)

	return app, nil
}

func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// LastBlockHeight is the number of committed invocations.
func (app *App) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

func (app *App) newContext(blockTime time.Time) sdk.Context {
	header := cmtproto.Header{
		ChainID: ChainID,
		Height:  app.LastBlockHeight() + 1,
		Time:    blockTime.UTC(),
	}
	return sdk.NewContext(app.cms, header, false, app.logger).
		WithBlockTime(blockTime.UTC()).
		WithEventManager(sdk.NewEventManager())
}

// Exec runs fn against a cache of the latest state at blockTime. State and
// events are kept only if fn returns nil.
func (app *App) Exec(op string, blockTime time.Time, fn func(ctx sdk.Context) error) (sdk.Events, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if op != OpInitChain && app.LastBlockHeight() == 0 {
		return nil, ErrNotInitialized
	}

	start := time.Now()
	defer func() { metrics.ExecObserver().Observe(time.Since(start).Seconds()) }()

	ctx := app.newContext(blockTime)
	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		metrics.InvocationsCounter().WithLabelValues(op, metrics.ResultRejected).Inc()
		app.logger.Debug("invocation rejected", "op", op, "err", err)
		return nil, err
	}
	write()
	id := app.cms.Commit()

	metrics.InvocationsCounter().WithLabelValues(op, metrics.ResultCommitted).Inc()
	app.logger.Info("committed", "op", op, "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return ctx.EventManager().Events(), nil
}

// Query runs fn against the latest committed state. Writes are discarded.
func (app *App) Query(blockTime time.Time, fn func(ctx sdk.Context) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	cacheCtx, _ := app.newContext(blockTime).CacheContext()
	return fn(cacheCtx)
}

func (app *App) Close() error {
	return app.db.Close()
}
