package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pantrykit/pantrykit/config"
	"github.com/pantrykit/pantrykit/internal/eventbus"
	"github.com/pantrykit/pantrykit/internal/lookup"
	"github.com/pantrykit/pantrykit/internal/scan"
	"github.com/pantrykit/pantrykit/internal/store"
)

// Application owns the wiring: configuration, logger, persistence backend,
// event bus, the two stores, the lookup orchestrator and the scan service.
type Application struct {
	appConfig *config.AppConfig
	backend   store.Backend
	bus       *eventbus.Bus
	products  *store.ProductStore
	list      *store.ListStore
	resolver  *lookup.Orchestrator
	scanSvc   *scan.Service
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider  = (*Application)(nil)
	_ BusProvider     = (*Application)(nil)
	_ ProductProvider = (*Application)(nil)
	_ ListProvider    = (*Application)(nil)
	_ ScanProvider    = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Bus() *eventbus.Bus {
	return a.bus
}

func (a *Application) ProductStore() *store.ProductStore {
	return a.products
}

func (a *Application) ListStore() *store.ListStore {
	return a.list
}

func (a *Application) ScanService() *scan.Service {
	return a.scanSvc
}

// OverrideBackend replaces the persistence backend (used in tests).
func (a *Application) OverrideBackend(backend store.Backend) {
	a.backend = backend
	a.wire()
}

// Init builds the logger, opens the persistence backend under the workdir,
// wires the stores and seeds the product collection.
func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger()

	if err := os.MkdirAll(cfg.System.Workdir, 0755); err != nil {
		return err
	}
	backend, err := store.OpenBolt(cfg.StoragePath())
	if err != nil {
		return err
	}
	a.backend = backend
	a.wire()

	a.products.Init()
	zap.S().Infof("storage ready: %s", cfg.StoragePath())
	return nil
}

func (a *Application) wire() {
	a.bus = eventbus.New()
	a.products = store.NewProductStore(a.backend, a.bus)
	a.list = store.NewListStore(a.backend, a.bus)
	remote := lookup.NewOpenFoodFactsClient(a.appConfig.Resolver.BaseURL, a.appConfig.ResolverTimeout())
	a.resolver = lookup.NewOrchestrator(a.products, remote)
	a.scanSvc = scan.NewService(a.products, a.list, a.resolver)
}

func (a *Application) initLogger() {
	cfg := a.appConfig

	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Release releases application resources.
func (a *Application) Release() {
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			zap.S().Warnf("backend close: %v", err)
		}
	}
	_ = zap.L().Sync()
}
