package app

import (
	"github.com/pantrykit/pantrykit/config"
	"github.com/pantrykit/pantrykit/internal/eventbus"
	"github.com/pantrykit/pantrykit/internal/scan"
	"github.com/pantrykit/pantrykit/internal/store"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// BusProvider provides the change-notification bus
type BusProvider interface {
	Bus() *eventbus.Bus
}

// ProductProvider provides product collection access
type ProductProvider interface {
	ProductStore() *store.ProductStore
}

// ListProvider provides list collection access
type ListProvider interface {
	ListStore() *store.ListStore
}

// ScanProvider provides the scan workflow service
type ScanProvider interface {
	ScanService() *scan.Service
}

// AppContext combines all provider interfaces for full application context.
// Consumers should depend on specific providers or this combined interface.
type AppContext interface {
	ConfigProvider
	BusProvider
	ProductProvider
	ListProvider
	ScanProvider

	// ListRows returns list entries joined with their product records,
	// substituting a placeholder for dangling references.
	ListRows() []ListRow

	// Application lifecycle methods
	Init() error
	Release()
}
