// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pinset/internal/adapters/hash"
	_ "go.trai.ch/pinset/internal/adapters/lockstore"
	_ "go.trai.ch/pinset/internal/adapters/logger"
	_ "go.trai.ch/pinset/internal/adapters/manifest"
	_ "go.trai.ch/pinset/internal/adapters/telemetry"
	_ "go.trai.ch/pinset/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/pinset/internal/app"
)
