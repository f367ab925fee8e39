// Package handlers constructs the HTTP muxes the node process listens on:
// a debug mux exposing the standard pprof endpoints, and the public/private
// v1 API muxes built from foundation/web.
package handlers

import (
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	"go.uber.org/zap"

	v1 "github.com/nodecore/powchain/app/services/node/handlers/v1"
	"github.com/nodecore/powchain/foundation/blockchain/chain"
	"github.com/nodecore/powchain/foundation/blockchain/mempool"
	"github.com/nodecore/powchain/foundation/web"
)

// DebugMux registers the standard library's debug endpoints (pprof,
// expvar) on their own mux, kept off the public/private API surface.
func DebugMux(build string, log *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	expvar.NewString("build").Set(build)

	return mux
}

// MuxConfig carries the systems a mux needs to construct its handlers.
type MuxConfig struct {
	Shutdown chan os.Signal
	Log      *zap.SugaredLogger
	Chain    *chain.Blockchain
	MemPool  *mempool.MemPool
}

// PublicMux constructs the mux for the publicly reachable v1 API.
func PublicMux(cfg MuxConfig) http.Handler {
	app := web.NewApp()

	v1.PublicRoutes(app, v1.Config{
		Log:     cfg.Log,
		Chain:   cfg.Chain,
		MemPool: cfg.MemPool,
	})

	return app
}

// PrivateMux constructs the mux for the node-to-node v1 API.
func PrivateMux(cfg MuxConfig) http.Handler {
	app := web.NewApp()

	v1.PrivateRoutes(app, v1.Config{
		Log:     cfg.Log,
		Chain:   cfg.Chain,
		MemPool: cfg.MemPool,
	})

	return app
}
