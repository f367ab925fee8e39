package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"go.uber.org/zap"

	"github.com/nodecore/powchain/app/services/node/handlers"
	"github.com/nodecore/powchain/foundation/blockchain/chain"
	"github.com/nodecore/powchain/foundation/blockchain/genesis"
	"github.com/nodecore/powchain/foundation/blockchain/mempool"
	"github.com/nodecore/powchain/foundation/blockchain/miner"
	"github.com/nodecore/powchain/foundation/blockchain/network"
	"github.com/nodecore/powchain/foundation/blockchain/txgen"
	"github.com/nodecore/powchain/foundation/logger"
)

// build is the git version of this program. It can be set at build time with
// -ldflags "-X main.build=...".
var build = "develop"

func main() {
	log, err := logger.New("NODE")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
			PrivateHost     string        `conf:"default:0.0.0.0:9080"`
		}
		Genesis struct {
			File string `conf:"default:"`
		}
		Mining struct {
			Enabled    bool   `conf:"default:true"`
			LambdaMus  uint64 `conf:"default:0"`
			NodeID     string `conf:"default:node1"`
		}
		TxGen struct {
			Enabled      bool          `conf:"default:false"`
			NumAccounts  int           `conf:"default:4"`
			Interval     time.Duration `conf:"default:500ms"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "proof-of-work chain node",
		},
	}

	const prefix = "NODE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// ----------------------------------------------------------------
	// Genesis / Blockchain Support
	// ----------------------------------------------------------------

	gen := genesis.Default()
	if cfg.Genesis.File != "" {
		gen, err = genesis.Load(cfg.Genesis.File)
		if err != nil {
			return fmt.Errorf("loading genesis: %w", err)
		}
	}

	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...), "node", cfg.Mining.NodeID)
	}

	bc := chain.New(gen.Difficulty())
	pool := mempool.New(gen.PoolSizeLimit, gen.BlockSizeLimit)

	hub := network.NewHub(ev)
	netHandle := hub.Register(cfg.Mining.NodeID, bc, pool)

	minerCtx, minerHandle := miner.New(bc, pool, netHandle, gen.MiningStep, ev)
	go minerCtx.Start()
	defer minerHandle.Exit()

	if cfg.Mining.Enabled {
		minerHandle.Start(cfg.Mining.LambdaMus)
	}

	if cfg.TxGen.Enabled {
		genCtx, genHandle, err := txgen.New(pool, cfg.TxGen.NumAccounts, ev)
		if err != nil {
			return fmt.Errorf("constructing transaction generator: %w", err)
		}
		go genCtx.Start()
		defer genHandle.Exit()
		genHandle.Start(cfg.TxGen.Interval)
	}

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	debugMux := handlers.DebugMux(build, log)

	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing V1 public API support")

	publicMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Chain:    bc,
		MemPool:  pool,
	})

	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Start Private Service

	log.Infow("startup", "status", "initializing V1 private API support")

	privateMux := handlers.PrivateMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Chain:    bc,
		MemPool:  pool,
	})

	private := http.Server{
		Addr:         cfg.Web.PrivateHost,
		Handler:      privateMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	go func() {
		log.Infow("startup", "status", "private api router started", "host", private.Addr)
		serverErrors <- private.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancelPub := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancelPub()

		log.Infow("shutdown", "status", "shutdown private API started")
		if err := private.Shutdown(ctx); err != nil {
			private.Close()
			return fmt.Errorf("could not stop private service gracefully: %w", err)
		}

		ctx, cancelPri := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancelPri()

		log.Infow("shutdown", "status", "shutdown public API started")
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public service gracefully: %w", err)
		}
	}

	return nil
}
