package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	cc "github.com/erigontech/rpcgate/concurrency"
	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/gointerfaces/txpool"
	"github.com/erigontech/rpcgate/jsonrpc"
	"github.com/erigontech/rpcgate/kvcache"
	"github.com/erigontech/rpcgate/log"
	"github.com/erigontech/rpcgate/rawdb"
	"github.com/erigontech/rpcgate/rpc"
)

func main() {
	app := &cli.App{
		Name:  "rpcgate",
		Usage: "JSON-RPC gateway fronting an Ethereum execution node",
		Flags: flags,
		Action: func(c *cli.Context) error {
			config, err := buildCfg(c)
			if err != nil {
				return err
			}
			return run(config)
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "rpcgate:", err)
		os.Exit(1)
	}
}

// run wires the reactor pool, coherent cache, state-changes ingester and
// both HTTP listeners, then blocks until SIGINT/SIGTERM.
func run(config *cfg) error {
	logger := log.New(config.LogVerbosity)

	if config.Chaindata != "" && config.Target == "" {
		return errors.New("--chaindata (embedded/local backend) is accepted for CLI-surface parity with the teacher but is not implemented by this build: this gateway only speaks the remote KV/ETHBACKEND/Txpool gRPC protocol, never an on-disk store directly; pass --target instead (see DESIGN.md)")
	}

	clients, conn, err := dialRemote(config.Target)
	if err != nil {
		return errors.Wrap(err, "dialing remote node")
	}
	if conn != nil {
		defer conn.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := kvcache.New(kvcache.DefaultConfig())
	blockCache := rawdb.NewBlockCache(1024)
	pool := cc.NewPool(ctx, config.NumContexts, clients, cache, blockCache, logger)
	defer pool.Join()
	defer pool.Stop()

	ingester := kvcache.NewStateChangesIngester(cache, clients.KV, logger)
	go ingester.Run(ctx)

	gauges := newTxpoolGauges()
	pool.RunWorkers(config.WaitMode, gauges.poll)

	api := &jsonrpc.API{Pool: pool}
	server := rpc.NewServer(config.APISpec, api.Namespaces(), logger)

	corsOrigins := splitNonEmpty(config.CorsOrigin)
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.HTTPPort),
		Handler: withMetrics(server.HTTPHandler(corsOrigins)),
	}

	var engineSrv *http.Server
	if config.JWTSecretPath != "" {
		secret, err := readJWTSecret(config.JWTSecretPath)
		if err != nil {
			return errors.Wrap(err, "reading jwt secret")
		}
		engineServer := rpc.NewServer("engine", api.Namespaces(), logger)
		engineSrv = &http.Server{
			Addr:    fmt.Sprintf(":%d", config.EnginePort),
			Handler: rpc.JWTAuth(secret)(engineServer.HTTPHandler(nil)),
		}
	}

	errs := make(chan error, 2)
	go func() { errs <- listenAndServe(httpSrv, "json-rpc", logger) }()
	if engineSrv != nil {
		go func() { errs <- listenAndServe(engineSrv, "engine-api", logger) }()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	if engineSrv != nil {
		_ = engineSrv.Shutdown(shutdownCtx)
	}
	return nil
}

func listenAndServe(srv *http.Server, name string, logger log.Logger) error {
	logger.Info("listening", "server", name, "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrapf(err, "%s listener", name)
	}
	return nil
}

// dialRemote opens one shared grpc.ClientConn to target and builds the
// four memoized service stubs every Context in the pool shares, per
// concurrency.Clients' doc comment.
func dialRemote(target string) (cc.Clients, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return cc.Clients{}, nil, err
	}
	return cc.Clients{
		KV:      remote.NewKVClient(conn),
		Backend: remote.NewETHBACKENDClient(conn),
		Txpool:  txpool.NewTxpoolClient(conn),
		Mining:  txpool.NewMiningClient(conn),
	}, conn, nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// withMetrics exposes the process's VictoriaMetrics counters (kvcache
// hits/misses/evictions among them) alongside the JSON-RPC handler.
func withMetrics(next http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", next)
	mux.HandleFunc("/debug/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	return mux
}
