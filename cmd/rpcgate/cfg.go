// Package main is the rpcgate binary: the CLI surface and server wiring
// for the JSON-RPC gateway, grounded in the teacher's
// cmd/rpcdaemon/cli/httpcfg naming and urfave/cli/v2 flag style.
package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/erigontech/rpcgate/concurrency/waitstrategy"
)

// cfg is the assembled, validated configuration built from CLI flags,
// matching Erigon's cmd/rpcdaemon/cli.HttpCfg in purpose if not in name.
type cfg struct {
	Chaindata string
	Target    string

	HTTPPort   int
	EnginePort int
	APISpec    string
	CorsOrigin string

	JWTSecretPath string

	NumContexts  int
	WaitMode     waitstrategy.Mode
	LogVerbosity string
}

var flags = []cli.Flag{
	&cli.StringFlag{Name: "chaindata", Usage: "path to an embedded chaindata directory (local backend, not supported by this build; see DESIGN.md)"},
	&cli.StringFlag{Name: "target", Usage: "host:port of the remote node's gRPC KV/ETHBACKEND/Txpool services"},
	&cli.IntFlag{Name: "http_port", Value: 8545, Usage: "JSON-RPC HTTP listener port"},
	&cli.IntFlag{Name: "engine_port", Value: 8551, Usage: "engine-API HTTP listener port, JWT-protected"},
	&cli.StringFlag{Name: "api_spec", Value: "eth,net,web3", Usage: "comma-separated namespace list to serve"},
	&cli.StringFlag{Name: "cors_origin", Value: "", Usage: "comma-separated allowed CORS origins, empty disables CORS"},
	&cli.StringFlag{Name: "jwt_secret", Value: "", Usage: "path to the engine-API JWT hex secret"},
	&cli.IntFlag{Name: "num_contexts", Value: 4, Usage: "number of reactor contexts in the pool, each running its own pinned background poller"},
	&cli.StringFlag{Name: "wait_mode", Value: "blocking", Usage: "idle strategy for the per-context tx-pool status poller: blocking|yielding|sleeping|spin_wait|busy_spin"},
	&cli.StringFlag{Name: "log_verbosity", Value: "info", Usage: "debug|info|warn|error"},
}

// buildCfg validates the parsed flags, matching spec.md §6's CLI
// validation rules: num_contexts >0, wait_mode against the five-variant
// enum, one of chaindata/target required.
func buildCfg(c *cli.Context) (*cfg, error) {
	chaindata := c.String("chaindata")
	target := c.String("target")
	if chaindata == "" && target == "" {
		return nil, fmt.Errorf("one of --chaindata or --target is required")
	}

	numContexts := c.Int("num_contexts")
	if numContexts <= 0 {
		return nil, fmt.Errorf("num_contexts must be > 0, got %d", numContexts)
	}
	mode, err := waitstrategy.ParseMode(c.String("wait_mode"))
	if err != nil {
		return nil, err
	}

	return &cfg{
		Chaindata:     chaindata,
		Target:        target,
		HTTPPort:      c.Int("http_port"),
		EnginePort:    c.Int("engine_port"),
		APISpec:       c.String("api_spec"),
		CorsOrigin:    c.String("cors_origin"),
		JWTSecretPath: c.String("jwt_secret"),
		NumContexts:   numContexts,
		WaitMode:      mode,
		LogVerbosity:  c.String("log_verbosity"),
	}, nil
}
