// Command kvs-server runs the TCP front end for an ignite data directory
// rooted at the process's current working directory.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/internal/engine/boltengine"
	"github.com/iamNilotpal/ignite/internal/engine/kvs"
	"github.com/iamNilotpal/ignite/internal/guard"
	"github.com/iamNilotpal/ignite/internal/server"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
)

// version is reported in the startup log line alongside the chosen engine
// and bind address.
const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", options.DefaultBindAddr, "IP:PORT to listen on")
	requestedEngine := flag.String("engine", "", "storage engine: kvs or sled")
	flag.Parse()

	if *requestedEngine != "" && *requestedEngine != guard.EngineKVS && *requestedEngine != guard.EngineBolt {
		return fmt.Errorf("unknown engine %q: must be %q or %q", *requestedEngine, guard.EngineKVS, guard.EngineBolt)
	}

	dataDir, err := os.Getwd()
	if err != nil {
		return err
	}

	log := logger.New("kvs-server")

	chosen, err := guard.Resolve(dataDir, *requestedEngine)
	if err != nil {
		return err
	}

	var eng engine.Engine
	switch chosen {
	case guard.EngineBolt:
		eng, err = boltengine.Open(dataDir, log)
	default:
		eng, err = kvs.Open(dataDir, log, options.DefaultCompactionThreshold)
	}
	if err != nil {
		return err
	}
	defer eng.Close()

	log.Infow("starting kvs-server", "version", version, "engine", chosen, "addr", *addr)

	srv := server.New(*addr, eng, log)
	return srv.Start()
}
