package main

import (
	"log"

	"github.com/af-Athameem/gtruth/internal/bootstrap"
	"github.com/af-Athameem/gtruth/internal/config"
	"github.com/af-Athameem/gtruth/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
