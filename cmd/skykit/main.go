package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/skykit/internal/client/cli"
	"github.com/dmitrijs2005/skykit/internal/client/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := cli.NotifyContext(context.Background())
	defer cancel()

	app, closeFn, err := cli.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeFn()

	app.Run(ctx)
}
