package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/pinauth/internal/cli"
	"github.com/dmitrijs2005/pinauth/internal/config"
)

func main() {

	cfg := config.LoadConfig()
	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
