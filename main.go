package main

import (
	"log"

	"ohnitiel/sodapop/cmd/cli"
	"ohnitiel/sodapop/internal/config"
	"ohnitiel/sodapop/internal/logger"
)

func main() {
	cfg, err := config.Load("./config/config.toml")
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		log.Fatal(err)
	}

	cli.Sodapop(cfg)
}
