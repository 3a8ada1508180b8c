package main

import (
	"fmt"
	"os"

	"github.com/nqvinh-dev/minishop/config"
	"github.com/nqvinh-dev/minishop/internal/api"
	"github.com/nqvinh-dev/minishop/pkg/logger"
)

func main() {
	lg, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	cfg := config.LoadConfig()
	api.StartServer(cfg, lg.Sugar())
}
