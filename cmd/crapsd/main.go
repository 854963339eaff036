package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/cometbft/cometbft/abci/server"

	"github.com/happybigmtn/gitcraps/internal/app"
)

var CLI struct {
	Home      string `help:"App home directory (state is stored under <home>/app)." default:".gitcraps"`
	Addr      string `help:"ABCI listen address." default:"tcp://127.0.0.1:26658"`
	Transport string `help:"ABCI transport." enum:"socket,grpc" default:"socket"`
	LogLevel  string `help:"Log level." enum:"debug,info,warn,error" default:"info"`
}

func main() {
	kong.Parse(&CLI)

	logger := log.New(os.Stderr)
	switch CLI.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	}

	a, err := app.New(CLI.Home)
	if err != nil {
		logger.Fatal("init app", "err", err)
	}

	srv, err := server.NewServer(CLI.Addr, CLI.Transport, a)
	if err != nil {
		logger.Fatal("create abci server", "err", err)
	}
	if err := srv.Start(); err != nil {
		logger.Fatal("start abci server", "err", err)
	}
	defer func() { _ = srv.Stop() }()

	logger.Info("abci server listening", "addr", CLI.Addr, "transport", CLI.Transport, "home", CLI.Home)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")
}
