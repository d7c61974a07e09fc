package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/guijs/guijs-desktop/pkg/app"
	"github.com/guijs/guijs-desktop/pkg/config"
	pkgerrors "github.com/guijs/guijs-desktop/pkg/errors"
	"github.com/guijs/guijs-desktop/pkg/logger"
	"github.com/guijs/guijs-desktop/pkg/node"
	"github.com/guijs/guijs-desktop/pkg/shell"
)

func main() {
	configPath := flag.String("config", os.Getenv("GUIJS_CONFIG"), "Path to a YAML configuration file")
	nodeBinary := flag.String("node", "", "Node.js runtime used to start the server")
	serverPort := flag.Int("port", 0, "Port passed to the server as PORT")
	resourceDir := flag.String("resource-dir", "", "Directory holding the bundled server assets")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format (auto, text, json). Auto uses text for TTY, JSON otherwise")
	flag.Parse()

	// Defaults, then config file, then environment variables
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Command line flags have the highest priority
	if *nodeBinary != "" {
		cfg.NodeBinary = *nodeBinary
	}
	if *serverPort != 0 {
		cfg.ServerPort = *serverPort
	}
	if *resourceDir != "" {
		cfg.ResourceDir = *resourceDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}

	log := logger.NewLogrusLogger(cfg.LogLevel, cfg.LogFormat)
	log = logger.WithComponent(log, "main")

	if err := cfg.Validate(); err != nil {
		err = pkgerrors.WrapWithCode(err, pkgerrors.ErrorCodeInvalidInput, "configuration validation failed")
		log.WithFields(pkgerrors.GetFields(err)).Fatal("Invalid configuration")
	}

	launcher := node.NewLauncher(log,
		node.WithNodeBinary(cfg.NodeBinary),
		node.WithSink(node.NewPrefixSink(os.Stdout, node.DiagnosticPrefix)),
	)
	application := app.New(cfg, launcher, log)

	host := shell.NewWailsShell(shell.Options{
		Title:   cfg.WindowTitle,
		Width:   cfg.WindowWidth,
		Height:  cfg.WindowHeight,
		MainURL: cfg.ServerURL(),
	}, application.Setup, log)

	log.WithField(logger.FieldPort, cfg.ServerPort).Info("Starting desktop shell")
	if err := host.Run(); err != nil {
		log.WithFields(pkgerrors.GetFields(err)).Fatal("Desktop shell failed")
	}

	log.Info("Shutdown complete")
}
