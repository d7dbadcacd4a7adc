// Package main provides the entry point for the kessan CLI application.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tmori/kessan-cli/cmd/division"
	"tmori/kessan-cli/cmd/export"
	"tmori/kessan-cli/cmd/industry"
	"tmori/kessan-cli/cmd/load"
	"tmori/kessan-cli/cmd/rank"
	"tmori/kessan-cli/cmd/root"
	"tmori/kessan-cli/cmd/seed"
	"tmori/kessan-cli/cmd/segment"
	"tmori/kessan-cli/cmd/summary"
	"tmori/kessan-cli/cmd/transform"
	"tmori/kessan-cli/cmd/trend"
)

func init() {
	// Load environment variables before any logging happens so
	// LOG_LEVEL from .env applies to the very first log lines.
	loadEnvSilently()
	configureLogLevel()

	root.Init()

	root.Cmd.AddCommand(load.Cmd)
	root.Cmd.AddCommand(transform.Cmd)
	root.Cmd.AddCommand(seed.Cmd)
	root.Cmd.AddCommand(trend.Cmd)
	root.Cmd.AddCommand(segment.Cmd)
	root.Cmd.AddCommand(rank.Cmd)
	root.Cmd.AddCommand(industry.Cmd)
	root.Cmd.AddCommand(division.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevel sets the global logrus level from LOG_LEVEL before
// any logger instance emits output.
func configureLogLevel() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
