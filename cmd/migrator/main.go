package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/catalogpro/catalog/config"
	"github.com/catalogpro/catalog/migrations"
	"github.com/catalogpro/catalog/pkg/logger"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	dsnFlag  = "dsn"
	downFlag = "down"
)

func main() {
	dsn := pflag.StringP(dsnFlag, "d", os.Getenv("CATALOG_STORE_DSN"), "PostgreSQL connection string")
	down := pflag.Int(downFlag, 0, "roll back this many migrations instead of applying")
	level := pflag.String("log-level", "info", "log level")
	pflag.Parse()

	log, err := logger.New(config.Logger{Level: *level, Encoding: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		fallDown()
	}
	defer func() { _ = log.Sync() }()

	if *dsn == "" {
		log.Error("too few args", zap.Error(errors.New("--"+dsnFlag+" flag or CATALOG_STORE_DSN: required")))
		fallDown()
	}

	if *down > 0 {
		err = migrations.Down(*dsn, *down, log)
	} else {
		err = migrations.Up(*dsn, log)
	}
	if err != nil {
		log.Error("failed to migrate", zap.Error(err))
		fallDown()
	}
}

func fallDown() {
	os.Exit(2)
}
