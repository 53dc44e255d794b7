package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"museum/app"
	"museum/config"
	"museum/db"
	"museum/tracing"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if flags.WroteHelp(err) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Parse already rejected unknown levels
	level, _ := cfg.Level()
	log.Init(level)

	if err := run(cfg); err != nil {
		logrus.WithError(err).Fatal("museum stopped")
	}
}

func run(cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	traceProvider, err := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint, cfg.GatewayAddr)
	if err != nil {
		return err
	}

	dbConn, err := db.Open(cfg.PostgresURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	a, err := app.New(cfg, dbConn, redisClient, traceProvider)
	if err != nil {
		return err
	}

	return a.Run(ctx)
}
