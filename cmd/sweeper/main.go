// The sweeper generates due recurring contest instances on a schedule.
// It runs next to the API server; a redis lease keeps concurrent runs
// (overlapping cron fires, or a second replica) from sweeping twice.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/notify"
	"github.com/numanubhani/adminpanel-integration-se/internal/redis"
	"github.com/numanubhani/adminpanel-integration-se/internal/scheduler"
)

const (
	defaultSchedule = "0 * * * *" // hourly, on the hour
	leaseKey        = "sweeper:due-contests"
	leaseTTL        = 5 * time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using process environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	if err := db.Init(databaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	useLease := false
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		redis.InitRedis(addr, os.Getenv("REDIS_USERNAME"), os.Getenv("REDIS_PASSWORD"))
		useLease = true
	}

	var publisher notify.Publisher = notify.Nop{}
	if brokerURL := os.Getenv("MQTT_BROKER_URL"); brokerURL != "" {
		p, err := notify.NewMQTTPublisher(brokerURL, "contest-sweeper")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MQTT broker")
		}
		publisher = p
	}
	defer publisher.Close()

	generator := scheduler.New(db.NewStore(nil), nil)

	sweep := func() {
		ctx := context.Background()
		if useLease {
			ok, err := redis.AcquireLease(ctx, leaseKey, leaseTTL)
			if err != nil || !ok {
				log.Info().Msg("sweep lease held elsewhere, skipping")
				return
			}
			defer redis.ReleaseLease(ctx, leaseKey)
		}

		result, err := generator.Sweep()
		if err != nil {
			log.Error().Err(err).Msg("sweep failed")
			return
		}
		for _, created := range result.Created {
			publisher.ContestGenerated(created)
		}
	}

	// RUN_ONCE supports one-shot invocation from an external scheduler.
	if os.Getenv("RUN_ONCE") == "true" {
		sweep()
		return
	}

	schedule := os.Getenv("SWEEP_SCHEDULE")
	if schedule == "" {
		schedule = defaultSchedule
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, sweep); err != nil {
		log.Fatal().Err(err).Str("schedule", schedule).Msg("invalid sweep schedule")
	}
	c.Start()
	log.Info().Str("schedule", schedule).Msg("sweeper started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := c.Stop()
	<-ctx.Done()
	log.Info().Msg("sweeper stopped")
}
