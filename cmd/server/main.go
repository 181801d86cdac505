package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/notify"
	"github.com/numanubhani/adminpanel-integration-se/internal/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using process environment")
	}

	env := LoadEnvironment()

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	var publisher notify.Publisher = notify.Nop{}
	if env.MQTTBrokerURL != "" {
		p, err := notify.NewMQTTPublisher(env.MQTTBrokerURL, "contest-server")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MQTT broker")
		}
		publisher = p
	}
	defer publisher.Close()

	store := db.NewStore(nil)
	fileStorage := InitStorage(env)

	if env.AdminEmail != "" {
		ensureAdmin(store, env.AdminEmail)
	}

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	RegisterRoutes(r, env, store, fileStorage, publisher)

	log.Info().Str("address", env.ServerAddress).Msg("server listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// ensureAdmin grants the admin capability to the account named by
// ADMIN_EMAIL. The account must already exist; further admins are
// granted the same way.
func ensureAdmin(store db.Store, email string) {
	user, err := store.GetUserByEmail(email)
	if err != nil {
		log.Warn().Str("email", email).Msg("admin bootstrap: account does not exist yet")
		return
	}
	profile, err := store.GetProfileByUserID(user.ID)
	if err != nil {
		log.Warn().Str("email", email).Msg("admin bootstrap: account has no profile")
		return
	}
	if _, err := store.GetAdminByUserID(user.ID); err == nil {
		return
	}
	if _, err := store.CreateAdmin(profile.ID); err != nil {
		log.Error().Err(err).Str("email", email).Msg("admin bootstrap failed")
		return
	}
	log.Info().Str("email", email).Msg("granted admin capability")
}
