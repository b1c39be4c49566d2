package app

import (
	"log"

	"github.com/redis/go-redis/v9"
	"socialnetwork/internal/config"
	"socialnetwork/internal/database"
	"socialnetwork/internal/repository"
	"socialnetwork/internal/service"
	"socialnetwork/internal/session"
	"socialnetwork/internal/storage"
)

// App connects the backing stores and builds the service layer.
// The returned redis client is nil when REDIS_ADDR is unset.
func App(cfg *config.Config) (*database.DB, *redis.Client, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	var store session.Store
	redisClient := session.ConnectRedis(cfg.Redis)
	if redisClient != nil {
		store = session.NewRedisStore(redisClient)
		log.Printf("Sessions are stored in Redis at %s", cfg.Redis.Addr)
	} else {
		log.Printf("REDIS_ADDR is not set, sessions cannot be revoked before they expire")
	}

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, store)

	return db, redisClient, services
}
