package db

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the shared client. Redis is an optional dependency:
// cache and rate-limit paths fail open when it is down.
func InitRedis(addr, password string, database int) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})

	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("Could not connect to Redis: %v", err)
	} else {
		log.Println("Successfully connected to Redis")
	}
}

func CloseRedis() {
	if RedisClient != nil {
		_ = RedisClient.Close()
	}
}
