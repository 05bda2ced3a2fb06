package database

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

func GetRedisConfig() *RedisConfig {
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dial_timeout", 3*time.Second)

	return &RedisConfig{
		Addr:        net.JoinHostPort(viper.GetString("redis.host"), viper.GetString("redis.port")),
		Password:    viper.GetString("redis.password"),
		DB:          viper.GetInt("redis.db"),
		DialTimeout: viper.GetDuration("redis.dial_timeout"),
	}
}

// OpenRedis returns nil when Redis is unreachable. Callers treat a nil client as
// "rate limiting and logout revocation disabled".
func OpenRedis(ctx context.Context, cfg *RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("[REDIS] Connection to %s failed, rate limiting and logout revocation disabled: %v", cfg.Addr, err)
		rdb.Close()
		return nil
	}

	log.Printf("[REDIS] Connected to %s", cfg.Addr)
	return rdb
}
