package utils

import (
	"context"

	"github.com/go-redis/redis/v8"
)

var redisClient *redis.Client

func SetRedis(client *redis.Client) {
	redisClient = client
}

func GetRedis() *redis.Client {
	return redisClient
}

var ctx = context.Background()

func RedisCtx() context.Context {
	return ctx
}

// Redis key builders. Session-scoped state (staged reset identifier,
// recently viewed tips) lives under the browser session id from the
// eco_session cookie, so two browsers never share it.

func ResetStageKey(sessionID string) string {
	return "reset:stage:" + sessionID
}

func RecentTipsKey(sessionID string) string {
	return "recent:tips:" + sessionID
}

func TokenBlacklistKey(token string) string {
	return "blacklist:" + token
}
