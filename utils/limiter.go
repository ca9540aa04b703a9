package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Transactional mail throttle: at most one message per recipient per
// minute and ten per hour. Mail is best-effort, so a throttled send is
// silently skipped rather than surfaced to the request.

func CanSendEmail(rdb *redis.Client, to string) bool {
	ctx := context.Background()
	if rdb.Exists(ctx, fmt.Sprintf("mail_minute_%s", to)).Val() > 0 {
		return false
	}
	cnt, _ := rdb.Get(ctx, fmt.Sprintf("mail_hour_%s", to)).Int()
	return cnt < 10
}

func MarkEmailSent(rdb *redis.Client, to string) {
	ctx := context.Background()
	minuteKey := fmt.Sprintf("mail_minute_%s", to)
	hourKey := fmt.Sprintf("mail_hour_%s", to)
	rdb.Set(ctx, minuteKey, 1, 60*time.Second)
	rdb.Incr(ctx, hourKey)
	rdb.Expire(ctx, hourKey, time.Hour)
}
