package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okarpov/bookshelf-api/internal/api/httpx"
)

type KeyFunc func(r *http.Request) string

// PerIPKey keys the bucket per client IP. Swap for a per-user key once the
// API grows an identity.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For may carry a list: client, proxy1, proxy2...
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// RedisTokenBucket is a shared token bucket; the refill happens atomically
// in Redis so every instance sees the same budget.
type RedisTokenBucket struct {
	rdb      *redis.Client
	keyFn    KeyFunc
	ratePerS float64
	burst    int
	script   *redis.Script
}

func NewRedisTokenBucket(rdb *redis.Client, ratePerSecond float64, burst int, keyFn KeyFunc) *RedisTokenBucket {
	lua := `
-- KEYS[1] = bucket key (hash with fields: tokens, ts)
-- ARGV[1] = refill rate per second
-- ARGV[2] = capacity
-- Returns: {allowed (1/0), remaining, retry_after_ms}
local key  = KEYS[1]
local rate = tonumber(ARGV[1])
local cap  = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = (tonumber(t[1]) * 1000) + math.floor(tonumber(t[2]) / 1000)

local data   = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = cap
  ts = now_ms
end

tokens = math.min(cap, tokens + (now_ms - ts) / 1000.0 * rate)

local allowed = 0
local retry_ms = 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
else
  retry_ms = math.ceil((1 - tokens) / rate * 1000)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now_ms)
redis.call('PEXPIRE', key, math.ceil(cap / rate * 1000) * 2)

return {allowed, tostring(tokens), retry_ms}
`
	return &RedisTokenBucket{
		rdb:      rdb,
		keyFn:    keyFn,
		ratePerS: ratePerSecond,
		burst:    burst,
		script:   redis.NewScript(lua),
	}
}

func (tb *RedisTokenBucket) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := tb.script.Run(r.Context(), tb.rdb,
			[]string{tb.keyFn(r)},
			strconv.FormatFloat(tb.ratePerS, 'f', -1, 64),
			strconv.Itoa(tb.burst),
		).Slice()
		if err != nil || len(res) != 3 {
			// Redis trouble never takes the API down; let the request pass.
			next.ServeHTTP(w, r)
			return
		}

		allowed, _ := res[0].(int64)
		retryMS, _ := res[2].(int64)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(tb.burst))
		if rem, ok := res[1].(string); ok {
			w.Header().Set("X-RateLimit-Remaining", rem)
		}

		if allowed != 1 {
			retry := time.Duration(retryMS) * time.Millisecond
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds()+1)))
			httpx.ErrorJSON(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
