package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	mw "github.com/okarpov/bookshelf-api/internal/api/middlewares"
	"github.com/okarpov/bookshelf-api/internal/api/router"
	"github.com/okarpov/bookshelf-api/internal/repository/sqlconnect"
	"github.com/okarpov/bookshelf-api/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlconnect.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Connected to Postgres")

	rdb := connectRedis()

	mws := []utils.Middleware{
		mw.Cors,
		mw.ResponseTime,
		mw.RequestID,
		mw.Recovery,
		mw.BodySizeLimit,
	}
	if rdb != nil {
		tb := mw.NewRedisTokenBucket(rdb, 5, 20, mw.PerIPKey("tb"))
		mws = append(mws, tb.Middleware)
	}
	mws = append(mws, mw.SecurityHeaders)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           utils.ApplyMiddleware(router.Router(db), mws...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		if rdb != nil {
			_ = rdb.Close()
		}
	}()

	log.Println("Server is running on port:", port)

	cert, key := os.Getenv("CERT_FILE"), os.Getenv("KEY_FILE")
	if cert != "" && key != "" {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln("Error starting server:", err)
	}
}

// connectRedis wires the rate limiter store. Missing config is not fatal;
// the API just runs without rate limiting.
func connectRedis() *redis.Client {
	var rdb *redis.Client

	if url := os.Getenv("UPSTASH_REDIS_URL"); url != "" {
		opt, err := redis.ParseURL(url) // e.g. rediss://default:<token>@host:port
		if err != nil {
			log.Fatalf("invalid UPSTASH_REDIS_URL: %v", err)
		}
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		rdb = redis.NewClient(opt)
	} else if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         addr,
			Username:     os.Getenv("REDIS_USER"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DB:           0,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
	} else {
		log.Println("[redis] not configured, rate limiting disabled")
		return nil
	}

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Println("Connected to Redis")
	return rdb
}
