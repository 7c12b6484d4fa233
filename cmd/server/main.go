package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/distance"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and
// starts the HTTP server. Both caches are optional: without them every
// request pays the full ORS round trips.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	var matrixCache *cache.SQLMatrixCache
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := cache.InitSchema(pg); err != nil {
			log.Fatal(err)
		}

		matrixCache = cache.NewSQLMatrixCache(pg)
	} else {
		log.Println("DATABASE_URL not set; matrix caching disabled")
	}

	var geocodeCache *cache.RedisGeocodeCache
	if redisAddr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(redisAddr) != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: config.Get("REDIS_PASSWORD", ""),
		})
		geocodeCache = cache.NewRedisGeocodeCache(client)
	} else {
		log.Println("REDIS_ADDR not set; geocode caching disabled")
	}

	provider, err := distance.NewORSMatrixProvider(orsKey, matrixCache, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(provider)

	// Timeouts are tuned for cold-cache matrix retrieval (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
