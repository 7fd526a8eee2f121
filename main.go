package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/session"
	"storefront/internal/telemetry"
)

const serviceName = "storefront"

func main() {
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(serviceName, config.AppEnv.TraceStdout)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Println("[TRACE] [WARN] shutdown:", err)
		}
	}()

	deps := server.Deps{StaticDir: config.AppEnv.StaticDir}

	if config.AppEnv.MemoryMode() {
		log.Println("[DB] [WARN] MONGODB_URI not set, running in memory mode")
		deps.Products = repository.NewMemoryProductStore(repository.DemoProducts()...)
		deps.Users = repository.NewMemoryUserStore()
		deps.Orders = repository.NewMemoryOrderStore()
		deps.Contacts = repository.NewMemoryContactStore()
		deps.Pinger = repository.NoopPinger{}
	} else {
		client, err := database.Connect(config.AppEnv.MongoURI)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		db := client.Database(config.AppEnv.DBName)
		log.Println("[DB] [INFO] MongoDB connected to:", db.Name())

		if err := database.EnsureValidators(db); err != nil {
			log.Printf("[DB] [WARN] schema validator warning: %v", err)
		}
		if err := database.EnsureProductIndexes(db); err != nil {
			log.Printf("[DB] [WARN] product index warning: %v", err)
		}
		if err := database.EnsureUserIndexes(db); err != nil {
			log.Printf("[DB] [WARN] user index warning: %v", err)
		}
		if err := database.EnsureOrderIndexes(db); err != nil {
			log.Printf("[DB] [WARN] order index warning: %v", err)
		}

		deps.Products = repository.NewProductStore(db)
		deps.Users = repository.NewUserStore(db)
		deps.Orders = repository.NewOrderStore(db)
		deps.Contacts = repository.NewContactStore(db)
		deps.Pinger = repository.NewMongoPinger(db)
	}

	var store session.Store
	if config.AppEnv.RedisURL != "" {
		rdb, err := session.DialRedis(ctx, config.AppEnv.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		log.Println("[SESSION] [INFO] using Redis session store")
		store = session.NewRedisStore(rdb)
	} else {
		log.Println("[SESSION] [INFO] using in-memory session store")
		store = session.NewMemoryStore()
	}
	deps.Sessions = session.NewManager(store, config.SessionSecret, config.SessionTTL)

	r := server.NewRouter(deps, gin.Logger(), gin.Recovery())

	srv := &http.Server{
		Addr:              ":" + config.AppEnv.Port,
		Handler:           telemetry.WrapHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("[HTTP] [INFO] listening on", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("[HTTP] [INFO] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("[HTTP] [ERROR] shutdown:", err)
	}
}
