package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/alovak/payment-gateway/bank"
	bankiso8583 "github.com/alovak/payment-gateway/bank/iso8583"
	"github.com/alovak/payment-gateway/internal/middleware"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
)

// App is the main application. It contains all the components of the payment
// gateway and is responsible for starting and stopping them.
type App struct {
	srv     *http.Server
	wg      *sync.WaitGroup
	Addr    string
	logger  *slog.Logger
	config  *Config
	closers []io.Closer
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "gateway"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: config,
	}
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	repo, err := a.buildRepository()
	if err != nil {
		return err
	}

	acquirer, err := a.buildAcquirer()
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(a.logger))

	service := NewService(repo, acquirer, NewValidator(), a.logger)

	api := NewAPI(service, a.logger)
	api.AppendRoutes(router)

	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/-/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := repo.Ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler: router,
	}

	a.wg.Add(1)
	go func() {
		a.logger.Info("http server started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting http server", "err", err)
			}

			a.logger.Info("http server stopped")
		}

		a.wg.Done()
	}()

	return nil
}

func (a *App) buildRepository() (Repository, error) {
	switch a.config.StoreBackend {
	case "mem":
		return NewRepository(), nil
	case "pg":
		if a.config.DatabaseDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for pg backend")
		}
		db, err := sql.Open("postgres", a.config.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxIdleConns(5)
		db.SetMaxOpenConns(10)
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		a.closers = append(a.closers, db)
		return NewPGRepository(db), nil
	case "redis":
		cache := redis.NewClient(&redis.Options{
			Addr:     a.config.RedisAddr,
			Password: a.config.RedisPassword,
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		a.closers = append(a.closers, cache)
		return NewRedisRepository(cache), nil
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND=%s", a.config.StoreBackend)
	}
}

func (a *App) buildAcquirer() (AcquiringBank, error) {
	switch a.config.BankBackend {
	case "http":
		return bank.NewClient(a.config.BankURL, a.config.BankTimeout), nil
	case "iso8583":
		client, err := bankiso8583.NewClient(a.config.BankISO8583Addr, a.config.BankTimeout)
		if err != nil {
			return nil, fmt.Errorf("connecting to acquiring bank: %w", err)
		}
		a.closers = append(a.closers, client)
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported BANK_BACKEND=%s", a.config.BankBackend)
	}
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	a.srv.Shutdown(context.Background())

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Error("closing resource", "err", err)
		}
	}

	a.wg.Wait()

	a.logger.Info("app stopped")
}
