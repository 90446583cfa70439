package app

import (
	"context"
	"database/sql"

	"go-sweet-storefront/internal/auth"
	"go-sweet-storefront/internal/cart"
	"go-sweet-storefront/internal/catalog"
	"go-sweet-storefront/internal/config"
	"go-sweet-storefront/internal/httpclient"
	"go-sweet-storefront/internal/orderlog"
	"go-sweet-storefront/internal/payment"
	"go-sweet-storefront/internal/razorpay"
	"go-sweet-storefront/internal/session"
	"go-sweet-storefront/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired storefront: one session owner, one cart owner, and
// the services the UI layer calls.
type App struct {
	Session  *session.Store
	Cart     *cart.Cart
	Auth     auth.Service
	Catalog  catalog.Service
	Payments payment.Service
	Gateway  razorpay.Gateway
	OrderLog orderlog.Log
	Logger   *zap.Logger
}

// BuildApp wires infrastructure, services, and state stores, mirroring
// the dependency order the backend project uses.
func BuildApp(cfg config.Config, nav session.Navigator, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// 1. Local persisted state
	local, err := storage.NewFile(cfg.StateFile)
	if err != nil {
		return nil, err
	}

	// 2. Session + HTTP transport
	sessionStore := session.NewStore(session.Deps{
		Local:     local,
		Navigator: nav,
		Logger:    logger,
	})
	client := httpclient.New(httpclient.Deps{
		BaseURL: cfg.APIBaseURL,
		Session: sessionStore,
		Logger:  logger,
	})

	// 3. Cart, cleared whenever the session ends
	shoppingCart := cart.New()
	sessionStore.OnLogout(shoppingCart.Clear)

	// 4. Order history backend
	orderLog, err := buildOrderLog(cfg, local)
	if err != nil {
		return nil, err
	}

	// 5. Payment gateway
	var gateway razorpay.Gateway
	if cfg.RazorpaySandbox {
		gateway = razorpay.NewSandbox(cfg.RazorpayKeySecret)
	} else {
		gateway = razorpay.NewGateway(razorpay.Deps{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
			Logger:    logger,
		})
	}

	// 6. Services
	return &App{
		Session: sessionStore,
		Cart:    shoppingCart,
		Auth: auth.NewService(auth.Deps{
			Client:  client,
			Session: sessionStore,
			Logger:  logger,
		}),
		Catalog: catalog.NewService(catalog.Deps{
			Client: client,
			Logger: logger,
		}),
		Payments: payment.NewService(payment.Deps{
			Client: client,
			Logger: logger,
		}),
		Gateway:  gateway,
		OrderLog: orderLog,
		Logger:   logger,
	}, nil
}

func buildOrderLog(cfg config.Config, local storage.Store) (orderlog.Log, error) {
	switch cfg.OrderLogBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return orderlog.NewRedis(rdb), nil
	case "postgres":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pg := orderlog.NewPostgres(db)
		if err := pg.Schema(context.Background()); err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return orderlog.NewLocal(local), nil
	}
}
