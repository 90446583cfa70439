// Command mockapi serves an in-memory sweet-shop backend on localhost,
// for developing the storefront without the real service.
package main

import (
	"log"
	"net/http"
	"time"

	"go-sweet-storefront/internal/catalog"
	"go-sweet-storefront/internal/config"
	"go-sweet-storefront/internal/mockapi"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	server := mockapi.New(mockapi.Config{
		JWTSecret:         cfg.MockJWTSecret,
		RazorpayKeySecret: cfg.RazorpayKeySecret,
		Logger:            logger,
	})
	if err := server.SeedAdmin("admin@sweetshop.dev", "admin123"); err != nil {
		log.Fatal(err)
	}
	server.Seed(seedSweets())

	addr := ":" + cfg.MockPort
	logger.Info("mock backend listening", zap.String("addr", addr))

	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func seedSweets() []catalog.Sweet {
	price := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}
	return []catalog.Sweet{
		{ID: uuid.NewString(), Name: "Kaju Katli", Category: "Barfi", Price: price("45.50"), Quantity: 20},
		{ID: uuid.NewString(), Name: "Gulab Jamun", Category: "Syrup", Price: price("12.00"), Quantity: 50},
		{ID: uuid.NewString(), Name: "Rasgulla", Category: "Syrup", Price: price("10.00"), Quantity: 35},
		{ID: uuid.NewString(), Name: "Motichoor Ladoo", Category: "Ladoo", Price: price("18.25"), Quantity: 0},
		{ID: uuid.NewString(), Name: "Mysore Pak", Category: "Ghee", Price: price("30.00"), Quantity: 8},
	}
}
