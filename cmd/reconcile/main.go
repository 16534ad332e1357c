package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"railbook/internal/config"
	"railbook/internal/database"
	"railbook/internal/gateway/xendit"
	"railbook/internal/modules/payment"
	"railbook/internal/repository"
)

// One-shot reconciliation sweep for cron. The API server runs the same check
// on a ticker; this binary exists for deployments that prefer external
// scheduling.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	gateway := xendit.New(cfg.Xendit.BaseURL, cfg.Xendit.SecretKey, cfg.Xendit.Timeout)
	service := payment.NewService(repository.NewPaymentStore(db), gateway, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := service.CheckUnpaidOrders(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Reconciliation failed")
	}

	logger.WithFields(logrus.Fields{
		"total":     result.Total,
		"processed": result.Processed,
		"expired":   result.Expired,
		"errors":    result.Errors,
	}).Info("Reconciliation completed")
}
