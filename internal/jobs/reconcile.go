package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"railbook/internal/modules/payment"
)

// ReconcileJob periodically checks pending payments against the invoice
// gateway and expires the ones the gateway reports as expired.
type ReconcileJob struct {
	payments *payment.Service
	logger   *logrus.Logger
	stopCh   chan struct{}
	interval time.Duration
}

func NewReconcileJob(payments *payment.Service, logger *logrus.Logger, interval time.Duration) *ReconcileJob {
	return &ReconcileJob{
		payments: payments,
		logger:   logger,
		stopCh:   make(chan struct{}),
		interval: interval,
	}
}

func (j *ReconcileJob) Start() {
	j.logger.WithField("interval", j.interval.String()).Info("Starting payment reconcile job")
	go j.run()
}

func (j *ReconcileJob) Stop() {
	j.logger.Info("Stopping payment reconcile job")
	close(j.stopCh)
}

func (j *ReconcileJob) run() {
	j.runOnce()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.runOnce()
		case <-j.stopCh:
			j.logger.Info("Payment reconcile job stopped")
			return
		}
	}
}

func (j *ReconcileJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := j.payments.CheckUnpaidOrders(ctx)
	if err != nil {
		j.logger.WithError(err).Error("Payment reconcile cycle failed")
		return
	}
	if result.Total == 0 {
		return
	}
	j.logger.WithFields(logrus.Fields{
		"total":     result.Total,
		"processed": result.Processed,
		"expired":   result.Expired,
		"errors":    result.Errors,
	}).Info("Payment reconcile cycle finished")
}
