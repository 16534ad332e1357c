package booking

import (
	"context"

	"railbook/internal/domain"
	"railbook/internal/gateway/xendit"
)

// InvoiceCreator is the slice of the payment gateway the orchestrator needs.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, req xendit.CreateInvoiceRequest) (*xendit.Invoice, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
