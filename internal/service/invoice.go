package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type invoiceService struct {
	store repository.Store
}

func NewInvoiceService(store repository.Store) InvoiceService {
	return &invoiceService{store: store}
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int32) (*domain.Invoice, error) {
	return s.store.Invoices().GetByID(ctx, id)
}

func (s *invoiceService) GetInvoiceByRental(ctx context.Context, rentalID int32) (*domain.Invoice, error) {
	return s.store.Invoices().GetByRentalID(ctx, rentalID)
}

func (s *invoiceService) ListInvoices(ctx context.Context, paymentStatus domain.PaymentStatus) ([]domain.Invoice, error) {
	return s.store.Invoices().List(ctx, paymentStatus)
}

// UpdateInvoiceFees adjusts the fee fields on a pending invoice and rebuilds
// the total from the stored base and tax amounts. Base and tax are never
// re-derived here. Applying the same patch twice yields the same total.
func (s *invoiceService) UpdateInvoiceFees(ctx context.Context, id int32, patch domain.InvoicePatch) (*domain.Invoice, error) {
	var invoice *domain.Invoice
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		invoice, err = tx.Invoices().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if invoice.PaymentStatus != domain.PaymentStatusPending {
			return domain.NewInvalidStateError("invoice %d is %s, only pending invoices can be adjusted", id, invoice.PaymentStatus)
		}

		if patch.LateFeeCents != nil {
			invoice.LateFeeCents = *patch.LateFeeCents
		}
		if patch.DamageFeeCents != nil {
			invoice.DamageFeeCents = *patch.DamageFeeCents
		}
		if patch.OtherChargesCents != nil {
			invoice.OtherChargesCents = *patch.OtherChargesCents
		}
		if patch.Notes != nil {
			invoice.Notes = *patch.Notes
		}
		if invoice.LateFeeCents < 0 || invoice.DamageFeeCents < 0 || invoice.OtherChargesCents < 0 {
			return domain.NewValidationError("fee amounts must not be negative")
		}

		invoice.TotalAmountCents = utils.RecomputeInvoiceTotalCents(invoice.BaseAmountCents,
			invoice.LateFeeCents, invoice.DamageFeeCents, invoice.OtherChargesCents, invoice.TaxAmountCents)

		return tx.Invoices().UpdateFees(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("invoice fees updated", "invoice_id", id, "total_cents", invoice.TotalAmountCents)
	return invoice, nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, id int32, status domain.PaymentStatus, method string) (*domain.Invoice, error) {
	if status != domain.PaymentStatusPaid && status != domain.PaymentStatusRefunded {
		return nil, domain.NewValidationError("payment status must be paid or refunded")
	}

	var invoice *domain.Invoice
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		invoice, err = tx.Invoices().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !invoice.PaymentStatus.CanTransitionTo(status) {
			return domain.NewInvalidStateError("invoice %d is %s and cannot become %s", id, invoice.PaymentStatus, status)
		}
		invoice.PaymentStatus = status
		invoice.PaymentMethod = method
		return tx.Invoices().UpdatePayment(ctx, id, status, method)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("invoice payment recorded", "invoice_id", id, "status", status, "method", method)
	return invoice, nil
}
