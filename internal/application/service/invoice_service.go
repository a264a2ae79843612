package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/pkg/apperror"
)

// InvoiceKind selects which snapshot to generate.
type InvoiceKind string

const (
	InvoiceKindAdvance InvoiceKind = "advance"
	InvoiceKindDue     InvoiceKind = "due"
)

// InvoiceService freezes point-in-time invoice snapshots onto orders.
// A snapshot is written at most once per kind per order; the conditional
// write in the repository is what enforces it under concurrency.
type InvoiceService struct {
	orderRepo repository.OrderRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(orderRepo repository.OrderRepository) *InvoiceService {
	return &InvoiceService{orderRepo: orderRepo}
}

// Generate writes the invoice snapshot of the given kind onto the order.
func (s *InvoiceService) Generate(ctx context.Context, actor entity.ActorSnapshot, orderID uuid.UUID, kind InvoiceKind) (*entity.Order, error) {
	if actor.Role != enum.RoleAccountant && actor.Role != enum.RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	if kind != InvoiceKindAdvance && kind != InvoiceKindDue {
		return nil, apperror.NewBadRequestError("Unknown invoice kind")
	}

	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.OrderStatus != enum.OrderStatusDispatched && order.OrderStatus != enum.OrderStatusDelivered {
		return nil, apperror.ErrNotYetDispatched
	}
	if order.Party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}

	switch kind {
	case InvoiceKindAdvance:
		if order.InvoiceGenerated() {
			return nil, apperror.ErrAlreadyGenerated
		}
		if order.AdvancePaymentStatus == enum.PaymentStatusRejected {
			return nil, apperror.NewUnprocessableError("Advance payment was rejected, invoice generation is blocked")
		}
		snap := &entity.InvoiceDetails{
			InvoicedBy:    actor,
			TotalAmount:   order.TotalAmount,
			AdvanceAmount: order.AdvanceAmount,
			DueAmount:     order.DueAmount,
			DueDate:       order.DueDate,
			PartyCompany:  order.Party.CompanyName,
			PartyAddress:  order.Party.Address,
			PartyContact:  order.Party.ContactPersonNumber,
			GeneratedAt:   time.Now(),
		}
		applied, err := s.orderRepo.SetInvoiceSnapshot(ctx, orderID, snap)
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, apperror.ErrAlreadyGenerated
		}

	case InvoiceKindDue:
		if order.DueInvoiceGenerated() {
			return nil, apperror.ErrAlreadyGenerated
		}
		if order.DuePaymentStatus == nil || *order.DuePaymentStatus != enum.PaymentStatusApproved {
			return nil, apperror.ErrDuePaymentNotApproved
		}
		paymentMode := ""
		if order.DuePaymentMode != nil {
			paymentMode = *order.DuePaymentMode
		}
		snap := &entity.DueInvoiceDetails{
			InvoicedBy:    actor,
			TotalAmount:   order.TotalAmount,
			AdvanceAmount: order.AdvanceAmount,
			DueAmount:     order.DueAmount,
			DueDate:       order.DueDate,
			PaymentMode:   paymentMode,
			PartyCompany:  order.Party.CompanyName,
			PartyAddress:  order.Party.Address,
			PartyContact:  order.Party.ContactPersonNumber,
			GeneratedAt:   time.Now(),
		}
		applied, err := s.orderRepo.SetDueInvoiceSnapshot(ctx, orderID, snap)
		if err != nil {
			return nil, err
		}
		if !applied {
			return nil, apperror.ErrAlreadyGenerated
		}
	}

	return s.orderRepo.GetWithDetails(ctx, orderID)
}
