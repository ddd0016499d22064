// Package billing cubre pedidos de venta, pagos y facturas. Es CRUD
// plano: no deriva contra el kardex.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/javrojas/Almacen-api/internal/application/dto"
	"github.com/javrojas/Almacen-api/internal/domain"
	"github.com/javrojas/Almacen-api/internal/domain/entity"
	"github.com/javrojas/Almacen-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción,
// pasando repositorios de facturación atados a esa tx.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		paymentRepo repository.PaymentRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// UseCase casos de uso de facturación.
type UseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	invoices repository.InvoiceRepository
	tx       BillingTxRunner
}

func NewUseCase(orders repository.OrderRepository, payments repository.PaymentRepository, invoices repository.InvoiceRepository, tx BillingTxRunner) *UseCase {
	return &UseCase{orders: orders, payments: payments, invoices: invoices, tx: tx}
}

// CreateOrder alta de un pedido.
func (uc *UseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*entity.Order, error) {
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: el pedido requiere cliente", domain.ErrInvalidInput)
	}
	if !req.Total.IsPositive() {
		return nil, fmt.Errorf("%w: el total debe ser mayor que cero", domain.ErrInvalidInput)
	}
	o := &entity.Order{
		ID:           uuid.NewString(),
		CustomerName: req.CustomerName,
		Status:       entity.OrderStatusPending,
		Total:        req.Total.Round(2),
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    userID,
	}
	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("%w: crear pedido: %v", domain.ErrDataAccess, err)
	}
	return o, nil
}

// GetOrder devuelve un pedido o ErrNotFound.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar pedido: %v", domain.ErrDataAccess, err)
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return o, nil
}

// ListOrders pedidos paginados.
func (uc *UseCase) ListOrders(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	os, err := uc.orders.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: listar pedidos: %v", domain.ErrDataAccess, err)
	}
	return os, nil
}

func validMethod(m string) bool {
	return m == entity.PaymentMethodCash || m == entity.PaymentMethodTransfer || m == entity.PaymentMethodCard
}

// RegisterPayment abona a un pedido. Si el acumulado alcanza el total,
// el pedido pasa a pagado dentro de la misma transacción.
func (uc *UseCase) RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest, userID string) (*entity.Payment, error) {
	if !validMethod(req.Method) {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, req.Method)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
	}

	order, err := uc.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: el pedido está cancelado", domain.ErrInvalidInput)
	}

	paid, err := uc.payments.SumByOrder(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: sumar pagos: %v", domain.ErrDataAccess, err)
	}

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	p := &entity.Payment{
		ID:        uuid.NewString(),
		OrderID:   req.OrderID,
		Method:    req.Method,
		Amount:    req.Amount.Round(2),
		PaidAt:    paidAt,
		CreatedAt: time.Now().UTC(),
		CreatedBy: userID,
	}

	covered := paid.Add(p.Amount).GreaterThanOrEqual(order.Total)
	err = uc.tx.RunBilling(ctx, func(
		orderRepo repository.OrderRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.InvoiceRepository,
	) error {
		if err := paymentRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("%w: registrar pago: %v", domain.ErrDataAccess, err)
		}
		if covered {
			if err := orderRepo.UpdateStatus(ctx, req.OrderID, entity.OrderStatusPaid); err != nil {
				return fmt.Errorf("%w: actualizar pedido: %v", domain.ErrDataAccess, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPayments pagos paginados.
func (uc *UseCase) ListPayments(ctx context.Context, limit, offset int) ([]*entity.Payment, error) {
	ps, err := uc.payments.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: listar pagos: %v", domain.ErrDataAccess, err)
	}
	return ps, nil
}

// CreateInvoice emite una factura sobre un pedido. El neto se deriva
// del total del pedido y la tasa de impuesto recibida.
func (uc *UseCase) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*entity.Invoice, error) {
	if req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: tasa de impuesto fuera de rango", domain.ErrInvalidInput)
	}
	order, err := uc.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: el pedido está cancelado", domain.ErrInvalidInput)
	}

	// total = neto * (1 + tasa)
	one := decimal.NewFromInt(1)
	net := order.Total.Div(one.Add(req.TaxRate)).Round(2)
	tax := order.Total.Sub(net)

	var inv *entity.Invoice
	err = uc.tx.RunBilling(ctx, func(
		_ repository.OrderRepository,
		_ repository.PaymentRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		seq, err := invoiceRepo.NextNumber(ctx)
		if err != nil {
			return fmt.Errorf("%w: consecutivo de factura: %v", domain.ErrDataAccess, err)
		}
		inv = &entity.Invoice{
			ID:         uuid.NewString(),
			Number:     fmt.Sprintf("FV-%06d", seq),
			OrderID:    order.ID,
			NetTotal:   net,
			TaxTotal:   tax,
			GrandTotal: order.Total,
			IssuedAt:   time.Now().UTC(),
			CreatedAt:  time.Now().UTC(),
			CreatedBy:  userID,
		}
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return fmt.Errorf("%w: crear factura: %v", domain.ErrDataAccess, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInvoice devuelve una factura o ErrNotFound.
func (uc *UseCase) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: consultar factura: %v", domain.ErrDataAccess, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return inv, nil
}

// ListInvoices facturas paginadas.
func (uc *UseCase) ListInvoices(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	is, err := uc.invoices.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: listar facturas: %v", domain.ErrDataAccess, err)
	}
	return is, nil
}
