package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/pethaven/pethaven-api/internal/domains/orders/domain"
	"github.com/pethaven/pethaven-api/internal/domains/orders/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

const tracerName = "github.com/pethaven/pethaven-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// CheckoutCOD places a cash-on-delivery order.
func (s *Service) CheckoutCOD(ctx context.Context, input ports.CheckoutInput) (*ports.OrderProjection, error) {
	return s.checkout(ctx, "Service.CheckoutCOD", input, s.inner.CheckoutCOD)
}

// CheckoutGateway places a gateway-paid order.
func (s *Service) CheckoutGateway(ctx context.Context, input ports.CheckoutInput) (*ports.OrderProjection, error) {
	return s.checkout(ctx, "Service.CheckoutGateway", input, s.inner.CheckoutGateway)
}

// ConfirmPayment finalizes a gateway order after signature verification.
func (s *Service) ConfirmPayment(ctx context.Context, input ports.ConfirmPaymentInput) (*ports.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ConfirmPayment",
		attribute.String("order.gateway_order_id", input.GatewayOrderID),
	)
	defer span.End()

	s.logInfo(ctx, "confirming payment", slog.String("gateway.order_id", input.GatewayOrderID))
	result, err := s.inner.ConfirmPayment(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm payment", slog.String("gateway.order_id", input.GatewayOrderID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordPaid(ctx)
		s.logInfo(ctx, "payment confirmed", slog.Int64("order.id", result.Entity.ID))
	}
	return result, nil
}

// Cancel cancels an order, refunding when paid.
func (s *Service) Cancel(ctx context.Context, orderID, actorID int64) (*ports.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Cancel", attribute.Int64("order.id", orderID))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.Int64("order.id", orderID))
	result, err := s.inner.Cancel(ctx, orderID, actorID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.Int64("order.id", orderID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordCancelled(ctx)
		s.logInfo(ctx, "order cancelled",
			slog.Int64("order.id", result.Entity.ID),
			slog.String("payment.status", string(result.Entity.PaymentStatus)))
	}
	return result, nil
}

// UpdateStatus applies an admin fulfilment transition.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) (*ports.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.UpdateStatus",
		attribute.Int64("order.id", orderID),
		attribute.String("order.status.requested", status),
	)
	defer span.End()

	result, err := s.inner.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.Int64("order.id", orderID))
	}
	if result != nil && result.Entity != nil {
		s.logInfo(ctx, "order status updated",
			slog.Int64("order.id", result.Entity.ID),
			slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

// MarkDelivered is the delivery transition.
func (s *Service) MarkDelivered(ctx context.Context, orderID int64) (*ports.OrderProjection, error) {
	return s.UpdateStatus(ctx, orderID, string(domain.StatusDelivered))
}

// GetByID loads an order restricted to its owner.
func (s *Service) GetByID(ctx context.Context, orderID, userID int64) (*ports.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("order.id", orderID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, orderID, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", orderID))
	}
	return result, nil
}

// ListByUser returns one page of the user's orders.
func (s *Service) ListByUser(ctx context.Context, userID int64, page pagination.Request) (pagination.Page[*ports.OrderProjection], error) {
	ctx, span := s.startSpan(ctx, "Service.ListByUser", attribute.Int64("order.user_id", userID))
	defer span.End()

	result, err := s.inner.ListByUser(ctx, userID, page)
	if err != nil {
		return pagination.Page[*ports.OrderProjection]{}, s.handleError(ctx, span, err, "failed to list user orders", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result.Items)))
	return result, nil
}

// ListAll returns one page of all orders.
func (s *Service) ListAll(ctx context.Context, page pagination.Request) (pagination.Page[*ports.OrderProjection], error) {
	ctx, span := s.startSpan(ctx, "Service.ListAll",
		attribute.Int("page.number", page.Page),
		attribute.Int("page.size", page.Size),
	)
	defer span.End()

	result, err := s.inner.ListAll(ctx, page)
	if err != nil {
		return pagination.Page[*ports.OrderProjection]{}, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result.Items)))
	return result, nil
}

func (s *Service) checkout(ctx context.Context, spanName string, input ports.CheckoutInput, call func(context.Context, ports.CheckoutInput) (*ports.OrderProjection, error)) (*ports.OrderProjection, error) {
	ctx, span := s.startSpan(ctx, spanName, attribute.Int64("order.user_id", input.UserID))
	defer span.End()

	s.logInfo(ctx, "checking out cart", slog.Int64("user.id", input.UserID))
	result, err := call(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.Int64("user.id", input.UserID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordPlaced(ctx, result.Entity.PaymentMethod)
		s.logInfo(ctx, "order placed",
			slog.Int64("order.id", result.Entity.ID),
			slog.String("order.number", result.Entity.OrderNumber),
			slog.String("order.total", result.Entity.Total.String()))
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersPlaced    metric.Int64Counter
	ordersPaid      metric.Int64Counter
	ordersCancelled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	paid, _ := m.Int64Counter("orders.service.paid", metric.WithDescription("Number of gateway payments confirmed"))
	cancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Number of orders cancelled"))
	return serviceMetrics{
		ordersPlaced:    placed,
		ordersPaid:      paid,
		ordersCancelled: cancelled,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, method string) {
	addCounter(ctx, m.ordersPlaced, 1, attribute.String("order.payment_method", method))
}

func (m serviceMetrics) recordPaid(ctx context.Context) {
	addCounter(ctx, m.ordersPaid, 1)
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	addCounter(ctx, m.ordersCancelled, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
