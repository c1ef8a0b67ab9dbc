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

	"github.com/pethaven/pethaven-api/internal/domains/adoptions/domain"
	"github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"
	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

const tracerName = "github.com/pethaven/pethaven-api/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoption workflow port with tracing, logging, and
// metrics.
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

// Create files a new adoption request with instrumentation.
func (s *Service) Create(ctx context.Context, input ports.CreateRequestInput) (*ports.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Create",
		attribute.Int64("adoption.pet_id", input.PetID),
		attribute.Int64("adoption.requester_id", input.RequesterID),
	)
	defer span.End()

	s.logInfo(ctx, "creating adoption request", slog.Int64("pet.id", input.PetID), slog.Int64("requester.id", input.RequesterID))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create adoption request", slog.Int64("pet.id", input.PetID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordCreated(ctx)
		s.logInfo(ctx, "adoption request created", slog.Int64("request.id", result.Entity.ID))
	}
	return result, nil
}

// Approve reviews a pending request in the requester's favor.
func (s *Service) Approve(ctx context.Context, input ports.ReviewInput) (*ports.RequestProjection, error) {
	return s.review(ctx, "Service.Approve", input, s.inner.Approve)
}

// Reject reviews a pending request against the requester.
func (s *Service) Reject(ctx context.Context, input ports.ReviewInput) (*ports.RequestProjection, error) {
	return s.review(ctx, "Service.Reject", input, s.inner.Reject)
}

// MarkAdopted completes an approved adoption.
func (s *Service) MarkAdopted(ctx context.Context, requestID, actorID int64) (*ports.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.MarkAdopted", attribute.Int64("adoption.request_id", requestID))
	defer span.End()

	s.logInfo(ctx, "completing adoption", slog.Int64("request.id", requestID))
	result, err := s.inner.MarkAdopted(ctx, requestID, actorID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to complete adoption", slog.Int64("request.id", requestID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordCompleted(ctx)
		s.logInfo(ctx, "adoption completed", slog.Int64("request.id", result.Entity.ID), slog.Int64("pet.id", result.Entity.PetID))
	}
	return result, nil
}

// Cancel abandons a request on behalf of the requester.
func (s *Service) Cancel(ctx context.Context, requestID, actorID int64) (*ports.RequestProjection, error) {
	return s.close(ctx, "Service.Cancel", requestID, actorID, s.inner.Cancel)
}

// Withdraw withdraws a request on behalf of the requester.
func (s *Service) Withdraw(ctx context.Context, requestID, actorID int64) (*ports.RequestProjection, error) {
	return s.close(ctx, "Service.Withdraw", requestID, actorID, s.inner.Withdraw)
}

// Delete removes a request.
func (s *Service) Delete(ctx context.Context, requestID, actorID int64) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.Int64("adoption.request_id", requestID))
	defer span.End()

	s.logInfo(ctx, "deleting adoption request", slog.Int64("request.id", requestID))
	if err := s.inner.Delete(ctx, requestID, actorID); err != nil {
		return s.handleError(ctx, span, err, "failed to delete adoption request", slog.Int64("request.id", requestID))
	}
	s.logInfo(ctx, "adoption request deleted", slog.Int64("request.id", requestID))
	return nil
}

// GetByID loads a single request.
func (s *Service) GetByID(ctx context.Context, requestID int64) (*ports.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("adoption.request_id", requestID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, requestID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load adoption request", slog.Int64("request.id", requestID))
	}
	return result, nil
}

// ListByPet returns every request filed for a pet.
func (s *Service) ListByPet(ctx context.Context, petID int64) ([]*ports.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListByPet", attribute.Int64("adoption.pet_id", petID))
	defer span.End()

	result, err := s.inner.ListByPet(ctx, petID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list requests by pet", slog.Int64("pet.id", petID))
	}
	span.SetAttributes(attribute.Int("adoption.result.count", len(result)))
	return result, nil
}

// ListByRequester returns every request filed by a user.
func (s *Service) ListByRequester(ctx context.Context, requesterID int64) ([]*ports.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListByRequester", attribute.Int64("adoption.requester_id", requesterID))
	defer span.End()

	result, err := s.inner.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list requests by requester", slog.Int64("requester.id", requesterID))
	}
	span.SetAttributes(attribute.Int("adoption.result.count", len(result)))
	return result, nil
}

// ListForOwner returns requests filed against any pet the owner listed.
func (s *Service) ListForOwner(ctx context.Context, ownerID int64) ([]*ports.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ListForOwner", attribute.Int64("adoption.owner_id", ownerID))
	defer span.End()

	result, err := s.inner.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list requests for owner", slog.Int64("owner.id", ownerID))
	}
	span.SetAttributes(attribute.Int("adoption.result.count", len(result)))
	return result, nil
}

// ListAll returns one page of all requests.
func (s *Service) ListAll(ctx context.Context, page pagination.Request) (pagination.Page[*ports.RequestProjection], error) {
	ctx, span := s.startSpan(ctx, "Service.ListAll",
		attribute.Int("page.number", page.Page),
		attribute.Int("page.size", page.Size),
	)
	defer span.End()

	result, err := s.inner.ListAll(ctx, page)
	if err != nil {
		return pagination.Page[*ports.RequestProjection]{}, s.handleError(ctx, span, err, "failed to list adoption requests")
	}
	span.SetAttributes(attribute.Int("adoption.result.count", len(result.Items)))
	return result, nil
}

// CountByStatus tallies requests per lifecycle status.
func (s *Service) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	ctx, span := s.startSpan(ctx, "Service.CountByStatus")
	defer span.End()

	result, err := s.inner.CountByStatus(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to count adoption requests")
	}
	return result, nil
}

func (s *Service) review(ctx context.Context, spanName string, input ports.ReviewInput, call func(context.Context, ports.ReviewInput) (*ports.RequestProjection, error)) (*ports.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, spanName, attribute.Int64("adoption.request_id", input.RequestID))
	defer span.End()

	s.logInfo(ctx, "reviewing adoption request", slog.Int64("request.id", input.RequestID))
	result, err := call(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to review adoption request", slog.Int64("request.id", input.RequestID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordReviewed(ctx, result.Entity.Status)
		s.logInfo(ctx, "adoption request reviewed", slog.Int64("request.id", result.Entity.ID), slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

func (s *Service) close(ctx context.Context, spanName string, requestID, actorID int64, call func(context.Context, int64, int64) (*ports.RequestProjection, error)) (*ports.RequestProjection, error) {
	ctx, span := s.startSpan(ctx, spanName, attribute.Int64("adoption.request_id", requestID))
	defer span.End()

	result, err := call(ctx, requestID, actorID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to close adoption request", slog.Int64("request.id", requestID))
	}
	if result != nil && result.Entity != nil {
		s.logInfo(ctx, "adoption request closed", slog.Int64("request.id", result.Entity.ID), slog.String("status", string(result.Entity.Status)))
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
	requestsCreated   metric.Int64Counter
	requestsReviewed  metric.Int64Counter
	requestsCompleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("adoptions.service.created", metric.WithDescription("Number of adoption requests filed"))
	reviewed, _ := m.Int64Counter("adoptions.service.reviewed", metric.WithDescription("Number of adoption requests reviewed"))
	completed, _ := m.Int64Counter("adoptions.service.completed", metric.WithDescription("Number of completed adoptions"))
	return serviceMetrics{
		requestsCreated:   created,
		requestsReviewed:  reviewed,
		requestsCompleted: completed,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	addCounter(ctx, m.requestsCreated, 1)
}

func (m serviceMetrics) recordReviewed(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.requestsReviewed, 1, attribute.String("adoption.status", string(status)))
}

func (m serviceMetrics) recordCompleted(ctx context.Context) {
	addCounter(ctx, m.requestsCompleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
