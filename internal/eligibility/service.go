// internal/eligibility/service.go
package eligibility

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"loan-workers/internal/common/logger"
	"loan-workers/internal/models"
	"loan-workers/internal/repository"
)

var (
	ErrEvaluationInProgress = errors.New("EVALUATION_IN_PROGRESS")
	ErrLockUnavailable      = errors.New("LOCK_UNAVAILABLE")
	ErrStatusConflict       = repository.ErrStatusConflict
	ErrStatusNotPersisted   = errors.New("STATUS_NOT_PERSISTED")
)

type ApplicationStore interface {
	Get(ctx context.Context, id int64) (*models.LoanApplication, error)
	UpdateStatus(ctx context.Context, id, expectedVersion int64, status models.LoanStatus) error
}

type DocumentLister interface {
	ListByApplication(ctx context.Context, applicationID int64) ([]models.Document, error)
}

type Locker interface {
	Acquire(ctx context.Context, applicationID int64) (func() error, error)
}

// Service evaluates stored applications and records the outcome. Only one
// evaluation per application runs at a time (Locker), and the status write is
// conditional on the version read at the start.
type Service struct {
	evaluator *Evaluator
	apps      ApplicationStore
	docs      DocumentLister
	lock      Locker
	logger    logger.Logger
	tracer    trace.Tracer
}

func NewService(evaluator *Evaluator, apps ApplicationStore, docs DocumentLister, lock Locker, log logger.Logger) *Service {
	return &Service{
		evaluator: evaluator,
		apps:      apps,
		docs:      docs,
		lock:      lock,
		logger:    log,
		tracer:    otel.Tracer("loan-workers/eligibility"),
	}
}

// EvaluateApplication returns the decision for applicationID. Faults while
// loading data become REJECTED decisions. The error is non-nil only when the
// evaluation could not run or its status could not be stored; the decision
// is still returned in the latter case.
func (s *Service) EvaluateApplication(ctx context.Context, applicationID int64) (models.Decision, error) {
	ctx, span := s.tracer.Start(ctx, "eligibility.EvaluateApplication",
		trace.WithAttributes(attribute.Int64("loan.application_id", applicationID)))
	defer span.End()

	release, err := s.lock.Acquire(ctx, applicationID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lock")
		if errors.Is(err, repository.ErrLockNotAcquired) {
			return models.Decision{}, fmt.Errorf("%w: application %d", ErrEvaluationInProgress, applicationID)
		}
		return models.Decision{}, fmt.Errorf("%w: %v", ErrLockUnavailable, err)
	}
	defer func() {
		if err := release(); err != nil {
			s.logger.Warn("failed to release evaluation lock", map[string]interface{}{
				"loanApplicationId": applicationID,
				"error":             err.Error(),
			})
		}
	}()

	log := s.logger.WithFields(map[string]interface{}{"loanApplicationId": applicationID})

	app, err := s.apps.Get(ctx, applicationID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("loan application not found", nil)
		return NotFound(), nil
	}
	if err != nil {
		log.Error("failed to load loan application", map[string]interface{}{"error": err.Error()})
		span.RecordError(err)
		return Fault(err), nil
	}

	var decision models.Decision
	docs, err := s.docs.ListByApplication(ctx, applicationID)
	if err != nil {
		log.Error("failed to load documents", map[string]interface{}{"error": err.Error()})
		span.RecordError(err)
		decision = Fault(err)
	} else {
		decision = s.evaluator.Evaluate(app, docs)
	}

	span.SetAttributes(
		attribute.String("loan.decision", decision.Status.String()),
		attribute.Int("loan.documents", len(docs)),
	)

	if err := s.apps.UpdateStatus(ctx, applicationID, app.Version, decision.Status); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update status")
		if errors.Is(err, ErrStatusConflict) {
			log.Warn("status changed during evaluation", map[string]interface{}{"version": app.Version})
			return decision, err
		}
		return decision, fmt.Errorf("%w: %v", ErrStatusNotPersisted, err)
	}

	log.Info("loan application evaluated", map[string]interface{}{
		"status": decision.Status,
		"reason": decision.Reason,
	})
	return decision, nil
}
