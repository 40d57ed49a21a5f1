// internal/workers/loan/evaluate-loan-eligibility/handler.go
package evaluateloaneligibility

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"loan-workers/internal/common/camunda"
	commonerrors "loan-workers/internal/common/errors"
	"loan-workers/internal/common/logger"
	"loan-workers/internal/common/metrics"
	"loan-workers/internal/common/validation"
	"loan-workers/internal/eligibility"
	"loan-workers/internal/models"
)

const (
	TaskType = "evaluate-loan-eligibility"
)

var ErrInvalidInput = errors.New("INVALID_INPUT")

type ApplicationEvaluator interface {
	EvaluateApplication(ctx context.Context, applicationID int64) (models.Decision, error)
}

type InputValidator interface {
	ValidateInput(taskType, variables string) error
}

type Handler struct {
	config    *Config
	evaluator ApplicationEvaluator
	registry  InputValidator
	errors    *commonerrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, evaluator ApplicationEvaluator, registry InputValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		evaluator: evaluator,
		registry:  registry,
		errors:    commonerrors.NewErrorHandler(log),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, stdErr := h.parseInput(job)
	if stdErr != nil {
		h.fail(ctx, client, job, stdErr)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, toStandardError(input.LoanApplicationID, err))
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"jobKey": job.Key, "error": err})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) parseInput(job entities.Job) (*Input, *commonerrors.StandardError) {
	if h.registry != nil {
		if err := h.registry.ValidateInput(TaskType, job.Variables); err != nil {
			return nil, commonerrors.NewInvalidInputError(err.Error())
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, commonerrors.NewParseError(err)
	}
	if res := validation.ValidateStruct(input); !res.Valid {
		return nil, commonerrors.NewInvalidInputError(res.Error())
	}
	return &input, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, stdErr *commonerrors.StandardError) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, stdErr)
}

// execute fails only when the decision could not be made or stored; a
// rejection is a successful evaluation.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	decision, err := h.evaluator.EvaluateApplication(ctx, input.LoanApplicationID)
	if err != nil {
		return nil, err
	}

	metrics.LoanDecisions.WithLabelValues(string(decision.Status)).Inc()
	h.logger.Info("loan application evaluated", map[string]interface{}{
		"loanApplicationId": input.LoanApplicationID,
		"status":            decision.Status,
		"reason":            decision.Reason,
	})

	return &Output{
		Decision: decision,
		Status:   string(decision.Status),
	}, nil
}

func toStandardError(applicationID int64, err error) *commonerrors.StandardError {
	var stdErr *commonerrors.StandardError
	switch {
	case errors.Is(err, ErrInvalidInput):
		stdErr = commonerrors.NewInvalidInputError(err.Error())
	case errors.Is(err, eligibility.ErrEvaluationInProgress):
		stdErr = commonerrors.NewEvaluationInProgressError(applicationID)
	case errors.Is(err, eligibility.ErrLockUnavailable):
		stdErr = commonerrors.NewLockUnavailableError(err)
	case errors.Is(err, eligibility.ErrStatusConflict):
		stdErr = commonerrors.NewStatusConflictError(applicationID)
	case errors.Is(err, eligibility.ErrStatusNotPersisted):
		stdErr = commonerrors.NewStatusNotPersistedError(err)
	default:
		stdErr = commonerrors.NewInternalError(err)
	}
	return stdErr.WithMetadata("loanApplicationId", applicationID)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
