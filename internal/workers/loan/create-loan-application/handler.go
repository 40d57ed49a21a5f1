// internal/workers/loan/create-loan-application/handler.go
package createloanapplication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"loan-workers/internal/common/camunda"
	commonerrors "loan-workers/internal/common/errors"
	"loan-workers/internal/common/logger"
	"loan-workers/internal/common/metrics"
	"loan-workers/internal/common/validation"
	"loan-workers/internal/models"
)

const (
	TaskType = "create-loan-application"
)

var (
	ErrInvalidInput     = errors.New("INVALID_INPUT")
	ErrLoanInsertFailed = errors.New("DATABASE_INSERT_FAILED")
)

type LoanCreator interface {
	Create(ctx context.Context, app *models.LoanApplication) error
}

type InputValidator interface {
	ValidateInput(taskType, variables string) error
}

type Handler struct {
	config   *Config
	loans    LoanCreator
	registry InputValidator
	errors   *commonerrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, loans LoanCreator, registry InputValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		loans:    loans,
		registry: registry,
		errors:   commonerrors.NewErrorHandler(log),
		logger:   log,
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
		h.fail(ctx, client, job, toStandardError(err))
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	app := &models.LoanApplication{
		UserID:         input.UserID,
		LoanAmount:     input.LoanAmount,
		LoanType:       strings.TrimSpace(input.LoanType),
		MonthlyIncome:  input.MonthlyIncome,
		EmploymentType: strings.TrimSpace(input.EmploymentType),
	}
	if err := h.loans.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoanInsertFailed, err)
	}

	h.logger.Info("loan application created", map[string]interface{}{
		"loanApplicationId": app.ID,
		"userId":            app.UserID,
		"loanAmount":        app.LoanAmount,
	})

	return &Output{
		LoanApplicationID: app.ID,
		Status:            string(app.Status),
	}, nil
}

func toStandardError(err error) *commonerrors.StandardError {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return commonerrors.NewInvalidInputError(err.Error())
	case errors.Is(err, ErrLoanInsertFailed):
		return commonerrors.NewDatabaseInsertFailedError(err)
	default:
		return commonerrors.NewInternalError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
