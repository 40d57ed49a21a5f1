// internal/workers/loan/query-loan-data/handler.go
package queryloandata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"loan-workers/internal/common/camunda"
	commonerrors "loan-workers/internal/common/errors"
	"loan-workers/internal/common/logger"
	"loan-workers/internal/common/metrics"
	"loan-workers/internal/models"
	"loan-workers/internal/repository"
	"loan-workers/internal/workers/loan/query-loan-data/queries"
)

const (
	TaskType = "query-loan-data"
)

var (
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
	ErrQueryTimeout         = errors.New("QUERY_TIMEOUT")
	ErrInvalidQueryType     = errors.New("INVALID_QUERY_TYPE")
	ErrMissingParameter     = errors.New("INVALID_INPUT")
	ErrApplicationNotFound  = errors.New("APPLICATION_NOT_FOUND")
)

type InputValidator interface {
	ValidateInput(taskType, variables string) error
}

type Handler struct {
	config   *Config
	db       *sql.DB
	registry InputValidator
	errors   *commonerrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, db *sql.DB, registry InputValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		db:       db,
		registry: registry,
		errors:   commonerrors.NewErrorHandler(log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	if h.registry != nil {
		if err := h.registry.ValidateInput(TaskType, job.Variables); err != nil {
			h.fail(ctx, client, job, commonerrors.NewInvalidInputError(err.Error()))
			return
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, commonerrors.NewParseError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, toStandardError(&input, err))
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"jobKey": job.Key, "error": err})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, stdErr *commonerrors.StandardError) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrMissingParameter)
	}

	queryType := models.QueryType(input.QueryType)
	if _, exists := queries.Registry[queryType]; !exists {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQueryType, input.QueryType)
	}

	params := make(map[string]interface{})
	if input.LoanApplicationID > 0 {
		params["loanApplicationId"] = input.LoanApplicationID
	}
	if input.UserID > 0 {
		params["userId"] = input.UserID
	}

	data, rowCount, execTime, err := queries.Execute(ctx, h.db, queryType, params)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrMissingParam):
			return nil, fmt.Errorf("%w: %v", ErrMissingParameter, err)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: %v", ErrApplicationNotFound, err)
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, ErrQueryTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	return &Output{
		Data:               data,
		RowCount:           rowCount,
		QueryExecutionTime: execTime,
	}, nil
}

func toStandardError(input *Input, err error) *commonerrors.StandardError {
	switch {
	case errors.Is(err, ErrInvalidQueryType):
		return commonerrors.NewInvalidQueryTypeError(input.QueryType)
	case errors.Is(err, ErrMissingParameter):
		return commonerrors.NewInvalidInputError(err.Error())
	case errors.Is(err, ErrApplicationNotFound):
		return commonerrors.NewApplicationNotFoundError(input.LoanApplicationID)
	case errors.Is(err, ErrQueryTimeout):
		return commonerrors.NewQueryTimeoutError(input.QueryType)
	default:
		return commonerrors.NewQueryExecutionFailedError(input.QueryType, err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
