// internal/workers/document/extract-document-data/handler.go
package extractdocumentdata

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
	"loan-workers/internal/document"
	"loan-workers/internal/models"
	"loan-workers/internal/ocr"
	"loan-workers/internal/storage"
)

const (
	TaskType = "extract-document-data"
)

var (
	ErrInvalidInput         = errors.New("INVALID_INPUT")
	ErrDocumentInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrEncodeFailed         = errors.New("ENCODE_FAILED")
)

type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

type DocumentCreator interface {
	Create(ctx context.Context, doc *models.Document) error
}

type InputValidator interface {
	ValidateInput(taskType, variables string) error
}

type Handler struct {
	config   *Config
	ocr      TextExtractor
	docs     DocumentCreator
	registry InputValidator
	errors   *commonerrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, ocrEngine TextExtractor, docs DocumentCreator, registry InputValidator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		ocr:      ocrEngine,
		docs:     docs,
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

	docType := models.DocumentType(input.DocumentType)
	if !docType.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", ErrInvalidInput, input.DocumentType)
	}

	path, err := storage.Resolve(h.config.UploadDir, input.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fields := h.extract(ctx, docType, path)

	encoded, err := document.EncodeFields(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}

	doc := &models.Document{
		UserID:            input.UserID,
		LoanApplicationID: input.LoanApplicationID,
		DocumentType:      docType,
		FilePath:          input.FilePath,
		ExtractedData:     encoded,
	}
	if err := h.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInsertFailed, err)
	}

	h.logger.Info("document stored", map[string]interface{}{
		"documentId":   doc.ID,
		"documentType": docType,
		"fieldCount":   len(fields),
	})

	return &Output{
		DocumentID:    doc.ID,
		DocumentType:  string(docType),
		ExtractedData: fields,
	}, nil
}

// extract never fails: OCR problems leave the document with no fields.
func (h *Handler) extract(ctx context.Context, docType models.DocumentType, path string) models.ExtractedFields {
	if h.config.OCRTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.OCRTimeout)
		defer cancel()
	}

	text, err := h.ocr.ExtractText(ctx, path)
	if err != nil {
		metrics.OCRFailures.WithLabelValues(ocrFailureReason(err)).Inc()
		h.logger.Warn("ocr failed, storing document without fields", map[string]interface{}{
			"documentType": docType,
			"error":        err,
		})
		return models.ExtractedFields{}
	}

	fields := document.Extract(docType, text)
	for key, value := range fields {
		if isDefault(value) {
			metrics.ExtractionFieldMisses.WithLabelValues(string(docType), key).Inc()
		}
	}
	return fields
}

func isDefault(v interface{}) bool {
	switch x := v.(type) {
	case string:
		return x == ""
	case float64:
		return x == 0
	}
	return v == nil
}

func ocrFailureReason(err error) string {
	switch {
	case errors.Is(err, ocr.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ocr.ErrDecodeFailed):
		return "decode_failed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "ocr_failed"
	}
}

func toStandardError(err error) *commonerrors.StandardError {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return commonerrors.NewInvalidInputError(err.Error())
	case errors.Is(err, ErrDocumentInsertFailed):
		return commonerrors.NewDatabaseInsertFailedError(err)
	default:
		return commonerrors.NewInternalError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
