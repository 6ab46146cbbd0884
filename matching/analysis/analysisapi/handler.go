package analysisapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abraxas-365/sift/matching/analysis"
	"github.com/Abraxas-365/sift/matching/analysis/analysissrv"
	"github.com/Abraxas-365/sift/matching/engine"
	"github.com/Abraxas-365/sift/matching/offer"
	"github.com/Abraxas-365/sift/pkg/fsx"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = int64(10 * 1024 * 1024) // per file

type AnalysisHandlers struct {
	service    *analysissrv.Service
	fileSystem fsx.FileSystem // Original documents are archived here
}

func NewAnalysisHandlers(service *analysissrv.Service, fileSystem fsx.FileSystem) *AnalysisHandlers {
	return &AnalysisHandlers{
		service:    service,
		fileSystem: fileSystem,
	}
}

func (h *AnalysisHandlers) RegisterRoutes(app *fiber.App) {
	analyses := app.Group("/api/v1/analyses")

	// Batch analysis
	analyses.Post("/", h.AnalyzeBatch)           // Pre-extracted texts (SYNC)
	analyses.Post("/async", h.AnalyzeBatchAsync) // Pre-extracted texts (ASYNC)
	analyses.Post("/upload", h.AnalyzeUpload)    // Raw documents via multipart

	// Job tracking
	analyses.Get("/jobs/:job_id", h.GetJobStatus)

	// History
	analyses.Get("/:id", h.GetBatch)
	analyses.Get("/", h.ListBatches)
	analyses.Delete("/:id", h.DeleteBatch)
}

// ============================================================================
// Batch Analysis Handlers
// ============================================================================

// AnalyzeBatch scores a batch of pre-extracted CV texts against one offer
// POST /api/v1/analyses
func (h *AnalysisHandlers) AnalyzeBatch(c *fiber.Ctx) error {
	var req analysis.AnalyzeBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := h.service.AnalyzeBatch(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result.ToResponse())
}

// AnalyzeBatchAsync queues a batch for background processing
// POST /api/v1/analyses/async
func (h *AnalysisHandlers) AnalyzeBatchAsync(c *fiber.Ctx) error {
	var req analysis.AnalyzeBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	jobResponse, err := h.service.AnalyzeBatchAsync(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":    "Batch accepted, processing started",
		"job":        jobResponse,
		"status_url": fmt.Sprintf("/api/v1/analyses/jobs/%s", jobResponse.JobID),
	})
}

// AnalyzeUpload scores raw CV documents uploaded as multipart files.
// The offer (and optional weights) travel as JSON form values next to the
// files. Uploaded originals are archived to storage before extraction.
// POST /api/v1/analyses/upload
func (h *AnalysisHandlers) AnalyzeUpload(c *fiber.Ctx) error {
	off, weights, err := parseUploadForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart form required",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one file is required under 'files'",
		})
	}

	docs := make([]analysissrv.DocumentInput, 0, len(files))
	now := time.Now()

	for _, file := range files {
		if file.Size > maxUploadSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":    "file too large",
				"file":     file.Filename,
				"max_size": "10MB",
			})
		}

		fileType := determineFileType(file.Filename, file.Header.Get("Content-Type"))
		if fileType == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":           "unsupported file type",
				"file":            file.Filename,
				"supported_types": []string{"pdf", "txt"},
			})
		}

		uploaded, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to open uploaded file",
				"file":  file.Filename,
			})
		}

		data, err := io.ReadAll(uploaded)
		uploaded.Close()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to read uploaded file",
				"file":  file.Filename,
			})
		}

		// Archive the original: cvs/{year}/{month}/{uuid}.{ext}
		extension := filepath.Ext(file.Filename)
		if extension == "" {
			extension = "." + fileType
		}
		storagePath := h.fileSystem.Join(
			"cvs",
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			uuid.New().String()+extension,
		)
		if err := h.fileSystem.WriteFileStream(c.Context(), storagePath, bytes.NewReader(data)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "failed to archive file",
				"file":    file.Filename,
				"details": err.Error(),
			})
		}

		docs = append(docs, analysissrv.DocumentInput{
			FileName: file.Filename,
			FileType: fileType,
			Data:     data,
		})
	}

	result, err := h.service.AnalyzeDocuments(c.Context(), off, weights, docs)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result.ToResponse())
}

// ============================================================================
// Job Tracking Handlers
// ============================================================================

// GetJobStatus reports the state of a queued batch job
// GET /api/v1/analyses/jobs/:job_id
func (h *AnalysisHandlers) GetJobStatus(c *fiber.Ctx) error {
	jobID := c.Params("job_id")
	if jobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job ID is required",
		})
	}

	status, err := h.service.GetJobStatus(c.Context(), kernel.JobID(jobID))
	if err != nil {
		return err
	}

	return c.JSON(status)
}

// ============================================================================
// History Handlers
// ============================================================================

// GetBatch returns one stored batch result
// GET /api/v1/analyses/:id
func (h *AnalysisHandlers) GetBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "batch ID is required",
		})
	}

	result, err := h.service.GetBatch(c.Context(), kernel.BatchID(id))
	if err != nil {
		return err
	}

	return c.JSON(result.ToResponse())
}

// ListBatches returns stored batch results, newest first
// GET /api/v1/analyses?page=1&page_size=20
func (h *AnalysisHandlers) ListBatches(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}

	page, err := h.service.ListBatches(c.Context(), pagination)
	if err != nil {
		return err
	}

	responses := make([]*analysis.BatchResultResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, page.Items[i].ToResponse())
	}

	return c.JSON(fiber.Map{
		"items":     responses,
		"total":     page.Total,
		"page":      page.Page,
		"page_size": page.PageSize,
	})
}

// DeleteBatch removes a stored batch result
// DELETE /api/v1/analyses/:id
func (h *AnalysisHandlers) DeleteBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "batch ID is required",
		})
	}

	if err := h.service.DeleteBatch(c.Context(), kernel.BatchID(id)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "batch deleted",
		"id":      id,
	})
}

// ============================================================================
// Helpers
// ============================================================================

func parseUploadForm(c *fiber.Ctx) (offer.JobOffer, *engine.ScoringWeights, error) {
	offerJSON := c.FormValue("offer")
	if offerJSON == "" {
		return offer.JobOffer{}, nil, fmt.Errorf("offer form field is required")
	}

	var off offer.JobOffer
	if err := json.Unmarshal([]byte(offerJSON), &off); err != nil {
		return offer.JobOffer{}, nil, fmt.Errorf("invalid offer JSON: %v", err)
	}

	var weights *engine.ScoringWeights
	if weightsJSON := c.FormValue("weights"); weightsJSON != "" {
		var w engine.ScoringWeights
		if err := json.Unmarshal([]byte(weightsJSON), &w); err != nil {
			return offer.JobOffer{}, nil, fmt.Errorf("invalid weights JSON: %v", err)
		}
		weights = &w
	}

	return off, weights, nil
}

func determineFileType(fileName, contentType string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "pdf"
	case ".txt", ".text":
		return "txt"
	}

	switch {
	case strings.Contains(contentType, "pdf"):
		return "pdf"
	case strings.Contains(contentType, "text/plain"):
		return "txt"
	}

	return ""
}
