// Package api exposes the job catalog and candidate screening over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/jobs"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/upload"
)

const (
	filesField = "files"
	// maxUploadSize bounds a single resume upload.
	maxUploadSize = 10 << 20

	sortNewest = "newest"
	sortScore  = "score"
)

// Handler serves the HTTP API.
type Handler struct {
	catalog      *jobs.Catalog
	orchestrator *screening.Orchestrator
	logger       *zap.Logger
	// base outlives individual requests so that screenings keep running after the response is sent.
	base context.Context
}

// NewHandler creates a Handler. base is the context screenings run under.
func NewHandler(base context.Context, catalog *jobs.Catalog, orchestrator *screening.Orchestrator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{catalog: catalog, orchestrator: orchestrator, logger: log, base: base}
}

// Register mounts the routes on router.
func (h *Handler) Register(router gin.IRouter) {
	router.GET("/healthz", h.health)

	router.GET("/jobs", h.listJobs)
	router.GET("/jobs/:id", h.getJob)
	router.PUT("/jobs/:id", h.saveJob)
	router.DELETE("/jobs/:id", h.deleteJob)

	router.POST("/jobs/:id/screenings", h.submitScreening)
	router.GET("/jobs/:id/candidates", h.listCandidates)
	router.GET("/jobs/:id/summary", h.summary)

	router.GET("/candidates/:id", h.getCandidate)
}

// NewRouter builds a gin engine with recovery, request logging and the API routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))
	h.Register(router)
	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
		)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listJobs(c *gin.Context) {
	if c.Query("status") == string(jobs.StatusActive) {
		c.JSON(http.StatusOK, h.catalog.Active())
		return
	}
	c.JSON(http.StatusOK, h.catalog.List())
}

func (h *Handler) getJob(c *gin.Context) {
	job, ok := h.lookupJob(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) saveJob(c *gin.Context) {
	var job jobs.Spec
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	job.ID = c.Param("id")

	if err := h.catalog.Save(job); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	saved, _ := h.catalog.Get(job.ID)
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) deleteJob(c *gin.Context) {
	if err := h.catalog.Delete(c.Param("id")); err != nil {
		writeJobError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type submitResponse struct {
	Records []screening.Record `json:"records"`
	Skipped []upload.Skipped   `json:"skipped,omitempty"`
	Steps   []upload.Step      `json:"steps"`
}

func (h *Handler) submitScreening(c *gin.Context) {
	job, ok := h.lookupJob(c)
	if !ok {
		return
	}

	var docs []ai.Document
	if form, err := c.MultipartForm(); err == nil {
		for _, header := range form.File[filesField] {
			doc, err := readUpload(header)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			docs = append(docs, doc)
		}
	}

	accepted, skipped, steps := upload.Run(h.logger, upload.DefaultRules(), docs)
	if len(accepted) == 0 && len(skipped) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no PDF files to screen", "skipped": skipped})
		return
	}

	batch, err := h.orchestrator.Submit(h.base, &job, accepted)
	if err != nil {
		var vErr *screening.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
			return
		}
		h.logger.Error("submitting screening", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit screening"})
		return
	}

	c.JSON(http.StatusAccepted, submitResponse{Records: batch.Records(), Skipped: skipped, Steps: steps})
}

func (h *Handler) listCandidates(c *gin.Context) {
	job, ok := h.lookupJob(c)
	if !ok {
		return
	}

	var records []screening.Record
	switch sortBy := c.Query("sort"); sortBy {
	case "", sortNewest:
		records = h.orchestrator.Store().ByJob(job.ID)
	case sortScore:
		records = h.orchestrator.Store().Ranked(job.ID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown sort %q", sortBy)})
		return
	}

	if raw := c.Query("status"); raw != "" {
		status, err := screening.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filtered := records[:0]
		for _, rec := range records {
			if rec.Status == status {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) summary(c *gin.Context) {
	job, ok := h.lookupJob(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, screening.Summarize(h.orchestrator.Store().ByJob(job.ID)))
}

func (h *Handler) getCandidate(c *gin.Context) {
	rec, ok := h.orchestrator.Store().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) lookupJob(c *gin.Context) (jobs.Spec, bool) {
	job, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		writeJobError(c, err)
		return jobs.Spec{}, false
	}
	return job, true
}

func writeJobError(c *gin.Context, err error) {
	if errors.Is(err, jobs.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func readUpload(header *multipart.FileHeader) (ai.Document, error) {
	if header.Size > maxUploadSize {
		return ai.Document{}, errors.New(header.Filename + ": file is too large")
	}

	file, err := header.Open()
	if err != nil {
		return ai.Document{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return ai.Document{}, err
	}
	return upload.NewDocument(strings.TrimSpace(header.Filename), data), nil
}
