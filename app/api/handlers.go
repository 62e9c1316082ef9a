package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madisonhq/press-dossier/app/cfg"
	"github.com/madisonhq/press-dossier/app/database"
	"github.com/madisonhq/press-dossier/app/dossier"
	"github.com/madisonhq/press-dossier/app/importer"
)

// topBeatsDisplay bounds the beat list in dossier responses. The full beat
// history stays in the cached dossier; only the presentation is truncated.
const topBeatsDisplay = 8

const defaultTopicLimit = 20

func NewHandler(dossiers DossierService, topics TopicSearcher, imports ImportService,
	reporterRepo database.ReporterStore, dossierStore DossierCache,
	sessions *importer.SessionStore, maxUploadBytes int64) *Handler {
	return &Handler{
		dossiers:       dossiers,
		topics:         topics,
		imports:        imports,
		reporterRepo:   reporterRepo,
		dossierStore:   dossierStore,
		sessions:       sessions,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) GetReporterDossier(c *gin.Context) {
	name := c.Param("name")
	forceRefresh := c.Query("refresh") == "true"

	d, err := h.dossiers.GetDossier(c.Request.Context(), name, forceRefresh)
	if err != nil {
		switch {
		case errors.Is(err, dossier.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reporter name"})
		case errors.Is(err, dossier.ErrSourceUnavailable):
			slog.Error("Article source unavailable", "reporter", name, "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Article source unavailable, try again later"})
		default:
			slog.Error("Dossier build failed", "reporter", name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dossier"})
		}
		return
	}

	resp := *d
	if len(resp.BeatHistory) > topBeatsDisplay {
		resp.BeatHistory = resp.BeatHistory[:topBeatsDisplay]
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetTopicReporters(c *gin.Context) {
	topic := strings.TrimSpace(c.Param("topic"))
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing topic parameter"})
		return
	}

	limit := defaultTopicLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	matches, err := h.topics.TopicReporters(c.Request.Context(), topic, limit)
	if err != nil {
		slog.Error("Topic search failed", "topic", topic, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Article source unavailable, try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topic":     topic,
		"reporters": matches,
		"total":     len(matches),
	})
}

func (h *Handler) AnalyzeImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .csv files are accepted"})
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("Failed to open upload", "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		slog.Error("Failed to read upload", "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	result, err := h.imports.Analyze(c.Request.Context(), fileHeader.Filename, contents)
	if err != nil {
		if errors.Is(err, importer.ErrMalformedInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Import analysis failed", "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Import analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ConfirmImport(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and column_mapping are required"})
		return
	}

	result, err := h.imports.Confirm(c.Request.Context(), req.SessionID, req.ColumnMapping, req.SkipDuplicates)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Import session not found or expired"})
		case errors.Is(err, importer.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("Import confirm failed", "session_id", req.SessionID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.reporterRepo.Count(); err == nil {
		health["reporters"] = count
	}
	if count, err := h.dossierStore.Count(); err == nil {
		health["cached_dossiers"] = count
	}
	health["active_import_sessions"] = h.sessions.Count()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"version":   cfg.GetVersion(),
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.reporterRepo.Count(); err == nil {
		stats["reporters"] = count
	}
	if count, err := h.dossierStore.Count(); err == nil {
		stats["cached_dossiers"] = count
	}
	stats["active_import_sessions"] = h.sessions.Count()

	c.JSON(http.StatusOK, stats)
}
