package fetch

import (
	"errors"

	"object-fetcher/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for fetch operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the fetch routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/fetch")
	group.Get("/json", h.HandleReadJSON)
	group.Get("/json/raw", h.HandleReadJSONRaw)
	group.Get("/csv", h.HandleReadCSV)
	group.Post("/download", h.HandleDownload)
}

// downloadRequest is the body of the download endpoint.
type downloadRequest struct {
	Path      string `json:"path"`
	LocalPath string `json:"local_path"`
}

// HandleReadJSON reads a JSON object from storage.
// @Summary Read JSON Object
// @Description Fetches the object at the combined storage path and decodes it as a JSON mapping.
// @Tags fetch
// @Accept json
// @Produce json
// @Param path query string true "Combined storage path (s3://bucket/key)"
// @Success 200 {object} map[string]interface{} "Decoded JSON object"
// @Failure 400 {object} map[string]string "Invalid storage path"
// @Failure 502 {object} map[string]string "Storage backend failure"
// @Router /fetch/json [get]
func (h *Handler) HandleReadJSON(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path query parameter is required"})
	}

	payload, err := h.service.ReadJSON(c.Context(), path)
	if err != nil {
		l.Error("JSON read failed", zap.String("path", path), zap.Error(err))
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(payload)
}

// HandleReadJSONRaw reads a JSON object plus its raw text.
// @Summary Read JSON Object With Raw Text
// @Description Fetches the object at the combined storage path and returns both the decoded mapping and the undecoded text.
// @Tags fetch
// @Accept json
// @Produce json
// @Param path query string true "Combined storage path (s3://bucket/key)"
// @Success 200 {object} map[string]interface{} "Decoded object and raw content"
// @Failure 400 {object} map[string]string "Invalid storage path"
// @Failure 502 {object} map[string]string "Storage backend failure"
// @Router /fetch/json/raw [get]
func (h *Handler) HandleReadJSONRaw(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path query parameter is required"})
	}

	payload, content, err := h.service.ReadJSONWithContent(c.Context(), path)
	if err != nil {
		l.Error("JSON read failed", zap.String("path", path), zap.Error(err))
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":    payload,
		"content": content,
	})
}

// HandleReadCSV reads a CSV object as records or as a table.
// @Summary Read CSV Object
// @Description Fetches a CSV object and decodes it into header-keyed records, or into a tabular structure with ?table=true.
// @Tags fetch
// @Accept json
// @Produce json
// @Param bucket query string true "Bucket name"
// @Param key query string true "Object key"
// @Param table query boolean false "Return tabular structure instead of records"
// @Success 200 {object} map[string]interface{} "Decoded CSV content"
// @Failure 400 {object} map[string]string "Missing bucket or key"
// @Failure 502 {object} map[string]string "Storage backend failure"
// @Router /fetch/csv [get]
func (h *Handler) HandleReadCSV(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	bucket := c.Query("bucket")
	key := c.Query("key")
	if bucket == "" || key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bucket and key query parameters are required"})
	}

	if c.Query("table") == "true" {
		df, err := h.service.ReadCSVTable(c.Context(), bucket, key)
		if err != nil {
			l.Error("CSV table read failed", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
			return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{
			"columns": df.Names(),
			"rows":    df.Maps(),
		})
	}

	records, err := h.service.ReadCSVRecords(c.Context(), bucket, key)
	if err != nil {
		l.Error("CSV read failed", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"records": records})
}

// HandleDownload downloads an object to a local file on the server host.
// @Summary Download Object
// @Description Streams the object at the combined storage path to a local file and returns the destination path.
// @Tags fetch
// @Accept json
// @Produce json
// @Param request body downloadRequest true "Download request"
// @Success 200 {object} map[string]string "Destination path"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 502 {object} map[string]string "Storage backend failure"
// @Router /fetch/download [post]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req downloadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}

	dest, err := h.service.Download(c.Context(), req.Path, req.LocalPath)
	if err != nil {
		l.Error("Download failed", zap.String("path", req.Path), zap.Error(err))
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"destination": dest})
}

// statusForError maps the fetch error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	if errors.Is(err, ErrInvalidPath) {
		return fiber.StatusBadRequest
	}
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
