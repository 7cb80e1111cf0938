package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"modelhub-backend/internal/domains/artifact"
	"modelhub-backend/internal/shared/response"
	"modelhub-backend/pkg/logger"
)

// ArtifactHandler serves the /models endpoints.
type ArtifactHandler struct {
	service artifact.Service
}

func NewArtifactHandler(service artifact.Service) *ArtifactHandler {
	return &ArtifactHandler{service: service}
}

// Upload handles POST /models/upload: multipart model_file plus optional
// version and description form fields.
func (h *ArtifactHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("model_file")
	if err != nil {
		response.BadRequest(c, "model_file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "could not read uploaded file")
		return
	}
	defer file.Close()

	record, err := h.service.RegisterUpload(c.Request.Context(), artifact.UploadRequest{
		Version:     c.PostForm("version"),
		Description: c.PostForm("description"),
		Filename:    fileHeader.Filename,
		Body:        file,
	})
	if err != nil {
		logger.Error("model upload failed", err)
		response.InternalServerError(c, "Model upload failed")
		return
	}

	c.JSON(http.StatusOK, artifact.UploadResponse{
		Message:  "Model uploaded successfully",
		Version:  record.Version,
		Filename: record.Filename,
	})
}

// ListVersions handles GET /models/versions.
func (h *ArtifactHandler) ListVersions(c *gin.Context) {
	versions, err := h.service.ListVersions(c.Request.Context())
	if err != nil {
		logger.Error("list versions failed", err)
		response.InternalServerError(c, "Could not list model versions")
		return
	}

	c.JSON(http.StatusOK, versions)
}

// GetVersion handles GET /models/:version.
func (h *ArtifactHandler) GetVersion(c *gin.Context) {
	dto, err := h.service.GetVersion(c.Request.Context(), c.Param("version"))
	if err != nil {
		if errors.Is(err, artifact.ErrVersionNotFound) {
			response.NotFound(c, "Version not found")
			return
		}
		logger.Error("get version failed", err)
		response.InternalServerError(c, "Could not load model version")
		return
	}

	c.JSON(http.StatusOK, dto)
}
