package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/httperr"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/clinic-frontdesk/internal/usecase/appointment"
)

type ImageHandler struct {
	images   *ucAppointment.AssessmentImages
	maxBytes int64
}

func NewImageHandler(images *ucAppointment.AssessmentImages, maxBytes int64) *ImageHandler {
	return &ImageHandler{images: images, maxBytes: maxBytes}
}

type imagePathsRequest struct {
	Paths []string `json:"paths" binding:"required"`
}

type imagePathRequest struct {
	Path string `json:"path" binding:"required"`
}

// Upload takes a multipart "file" and returns the stored path. The path is
// attached to the appointment by the next save.
func (h *ImageHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "file is required")
		return
	}
	if fh.Size > h.maxBytes {
		httperr.BadRequest(c, httperr.CodeValidation, "image is too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "file is unreadable")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "file is unreadable")
		return
	}

	path, err := h.images.Attach(c.Request.Context(), c.Param("id"), fh.Header.Get("Content-Type"), data)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path})
}

func (h *ImageHandler) Remove(c *gin.Context) {
	var req imagePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "path is required")
		return
	}
	if err := h.images.Remove(c.Request.Context(), req.Path); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ImageHandler) SignedURLs(c *gin.Context) {
	var req imagePathsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "paths are required")
		return
	}
	httpresp.List(c, h.images.SignedURLs(c.Request.Context(), req.Paths))
}
