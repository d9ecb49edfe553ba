package upload

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
)

// maxFileSize caps uploads at 10MB
const maxFileSize = 10 * 1024 * 1024

// Result holds the stored file's public location
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Uploader stores a file with a cloud storage provider
type Uploader interface {
	Upload(ctx context.Context, file multipart.File, filename string) (*Result, error)
}

// CloudinaryUploader relays files to Cloudinary
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader builds an uploader from a cloudinary:// URL
func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file multipart.File, filename string) (*Result, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         "cognito",
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	return &Result{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Handler handles file upload requests
type Handler struct {
	uploader Uploader
}

// NewHandler creates a new upload handler. The uploader may be nil when no
// storage provider is configured.
func NewHandler(uploader Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// Upload relays a multipart file to the storage provider and returns its
// public URL. The file itself is never persisted locally.
func (h *Handler) Upload(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if fileHeader.Size > maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.uploader.Upload(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		log.Printf("upload: failed to store file %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers upload routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.Upload)
}
