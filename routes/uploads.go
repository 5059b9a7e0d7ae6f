package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"farmstay-server/config"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterUploadRoutes adds the image upload endpoint used by the room,
// tree and article forms
func RegisterUploadRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/images", func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(10 << 20); err != nil { // 10MB
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data"})
			return
		}

		header, err := c.FormFile("image")
		if err != nil || header == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file provided"})
			return
		}

		if !validateImageFile(header) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image must be jpg, png or webp and at most 5MB"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read file"})
			return
		}
		defer file.Close()

		cld, err := cloudinary.NewFromURL(config.AppConfig.Cloudinary.URL)
		if err != nil {
			log.Printf("❌ Cloudinary init failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload service unavailable"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		publicID := fmt.Sprintf("%s/%d_%s",
			config.AppConfig.Cloudinary.Folder,
			time.Now().Unix(),
			strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		)

		result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
			PublicID: publicID,
			Folder:   config.AppConfig.Cloudinary.Folder,
		})
		if err != nil {
			log.Printf("❌ Image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
			return
		}

		log.Printf("📸 Uploaded image %s", result.PublicID)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"url":     result.SecureURL,
		})
	})
}
