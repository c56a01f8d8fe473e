package controllers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/campusbridge/admissions_backend/models"
	"github.com/campusbridge/admissions_backend/utils"
)

type UploadController struct {
	Log *logrus.Logger
}

func NewUploadController(log *logrus.Logger) *UploadController {
	return &UploadController{Log: log}
}

var uploadDirs = map[string]string{
	"logo":     "logos",
	"document": "documents",
	"receipt":  "receipts",
}

// Upload stores a multipart file under the category's subdirectory and
// returns its URL. Image uploads also get a thumbnail.
func (uc *UploadController) Upload(c echo.Context) error {
	category := c.FormValue("category")
	subDir, ok := uploadDirs[category]
	if !ok {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid upload category. Must be one of: logo, document, receipt",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "No file provided",
		})
	}

	mediaType := "document"
	if category == "logo" {
		mediaType = "image"
		if !utils.IsValidImageFile(fileHeader) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Logo must be an image file",
			})
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to read file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to read file",
		})
	}

	filename := utils.UniqueFilename(fileHeader.Filename)
	url, err := utils.UploadFileToPath(data, filename, mediaType, subDir)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	response := map[string]interface{}{
		"url":      url,
		"filename": filename,
	}

	if mediaType == "image" {
		if thumbnailURL, err := utils.GenerateImageThumbnail(url); err == nil {
			response["thumbnailUrl"] = thumbnailURL
		} else {
			uc.Log.WithError(err).Warn("thumbnail generation failed")
		}
	}

	uc.Log.WithFields(logrus.Fields{
		"category": category,
		"filename": filename,
	}).Info("file uploaded")

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "File uploaded successfully",
		Data:    response,
	})
}
