package handler

import (
	"io"
	"net/http"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/service"
	"surgitrack-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	importService *service.ImportService
}

func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// ImportPatients accepts an .xlsx/.csv upload and creates patients from it
func (h *ImportHandler) ImportPatients(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "File is required")
		return
	}

	patientType := c.DefaultQuery("patient_type", models.PatientTypeElective)
	if patientType != models.PatientTypeElective && patientType != models.PatientTypeEmergency {
		utils.ErrorResponse(c, http.StatusBadRequest, "patient_type must be 'elective' or 'emergency'")
		return
	}

	userID, ok := actorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	patients, err := h.importService.ImportPatients(fileHeader.Filename, data, patientType, userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"count":   len(patients),
		"data":    patients,
	})
}
