package handler

import (
	"net/http"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/repository"
	"surgitrack-backend/internal/service"
	"surgitrack-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

type PatientCreateRequest struct {
	HN               string  `json:"hn" binding:"required,max=20"`
	FullName         string  `json:"full_name" binding:"required,max=100"`
	Age              *int    `json:"age"`
	Gender           string  `json:"gender" binding:"omitempty,oneof=male female other"`
	Diagnosis        string  `json:"diagnosis"`
	Operation        string  `json:"operation"`
	Surgeon          string  `json:"surgeon"`
	Anesthesiologist string  `json:"anesthesiologist"`
	ORRoom           string  `json:"or_room"`
	PatientType      string  `json:"patient_type" binding:"omitempty,oneof=elective emergency"`
	ScheduledDate    string  `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
	ScheduledTime    *string `json:"scheduled_time" binding:"omitempty,datetime=15:04"`
	Notes            string  `json:"notes"`
}

type PatientUpdateRequest struct {
	FullName         *string `json:"full_name"`
	Age              *int    `json:"age"`
	Gender           *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Diagnosis        *string `json:"diagnosis"`
	Operation        *string `json:"operation"`
	Surgeon          *string `json:"surgeon"`
	Anesthesiologist *string `json:"anesthesiologist"`
	ORRoom           *string `json:"or_room"`
	PatientType      *string `json:"patient_type" binding:"omitempty,oneof=elective emergency"`
	ScheduledDate    *string `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
	ScheduledTime    *string `json:"scheduled_time" binding:"omitempty,datetime=15:04"`
	Notes            *string `json:"notes"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ListPatients returns patients with optional type/status/date filters
func (h *PatientHandler) ListPatients(c *gin.Context) {
	skip, limit := parsePagination(c, 100)
	filter := repository.PatientFilter{
		PatientType: c.Query("patient_type"),
		Status:      c.Query("status"),
		Skip:        skip,
		Limit:       limit,
	}
	if raw := c.Query("scheduled_date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid scheduled_date. Use YYYY-MM-DD")
			return
		}
		filter.ScheduledDate = &date
	}

	patients, err := h.patientService.ListPatients(filter)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch patients")
		return
	}

	utils.SuccessResponse(c, patients)
}

// ListToday returns patients scheduled for today
func (h *PatientHandler) ListToday(c *gin.Context) {
	patients, err := h.patientService.ListTodayPatients(c.Query("patient_type"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch patients")
		return
	}

	utils.SuccessResponse(c, patients)
}

// PublicDisplay returns masked patient data for the public TV board.
// No authentication required.
func (h *PatientHandler) PublicDisplay(c *gin.Context) {
	views, err := h.patientService.PublicDisplay()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch display data")
		return
	}

	utils.SuccessResponse(c, views)
}

// Stats returns today's dashboard statistics
func (h *PatientHandler) Stats(c *gin.Context) {
	stats, err := h.patientService.DashboardStats()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	utils.SuccessResponse(c, stats)
}

// GetPatient returns one patient by id
func (h *PatientHandler) GetPatient(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatient(id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// CreatePatient registers a new patient
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, ok := actorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	patient := req.toModel()
	if err := h.patientService.CreatePatient(patient, userID); err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": patient})
}

// UpdatePatient applies field updates to a patient. Status is not
// accepted here; use UpdateStatus.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	var req PatientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updates, err := req.toUpdates()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	patient, err := h.patientService.UpdatePatient(id, updates)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// UpdateStatus transitions a patient to a new status, stamping actual
// start/end times and appending the audit record
func (h *PatientHandler) UpdateStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, ok := actorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	patient, err := h.patientService.ChangeStatus(id, req.Status, userID, req.Notes)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// History lists the status transition log for a patient
func (h *PatientHandler) History(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	skip, limit := parsePagination(c, 50)
	records, err := h.patientService.GetStatusHistory(id, skip, limit)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, records)
}

// DeletePatient removes a patient and its status history
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	if err := h.patientService.DeletePatient(id); err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (r *PatientCreateRequest) toModel() *models.Patient {
	patient := &models.Patient{
		HN:               r.HN,
		FullName:         r.FullName,
		Age:              r.Age,
		Gender:           r.Gender,
		Diagnosis:        r.Diagnosis,
		Operation:        r.Operation,
		Surgeon:          r.Surgeon,
		Anesthesiologist: r.Anesthesiologist,
		ORRoom:           r.ORRoom,
		PatientType:      r.PatientType,
		ScheduledTime:    r.ScheduledTime,
		Notes:            r.Notes,
	}
	if patient.PatientType == "" {
		patient.PatientType = models.PatientTypeElective
	}
	if r.ScheduledDate != "" {
		date, _ := time.Parse("2006-01-02", r.ScheduledDate)
		patient.ScheduledDate = &date
	}
	return patient
}

func (r *PatientUpdateRequest) toUpdates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})
	if r.FullName != nil {
		updates["full_name"] = *r.FullName
	}
	if r.Age != nil {
		updates["age"] = *r.Age
	}
	if r.Gender != nil {
		updates["gender"] = *r.Gender
	}
	if r.Diagnosis != nil {
		updates["diagnosis"] = *r.Diagnosis
	}
	if r.Operation != nil {
		updates["operation"] = *r.Operation
	}
	if r.Surgeon != nil {
		updates["surgeon"] = *r.Surgeon
	}
	if r.Anesthesiologist != nil {
		updates["anesthesiologist"] = *r.Anesthesiologist
	}
	if r.ORRoom != nil {
		updates["or_room"] = *r.ORRoom
	}
	if r.PatientType != nil {
		updates["patient_type"] = *r.PatientType
	}
	if r.ScheduledDate != nil {
		date, err := time.Parse("2006-01-02", *r.ScheduledDate)
		if err != nil {
			return nil, err
		}
		updates["scheduled_date"] = date
	}
	if r.ScheduledTime != nil {
		updates["scheduled_time"] = *r.ScheduledTime
	}
	if r.Notes != nil {
		updates["notes"] = *r.Notes
	}
	return updates, nil
}
