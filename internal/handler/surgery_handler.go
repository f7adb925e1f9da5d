package handler

import (
	"net/http"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/service"
	"surgitrack-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SurgeryHandler struct {
	surgeryService *service.SurgeryService
}

func NewSurgeryHandler(surgeryService *service.SurgeryService) *SurgeryHandler {
	return &SurgeryHandler{
		surgeryService: surgeryService,
	}
}

type SurgeryCreateRequest struct {
	HN             string  `json:"hn" binding:"required,max=20"`
	PatientName    string  `json:"patient_name" binding:"required,max=255"`
	Age            *int    `json:"age"`
	SurgeryDate    string  `json:"surgery_date" binding:"omitempty,datetime=2006-01-02"`
	ScheduledTime  *string `json:"scheduled_time" binding:"omitempty,datetime=15:04"`
	SurgeryType    string  `json:"surgery_type" binding:"omitempty,oneof=elective emergency"`
	ORRoom         string  `json:"or_room"`
	Department     string  `json:"department"`
	Surgeon        string  `json:"surgeon"`
	Diagnosis      string  `json:"diagnosis"`
	Operation      string  `json:"operation"`
	Ward           string  `json:"ward"`
	CaseSize       string  `json:"case_size" binding:"omitempty,oneof=Major Minor"`
	Assist1        string  `json:"assist1"`
	Assist2        string  `json:"assist2"`
	ScrubNurse     string  `json:"scrub_nurse"`
	CirculateNurse string  `json:"circulate_nurse"`
}

type SurgeryBulkCreateRequest struct {
	Registrations []SurgeryCreateRequest `json:"registrations" binding:"required,min=1,dive"`
}

type SurgeryUpdateRequest struct {
	ORRoom         *string `json:"or_room"`
	NotReadyReason *string `json:"not_ready_reason"`
	QueueOrder     *int    `json:"queue_order"`
	SelectedOR     *string `json:"selected_or"`
	ScheduledTime  *string `json:"scheduled_time" binding:"omitempty,datetime=15:04"`
	Assist1        *string `json:"assist1"`
	Assist2        *string `json:"assist2"`
	ScrubNurse     *string `json:"scrub_nurse"`
	CirculateNurse *string `json:"circulate_nurse"`
}

// Register creates one surgery registration
func (h *SurgeryHandler) Register(c *gin.Context) {
	var req SurgeryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, ok := actorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	surgery := req.toModel()
	if err := h.surgeryService.RegisterSurgery(surgery, userID); err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": surgery})
}

// RegisterBulk creates several registrations at once
func (h *SurgeryHandler) RegisterBulk(c *gin.Context) {
	var req SurgeryBulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, ok := actorID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	surgeries := make([]*models.SurgeryRegistration, len(req.Registrations))
	for i := range req.Registrations {
		surgeries[i] = req.Registrations[i].toModel()
	}

	if err := h.surgeryService.RegisterSurgeriesBulk(surgeries, userID); err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"count":         len(surgeries),
		"registrations": surgeries,
	})
}

// CheckHN reports whether a hospital number is known and its history
func (h *SurgeryHandler) CheckHN(c *gin.Context) {
	hn := c.Param("hn")
	if hn == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "HN is required")
		return
	}

	result, err := h.surgeryService.CheckHN(hn)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to check HN")
		return
	}

	utils.SuccessResponse(c, result)
}

// ListToday returns registrations dated today
func (h *SurgeryHandler) ListToday(c *gin.Context) {
	surgeries, err := h.surgeryService.ListTodaySurgeries()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch surgeries")
		return
	}

	utils.SuccessResponse(c, surgeries)
}

// ListByDate returns registrations for a date
func (h *SurgeryHandler) ListByDate(c *gin.Context) {
	h.listByDateAndType(c, "")
}

// ListElective returns elective registrations for a date
func (h *SurgeryHandler) ListElective(c *gin.Context) {
	h.listByDateAndType(c, models.PatientTypeElective)
}

// ListEmergency returns emergency registrations for a date
func (h *SurgeryHandler) ListEmergency(c *gin.Context) {
	h.listByDateAndType(c, models.PatientTypeEmergency)
}

func (h *SurgeryHandler) listByDateAndType(c *gin.Context, surgeryType string) {
	date, err := parseDateParam(c, "date")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date. Use YYYY-MM-DD")
		return
	}

	surgeries, err := h.surgeryService.ListSurgeriesByDate(date, surgeryType)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch surgeries")
		return
	}

	utils.SuccessResponse(c, surgeries)
}

// GetSurgery returns one registration by id
func (h *SurgeryHandler) GetSurgery(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid surgery ID")
		return
	}

	surgery, err := h.surgeryService.GetSurgery(id)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, surgery)
}

// UpdateSurgery applies field updates (room, queue, staff). Status is not
// accepted here; use UpdateStatus.
func (h *SurgeryHandler) UpdateSurgery(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid surgery ID")
		return
	}

	var req SurgeryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	surgery, err := h.surgeryService.UpdateSurgery(id, req.toUpdates())
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, surgery)
}

// UpdateStatus transitions a registration to a new status
func (h *SurgeryHandler) UpdateStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid surgery ID")
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

	surgery, err := h.surgeryService.ChangeStatus(id, req.Status, userID, req.Notes)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, surgery)
}

// History lists the status transition log for a registration
func (h *SurgeryHandler) History(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid surgery ID")
		return
	}

	skip, limit := parsePagination(c, 50)
	records, err := h.surgeryService.GetStatusHistory(id, skip, limit)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, records)
}

// DeleteSurgery removes a registration and its history
func (h *SurgeryHandler) DeleteSurgery(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid surgery ID")
		return
	}

	if err := h.surgeryService.DeleteSurgery(id); err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.MessageResponse(c, "Surgery deleted successfully")
}

// ResetAll deletes every registration (admin only, dev/testing)
func (h *SurgeryHandler) ResetAll(c *gin.Context) {
	if err := h.surgeryService.ResetAllSurgeries(); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to reset surgery data")
		return
	}

	utils.MessageResponse(c, "All surgery data has been reset successfully")
}

func (r *SurgeryCreateRequest) toModel() *models.SurgeryRegistration {
	surgery := &models.SurgeryRegistration{
		HN:             r.HN,
		PatientName:    r.PatientName,
		Age:            r.Age,
		ScheduledTime:  r.ScheduledTime,
		SurgeryType:    r.SurgeryType,
		ORRoom:         r.ORRoom,
		Department:     r.Department,
		Surgeon:        r.Surgeon,
		Diagnosis:      r.Diagnosis,
		Operation:      r.Operation,
		Ward:           r.Ward,
		CaseSize:       r.CaseSize,
		Assist1:        r.Assist1,
		Assist2:        r.Assist2,
		ScrubNurse:     r.ScrubNurse,
		CirculateNurse: r.CirculateNurse,
	}
	if r.SurgeryDate != "" {
		date, _ := time.Parse("2006-01-02", r.SurgeryDate)
		surgery.SurgeryDate = &date
	}
	return surgery
}

func (r *SurgeryUpdateRequest) toUpdates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.ORRoom != nil {
		updates["or_room"] = *r.ORRoom
	}
	if r.NotReadyReason != nil {
		updates["not_ready_reason"] = *r.NotReadyReason
	}
	if r.QueueOrder != nil {
		updates["queue_order"] = *r.QueueOrder
	}
	if r.SelectedOR != nil {
		updates["selected_or"] = *r.SelectedOR
	}
	if r.ScheduledTime != nil {
		updates["scheduled_time"] = *r.ScheduledTime
	}
	if r.Assist1 != nil {
		updates["assist1"] = *r.Assist1
	}
	if r.Assist2 != nil {
		updates["assist2"] = *r.Assist2
	}
	if r.ScrubNurse != nil {
		updates["scrub_nurse"] = *r.ScrubNurse
	}
	if r.CirculateNurse != nil {
		updates["circulate_nurse"] = *r.CirculateNurse
	}
	return updates
}
