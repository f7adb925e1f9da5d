package handler

import (
	"net/http"
	"strconv"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/service"
	"surgitrack-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

type ScheduleUpsertRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	ShiftType string `json:"shift_type" binding:"required,oneof=afternoon night"`

	Incharge   string `json:"incharge"`
	Nurse1     string `json:"nurse_1"`
	Nurse2     string `json:"nurse_2"`
	Nurse3     string `json:"nurse_3"`
	Nurse4     string `json:"nurse_4"`
	Nurse5     string `json:"nurse_5"`
	Nurse6     string `json:"nurse_6"`
	Assistant1 string `json:"assistant_1"`
	Assistant2 string `json:"assistant_2"`
	Worker1    string `json:"worker_1"`
	Worker2    string `json:"worker_2"`
	Worker3    string `json:"worker_3"`
	KeyPerson  string `json:"key_person"`
}

// Upsert creates or updates the schedule for a date and shift
func (h *ScheduleHandler) Upsert(c *gin.Context) {
	var req ScheduleUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	schedule := &models.WorkSchedule{
		Date:       date,
		ShiftType:  req.ShiftType,
		Incharge:   req.Incharge,
		Nurse1:     req.Nurse1,
		Nurse2:     req.Nurse2,
		Nurse3:     req.Nurse3,
		Nurse4:     req.Nurse4,
		Nurse5:     req.Nurse5,
		Nurse6:     req.Nurse6,
		Assistant1: req.Assistant1,
		Assistant2: req.Assistant2,
		Worker1:    req.Worker1,
		Worker2:    req.Worker2,
		Worker3:    req.Worker3,
		KeyPerson:  req.KeyPerson,
	}

	saved, err := h.scheduleService.UpsertSchedule(schedule)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": saved})
}

// GetByDate returns both shifts for a date
func (h *ScheduleHandler) GetByDate(c *gin.Context) {
	date, err := parseDateParam(c, "date")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date. Use YYYY-MM-DD")
		return
	}

	schedules, err := h.scheduleService.GetSchedulesByDate(date)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch schedules")
		return
	}

	utils.SuccessResponse(c, schedules)
}

// GetByDateAndShift returns one shift's schedule
func (h *ScheduleHandler) GetByDateAndShift(c *gin.Context) {
	date, err := parseDateParam(c, "date")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date. Use YYYY-MM-DD")
		return
	}

	shiftType := c.Param("shift_type")
	schedule, err := h.scheduleService.GetScheduleByDateAndShift(date, shiftType)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, schedule)
}

// GetByMonth returns all schedules inside a calendar month
func (h *ScheduleHandler) GetByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid month")
		return
	}

	schedules, err := h.scheduleService.GetSchedulesByMonth(year, time.Month(month))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch schedules")
		return
	}

	utils.SuccessResponse(c, schedules)
}

// Delete removes one shift's schedule
func (h *ScheduleHandler) Delete(c *gin.Context) {
	date, err := parseDateParam(c, "date")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date. Use YYYY-MM-DD")
		return
	}

	shiftType := c.Param("shift_type")
	if err := h.scheduleService.DeleteSchedule(date, shiftType); err != nil {
		domainErrorResponse(c, err)
		return
	}

	utils.MessageResponse(c, "Schedule deleted successfully")
}
