package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

type ImportService struct {
	patientRepo *repository.PatientRepository
}

func NewImportService(patientRepo *repository.PatientRepository) *ImportService {
	return &ImportService{patientRepo: patientRepo}
}

// Fixed header -> field mapping, Thai and English spellings.
// Unknown columns are ignored.
var importColumns = map[string]string{
	"hn":               "hn",
	"รหัส":             "hn",
	"รหัสผู้ป่วย":      "hn",
	"ชื่อ":             "full_name",
	"ชื่อ-สกุล":        "full_name",
	"full_name":        "full_name",
	"name":             "full_name",
	"อายุ":             "age",
	"age":              "age",
	"เพศ":              "gender",
	"gender":           "gender",
	"การวินิจฉัย":      "diagnosis",
	"diagnosis":        "diagnosis",
	"การผ่าตัด":        "operation",
	"operation":        "operation",
	"ศัลยแพทย์":        "surgeon",
	"surgeon":          "surgeon",
	"วิสัญญี":          "anesthesiologist",
	"anesthesiologist": "anesthesiologist",
	"ห้องผ่าตัด":       "or_room",
	"or_room":          "or_room",
	"or":               "or_room",
	"วันที่":           "scheduled_date",
	"scheduled_date":   "scheduled_date",
	"date":             "scheduled_date",
	"เวลา":             "scheduled_time",
	"scheduled_time":   "scheduled_time",
	"time":             "scheduled_time",
	"หมายเหตุ":         "notes",
	"notes":            "notes",
}

// ImportPatients parses an .xlsx or .csv upload and creates one patient per
// usable row. Rows missing hn or full_name are skipped.
func (s *ImportService) ImportPatients(filename string, data []byte, patientType string, createdBy uint) ([]models.Patient, error) {
	lower := strings.ToLower(filename)

	var rows [][]string
	var err error
	switch {
	case strings.HasSuffix(lower, ".csv"):
		rows, err = readCSVRows(data)
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		rows, err = readExcelRows(data)
	default:
		return nil, errors.New("invalid file type: please upload .xlsx, .xls, or .csv")
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("file contains no data rows")
	}

	fields := mapHeader(rows[0])
	if fields["hn"] < 0 || fields["full_name"] < 0 {
		return nil, errors.New("missing required columns: hn, full_name")
	}

	imported := make([]models.Patient, 0, len(rows)-1)
	for _, row := range rows[1:] {
		patient, ok := rowToPatient(row, fields, patientType, createdBy)
		if !ok {
			continue
		}
		if err := s.patientRepo.CreatePatient(&patient); err != nil {
			return nil, fmt.Errorf("failed to import patient %s: %w", patient.HN, err)
		}
		imported = append(imported, patient)
	}
	return imported, nil
}

func readCSVRows(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

func readExcelRows(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// mapHeader resolves each known field to its column index, -1 when absent
func mapHeader(header []string) map[string]int {
	fields := map[string]int{
		"hn": -1, "full_name": -1, "age": -1, "gender": -1,
		"diagnosis": -1, "operation": -1, "surgeon": -1,
		"anesthesiologist": -1, "or_room": -1,
		"scheduled_date": -1, "scheduled_time": -1, "notes": -1,
	}
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if field, ok := importColumns[key]; ok && fields[field] < 0 {
			fields[field] = i
		}
	}
	return fields
}

func rowToPatient(row []string, fields map[string]int, patientType string, createdBy uint) (models.Patient, bool) {
	cell := func(field string) string {
		idx := fields[field]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	hn := cell("hn")
	fullName := cell("full_name")
	if hn == "" || fullName == "" {
		return models.Patient{}, false
	}

	patient := models.Patient{
		HN:               hn,
		FullName:         fullName,
		Gender:           normalizeGender(cell("gender")),
		Diagnosis:        cell("diagnosis"),
		Operation:        cell("operation"),
		Surgeon:          cell("surgeon"),
		Anesthesiologist: cell("anesthesiologist"),
		ORRoom:           cell("or_room"),
		PatientType:      patientType,
		Status:           "waiting",
		Notes:            cell("notes"),
		CreatedBy:        &createdBy,
	}

	if age, err := strconv.Atoi(cell("age")); err == nil {
		patient.Age = &age
	}
	if date, err := time.Parse("2006-01-02", cell("scheduled_date")); err == nil {
		patient.ScheduledDate = &date
	}
	if t := cell("scheduled_time"); t != "" {
		if _, err := time.Parse("15:04", t); err == nil {
			patient.ScheduledTime = &t
		}
	}

	return patient, true
}

func normalizeGender(raw string) string {
	switch strings.ToLower(raw) {
	case "male", "m", "ชาย":
		return "male"
	case "female", "f", "หญิง":
		return "female"
	case "other":
		return "other"
	default:
		return ""
	}
}
