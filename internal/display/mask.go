// Package display derives the privacy-redacted projection of today's
// patients for the unauthenticated TV board.
package display

import (
	"strings"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/status"
)

// Marker replaces the redacted part of identifiers and names
const Marker = "***"

// MaskHN redacts a hospital number, revealing only the last 3 characters.
// Inputs of 3 characters or fewer are returned as the marker plus the full
// string, the same rule MaskName uses for short names.
func MaskHN(hn string) string {
	runes := []rune(hn)
	if len(runes) <= 3 {
		return Marker + hn
	}
	return Marker + string(runes[len(runes)-3:])
}

// MaskName redacts a full name, revealing only the first 3 characters of
// the first name token
func MaskName(fullName string) string {
	if len([]rune(fullName)) <= 3 {
		return Marker + fullName
	}
	first := fullName
	if parts := strings.Fields(fullName); len(parts) > 0 {
		first = parts[0]
	}
	if runes := []rune(first); len(runes) > 3 {
		first = string(runes[:3])
	}
	return first + Marker
}

// DisplayStatuses is the set of patient statuses eligible for the public board
var DisplayStatuses = []string{"waiting", "in_surgery", "recovering", "returning"}

// Project maps patients onto their masked public views. It is pure: the
// input slice is not mutated and identical input yields identical output.
func Project(reg *status.Registry, patients []models.Patient) []models.PublicDisplay {
	views := make([]models.PublicDisplay, 0, len(patients))
	for _, p := range patients {
		views = append(views, models.PublicDisplay{
			ORRoom:     p.ORRoom,
			HNMasked:   MaskHN(p.HN),
			NameMasked: MaskName(p.FullName),
			Status:     p.Status,
			StatusThai: reg.ThaiLabel(status.KindPatient, p.Status),
		})
	}
	return views
}
