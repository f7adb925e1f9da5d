package status

import "sort"

// Kind identifies a trackable entity kind
type Kind string

const (
	KindPatient Kind = "patient"
	KindSurgery Kind = "surgery"
)

// Category buckets a status value for timestamp side effects
type Category int

const (
	CategoryNotStarted Category = iota
	CategoryInProgress
	CategoryTerminal
)

// Definition describes a single recognized status value
type Definition struct {
	Category  Category
	ThaiLabel string
}

// Registry holds the recognized status values per entity kind.
// It is an explicit value passed into the transition applier, not a
// process-wide lookup.
type Registry struct {
	kinds map[Kind]map[string]Definition
}

// NewRegistry builds a registry from an explicit kind -> status mapping
func NewRegistry(kinds map[Kind]map[string]Definition) *Registry {
	return &Registry{kinds: kinds}
}

// DefaultRegistry returns the registry used by the running service
func DefaultRegistry() *Registry {
	return NewRegistry(map[Kind]map[string]Definition{
		KindPatient: {
			"waiting":    {CategoryNotStarted, "รอผ่าตัด"},
			"in_surgery": {CategoryInProgress, "กำลังผ่าตัด"},
			"recovering": {CategoryTerminal, "กำลังพักฟื้น"},
			"postponed":  {CategoryNotStarted, "เลื่อนการผ่าตัด"},
			"returning":  {CategoryTerminal, "กำลังส่งกลับตึก"},
		},
		KindSurgery: {
			"registered": {CategoryNotStarted, "ลงทะเบียน"},
			"waiting":    {CategoryNotStarted, "รอผ่าตัด"},
			"in_surgery": {CategoryInProgress, "กำลังผ่าตัด"},
			"recovery":   {CategoryTerminal, "พักฟื้น"},
			"completed":  {CategoryTerminal, "เสร็จสิ้น"},
			"cancelled":  {CategoryNotStarted, "ยกเลิก"},
			"not_ready":  {CategoryNotStarted, "ไม่พร้อม"},
		},
	})
}

// IsValid reports whether status is a recognized value for kind
func (r *Registry) IsValid(kind Kind, status string) bool {
	_, ok := r.kinds[kind][status]
	return ok
}

// Category returns the semantic bucket of a status value
func (r *Registry) Category(kind Kind, status string) (Category, bool) {
	def, ok := r.kinds[kind][status]
	return def.Category, ok
}

// ThaiLabel returns the localized display label for a status value.
// Unknown values fall back to the raw status string.
func (r *Registry) ThaiLabel(kind Kind, status string) string {
	if def, ok := r.kinds[kind][status]; ok {
		return def.ThaiLabel
	}
	return status
}

// Statuses returns the recognized values for a kind in sorted order
func (r *Registry) Statuses(kind Kind) []string {
	values := make([]string, 0, len(r.kinds[kind]))
	for s := range r.kinds[kind] {
		values = append(values, s)
	}
	sort.Strings(values)
	return values
}
