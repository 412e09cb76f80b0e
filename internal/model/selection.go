package model

// Sentinel filter values meaning "no filter".
const (
	AllCategories = "Todas"
	AllMonths     = "Todos"
)

// Selection is the pair of list filters owned by the caller.
// Empty fields behave like the sentinels.
type Selection struct {
	Category string
	Month    string // "YYYY-MM"
}

// AnyCategory reports whether the category filter is off.
func (s Selection) AnyCategory() bool {
	return s.Category == "" || s.Category == AllCategories
}

// AnyMonth reports whether the month filter is off.
func (s Selection) AnyMonth() bool {
	return s.Month == "" || s.Month == AllMonths
}
