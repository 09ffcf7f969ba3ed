package swimmer

import "fmt"

// classYearLabels maps a graduation year's offset from the current
// senior year to its display label. The trailing codes are the site's
// placeholder labels for middle-school graduation years.
var classYearLabels = [...]string{"SR", "JR", "SO", "FR", "'8", "'7"}

// ClassYearsFor builds the graduation-year to class-year mapping for a
// season whose seniors graduate in seniorYear.
func ClassYearsFor(seniorYear int) map[int]string {
	years := make(map[int]string, len(classYearLabels))
	for offset, label := range classYearLabels {
		years[seniorYear+offset] = label
	}
	return years
}

// UnknownClassYearError reports a graduation code outside the
// configured class-year mapping.
type UnknownClassYearError struct {
	Code int
}

func (e *UnknownClassYearError) Error() string {
	return fmt.Sprintf("unknown graduation year code: %d", e.Code)
}
