package domain

import "time"

// AnnotationRecord is user-entered pilot metadata. It lives in the
// annotation store, keyed by serial number, and survives re-imports: the
// ingestion pipeline only ever reads it.
type AnnotationRecord struct {
	Serial     int64
	BirthDate  string // free-form, as entered (typically DD/MM/YYYY)
	BirthPlace string
	Notes      string
	PhotoPath  string
	UpdatedAt  time.Time
}

// Clone returns a copy so merged models never alias store-owned records.
func (r *AnnotationRecord) Clone() *AnnotationRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// Age computes the pilot's age at a reference date from the annotated birth
// date. Returns false when the birth date is absent or unparsable.
func (r *AnnotationRecord) Age(at time.Time) (int, bool) {
	if r == nil || r.BirthDate == "" || at.IsZero() {
		return 0, false
	}
	born, err := ParseDate(r.BirthDate)
	if err != nil {
		return 0, false
	}
	age := at.Year() - born.Year()
	if at.Month() < born.Month() || (at.Month() == born.Month() && at.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}
