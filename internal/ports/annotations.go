package ports

import "skylog/internal/domain"

// AnnotationStore persists user-entered pilot metadata independently of any
// campaign sync. Get returns nil when no record exists for the serial.
// Implementations must be safe for a concurrent read during a write.
type AnnotationStore interface {
	Get(serial int64) (*domain.AnnotationRecord, error)
	Put(record *domain.AnnotationRecord) error
	All() ([]domain.AnnotationRecord, error)
	Close() error
}
