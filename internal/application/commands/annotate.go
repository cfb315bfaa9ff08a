package commands

import (
	"context"
	"fmt"
	"time"

	"skylog/internal/application"
	"skylog/internal/domain"
	"skylog/internal/ports"
)

// AnnotatePilotResult contains the record as persisted.
type AnnotatePilotResult struct {
	Record *domain.AnnotationRecord
}

// AnnotatePilotCommand stores user-entered metadata for a pilot. Fields left
// empty keep their previously stored value, so partial updates are safe.
type AnnotatePilotCommand struct {
	store      ports.AnnotationStore
	Serial     int64
	BirthDate  string
	BirthPlace string
	Notes      string
	PhotoPath  string

	now func() time.Time
}

// NewAnnotatePilotCommand creates a new AnnotatePilotCommand
func NewAnnotatePilotCommand(store ports.AnnotationStore, serial int64) *AnnotatePilotCommand {
	return &AnnotatePilotCommand{
		store:  store,
		Serial: serial,
		now:    time.Now,
	}
}

// Validate checks if the annotation can be stored
func (c *AnnotatePilotCommand) Validate() error {
	if c.Serial == 0 {
		return &application.ValidationError{
			Field:   "serial",
			Message: "pilot serial number is required",
		}
	}
	if c.BirthDate != "" {
		if _, err := domain.ParseDate(c.BirthDate); err != nil {
			return &application.ValidationError{
				Field:   "birthDate",
				Message: fmt.Sprintf("unrecognized date: %v", err),
			}
		}
	}
	return nil
}

// Execute runs the annotate command
func (c *AnnotatePilotCommand) Execute(ctx context.Context) (*AnnotatePilotResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	record, err := c.store.Get(c.Serial)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing annotation: %w", err)
	}
	if record == nil {
		record = &domain.AnnotationRecord{Serial: c.Serial}
	}

	if c.BirthDate != "" {
		record.BirthDate = c.BirthDate
	}
	if c.BirthPlace != "" {
		record.BirthPlace = c.BirthPlace
	}
	if c.Notes != "" {
		record.Notes = c.Notes
	}
	if c.PhotoPath != "" {
		record.PhotoPath = c.PhotoPath
	}
	record.UpdatedAt = c.now()

	if err := c.store.Put(record); err != nil {
		return nil, fmt.Errorf("failed to store annotation: %w", err)
	}

	return &AnnotatePilotResult{Record: record}, nil
}
