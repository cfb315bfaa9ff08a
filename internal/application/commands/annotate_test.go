package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"skylog/internal/domain"
)

type memStore struct {
	records map[int64]*domain.AnnotationRecord
}

func newMemStore() *memStore {
	return &memStore{records: map[int64]*domain.AnnotationRecord{}}
}

func (m *memStore) Get(serial int64) (*domain.AnnotationRecord, error) {
	return m.records[serial], nil
}

func (m *memStore) Put(record *domain.AnnotationRecord) error {
	m.records[record.Serial] = record
	return nil
}

func (m *memStore) All() ([]domain.AnnotationRecord, error) { return nil, nil }
func (m *memStore) Close() error                            { return nil }

func TestAnnotatePilotCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		serial    int64
		birthDate string
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "valid",
			serial:    1001,
			birthDate: "13/04/1897",
		},
		{
			name:   "valid without birth date",
			serial: 1001,
		},
		{
			name:    "missing serial",
			serial:  0,
			wantErr: true,
			errMsg:  "serial number is required",
		},
		{
			name:      "bad birth date",
			serial:    1001,
			birthDate: "April 1897",
			wantErr:   true,
			errMsg:    "unrecognized date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewAnnotatePilotCommand(newMemStore(), tt.serial)
			cmd.BirthDate = tt.birthDate
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestAnnotatePilotCommand_PartialUpdateKeepsFields(t *testing.T) {
	store := newMemStore()
	store.Put(&domain.AnnotationRecord{
		Serial:     1001,
		BirthPlace: "Krefeld",
		Notes:      "keep me",
	})

	cmd := NewAnnotatePilotCommand(store, 1001)
	cmd.BirthDate = "13/04/1897"
	cmd.now = func() time.Time { return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC) }

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Record.BirthDate != "13/04/1897" {
		t.Errorf("birth date not updated: %q", result.Record.BirthDate)
	}
	if result.Record.BirthPlace != "Krefeld" || result.Record.Notes != "keep me" {
		t.Errorf("unset fields were cleared: %+v", result.Record)
	}
	if result.Record.UpdatedAt.IsZero() {
		t.Error("updated timestamp not set")
	}
}

func TestAnnotatePilotCommand_CreatesRecord(t *testing.T) {
	store := newMemStore()
	cmd := NewAnnotatePilotCommand(store, 1002)
	cmd.Notes = "new pilot"

	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := store.Get(1002)
	if stored == nil || stored.Notes != "new pilot" {
		t.Errorf("record not created: %+v", stored)
	}
}

func TestSyncCampaignCommand_Validate(t *testing.T) {
	cmd := NewSyncCampaignCommand(nil, "")
	if err := cmd.Validate(); err == nil {
		t.Error("empty campaign should fail validation")
	}
	cmd = NewSyncCampaignCommand(nil, "Voss")
	if err := cmd.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
