package views

import "skylog/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages exchanged with the app model.

// CampaignChosenMsg asks the app to sync the chosen campaign.
type CampaignChosenMsg struct {
	Campaign string
}

// SyncDoneMsg carries a finished sync back into the views.
type SyncDoneMsg struct {
	Model       *domain.CampaignModel
	Diagnostics []domain.Diagnostic
}

// SyncFailedMsg reports a sync that produced no model.
type SyncFailedMsg struct {
	Err error
}

// AnnotateRequestMsg opens the annotation form for a pilot.
type AnnotateRequestMsg struct {
	Pilot domain.Pilot
}

// AnnotateSavedMsg reports a stored annotation; the app re-syncs.
type AnnotateSavedMsg struct {
	Serial int64
}

// AnnotateCancelMsg closes the form without saving.
type AnnotateCancelMsg struct{}

// BackToPickerMsg returns to campaign selection.
type BackToPickerMsg struct{}
