package mcp

import (
	"context"
	"fmt"
	"sync"

	"skylog/internal/application"
	"skylog/internal/domain"
	"skylog/internal/ports"
)

// Service caches the last synced model per campaign so read tools do not
// re-run the pipeline on every call. sync_campaign refreshes explicitly.
type Service struct {
	syncer *application.Syncer
	store  ports.AnnotationStore

	mu     sync.Mutex
	models map[string]*domain.CampaignModel
}

func NewService(syncer *application.Syncer, store ports.AnnotationStore) *Service {
	return &Service{
		syncer: syncer,
		store:  store,
		models: map[string]*domain.CampaignModel{},
	}
}

// Model returns the cached model for a campaign, syncing on first use.
func (s *Service) Model(ctx context.Context, campaign string) (*domain.CampaignModel, error) {
	if campaign == "" {
		return nil, fmt.Errorf("campaign is required")
	}
	s.mu.Lock()
	model := s.models[campaign]
	s.mu.Unlock()
	if model != nil {
		return model, nil
	}
	return s.Refresh(ctx, campaign)
}

// Refresh re-runs the sync and replaces the cached model.
func (s *Service) Refresh(ctx context.Context, campaign string) (*domain.CampaignModel, error) {
	model, _, err := s.syncer.Sync(ctx, campaign, nil)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.models[campaign] = model
	s.mu.Unlock()
	return model, nil
}

// InvalidateAll drops every cached model. Annotations feed into merged
// models, so a write anywhere stales all of them.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	s.models = map[string]*domain.CampaignModel{}
	s.mu.Unlock()
}
