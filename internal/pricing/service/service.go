package service

import (
	"context"
	"encoding/json"

	"servant_backend/internal/pricing/transport"
	"servant_backend/internal/siteconfig/store"
	sitetransport "servant_backend/internal/siteconfig/transport"
	"servant_backend/platform/apperr"
)

// requiredConfigKeys are the top-level keys a pricing config replacement
// must carry. A PUT missing any of them is rejected outright instead of
// silently zeroing whole rate tables.
var requiredConfigKeys = []string{"eventTypes", "serviceStyles", "perPersonRate", "addOns"}

// Service loads pricing and menu documents and computes estimates. The
// server never trusts a client-submitted total: every estimate is recomputed
// here from the stored configuration.
type Service struct {
	store store.DocumentStore
}

// New creates a new pricing service.
func New(docs store.DocumentStore) *Service {
	return &Service{store: docs}
}

// Config returns the current pricing configuration, with empty rate tables
// when none has been saved yet.
func (s *Service) Config(ctx context.Context) (transport.PricingConfig, error) {
	cfg := transport.PricingConfig{
		EventTypes:    map[string]transport.PricingEntry{},
		ServiceStyles: map[string]transport.PricingEntry{},
		AddOns:        []transport.AddOn{},
	}
	if _, err := s.store.Load(ctx, store.DocPricing, &cfg); err != nil {
		return transport.PricingConfig{}, apperr.Wrap(apperr.KindUnavailable, "failed to load pricing config", err)
	}
	if cfg.EventTypes == nil {
		cfg.EventTypes = map[string]transport.PricingEntry{}
	}
	if cfg.ServiceStyles == nil {
		cfg.ServiceStyles = map[string]transport.PricingEntry{}
	}
	if cfg.AddOns == nil {
		cfg.AddOns = []transport.AddOn{}
	}
	return cfg, nil
}

// UpdateConfig replaces the pricing configuration from the raw request body.
// All four top-level keys must be present; numeric fields are normalized
// (string and empty inputs coerce to numbers) and the normalized config is
// returned so the admin UI can re-render exactly what was stored.
func (s *Service) UpdateConfig(ctx context.Context, raw []byte) (transport.PricingConfig, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		return transport.PricingConfig{}, apperr.Wrap(apperr.KindBadRequest, "invalid pricing config payload", err)
	}
	for _, key := range requiredConfigKeys {
		if _, ok := shape[key]; !ok {
			return transport.PricingConfig{}, apperr.Validation("pricing config is missing key: " + key)
		}
	}

	var cfg transport.PricingConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return transport.PricingConfig{}, apperr.Wrap(apperr.KindBadRequest, "invalid pricing config payload", err)
	}
	for key, entry := range cfg.EventTypes {
		cfg.EventTypes[key] = normalizeEntry(entry)
	}
	for key, entry := range cfg.ServiceStyles {
		cfg.ServiceStyles[key] = normalizeEntry(entry)
	}
	seen := make(map[string]bool, len(cfg.AddOns))
	for i := range cfg.AddOns {
		if seen[cfg.AddOns[i].ID] {
			return transport.PricingConfig{}, apperr.Validation("duplicate add-on id: " + cfg.AddOns[i].ID)
		}
		seen[cfg.AddOns[i].ID] = true
		if cfg.AddOns[i].PricingType != transport.PricingPerPerson {
			cfg.AddOns[i].PricingType = transport.PricingFlat
		}
	}

	if err := s.store.Save(ctx, store.DocPricing, cfg); err != nil {
		return transport.PricingConfig{}, apperr.Wrap(apperr.KindUnavailable, "failed to save pricing config", err)
	}
	return cfg, nil
}

func normalizeEntry(entry transport.PricingEntry) transport.PricingEntry {
	if entry.PricingType != transport.PricingPerPerson {
		entry.PricingType = transport.PricingFlat
	}
	return entry
}

// Estimate computes an authoritative price breakdown from the stored
// configuration and the given selections.
func (s *Service) Estimate(ctx context.Context, in transport.EstimateInput) (transport.QuoteEstimate, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return transport.QuoteEstimate{}, err
	}

	var menu sitetransport.MenuConfig
	if in.Meal != nil {
		if _, err := s.store.Load(ctx, store.DocMenu, &menu); err != nil {
			return transport.QuoteEstimate{}, apperr.Wrap(apperr.KindUnavailable, "failed to load menu", err)
		}
	}

	return CalculateEstimate(cfg, menu, in), nil
}
