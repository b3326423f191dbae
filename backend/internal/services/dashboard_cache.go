package services

import (
	"time"

	"housing-manager/backend/internal/cache"
	"housing-manager/backend/internal/models"

	"gorm.io/gorm"
)

const dashboardSummaryKey = "dashboard:summary"

// CachedDashboardService is a read-through cache around the summary query.
// Mutating handlers call Invalidate so staff never see counts older than
// the TTL after a write.
type CachedDashboardService struct {
	inner DashboardService
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedDashboardService(inner DashboardService, c cache.Cache, ttl time.Duration) *CachedDashboardService {
	return &CachedDashboardService{inner: inner, cache: c, ttl: ttl}
}

func (s *CachedDashboardService) Summary(db *gorm.DB, ident models.Identity) (*DashboardSummary, error) {
	// The policy gate runs before the cache so a cached summary never leaks
	// to a non-staff caller.
	if !CanViewDashboard(ident.Role) {
		return nil, ErrForbidden
	}

	var cached DashboardSummary
	if err := s.cache.Get(dashboardSummaryKey, &cached); err == nil {
		return &cached, nil
	}

	summary, err := s.inner.Summary(db, ident)
	if err != nil {
		return nil, err
	}

	// Cache failures only cost the next caller a recount.
	_ = s.cache.Set(dashboardSummaryKey, summary, s.ttl)

	return summary, nil
}

func (s *CachedDashboardService) Invalidate() {
	_ = s.cache.Delete(dashboardSummaryKey)
}
