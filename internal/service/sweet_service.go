package service

import (
	"context"
	"fmt"
	"time"

	"sweetshop-api/internal/core/cache"
	"sweetshop-api/internal/domain"
	"sweetshop-api/pkg/utils"
)

const (
	listCacheKey = "sweets:all"
	listCacheTTL = 10 * time.Second
)

type SweetService struct {
	sweets domain.SweetRepository
	cache  *cache.Cache // 可为 nil（未配置 redis 时直读库）
}

func NewSweetService(sweets domain.SweetRepository, c *cache.Cache) *SweetService {
	return &SweetService{sweets: sweets, cache: c}
}

func (s *SweetService) Create(ctx context.Context, sw *domain.Sweet) (*domain.Sweet, error) {
	if sw.ID == "" {
		sw.ID = utils.NewID()
	}
	if err := s.sweets.Create(ctx, sw); err != nil {
		return nil, fmt.Errorf("create sweet: %w", err)
	}
	s.invalidate(ctx)
	return sw, nil
}

func (s *SweetService) List(ctx context.Context) ([]domain.Sweet, error) {
	if s.cache == nil {
		return s.sweets.List(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, listCacheKey, listCacheTTL, func(ctx context.Context) ([]domain.Sweet, error) {
		return s.sweets.List(ctx)
	})
}

func (s *SweetService) Search(ctx context.Context, f domain.SweetFilter) ([]domain.Sweet, error) {
	return s.sweets.Search(ctx, f)
}

func (s *SweetService) Update(ctx context.Context, id string, p domain.SweetPatch) (*domain.Sweet, error) {
	sw, err := s.sweets.Patch(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sw, nil
}

func (s *SweetService) Delete(ctx context.Context, id string) error {
	if err := s.sweets.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *SweetService) Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	sw, err := s.sweets.Restock(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sw, nil
}

func (s *SweetService) Purchase(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	sw, err := s.sweets.Purchase(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sw, nil
}

func (s *SweetService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, listCacheKey)
	}
}
