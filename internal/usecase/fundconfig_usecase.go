package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cajafund/cajafund/internal/domain"
)

const fundConfigCacheKey = "fund_config:default"

// FundConfigUseCase serves and edits the fund configuration record. Reads
// go through a short-lived cache because every loan and member operation
// consults the configuration; cache failures degrade to database reads.
type FundConfigUseCase struct {
	repo   FundConfigRepository
	cache  Cache
	logger zerolog.Logger
}

// NewFundConfigUseCase creates a new FundConfigUseCase.
func NewFundConfigUseCase(repo FundConfigRepository, cache Cache, logger zerolog.Logger) *FundConfigUseCase {
	return &FundConfigUseCase{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Current returns the fund configuration, preferring the cached copy.
func (uc *FundConfigUseCase) Current(ctx context.Context) (*domain.FundConfiguration, error) {
	if raw, err := uc.cache.Get(ctx, fundConfigCacheKey); err == nil && raw != nil {
		var cfg domain.FundConfiguration
		if err := json.Unmarshal(raw, &cfg); err == nil {
			return &cfg, nil
		}

		uc.logger.Warn().Msg("discarding malformed cached fund configuration")
	}

	cfg, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	uc.cacheSet(ctx, cfg)

	return cfg, nil
}

// UpdateFundConfigInput represents input for editing the fund configuration.
type UpdateFundConfigInput struct {
	InterestRatePct decimal.Decimal
	MaxTermMonths   int
	InitialDeposit  decimal.Decimal
	MemberFee       decimal.Decimal
	LoanFeePct      decimal.Decimal
}

// Update replaces the fund configuration and invalidates the cached copy.
// Loans already approved keep the rate stamped on them at approval time.
func (uc *FundConfigUseCase) Update(ctx context.Context, input UpdateFundConfigInput) (*domain.FundConfiguration, error) {
	cfg := &domain.FundConfiguration{
		ID:              domain.FundConfigID,
		InterestRatePct: input.InterestRatePct,
		MaxTermMonths:   input.MaxTermMonths,
		InitialDeposit:  domain.Round2(input.InitialDeposit),
		MemberFee:       domain.Round2(input.MemberFee),
		LoanFeePct:      input.LoanFeePct,
		UpdatedAt:       time.Now().UTC(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, cfg); err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, fundConfigCacheKey); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to invalidate fund configuration cache")
	}

	return cfg, nil
}

// Reload drops the cached copy so the next read hits the database.
func (uc *FundConfigUseCase) Reload(ctx context.Context) error {
	return uc.cache.Delete(ctx, fundConfigCacheKey)
}

func (uc *FundConfigUseCase) cacheSet(ctx context.Context, cfg *domain.FundConfiguration) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, fundConfigCacheKey, raw, FundConfigCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to cache fund configuration")
	}
}
