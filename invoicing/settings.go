package invoicing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/satheeshds/invoicer/logger"
	"github.com/satheeshds/invoicer/models"
	"github.com/shopspring/decimal"
)

const maxZeroPadding = 10

// SettingsStore owns the per-owner settings record.
type SettingsStore struct {
	repo  SettingsRepository
	clock func() time.Time
	log   zerolog.Logger
}

func NewSettingsStore(repo SettingsRepository) *SettingsStore {
	return &SettingsStore{
		repo:  repo,
		clock: time.Now,
		log:   logger.WithComponent("settings"),
	}
}

// GetOrCreate returns the owner's settings, creating the defaults on first access.
func (s *SettingsStore) GetOrCreate(ctx context.Context, ownerID string) (*models.Settings, error) {
	found, err := s.repo.FindSettings(ctx, ownerID)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, wrapStorage("find settings", err)
	}

	def := models.DefaultSettings(ownerID)
	def.UpdatedAt = s.clock()
	if err := s.repo.InsertSettings(ctx, &def); err != nil {
		if errors.Is(err, ErrDuplicate) {
			// Lost the race against another first access.
			found, err := s.repo.FindSettings(ctx, ownerID)
			return found, wrapStorage("find settings", err)
		}
		return nil, wrapStorage("insert settings", err)
	}
	s.log.Info().Str("owner_id", ownerID).Msg("created default settings")
	return &def, nil
}

// Update applies the non-nil fields of patch. Out-of-range values are clamped
// rather than rejected.
func (s *SettingsStore) Update(ctx context.Context, ownerID string, patch models.SettingsPatch) (*models.Settings, error) {
	cur, err := s.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	next := ApplySettingsPatch(*cur, patch)
	next.UpdatedAt = s.clock()
	if err := s.repo.SaveSettings(ctx, &next); err != nil {
		return nil, wrapStorage("save settings", err)
	}
	return &next, nil
}

// ApplySettingsPatch is the pure part of Update.
func ApplySettingsPatch(cur models.Settings, p models.SettingsPatch) models.Settings {
	if p.CompanyName != nil {
		cur.CompanyName = *p.CompanyName
	}
	if p.CompanyAddress != nil {
		cur.CompanyAddress = *p.CompanyAddress
	}
	if p.CompanyTaxID != nil {
		cur.CompanyTaxID = *p.CompanyTaxID
	}
	if p.LogoDataURL != nil {
		cur.LogoDataURL = *p.LogoDataURL
	}
	if p.VATEnabled != nil {
		cur.VATEnabled = *p.VATEnabled
	}
	if p.VATRate != nil {
		cur.VATRate = clamp(p.VATRate.Round(4), decimal.Zero, decimal.NewFromInt(1))
	}
	if p.Currency != nil {
		cur.Currency = strings.TrimSpace(*p.Currency)
	}
	if p.NumberingPrefix != nil {
		cur.NumberingPrefix = strings.TrimSpace(*p.NumberingPrefix)
	}
	if p.ZeroPadding != nil {
		cur.ZeroPadding = min(max(*p.ZeroPadding, 1), maxZeroPadding)
	}
	if p.ResetNumberYearly != nil {
		cur.ResetNumberYearly = *p.ResetNumberYearly
	}
	if p.BusinessType != nil {
		switch bt := *p.BusinessType; bt {
		case models.BusinessServices, models.BusinessCommerce:
			if bt != cur.BusinessType && p.MonthlyCap == nil {
				cur.MonthlyCap = models.DefaultMonthlyCap(bt)
			}
			cur.BusinessType = bt
		}
	}
	if p.MonthlyCap != nil {
		cur.MonthlyCap = p.MonthlyCap.Round(2)
		if cur.MonthlyCap.IsNegative() {
			cur.MonthlyCap = decimal.Zero
		}
	}
	return cur
}

func clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}
