package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessType selects the default monthly cap.
type BusinessType string

const (
	BusinessServices BusinessType = "services"
	BusinessCommerce BusinessType = "commerce"
)

// DefaultMonthlyCap returns the cap a business type starts with.
func DefaultMonthlyCap(bt BusinessType) decimal.Decimal {
	if bt == BusinessCommerce {
		return decimal.NewFromInt(500000)
	}
	return decimal.NewFromInt(200000)
}

// Settings is the per-owner company, VAT and numbering configuration.
type Settings struct {
	OwnerID           string          `json:"owner_id"`
	CompanyName       string          `json:"company_name"`
	CompanyAddress    string          `json:"company_address"`
	CompanyTaxID      string          `json:"company_tax_id"`
	LogoDataURL       string          `json:"logo_data_url"`
	VATEnabled        bool            `json:"vat_enabled"`
	VATRate           decimal.Decimal `json:"vat_rate"`
	Currency          string          `json:"currency"`
	NumberingPrefix   string          `json:"numbering_prefix"`
	ZeroPadding       int             `json:"zero_padding"`
	ResetNumberYearly bool            `json:"reset_number_yearly"`
	BusinessType      BusinessType    `json:"business_type"`
	MonthlyCap        decimal.Decimal `json:"monthly_cap"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// DefaultSettings returns the record created on an owner's first access.
func DefaultSettings(ownerID string) Settings {
	return Settings{
		OwnerID:           ownerID,
		VATEnabled:        true,
		VATRate:           decimal.RequireFromString("0.20"),
		Currency:          "DH",
		NumberingPrefix:   "INV",
		ZeroPadding:       4,
		ResetNumberYearly: true,
		BusinessType:      BusinessServices,
		MonthlyCap:        DefaultMonthlyCap(BusinessServices),
	}
}

// SettingsPatch is a partial settings update; only non-nil fields are applied.
type SettingsPatch struct {
	CompanyName       *string          `json:"company_name"`
	CompanyAddress    *string          `json:"company_address"`
	CompanyTaxID      *string          `json:"company_tax_id"`
	LogoDataURL       *string          `json:"logo_data_url"`
	VATEnabled        *bool            `json:"vat_enabled"`
	VATRate           *decimal.Decimal `json:"vat_rate"`
	Currency          *string          `json:"currency"`
	NumberingPrefix   *string          `json:"numbering_prefix"`
	ZeroPadding       *int             `json:"zero_padding"`
	ResetNumberYearly *bool            `json:"reset_number_yearly"`
	BusinessType      *BusinessType    `json:"business_type"`
	MonthlyCap        *decimal.Decimal `json:"monthly_cap"`
}
