package entity

// AssetTypeLogo is the branding image shown on the login and landing pages.
const AssetTypeLogo = "logo"

// CompanyAsset is a singleton branding blob keyed by Type.
type CompanyAsset struct {
	BaseNoDelete
	Type string `db:"type"`
	Data string `db:"data"`
}
