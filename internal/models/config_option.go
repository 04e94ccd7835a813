package models

// Option list types.
const (
	OptionTypeCountry  = "country"
	OptionTypeCurrency = "currency"
)

// ConfigOption is a user-managed entry in the country or currency pick lists.
type ConfigOption struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Type  string `gorm:"not null;uniqueIndex:idx_config_type_value" json:"type"`
	Value string `gorm:"not null;uniqueIndex:idx_config_type_value" json:"value"`
}

// TableName overrides the default table name.
func (ConfigOption) TableName() string { return "config_options" }
