package models

// Owner is a person whose banks and assets are tracked. Owner names are
// unique; the default owner "Me" is seeded into every fresh database.
type Owner struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// TableName overrides the default table name.
func (Owner) TableName() string { return "owners" }
