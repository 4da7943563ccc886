package models

// Contractor is a service provider profile (plumber, painter, architect, ...)
// listed on the marketplace.
type Contractor struct {
	BaseModel
	Name        string `gorm:"not null" json:"name"`
	Phone       string `gorm:"not null" json:"phone"`
	Email       string `gorm:"index" json:"email"`
	Location    string `json:"location"`
	ServiceType string `gorm:"index" json:"serviceType"`
	Verified    bool   `gorm:"default:false" json:"verified"`

	// Relations
	Portfolio []PortfolioEntry `gorm:"foreignKey:ContractorID;constraint:OnDelete:CASCADE" json:"portfolio"`
}

// PortfolioEntry is one completed project shown on a contractor profile.
// An entry is persisted only when all scalar fields are filled and it has
// at least one image.
type PortfolioEntry struct {
	BaseModel
	ContractorID string           `gorm:"not null;index" json:"contractorId"`
	Title        string           `gorm:"not null" json:"title"`
	Description  string           `gorm:"not null" json:"description"`
	CompletedOn  string           `gorm:"not null" json:"completedOn"`
	Location     string           `gorm:"not null" json:"location"`
	OrderIndex   int              `gorm:"default:0" json:"orderIndex"`
	Images       []PortfolioImage `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"images"`
}

// PortfolioImage holds one hosted image URL. OrderIndex preserves upload order.
type PortfolioImage struct {
	BaseModel
	EntryID    string `gorm:"not null;index" json:"entryId"`
	URL        string `gorm:"not null" json:"url"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
}
