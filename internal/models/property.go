package models

type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeFlat       PropertyType = "flat"
	PropertyTypePlot       PropertyType = "plot"
	PropertyTypeCommercial PropertyType = "commercial"
)

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusPending   PropertyStatus = "pending"
	PropertyStatusSold      PropertyStatus = "sold"
)

type Property struct {
	BaseModelWithDeleted
	OwnerID     string         `gorm:"not null;index" json:"ownerId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	Type        PropertyType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Status      PropertyStatus `gorm:"type:varchar(20);default:'available';index" json:"status"`
	BHK         int            `json:"bhk"`
	AreaSqft    float64        `json:"areaSqft"`
	City        string         `gorm:"index" json:"city"`
	Address     string         `json:"address"`
	Amenities   string         `json:"amenities"` // comma-separated

	// Relations
	Owner  *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Photos []PropertyPhoto `gorm:"foreignKey:PropertyID" json:"photos,omitempty"`
}

type PropertyPhoto struct {
	BaseModel
	PropertyID string `gorm:"not null;index" json:"propertyId"`
	URL        string `gorm:"not null" json:"url"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
}
