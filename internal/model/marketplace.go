package model

type ListingStatus string

const (
	ListingDraft    ListingStatus = "DRAFT"
	ListingActive   ListingStatus = "ACTIVE"
	ListingArchived ListingStatus = "ARCHIVED"
)

// ServiceListing 服务市场里导师/讲师发布的付费服务（答疑、代码评审等）
type ServiceListing struct {
	BaseModel
	ProviderID  uint          `gorm:"index;type:bigint unsigned" json:"providerId"`
	Provider    User          `gorm:"foreignKey:ProviderID" json:"provider"`
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Category    string        `gorm:"size:50" json:"category"`
	Price       float64       `gorm:"not null" json:"price"`
	Status      ListingStatus `gorm:"type:enum('DRAFT','ACTIVE','ARCHIVED');default:'DRAFT'" json:"status"`
}

func (ServiceListing) TableName() string {
	return "service_listings"
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderAccepted  OrderStatus = "ACCEPTED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type ServiceOrder struct {
	BaseModel
	ListingID uint           `gorm:"index;type:bigint unsigned" json:"listingId"`
	Listing   ServiceListing `gorm:"foreignKey:ListingID" json:"listing"`
	BuyerID   uint           `gorm:"index;type:bigint unsigned" json:"buyerId"`
	Buyer     User           `gorm:"foreignKey:BuyerID" json:"-"`
	Message   string         `gorm:"type:text" json:"message"`
	Status    OrderStatus    `gorm:"type:enum('PENDING','ACCEPTED','COMPLETED','CANCELLED');default:'PENDING'" json:"status"`
}

func (ServiceOrder) TableName() string {
	return "service_orders"
}
