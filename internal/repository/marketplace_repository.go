package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type MarketplaceRepository struct {
	DB *gorm.DB
}

func NewMarketplaceRepository(db *gorm.DB) *MarketplaceRepository {
	return &MarketplaceRepository{DB: db}
}

func (r *MarketplaceRepository) CreateListing(l *model.ServiceListing) error {
	return r.DB.Create(l).Error
}

func (r *MarketplaceRepository) FindListingByID(id uint) (*model.ServiceListing, error) {
	var l model.ServiceListing
	err := r.DB.Preload("Provider").First(&l, id).Error
	return &l, err
}

func (r *MarketplaceRepository) UpdateListing(l *model.ServiceListing) error {
	return r.DB.Save(l).Error
}

func (r *MarketplaceRepository) DeleteListing(id uint) error {
	return r.DB.Delete(&model.ServiceListing{}, id).Error
}

func (r *MarketplaceRepository) ListActiveListings(page, limit int, category string) ([]model.ServiceListing, int64, error) {
	q := r.DB.Model(&model.ServiceListing{}).Where("status = ?", model.ListingActive)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []model.ServiceListing
	err := q.Preload("Provider").
		Offset((page - 1) * limit).Limit(limit).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, total, err
}

func (r *MarketplaceRepository) CreateOrder(o *model.ServiceOrder) error {
	return r.DB.Create(o).Error
}

func (r *MarketplaceRepository) FindOrderByID(id uint) (*model.ServiceOrder, error) {
	var o model.ServiceOrder
	err := r.DB.Preload("Listing").Preload("Listing.Provider").First(&o, id).Error
	return &o, err
}

func (r *MarketplaceRepository) UpdateOrder(o *model.ServiceOrder) error {
	return r.DB.Save(o).Error
}

func (r *MarketplaceRepository) ListOrdersByBuyer(buyerID uint) ([]model.ServiceOrder, error) {
	var orders []model.ServiceOrder
	err := r.DB.Preload("Listing").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *MarketplaceRepository) ListOrdersByProvider(providerID uint) ([]model.ServiceOrder, error) {
	var orders []model.ServiceOrder
	err := r.DB.Preload("Listing").
		Joins("JOIN service_listings ON service_listings.id = service_orders.listing_id").
		Where("service_listings.provider_id = ?", providerID).
		Order("service_orders.created_at DESC").
		Find(&orders).Error
	return orders, err
}
