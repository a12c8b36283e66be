package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type MarketplaceService struct {
	MarketplaceRepo *repository.MarketplaceRepository
	NotificationSvc *NotificationService
}

func NewMarketplaceService(marketplaceRepo *repository.MarketplaceRepository, notificationSvc *NotificationService) *MarketplaceService {
	return &MarketplaceService{
		MarketplaceRepo: marketplaceRepo,
		NotificationSvc: notificationSvc,
	}
}

// CreateListing 讲师发布服务，初始为草稿
func (s *MarketplaceService) CreateListing(caller *util.Claims, listing *model.ServiceListing) error {
	if caller.Role != model.Instructor && caller.Role != model.Admin {
		return util.NewAuthorizationError("只有讲师可以发布服务")
	}
	if listing.Price < 0 {
		return util.NewValidationError("价格不能为负数")
	}

	listing.ProviderID = caller.UserID
	listing.Status = model.ListingDraft
	if err := s.MarketplaceRepo.CreateListing(listing); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

func (s *MarketplaceService) UpdateListing(caller *util.Claims, listing *model.ServiceListing) error {
	existing, err := s.findListing(listing.ID)
	if err != nil {
		return err
	}
	if caller.Role != model.Admin && caller.UserID != existing.ProviderID {
		return util.NewAuthorizationError("无权修改该服务")
	}
	if listing.Price < 0 {
		return util.NewValidationError("价格不能为负数")
	}

	existing.Title = listing.Title
	existing.Description = listing.Description
	existing.Category = listing.Category
	existing.Price = listing.Price
	if listing.Status != "" {
		existing.Status = listing.Status
	}
	if err := s.MarketplaceRepo.UpdateListing(existing); err != nil {
		return util.NewUnexpectedError(err)
	}
	*listing = *existing
	return nil
}

func (s *MarketplaceService) DeleteListing(caller *util.Claims, id uint) error {
	existing, err := s.findListing(id)
	if err != nil {
		return err
	}
	if caller.Role != model.Admin && caller.UserID != existing.ProviderID {
		return util.NewAuthorizationError("无权删除该服务")
	}
	if err := s.MarketplaceRepo.DeleteListing(id); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

func (s *MarketplaceService) GetListing(id uint) (*model.ServiceListing, error) {
	return s.findListing(id)
}

func (s *MarketplaceService) ListListings(page, limit int, category string) ([]model.ServiceListing, int64, error) {
	listings, total, err := s.MarketplaceRepo.ListActiveListings(page, limit, category)
	if err != nil {
		return nil, 0, util.NewUnexpectedError(err)
	}
	return listings, total, nil
}

// PlaceOrder 下单购买服务，通知服务提供者
func (s *MarketplaceService) PlaceOrder(caller *util.Claims, listingID uint, message string) (*model.ServiceOrder, error) {
	listing, err := s.findListing(listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != model.ListingActive {
		return nil, util.NewValidationError("该服务未上架")
	}
	if listing.ProviderID == caller.UserID {
		return nil, util.NewValidationError("不能购买自己发布的服务")
	}

	order := &model.ServiceOrder{
		ListingID: listingID,
		BuyerID:   caller.UserID,
		Message:   message,
		Status:    model.OrderPending,
	}
	if err := s.MarketplaceRepo.CreateOrder(order); err != nil {
		return nil, util.NewUnexpectedError(err)
	}

	s.NotificationSvc.Notify(listing.ProviderID, model.NotifyMarketplace,
		"收到新订单", "服务「"+listing.Title+"」收到了一笔新订单。")
	return order, nil
}

// UpdateOrderStatus 状态流转：提供者 PENDING->ACCEPTED->COMPLETED，
// 买家只能取消尚未接单的订单
func (s *MarketplaceService) UpdateOrderStatus(caller *util.Claims, orderID uint, status model.OrderStatus) error {
	order, err := s.MarketplaceRepo.FindOrderByID(orderID)
	if err == gorm.ErrRecordNotFound {
		return util.NewNotFoundError("订单不存在")
	} else if err != nil {
		return util.NewUnexpectedError(err)
	}

	isProvider := caller.UserID == order.Listing.ProviderID || caller.Role == model.Admin
	isBuyer := caller.UserID == order.BuyerID

	switch status {
	case model.OrderAccepted:
		if !isProvider {
			return util.NewAuthorizationError("只有服务提供者可以接单")
		}
		if order.Status != model.OrderPending {
			return util.NewConflictError("订单当前状态不允许接单")
		}
	case model.OrderCompleted:
		if !isProvider {
			return util.NewAuthorizationError("只有服务提供者可以完成订单")
		}
		if order.Status != model.OrderAccepted {
			return util.NewConflictError("订单尚未接单，无法完成")
		}
	case model.OrderCancelled:
		if !isBuyer && !isProvider {
			return util.NewAuthorizationError("无权取消该订单")
		}
		if order.Status == model.OrderCompleted {
			return util.NewConflictError("已完成的订单不能取消")
		}
	default:
		return util.NewValidationError("不支持的订单状态: " + string(status))
	}

	order.Status = status
	if err := s.MarketplaceRepo.UpdateOrder(order); err != nil {
		return util.NewUnexpectedError(err)
	}

	s.NotificationSvc.Notify(order.BuyerID, model.NotifyMarketplace,
		"订单状态更新", "订单 #"+util.FormatUint(order.ID)+" 状态已更新为 "+string(status)+"。")
	return nil
}

func (s *MarketplaceService) ListOrders(caller *util.Claims, asProvider bool) ([]model.ServiceOrder, error) {
	var (
		orders []model.ServiceOrder
		err    error
	)
	if asProvider {
		orders, err = s.MarketplaceRepo.ListOrdersByProvider(caller.UserID)
	} else {
		orders, err = s.MarketplaceRepo.ListOrdersByBuyer(caller.UserID)
	}
	if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return orders, nil
}

func (s *MarketplaceService) findListing(id uint) (*model.ServiceListing, error) {
	listing, err := s.MarketplaceRepo.FindListingByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("服务不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return listing, nil
}
