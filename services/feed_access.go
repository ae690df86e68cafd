package services

import (
	"github.com/nabilnabti/tapeat-sub001/repository"
)

// FeedAccess implements ws.AccessChecker: the staff board is owner-only,
// the order feed belongs to the customer who placed it.
type FeedAccess struct {
	Orders   *repository.OrderRepository
	RestRepo *repository.RestaurantRepository
}

func NewFeedAccess(orders *repository.OrderRepository, restRepo *repository.RestaurantRepository) *FeedAccess {
	return &FeedAccess{Orders: orders, RestRepo: restRepo}
}

func (a *FeedAccess) CanSeeRestaurantFeed(userID, restaurantID uint) (bool, error) {
	return a.RestRepo.IsOwnedBy(restaurantID, userID)
}

func (a *FeedAccess) CanSeeOrderFeed(userID, orderID uint) (bool, error) {
	if _, err := a.Orders.GetOrderForUser(userID, orderID); err != nil {
		return false, nil
	}
	return true, nil
}
