package services

import (
	"github.com/nabilnabti/tapeat-sub001/repository"
)

// DriverService backs the delivery app: job discovery plus the guarded
// accept/finish transitions on OrderService.
type DriverService struct {
	Orders *OrderService
	Repo   *repository.OrderRepository
}

func NewDriverService(orders *OrderService, repo *repository.OrderRepository) *DriverService {
	return &DriverService{Orders: orders, Repo: repo}
}

// AvailableJobs lists ready delivery orders nobody has claimed yet.
func (s *DriverService) AvailableJobs(limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListAvailableDeliveries(limit)
}

func (s *DriverService) Accept(driverID, orderID uint) error {
	return s.Orders.DriverAccept(driverID, orderID)
}

func (s *DriverService) Finish(driverID, orderID uint) error {
	return s.Orders.DriverFinish(driverID, orderID)
}

func (s *DriverService) ActiveJobs(driverID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForDriver(driverID, false, limit)
}

func (s *DriverService) History(driverID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForDriver(driverID, true, limit)
}
