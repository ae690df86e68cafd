package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

// StatusExtra is the closed set of fields a status update may carry besides
// the status itself. Amounts are never part of it.
type StatusExtra struct {
	PaymentStatus string `json:"paymentStatus" binding:"omitempty,oneof=pending paid"`
	PaymentMethod string `json:"paymentMethod"`
	DriverID      *uint  `json:"driverId"`
}

var validStatuses = map[string]bool{
	entity.StatusPending:    true,
	entity.StatusConfirmed:  true,
	entity.StatusPreparing:  true,
	entity.StatusReady:      true,
	entity.StatusDelivering: true,
	entity.StatusDelivered:  true,
	entity.StatusCompleted:  true,
	entity.StatusCancelled:  true,
}

// UpdateStatus writes the new status (plus extras) to the order. Transition
// order is not enforced: jumping pending → completed is allowed, matching
// how the staff UI drives the board. Reaching completed triggers stock
// deduction; a deduction failure is logged and does not undo the status.
func (s *OrderService) UpdateStatus(orderID uint, newStatus string, extra StatusExtra) error {
	if !validStatuses[newStatus] {
		return errors.New("invalid status")
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return err
	}

	if (newStatus == entity.StatusDelivering || newStatus == entity.StatusDelivered) &&
		o.Type != entity.OrderTypeDelivery {
		return errors.New("status only valid for delivery orders")
	}

	fields := map[string]any{"status": newStatus}
	if extra.PaymentStatus != "" {
		fields["payment_status"] = extra.PaymentStatus
	}
	if extra.PaymentMethod != "" {
		fields["payment_method"] = extra.PaymentMethod
	}
	if extra.DriverID != nil {
		fields["driver_id"] = *extra.DriverID
	}

	if err := s.Repo.UpdateStatus(s.DB, o.ID, fields); err != nil {
		return err
	}

	if newStatus == entity.StatusCompleted {
		items, err := s.Repo.GetOrderItems(o.ID)
		if err != nil {
			log.Printf("order %d: load items for deduction failed: %v", o.ID, err)
		} else if err := s.Inventory.ApplyOrderDeduction(o.RestaurantID, items); err != nil {
			// stock accuracy is best-effort; the completion stands
			log.Printf("order %d: inventory deduction failed: %v", o.ID, err)
		}
	}

	s.notify(o.ID)
	return nil
}

// UpdateStatusForRestaurant is the owner-scoped entry point used by the
// back-office board.
func (s *OrderService) UpdateStatusForRestaurant(userID, restID, orderID uint, newStatus string, extra StatusExtra) error {
	ok, err := s.ownerCheck(restID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("forbidden")
	}
	if _, err := s.Repo.GetOrderForRestaurant(restID, orderID); err != nil {
		return err
	}
	return s.UpdateStatus(orderID, newStatus, extra)
}

// ----- Driver transitions -----
//
// Unlike staff updates these are guarded: two drivers racing for the same
// job must not both win, so the transition is a conditional UPDATE checked
// by rows affected.

func (s *OrderService) DriverAccept(driverID, orderID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			return err
		}
		if o.Type != entity.OrderTypeDelivery {
			return errors.New("not a delivery order")
		}

		affected, err := s.Repo.AssignDriverGuard(tx, o.ID, driverID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errors.New("invalid_or_conflict")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(orderID)
	return nil
}

func (s *OrderService) DriverFinish(driverID, orderID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			return err
		}
		if o.DriverID == nil || *o.DriverID != driverID {
			return errors.New("forbidden")
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, entity.StatusDelivering,
			map[string]any{"status": entity.StatusDelivered})
		if err != nil {
			return err
		}
		if affected == 0 {
			return errors.New("invalid_or_conflict")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(orderID)
	return nil
}
