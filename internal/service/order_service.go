package service

import (
	"fmt"

	"github.com/serdarm09/factory-tracker-sub001/internal/model/entity"
	"github.com/serdarm09/factory-tracker-sub001/internal/repository"
)

// orderTransitions enumerates the allowed status moves of the production
// workflow: intake, approval, production, warehouse, shipment.
var orderTransitions = map[string][]string{
	entity.OrderStatusDraft:      {entity.OrderStatusPending, entity.OrderStatusCancelled},
	entity.OrderStatusPending:    {entity.OrderStatusApproved, entity.OrderStatusRejected, entity.OrderStatusCancelled},
	entity.OrderStatusApproved:   {entity.OrderStatusProduction, entity.OrderStatusCancelled},
	entity.OrderStatusRejected:   {entity.OrderStatusPending, entity.OrderStatusCancelled},
	entity.OrderStatusProduction: {entity.OrderStatusWarehouse, entity.OrderStatusCancelled},
	entity.OrderStatusWarehouse:  {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped:    {},
	entity.OrderStatusCancelled:  {},
}

// OrderService drives the local production tracking workflow.
type OrderService struct {
	repo *repository.OrderRepository
}

func NewOrderService(repo *repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) GetByID(id string) (*entity.Order, error) {
	return s.repo.GetByID(id)
}

func (s *OrderService) List(params repository.OrderListParams) ([]entity.Order, int64, error) {
	return s.repo.List(params)
}

// UpdateStatus moves an order along the workflow, rejecting moves the
// transition table does not allow.
func (s *OrderService) UpdateStatus(id, status string) (*entity.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	allowed, ok := orderTransitions[order.Status]
	if !ok {
		return nil, fmt.Errorf("order has unknown status %q", order.Status)
	}
	valid := false
	for _, next := range allowed {
		if next == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("cannot move order from %s to %s", order.Status, status)
	}

	if err := s.repo.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	order.Status = status
	return order, nil
}

// DeleteLine removes one line of an order and reports how many remain.
// Removing the last line of an imported order re-arms re-import.
func (s *OrderService) DeleteLine(orderID, lineID string) (int64, error) {
	if _, err := s.repo.GetByID(orderID); err != nil {
		return 0, fmt.Errorf("order not found: %w", err)
	}
	if err := s.repo.DeleteLine(orderID, lineID); err != nil {
		return 0, fmt.Errorf("delete line: %w", err)
	}
	return s.repo.CountLines(orderID)
}

func (s *OrderService) Delete(id string) error {
	return s.repo.Delete(id)
}
