package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/serdarm09/factory-tracker-sub001/internal/model/entity"
	"github.com/serdarm09/factory-tracker-sub001/internal/repository"
	"github.com/serdarm09/factory-tracker-sub001/internal/testutil"
)

func setupOrderTest(t *testing.T) *OrderService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewOrderService(repository.NewOrderRepository(db))
}

func seedOrder(t *testing.T, svc *OrderService, status string, lines int) *entity.Order {
	t.Helper()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Code:      "MAN-" + uuid.New().String()[:8],
		Source:    entity.OrderSourceManual,
		Status:    status,
		CreatedBy: "user-001",
	}
	for i := 0; i < lines; i++ {
		order.Lines = append(order.Lines, entity.OrderLine{
			ID:      uuid.New().String(),
			OrderID: order.ID,
			Code:    order.Code,
			Name:    "KOMODIN 2 CEKMECELI",
			Seq:     i + 1,
			Status:  entity.OrderLineStatusDraft,
		})
	}
	if err := svc.repo.CreateWithLines(order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestUpdateStatusAllowedTransitions(t *testing.T) {
	svc := setupOrderTest(t)

	cases := []struct {
		from, to string
	}{
		{entity.OrderStatusDraft, entity.OrderStatusPending},
		{entity.OrderStatusPending, entity.OrderStatusApproved},
		{entity.OrderStatusPending, entity.OrderStatusRejected},
		{entity.OrderStatusRejected, entity.OrderStatusPending},
		{entity.OrderStatusApproved, entity.OrderStatusProduction},
		{entity.OrderStatusProduction, entity.OrderStatusWarehouse},
		{entity.OrderStatusWarehouse, entity.OrderStatusShipped},
		{entity.OrderStatusProduction, entity.OrderStatusCancelled},
	}

	for _, c := range cases {
		order := seedOrder(t, svc, c.from, 0)
		updated, err := svc.UpdateStatus(order.ID, c.to)
		if err != nil {
			t.Fatalf("%s -> %s should be allowed: %v", c.from, c.to, err)
		}
		if updated.Status != c.to {
			t.Fatalf("%s -> %s: status not applied, got %s", c.from, c.to, updated.Status)
		}
	}
}

func TestUpdateStatusRejectedTransitions(t *testing.T) {
	svc := setupOrderTest(t)

	cases := []struct {
		from, to string
	}{
		{entity.OrderStatusDraft, entity.OrderStatusApproved},
		{entity.OrderStatusDraft, entity.OrderStatusShipped},
		{entity.OrderStatusApproved, entity.OrderStatusPending},
		{entity.OrderStatusShipped, entity.OrderStatusCancelled},
		{entity.OrderStatusCancelled, entity.OrderStatusDraft},
	}

	for _, c := range cases {
		order := seedOrder(t, svc, c.from, 0)
		if _, err := svc.UpdateStatus(order.ID, c.to); err == nil {
			t.Fatalf("%s -> %s must be rejected", c.from, c.to)
		}
		reloaded, err := svc.GetByID(order.ID)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if reloaded.Status != c.from {
			t.Fatalf("rejected move must not change status: got %s", reloaded.Status)
		}
	}
}

func TestDeleteLineReportsRemaining(t *testing.T) {
	svc := setupOrderTest(t)
	order := seedOrder(t, svc, entity.OrderStatusDraft, 3)

	remaining, err := svc.DeleteLine(order.ID, order.Lines[0].ID)
	if err != nil {
		t.Fatalf("delete line: %v", err)
	}
	if remaining != 2 {
		t.Fatalf("expected 2 remaining lines, got %d", remaining)
	}

	remaining, err = svc.DeleteLine(order.ID, order.Lines[1].ID)
	if err != nil {
		t.Fatalf("delete second line: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("expected 1 remaining line, got %d", remaining)
	}
}

func TestDeleteLineUnknownOrder(t *testing.T) {
	svc := setupOrderTest(t)
	if _, err := svc.DeleteLine(uuid.New().String(), uuid.New().String()); err == nil {
		t.Fatal("deleting a line of a missing order must fail")
	}
}

func TestDeleteRemovesOrderWithLines(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewOrderService(repository.NewOrderRepository(db))
	order := seedOrder(t, svc, entity.OrderStatusDraft, 2)

	if err := svc.Delete(order.ID); err != nil {
		t.Fatalf("deleting an order that still has lines must succeed: %v", err)
	}

	var headers, lines int64
	db.Model(&entity.Order{}).Where("id = ?", order.ID).Count(&headers)
	db.Model(&entity.OrderLine{}).Where("order_id = ?", order.ID).Count(&lines)
	if headers != 0 || lines != 0 {
		t.Fatalf("delete must remove header and lines, found headers=%d lines=%d", headers, lines)
	}
}

func TestListFilters(t *testing.T) {
	svc := setupOrderTest(t)
	seedOrder(t, svc, entity.OrderStatusDraft, 0)
	seedOrder(t, svc, entity.OrderStatusPending, 0)
	seedOrder(t, svc, entity.OrderStatusPending, 0)

	orders, total, err := svc.List(repository.OrderListParams{Status: entity.OrderStatusPending})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 pending orders, got total=%d len=%d", total, len(orders))
	}

	orders, total, err = svc.List(repository.OrderListParams{Source: entity.OrderSourceNetSim})
	if err != nil {
		t.Fatalf("list by source: %v", err)
	}
	if total != 0 || len(orders) != 0 {
		t.Fatalf("expected no imported orders, got total=%d len=%d", total, len(orders))
	}
}
