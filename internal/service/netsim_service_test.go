package service

import (
	"context"
	"testing"
	"time"

	"github.com/serdarm09/factory-tracker-sub001/internal/model/entity"
	"github.com/serdarm09/factory-tracker-sub001/internal/netsim"
	"github.com/serdarm09/factory-tracker-sub001/internal/repository"
	"github.com/serdarm09/factory-tracker-sub001/internal/testutil"
	"gorm.io/gorm"
)

func setupImportTest(t *testing.T) (*gorm.DB, *NetSimService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := repository.NewOrderRepository(db)
	// The import path touches neither the bridge nor Redis.
	svc := NewNetSimService(nil, repo, nil)
	return db, svc
}

func sampleRemoteOrder() (netsim.RemoteOrder, []netsim.RemoteOrderLine) {
	orderDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	delivery := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	order := netsim.RemoteOrder{
		OrderNo:      1205,
		TrackingNo:   "TK-0042",
		CustomerNo:   77,
		CustomerName: "ÖRNEK MOBİLYA SAN. TİC. LTD. ŞTİ.",
		OrderDate:    &orderDate,
		DeliveryDate: &delivery,
		TotalAmount:  154000.50,
		Currency:     "TRY",
	}

	lines := []netsim.RemoteOrderLine{
		{
			LineID:            5001,
			OrderNo:           1205,
			Seq:               1,
			StockNo:           310,
			StockCode:         "PNL-MDF-18",
			StockName:         "MDF PANEL 18MM",
			ProducedStockName: "GARDROP 3 KAPILI",
			Quantity:          2.75,
			Unit:              "AD",
			UnitPrice:         1250,
			Amount:            3437.5,
			Note1:             "ceviz kaplama",
			RecipeName:        "GARDROP STD",
		},
		{
			LineID:   5002,
			OrderNo:  1205,
			Seq:      2,
			StockNo:  415,
			Quantity: 4,
			Unit:     "AD",
		},
	}

	return order, lines
}

func TestImportOrder(t *testing.T) {
	db, svc := setupImportTest(t)
	order, lines := sampleRemoteOrder()

	result, err := svc.ImportOrder(context.Background(), order, lines, "user-001")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.LineCount != 2 {
		t.Fatalf("expected 2 lines, got %d", result.LineCount)
	}

	var header entity.Order
	if err := db.Preload("Lines").Where("id = ?", result.OrderID).First(&header).Error; err != nil {
		t.Fatalf("load imported order: %v", err)
	}
	if header.ExternalID != "NETSIM-1205" {
		t.Fatalf("external id wrong: %q", header.ExternalID)
	}
	if header.Code != "NS-1205" || header.Source != entity.OrderSourceNetSim {
		t.Fatalf("header identity wrong: %+v", header)
	}
	if header.CompanyName != order.CustomerName || header.Currency != "TRY" {
		t.Fatalf("denormalized fields wrong: %+v", header)
	}
	if len(header.Lines) != 2 {
		t.Fatalf("expected 2 persisted lines, got %d", len(header.Lines))
	}

	byExternal := map[string]entity.OrderLine{}
	for _, l := range header.Lines {
		byExternal[l.ExternalID] = l
	}

	first, ok := byExternal["NETSIM-DETAY-5001"]
	if !ok {
		t.Fatalf("line external id missing: %+v", header.Lines)
	}
	if first.Code != "NS-1205-5001" {
		t.Fatalf("line code wrong: %q", first.Code)
	}
	if first.Name != "GARDROP 3 KAPILI" {
		t.Fatalf("line should carry the produced product name: %q", first.Name)
	}
	if first.ModelCode != "PNL-MDF-18" {
		t.Fatalf("model code should come from the stock code: %q", first.ModelCode)
	}
	if first.Quantity != 2 {
		t.Fatalf("quantity must be integer-truncated from 2.75, got %d", first.Quantity)
	}
	if first.Status != entity.OrderLineStatusDraft {
		t.Fatalf("imported lines start in draft, got %q", first.Status)
	}
	if first.RecipeName != "GARDROP STD" || first.Note1 != "ceviz kaplama" {
		t.Fatalf("line detail fields wrong: %+v", first)
	}

	second, ok := byExternal["NETSIM-DETAY-5002"]
	if !ok {
		t.Fatalf("second line missing: %+v", header.Lines)
	}
	if second.ModelCode != "STOK-415" {
		t.Fatalf("model code must fall back to STOK-<id>, got %q", second.ModelCode)
	}
}

func TestImportOrderConflictWhileLinesExist(t *testing.T) {
	db, svc := setupImportTest(t)
	order, lines := sampleRemoteOrder()

	first, err := svc.ImportOrder(context.Background(), order, lines, "user-001")
	if err != nil {
		t.Fatalf("first import: %v", err)
	}

	result, err := svc.ImportOrder(context.Background(), order, lines, "user-002")
	if !netsim.IsKind(err, netsim.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if result.OrderID != first.OrderID {
		t.Fatalf("conflict must carry the existing local id for linking: %q vs %q", result.OrderID, first.OrderID)
	}

	var count int64
	db.Model(&entity.Order{}).Where("external_id = ?", "NETSIM-1205").Count(&count)
	if count != 1 {
		t.Fatalf("a second header must not be created, found %d", count)
	}
}

func TestImportOrderRecoversOrphanedHeader(t *testing.T) {
	db, svc := setupImportTest(t)
	order, lines := sampleRemoteOrder()

	// Simulate a prior partial failure: a header with zero lines.
	orphan := &entity.Order{
		ID:         "11111111-1111-1111-1111-111111111111",
		ExternalID: "NETSIM-1205",
		Code:       "NS-1205",
		Source:     entity.OrderSourceNetSim,
		Status:     entity.OrderStatusDraft,
		CreatedBy:  "user-001",
	}
	if err := db.Create(orphan).Error; err != nil {
		t.Fatalf("seed orphan: %v", err)
	}

	result, err := svc.ImportOrder(context.Background(), order, lines, "user-002")
	if err != nil {
		t.Fatalf("re-import over orphan must succeed: %v", err)
	}
	if result.OrderID == orphan.ID {
		t.Fatalf("import must create a fresh header, not reuse the orphan")
	}

	var count int64
	db.Model(&entity.Order{}).Where("external_id = ?", "NETSIM-1205").Count(&count)
	if count != 1 {
		t.Fatalf("orphan must be deleted, found %d headers", count)
	}
}

func TestImportOrderReArmedAfterDeletingAllLines(t *testing.T) {
	db, svc := setupImportTest(t)
	order, lines := sampleRemoteOrder()

	first, err := svc.ImportOrder(context.Background(), order, lines, "user-001")
	if err != nil {
		t.Fatalf("first import: %v", err)
	}

	if err := db.Where("order_id = ?", first.OrderID).Delete(&entity.OrderLine{}).Error; err != nil {
		t.Fatalf("delete lines: %v", err)
	}

	second, err := svc.ImportOrder(context.Background(), order, lines, "user-001")
	if err != nil {
		t.Fatalf("re-import after clearing lines must succeed: %v", err)
	}
	if second.OrderID == first.OrderID {
		t.Fatalf("re-import must create a fresh header")
	}

	var count int64
	db.Model(&entity.Order{}).Where("external_id = ?", "NETSIM-1205").Count(&count)
	if count != 1 {
		t.Fatalf("exactly one header must remain, found %d", count)
	}
}
