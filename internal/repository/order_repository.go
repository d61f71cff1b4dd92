package repository

import (
	"errors"

	"github.com/serdarm09/factory-tracker-sub001/internal/model/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithLines persists an order together with its lines in one
// association create.
func (r *OrderRepository) CreateWithLines(order *entity.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) GetByID(id string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).Where("id = ? AND deleted_at IS NULL", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByExternalID returns the order with the given external id including
// its lines, or nil when none exists.
func (r *OrderRepository) FindByExternalID(externalID string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.Preload("Lines").
		Where("external_id = ? AND deleted_at IS NULL", externalID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes an order and its lines permanently. Lines go first so
// the order_lines foreign key is never left dangling. Also used by the
// import flow to clear an orphaned header before recreating it.
func (r *OrderRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entity.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", id).Delete(&entity.Order{}).Error
	})
}

func (r *OrderRepository) Update(order *entity.Order) error {
	return r.db.Save(order).Error
}

func (r *OrderRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&entity.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *OrderRepository) DeleteLine(orderID, lineID string) error {
	return r.db.Where("id = ? AND order_id = ?", lineID, orderID).Delete(&entity.OrderLine{}).Error
}

func (r *OrderRepository) CountLines(orderID string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.OrderLine{}).Where("order_id = ?", orderID).Count(&count).Error
	return count, err
}

type OrderListParams struct {
	Status  string
	Source  string
	Keyword string
	Page    int
	Size    int
}

func (r *OrderRepository) List(params OrderListParams) ([]entity.Order, int64, error) {
	query := r.db.Model(&entity.Order{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Source != "" {
		query = query.Where("source = ?", params.Source)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("code ILIKE ? OR company_name ILIKE ? OR external_id ILIKE ?", kw, kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var orders []entity.Order
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&orders).Error
	return orders, total, err
}
