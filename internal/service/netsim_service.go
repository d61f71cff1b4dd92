package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serdarm09/factory-tracker-sub001/internal/model/entity"
	"github.com/serdarm09/factory-tracker-sub001/internal/netsim"
	"github.com/serdarm09/factory-tracker-sub001/internal/repository"
)

// schemaCacheTTL bounds how long remote schema introspection results are
// served from Redis. Order and recipe data is never cached; only the
// table/column metadata, which changes with ERP upgrades, not with use.
const schemaCacheTTL = 10 * time.Minute

// NetSimService fronts the bridge client for the HTTP layer and owns the
// one multi-step write: importing a remote order into the local store.
type NetSimService struct {
	bridge    *netsim.Client
	orderRepo *repository.OrderRepository
	rdb       *redis.Client
}

func NewNetSimService(bridge *netsim.Client, orderRepo *repository.OrderRepository, rdb *redis.Client) *NetSimService {
	return &NetSimService{
		bridge:    bridge,
		orderRepo: orderRepo,
		rdb:       rdb,
	}
}

// --- bridge passthroughs ---

func (s *NetSimService) Status(ctx context.Context) (netsim.StatusInfo, error) {
	return s.bridge.Status(ctx)
}

func (s *NetSimService) Connect(ctx context.Context, databaseFile, username, password string) (netsim.ConnectInfo, error) {
	return s.bridge.Connect(ctx, databaseFile, username, password)
}

func (s *NetSimService) ListDatabaseFiles(ctx context.Context, path string) ([]string, error) {
	return s.bridge.ListDatabaseFiles(ctx, path)
}

func (s *NetSimService) GetOrders(ctx context.Context, limit, offset int, onlyOpen bool) ([]netsim.RemoteOrder, error) {
	return s.bridge.GetOrders(ctx, limit, offset, onlyOpen)
}

func (s *NetSimService) GetOrderCount(ctx context.Context, onlyOpen bool) (int, error) {
	return s.bridge.GetOrderCount(ctx, onlyOpen)
}

func (s *NetSimService) GetNewOrders(ctx context.Context, minutesAgo int) ([]netsim.RemoteOrder, error) {
	return s.bridge.GetNewOrders(ctx, minutesAgo)
}

func (s *NetSimService) GetOrderDetails(ctx context.Context, orderNo int64) ([]netsim.RemoteOrderLine, error) {
	return s.bridge.GetOrderDetails(ctx, orderNo)
}

func (s *NetSimService) GetCustomer(ctx context.Context, customerNo int64) (*netsim.RemoteCustomer, error) {
	return s.bridge.GetCustomer(ctx, customerNo)
}

func (s *NetSimService) GetProduct(ctx context.Context, stockNo int64) (*netsim.RemoteProduct, error) {
	return s.bridge.GetProduct(ctx, stockNo)
}

func (s *NetSimService) UpdateDeliveryDate(ctx context.Context, orderNo int64, date time.Time) error {
	return s.bridge.UpdateDeliveryDate(ctx, orderNo, date)
}

func (s *NetSimService) GetRecipes(ctx context.Context, limit, offset int, search string) ([]netsim.RemoteRecipe, error) {
	return s.bridge.GetRecipes(ctx, limit, offset, search)
}

func (s *NetSimService) GetRecipeCount(ctx context.Context) (int, error) {
	return s.bridge.GetRecipeCount(ctx)
}

func (s *NetSimService) GetRecipeRevisions(ctx context.Context, recipeNo int64) ([]netsim.RemoteRecipeRevision, error) {
	return s.bridge.GetRecipeRevisions(ctx, recipeNo)
}

func (s *NetSimService) GetRecipeDetails(ctx context.Context, revisionNo int64) ([]netsim.RemoteRecipeLine, error) {
	return s.bridge.GetRecipeDetails(ctx, revisionNo)
}

func (s *NetSimService) GetRecipeSubDetails(ctx context.Context, detailNo int64) ([]netsim.RemoteRecipeSubLine, error) {
	return s.bridge.GetRecipeSubDetails(ctx, detailNo)
}

func (s *NetSimService) GetRecipeDetailsByRecipeNo(ctx context.Context, recipeNo int64) ([]netsim.RemoteRecipeLine, error) {
	return s.bridge.GetRecipeDetailsByRecipeNo(ctx, recipeNo)
}

func (s *NetSimService) GetProductRecipe(ctx context.Context, stockNo int64) ([]netsim.RemoteRecipeLine, error) {
	return s.bridge.GetProductRecipe(ctx, stockNo)
}

// --- schema introspection, cached ---

// GetTables lists remote tables, served from Redis when fresh.
func (s *NetSimService) GetTables(ctx context.Context) ([]string, error) {
	const cacheKey = "netsim:schema:tables"
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var tables []string
			if json.Unmarshal([]byte(cached), &tables) == nil {
				return tables, nil
			}
		}
	}
	tables, err := s.bridge.GetTables(ctx)
	if err != nil {
		return tables, err
	}
	if s.rdb != nil {
		if payload, err := json.Marshal(tables); err == nil {
			s.rdb.Set(ctx, cacheKey, payload, schemaCacheTTL)
		}
	}
	return tables, nil
}

// GetTableColumns describes one remote table, served from Redis when fresh.
func (s *NetSimService) GetTableColumns(ctx context.Context, tableName string) ([]netsim.TableColumn, error) {
	cacheKey := "netsim:schema:columns:" + tableName
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var columns []netsim.TableColumn
			if json.Unmarshal([]byte(cached), &columns) == nil {
				return columns, nil
			}
		}
	}
	columns, err := s.bridge.GetTableColumns(ctx, tableName)
	if err != nil {
		return columns, err
	}
	if s.rdb != nil {
		if payload, err := json.Marshal(columns); err == nil {
			s.rdb.Set(ctx, cacheKey, payload, schemaCacheTTL)
		}
	}
	return columns, nil
}

// --- order import ---

// ImportResult reports the outcome of importing a remote order.
type ImportResult struct {
	OrderID   string `json:"order_id"`
	LineCount int    `json:"line_count"`
}

// ImportOrder copies a remote order with its lines into the local store.
//
// An order is importable once per remote order number. While a previous
// import still has lines, the attempt fails with a conflict carrying the
// existing local id so the UI can link to it. A header left with zero
// lines is treated as an abandoned import: the header is deleted and the
// order recreated. The orphan delete and the create are separate calls;
// the create itself persists header and lines in one association create.
func (s *NetSimService) ImportOrder(ctx context.Context, order netsim.RemoteOrder, lines []netsim.RemoteOrderLine, actorID string) (ImportResult, error) {
	externalID := fmt.Sprintf("NETSIM-%d", order.OrderNo)

	existing, err := s.orderRepo.FindByExternalID(externalID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("lookup existing order: %w", err)
	}

	if existing != nil {
		if len(existing.Lines) > 0 {
			return ImportResult{OrderID: existing.ID}, netsim.ConflictErr("order already imported")
		}
		if err := s.orderRepo.Delete(existing.ID); err != nil {
			return ImportResult{}, fmt.Errorf("remove orphaned order: %w", err)
		}
	}

	localOrder := &entity.Order{
		ID:           uuid.New().String(),
		ExternalID:   externalID,
		Code:         fmt.Sprintf("NS-%d", order.OrderNo),
		Source:       entity.OrderSourceNetSim,
		CompanyName:  order.CustomerName,
		CustomerNo:   order.CustomerNo,
		Status:       entity.OrderStatusDraft,
		OrderDate:    order.OrderDate,
		DeliveryDate: order.DeliveryDate,
		TotalAmount:  order.TotalAmount,
		Currency:     order.Currency,
		CreatedBy:    actorID,
	}

	for _, line := range lines {
		name := line.ProducedStockName
		if name == "" {
			name = line.StockName
		}
		modelCode := line.StockCode
		if modelCode == "" {
			modelCode = fmt.Sprintf("STOK-%d", line.StockNo)
		}
		localOrder.Lines = append(localOrder.Lines, entity.OrderLine{
			ID:         uuid.New().String(),
			OrderID:    localOrder.ID,
			ExternalID: fmt.Sprintf("NETSIM-DETAY-%d", line.LineID),
			Code:       fmt.Sprintf("NS-%d-%d", order.OrderNo, line.LineID),
			Name:       name,
			ModelCode:  modelCode,
			Quantity:   int(line.Quantity),
			Unit:       line.Unit,
			UnitPrice:  line.UnitPrice,
			Amount:     line.Amount,
			Note1:      line.Note1,
			Note2:      line.Note2,
			Note3:      line.Note3,
			Note4:      line.Note4,
			RecipeName: line.RecipeName,
			Seq:        line.Seq,
			Status:     entity.OrderLineStatusDraft,
		})
	}

	if err := s.orderRepo.CreateWithLines(localOrder); err != nil {
		return ImportResult{}, fmt.Errorf("import order: %w", err)
	}

	return ImportResult{OrderID: localOrder.ID, LineCount: len(localOrder.Lines)}, nil
}

// ImportOrderByNo fetches the remote order and its lines from the bridge,
// then imports them. Two bridge round trips followed by the local write.
func (s *NetSimService) ImportOrderByNo(ctx context.Context, orderNo int64, actorID string) (ImportResult, error) {
	order, err := s.bridge.GetOrder(ctx, orderNo)
	if err != nil {
		return ImportResult{}, err
	}
	if order == nil {
		return ImportResult{}, netsim.ConflictErr(fmt.Sprintf("remote order %d not found", orderNo))
	}

	lines, err := s.bridge.GetOrderDetails(ctx, orderNo)
	if err != nil {
		return ImportResult{}, err
	}

	return s.ImportOrder(ctx, *order, lines, actorID)
}
