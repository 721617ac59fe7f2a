package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

const stockSourceAdjustment = "adjustment"

type InventoryService interface {
	// Adjust applies one signed movement to a (product, store) pair, creating
	// the entry on its first movement, and publishes one stock event.
	Adjust(ctx context.Context, req dto.AdjustStockRequest) (*dto.StockEntryResponse, error)
	// AdjustBatch applies movements in order and stops at the first failure.
	// It publishes nothing: callers run it inside their own transaction and
	// notify once that commits.
	AdjustBatch(ctx context.Context, adjustments []inventory.Adjustment) ([]*inventory.StockEntry, error)
	GetStock(ctx context.Context, productID, storeID string) (*dto.StockEntryResponse, error)
	ListStock(ctx context.Context, filter *types.StockFilter) (*dto.ListStockResponse, error)
}

type inventoryService struct {
	ServiceParams
}

func NewInventoryService(params ServiceParams) InventoryService {
	return &inventoryService{
		ServiceParams: params,
	}
}

func (s *inventoryService) Adjust(ctx context.Context, req dto.AdjustStockRequest) (*dto.StockEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	adj := req.ToAdjustment()
	entry, err := s.apply(ctx, adj)
	if err != nil {
		return nil, err
	}

	s.publishChange(ctx, types.TopicStock, stockChangedEvent(entry, adj, stockSourceAdjustment))
	return &dto.StockEntryResponse{StockEntry: entry}, nil
}

func (s *inventoryService) AdjustBatch(ctx context.Context, adjustments []inventory.Adjustment) ([]*inventory.StockEntry, error) {
	entries := make([]*inventory.StockEntry, 0, len(adjustments))
	for _, adj := range adjustments {
		entry, err := s.apply(ctx, adj)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// apply runs the ledger policy on top of the repository primitives: guarded
// update, then classification of a miss, then create-if-absent. A create
// that loses the race to a concurrent first writer becomes exactly one more
// guarded update on the row the winner created.
func (s *inventoryService) apply(ctx context.Context, adj inventory.Adjustment) (*inventory.StockEntry, error) {
	entry, err := s.StockRepo.ApplyDelta(ctx, adj)
	if err == nil {
		s.logAdjusted(entry, adj)
		return entry, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	current, err := s.StockRepo.Get(ctx, adj.ProductID, adj.StoreID)
	if err == nil {
		if !adj.FitsOn(current) {
			return nil, insufficientStock(adj, current)
		}
		// stock arrived between the guarded update and the read
		return s.applyOnce(ctx, adj, current)
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	if adj.HasNegative() {
		return nil, ierr.NewError("negative opening stock").
			WithHintf("Product %s has no stock in store %s yet, so it cannot be reduced", adj.ProductID, adj.StoreID).
			WithStockDetails(adj.ProductID, adj.StoreID, map[string]any{
				"delta_quantity": adj.DeltaQuantity,
				"delta_weight":   adj.DeltaWeight.String(),
			}).
			Mark(ierr.ErrInvalidInitialAdjustment)
	}

	created, err := s.StockRepo.CreateIfAbsent(ctx, adj.NewEntry(time.Now().UTC()))
	if err == nil {
		s.Logger.Infow("opened stock entry",
			"product_id", created.ProductID,
			"store_id", created.StoreID,
			"quantity_pkts", created.QuantityPkts,
			"weight_kg", created.WeightKg.String(),
		)
		return created, nil
	}
	if !ierr.IsAlreadyExists(err) {
		return nil, err
	}

	s.Logger.Debugw("lost first write race, adjusting existing entry",
		"product_id", adj.ProductID,
		"store_id", adj.StoreID,
	)
	return s.applyOnce(ctx, adj, nil)
}

// applyOnce is the single retry of the guarded update. last is the entry as
// it was last read, used only to describe a rejection.
func (s *inventoryService) applyOnce(ctx context.Context, adj inventory.Adjustment, last *inventory.StockEntry) (*inventory.StockEntry, error) {
	entry, err := s.StockRepo.ApplyDelta(ctx, adj)
	if err == nil {
		s.logAdjusted(entry, adj)
		return entry, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}
	if current, getErr := s.StockRepo.Get(ctx, adj.ProductID, adj.StoreID); getErr == nil {
		last = current
	}
	return nil, insufficientStock(adj, last)
}

func (s *inventoryService) logAdjusted(entry *inventory.StockEntry, adj inventory.Adjustment) {
	s.Logger.Debugw("adjusted stock entry",
		"product_id", entry.ProductID,
		"store_id", entry.StoreID,
		"delta_quantity", adj.DeltaQuantity,
		"delta_weight", adj.DeltaWeight.String(),
		"quantity_pkts", entry.QuantityPkts,
		"weight_kg", entry.WeightKg.String(),
	)
}

func insufficientStock(adj inventory.Adjustment, current *inventory.StockEntry) error {
	figures := map[string]any{
		"requested_quantity": adj.DeltaQuantity,
		"requested_weight":   adj.DeltaWeight.String(),
	}
	if current != nil {
		figures["available_quantity"] = current.QuantityPkts
		figures["available_weight"] = current.WeightKg.String()
	}
	return ierr.NewError("insufficient stock").
		WithHintf("Not enough stock of product %s in store %s", adj.ProductID, adj.StoreID).
		WithStockDetails(adj.ProductID, adj.StoreID, figures).
		Mark(ierr.ErrInsufficientStock)
}

func stockChangedEvent(entry *inventory.StockEntry, adj inventory.Adjustment, source string) dto.StockChangedEvent {
	return dto.StockChangedEvent{
		ProductID:     entry.ProductID,
		StoreID:       entry.StoreID,
		QuantityPkts:  entry.QuantityPkts,
		WeightKg:      entry.WeightKg,
		DeltaQuantity: adj.DeltaQuantity,
		DeltaWeight:   adj.DeltaWeight,
		Source:        source,
	}
}

func (s *inventoryService) GetStock(ctx context.Context, productID, storeID string) (*dto.StockEntryResponse, error) {
	if productID == "" || storeID == "" {
		return nil, ierr.NewError("product_id and store_id are required").
			WithHint("Both a product and a store are required").
			Mark(ierr.ErrValidation)
	}

	entry, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (*inventory.StockEntry, error) {
		return s.StockRepo.Get(ctx, productID, storeID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockEntryResponse{StockEntry: entry}, nil
}

func (s *inventoryService) ListStock(ctx context.Context, filter *types.StockFilter) (*dto.ListStockResponse, error) {
	if filter == nil {
		filter = &types.StockFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := validator.ValidateRequest(filter); err != nil {
		return nil, err
	}

	entries, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) ([]*inventory.StockEntry, error) {
		return s.StockRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	total, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (int, error) {
		return s.StockRepo.Count(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(entries, func(e *inventory.StockEntry, _ int) *dto.StockEntryResponse {
		return &dto.StockEntryResponse{StockEntry: e}
	})
	resp := types.NewListResponse(items, total, filter.QueryFilter)
	return &resp, nil
}
