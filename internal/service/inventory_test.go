package service

import (
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/suite"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/testutil"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

type InventoryServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InventoryService
}

func TestInventoryService(t *testing.T) {
	suite.Run(t, new(InventoryServiceSuite))
}

func (s *InventoryServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInventoryService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *InventoryServiceSuite) adjust(productID, storeID string, dq int64, dw string) (*dto.StockEntryResponse, error) {
	return s.service.Adjust(s.GetContext(), dto.AdjustStockRequest{
		ProductID:     productID,
		StoreID:       storeID,
		DeltaQuantity: dq,
		DeltaWeight:   decimal.RequireFromString(dw),
	})
}

func (s *InventoryServiceSuite) TestFirstMovementCreatesEntry() {
	resp, err := s.adjust("prod_a", "store_1", 10, "5.5")
	s.Require().NoError(err)
	s.Equal(int64(10), resp.QuantityPkts)
	s.True(resp.WeightKg.Equal(decimal.RequireFromString("5.5")))

	entry, err := s.GetStores().StockRepo.Get(s.GetContext(), "prod_a", "store_1")
	s.Require().NoError(err)
	s.Equal(int64(10), entry.QuantityPkts)

	events := s.GetPublisher().Events()
	s.Require().Len(events, 1)
	s.Equal(types.TopicStock, events[0].Topic)

	var payload dto.StockChangedEvent
	s.Require().NoError(json.Unmarshal(events[0].Payload, &payload))
	s.Equal("prod_a", payload.ProductID)
	s.Equal(int64(10), payload.QuantityPkts)
	s.Equal(int64(10), payload.DeltaQuantity)
	s.Equal(stockSourceAdjustment, payload.Source)
}

func (s *InventoryServiceSuite) TestExistingEntryIsAdjusted() {
	_, err := s.adjust("prod_a", "store_1", 10, "20")
	s.Require().NoError(err)

	resp, err := s.adjust("prod_a", "store_1", -4, "-7.25")
	s.Require().NoError(err)
	s.Equal(int64(6), resp.QuantityPkts)
	s.True(resp.WeightKg.Equal(decimal.RequireFromString("12.75")))

	// emptying is allowed and the row stays
	resp, err = s.adjust("prod_a", "store_1", -6, "-12.75")
	s.Require().NoError(err)
	s.Equal(int64(0), resp.QuantityPkts)
	s.True(resp.WeightKg.IsZero())

	count, err := s.GetStores().StockRepo.Count(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Equal(1, count)
	s.Len(s.GetPublisher().Events(), 3)
}

func (s *InventoryServiceSuite) TestNegativeFirstAdjustmentCreatesNothing() {
	_, err := s.adjust("prod_new", "store_1", -1, "0")
	s.Error(err)
	s.True(ierr.IsInvalidInitialAdjustment(err))

	_, err = s.GetStores().StockRepo.Get(s.GetContext(), "prod_new", "store_1")
	s.True(ierr.IsNotFound(err))
	s.Empty(s.GetPublisher().Events())

	// a negative weight with a positive quantity is still a negative opening
	_, err = s.adjust("prod_new", "store_1", 3, "-1")
	s.True(ierr.IsInvalidInitialAdjustment(err))
}

func (s *InventoryServiceSuite) TestInsufficientStockLeavesEntryUnchanged() {
	_, err := s.adjust("prod_a", "store_1", 5, "10")
	s.Require().NoError(err)

	_, err = s.adjust("prod_a", "store_1", -6, "0")
	s.Error(err)
	s.True(ierr.IsInsufficientStock(err))

	// weight is guarded on its own
	_, err = s.adjust("prod_a", "store_1", -1, "-10.5")
	s.True(ierr.IsInsufficientStock(err))

	entry, err := s.GetStores().StockRepo.Get(s.GetContext(), "prod_a", "store_1")
	s.Require().NoError(err)
	s.Equal(int64(5), entry.QuantityPkts)
	s.True(entry.WeightKg.Equal(decimal.NewFromInt(10)))
	s.Len(s.GetPublisher().Events(), 1)
}

func (s *InventoryServiceSuite) TestConcurrentAdjustmentsLoseNoUpdates() {
	const initial = 100
	_, err := s.adjust("prod_a", "store_1", initial, "0")
	s.Require().NoError(err)

	var applied, rejected atomic.Int64
	var unexpected atomic.Int32

	var wg conc.WaitGroup
	for i := 0; i < 60; i++ {
		delta := int64(3)
		if i%2 == 1 {
			delta = -5
		}
		wg.Go(func() {
			_, err := s.adjust("prod_a", "store_1", delta, "0")
			switch {
			case err == nil:
				applied.Add(delta)
			case ierr.IsInsufficientStock(err):
				rejected.Add(1)
			default:
				unexpected.Add(1)
			}
		})
	}
	wg.Wait()

	s.Zero(unexpected.Load())
	entry, err := s.GetStores().StockRepo.Get(s.GetContext(), "prod_a", "store_1")
	s.Require().NoError(err)
	s.Equal(initial+applied.Load(), entry.QuantityPkts)
	s.GreaterOrEqual(entry.QuantityPkts, int64(0))
	s.Len(s.GetPublisher().Events(), 1+60-int(rejected.Load()))
}

func (s *InventoryServiceSuite) TestConcurrentFirstWritersCreateOneEntry() {
	const n = 20

	// hold every first writer at the insert until all of them got there
	var arrived atomic.Int32
	release := make(chan struct{})
	s.GetStores().StockRepo.BeforeCreate = func() {
		if arrived.Add(1) == n {
			close(release)
		}
		<-release
	}

	var wg conc.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Go(func() {
			_, err := s.adjust("prod_race", "store_1", 1, "0.5")
			errs <- err
		})
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
	s.Equal(int32(n), arrived.Load())

	entries, err := s.GetStores().StockRepo.List(s.GetContext(), &types.StockFilter{ProductIDs: []string{"prod_race"}})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(int64(n), entries[0].QuantityPkts)
	s.True(entries[0].WeightKg.Equal(decimal.NewFromInt(10)))
}

func (s *InventoryServiceSuite) TestAdjustValidation() {
	_, err := s.adjust("", "store_1", 1, "0")
	s.True(ierr.IsValidation(err))

	_, err = s.adjust("prod_a", "", 1, "0")
	s.True(ierr.IsValidation(err))

	_, err = s.adjust("prod_a", "store_1", 0, "0")
	s.True(ierr.IsValidation(err))

	// weights are kept to the gram
	_, err = s.adjust("prod_a", "store_1", 0, "0.0004")
	s.True(ierr.IsValidation(err))
	_, err = s.GetStores().StockRepo.Get(s.GetContext(), "prod_a", "store_1")
	s.True(ierr.IsNotFound(err))

	s.Empty(s.GetPublisher().Events())

	resp, err := s.adjust("prod_a", "store_1", 0, "1.2500")
	s.Require().NoError(err)
	s.True(resp.WeightKg.Equal(decimal.RequireFromString("1.25")))
}

func (s *InventoryServiceSuite) TestPublishFailureDoesNotFailAdjust() {
	s.GetPublisher().FailWith(errors.New("bus closed"))

	resp, err := s.adjust("prod_a", "store_1", 2, "1")
	s.Require().NoError(err)
	s.Equal(int64(2), resp.QuantityPkts)
}

func (s *InventoryServiceSuite) TestAdjustBatchStopsAtFirstFailure() {
	_, err := s.adjust("prod_a", "store_1", 5, "0")
	s.Require().NoError(err)
	s.GetPublisher().Clear()

	entries, err := s.service.AdjustBatch(s.GetContext(), []inventory.Adjustment{
		{ProductID: "prod_a", StoreID: "store_1", DeltaQuantity: -2},
		{ProductID: "prod_a", StoreID: "store_1", DeltaQuantity: -4},
		{ProductID: "prod_b", StoreID: "store_1", DeltaQuantity: 7},
	})
	s.True(ierr.IsInsufficientStock(err))
	s.Nil(entries)

	_, err = s.GetStores().StockRepo.Get(s.GetContext(), "prod_b", "store_1")
	s.True(ierr.IsNotFound(err), "lines after the failure are not applied")
	s.Empty(s.GetPublisher().Events(), "batches never publish")
}

func (s *InventoryServiceSuite) TestGetAndListStock() {
	for _, adj := range []struct {
		product, store string
		qty            int64
	}{
		{"prod_a", "store_1", 5},
		{"prod_a", "store_2", 3},
		{"prod_b", "store_1", 1},
	} {
		_, err := s.adjust(adj.product, adj.store, adj.qty, "0")
		s.Require().NoError(err)
	}
	_, err := s.adjust("prod_b", "store_1", -1, "0")
	s.Require().NoError(err)

	got, err := s.service.GetStock(s.GetContext(), "prod_a", "store_2")
	s.Require().NoError(err)
	s.Equal(int64(3), got.QuantityPkts)

	_, err = s.service.GetStock(s.GetContext(), "prod_c", "store_2")
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GetStock(s.GetContext(), "", "store_2")
	s.True(ierr.IsValidation(err))

	list, err := s.service.ListStock(s.GetContext(), &types.StockFilter{StoreIDs: []string{"store_1"}})
	s.Require().NoError(err)
	s.Equal(2, list.Pagination.Total)
	s.Equal(types.FILTER_DEFAULT_LIMIT, list.Pagination.Limit)

	list, err = s.service.ListStock(s.GetContext(), &types.StockFilter{NonZeroOnly: true})
	s.Require().NoError(err)
	s.Equal(2, list.Pagination.Total)
	s.ElementsMatch([]string{"store_1", "store_2"}, lo.Map(list.Items, func(e *dto.StockEntryResponse, _ int) string {
		return e.StoreID
	}))

	list, err = s.service.ListStock(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Len(list.Items, 3)
}
