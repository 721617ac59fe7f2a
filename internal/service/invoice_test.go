package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/customer"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/product"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/testutil"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *InvoiceServiceSuite) openStock(productID, storeID string, qty int64) {
	_, err := s.GetStores().StockRepo.CreateIfAbsent(s.GetContext(), &inventory.StockEntry{
		ProductID:    productID,
		StoreID:      storeID,
		QuantityPkts: qty,
		WeightKg:     decimal.NewFromInt(qty * 10),
	})
	s.Require().NoError(err)
}

func (s *InvoiceServiceSuite) stockOf(productID, storeID string) int64 {
	e, err := s.GetStores().StockRepo.Get(s.GetContext(), productID, storeID)
	s.Require().NoError(err)
	return e.QuantityPkts
}

func (s *InvoiceServiceSuite) TestPurchaseAddsStock() {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindPurchase,
		PartyName: "Rice Mill",
		Items: []dto.LineItemRequest{
			{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 10, WeightKg: decimal.NewFromInt(250), Rate: decimal.NewFromInt(40)},
			{ProductID: "p2", ProductName: "Sugar", StoreID: "s1", Pkt: 4, Rate: decimal.NewFromInt(25)},
		},
		Discount: decimal.NewFromInt(20),
	})
	s.Require().NoError(err)
	s.Equal("PI-000001", resp.InvoiceNumber)
	s.True(resp.TotalAmount.Equal(decimal.NewFromInt(500)))
	s.True(resp.NetAmount.Equal(decimal.NewFromInt(480)))

	s.Equal(int64(10), s.stockOf("p1", "s1"))
	s.Equal(int64(4), s.stockOf("p2", "s1"))
	s.Equal(int32(1), s.GetDB().Commits.Load())

	s.Equal([]string{types.TopicInvoices, types.TopicStock}, s.GetPublisher().Topics())

	var changes []dto.StockChangedEvent
	s.Require().NoError(json.Unmarshal(s.GetPublisher().Events()[1].Payload, &changes))
	s.Require().Len(changes, 2)
	s.Equal("invoice:PI-000001", changes[0].Source)
	s.Equal(int64(10), changes[0].DeltaQuantity)
}

func (s *InvoiceServiceSuite) TestSaleRemovesStock() {
	s.openStock("p1", "s1", 10)

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindSale,
		PartyName: "Ali Traders",
		Items: []dto.LineItemRequest{
			{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 3, WeightKg: decimal.NewFromInt(30), Rate: decimal.NewFromInt(50)},
		},
	})
	s.Require().NoError(err)
	s.Equal("SI-000001", resp.InvoiceNumber)
	s.Equal(int64(7), s.stockOf("p1", "s1"))

	second, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindSale,
		PartyName: "Ali Traders",
		Items:     []dto.LineItemRequest{{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 1}},
	})
	s.Require().NoError(err)
	s.Equal("SI-000002", second.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestSaleWithInsufficientStockAborts() {
	s.openStock("p1", "s1", 5)

	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindSale,
		PartyName: "Ali Traders",
		Items: []dto.LineItemRequest{
			{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 6},
		},
	})
	s.Error(err)
	s.True(ierr.IsInsufficientStock(err))

	s.Equal(int64(5), s.stockOf("p1", "s1"))
	count, err := s.GetStores().InvoiceRepo.Count(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Zero(count)
	s.Equal(int32(1), s.GetDB().Rollbacks.Load())
	s.Empty(s.GetPublisher().Events())
}

func (s *InvoiceServiceSuite) TestShortLineRollsBackEarlierLines() {
	s.openStock("p1", "s1", 5)
	s.openStock("p2", "s1", 1)

	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindSale,
		PartyName: "Ali Traders",
		Items: []dto.LineItemRequest{
			{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 2},
			{ProductID: "p2", ProductName: "Sugar", StoreID: "s1", Pkt: 9},
		},
	})
	s.True(ierr.IsInsufficientStock(err))

	s.Equal(int64(5), s.stockOf("p1", "s1"))
	s.Equal(int64(1), s.stockOf("p2", "s1"))
	count, err := s.GetStores().InvoiceRepo.Count(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Zero(count)
	s.Equal(int32(1), s.GetDB().Rollbacks.Load())
}

func (s *InvoiceServiceSuite) TestPurchaseOpeningNewEntriesRollsBack() {
	s.openStock("p1", "s1", 0)

	// p2 has no entry in s2 yet, so the first line creates one
	req := dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindPurchase,
		PartyName: "Rice Mill",
		Items: []dto.LineItemRequest{
			{ProductID: "p2", ProductName: "Tea", StoreID: "s2", Pkt: 3},
			{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 1},
		},
	}
	s.Require().NoError(req.Validate())

	err := s.GetDB().WithTx(s.GetContext(), func(txCtx context.Context) error {
		if _, err := NewInventoryService(newTestServiceParams(&s.BaseServiceTestSuite)).AdjustBatch(txCtx, req.ToAdjustments("PI-TEST")); err != nil {
			return err
		}
		return errors.New("invoice insert failed")
	})
	s.Error(err)

	_, err = s.GetStores().StockRepo.Get(s.GetContext(), "p2", "s2")
	s.True(ierr.IsNotFound(err))
	s.Equal(int64(0), s.stockOf("p1", "s1"))
}

func (s *InvoiceServiceSuite) TestLineWeightFinerThanAGramIsRejected() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindPurchase,
		PartyName: "Rice Mill",
		Items: []dto.LineItemRequest{
			{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 1, WeightKg: decimal.RequireFromString("2.0001")},
		},
	})
	s.True(ierr.IsValidation(err))
	current, err := s.GetStores().SequenceRepo.Current(s.GetContext(), types.SequencePurchaseInvoice)
	s.Require().NoError(err)
	s.Zero(current)
}

func (s *InvoiceServiceSuite) TestSaleOfUnstockedProductAborts() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindSale,
		PartyName: "Ali Traders",
		Items:     []dto.LineItemRequest{{ProductID: "p9", ProductName: "Tea", StoreID: "s1", Pkt: 1}},
	})
	s.True(ierr.IsInvalidInitialAdjustment(err))

	_, err = s.GetStores().StockRepo.Get(s.GetContext(), "p9", "s1")
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestAllocationFailureCreatesNothing() {
	s.GetStores().SequenceRepo.FailWith(errors.New("connection reset"))

	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindPurchase,
		PartyName: "Rice Mill",
		Items:     []dto.LineItemRequest{{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 1}},
	})
	s.True(ierr.IsAllocationFailed(err))

	count, err := s.GetStores().InvoiceRepo.Count(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Zero(count)
	_, err = s.GetStores().StockRepo.Get(s.GetContext(), "p1", "s1")
	s.True(ierr.IsNotFound(err))
	s.Zero(s.GetDB().Commits.Load() + s.GetDB().Rollbacks.Load())
	s.Empty(s.GetPublisher().Events())
}

func (s *InvoiceServiceSuite) TestResolvesPartyAndProductNames() {
	ctx := s.GetContext()
	s.Require().NoError(s.GetStores().CustomerRepo.Create(ctx, &customer.Customer{
		ID: "cust_1", Code: "CUS-2610-0001", Name: "Ali Traders", BaseModel: types.GetDefaultBaseModel(ctx),
	}))
	s.Require().NoError(s.GetStores().ProductRepo.Create(ctx, &product.Product{
		ID: "p1", Code: "PRD-00001", Name: "Basmati Rice", BaseModel: types.GetDefaultBaseModel(ctx),
	}))
	s.openStock("p1", "s1", 10)

	at := time.Date(2026, time.October, 3, 16, 30, 0, 0, time.UTC)
	resp, err := s.service.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		Kind:        types.InvoiceKindSale,
		InvoiceDate: &at,
		PartyID:     "cust_1",
		Items: []dto.LineItemRequest{
			{ProductID: "p1", StoreID: "s1", Pkt: 2, Rate: decimal.NewFromInt(100)},
			{ProductID: "p1", StoreID: "s1", Pkt: 1, Rate: decimal.NewFromInt(100), Amount: lo.ToPtr(decimal.NewFromInt(90))},
		},
	})
	s.Require().NoError(err)
	s.Equal("Ali Traders", resp.PartyName)
	s.Equal("Basmati Rice", resp.Items[0].ProductName)
	s.Equal("Basmati Rice", resp.Items[1].ProductName)
	s.Equal(time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC), resp.InvoiceDate)
	s.True(resp.TotalAmount.Equal(decimal.NewFromInt(290)))
	s.Equal(int64(7), s.stockOf("p1", "s1"))

	got, err := s.service.GetInvoice(ctx, resp.ID)
	s.Require().NoError(err)
	s.Equal(resp.InvoiceNumber, got.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestUnknownReferencesAreRejected() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:    types.InvoiceKindPurchase,
		PartyID: "supp_missing",
		Items:   []dto.LineItemRequest{{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 1}},
	})
	s.True(ierr.IsNotFound(err))

	_, err = s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Kind:      types.InvoiceKindPurchase,
		PartyName: "Rice Mill",
		Items:     []dto.LineItemRequest{{ProductID: "p_missing", StoreID: "s1", Pkt: 1}},
	})
	s.Error(err)

	resp, err := NewSequenceService(newTestServiceParams(&s.BaseServiceTestSuite)).Peek(s.GetContext(), types.SequencePurchaseInvoice)
	s.Require().NoError(err)
	s.Zero(resp.Value, "rejected requests consume no number")
}

func (s *InvoiceServiceSuite) TestCreateInvoiceValidation() {
	cases := []struct {
		name string
		req  dto.CreateInvoiceRequest
	}{
		{name: "no_kind", req: dto.CreateInvoiceRequest{PartyName: "x", Items: []dto.LineItemRequest{{ProductID: "p", StoreID: "s", Pkt: 1}}}},
		{name: "no_party", req: dto.CreateInvoiceRequest{Kind: types.InvoiceKindSale, Items: []dto.LineItemRequest{{ProductID: "p", StoreID: "s", Pkt: 1}}}},
		{name: "no_items", req: dto.CreateInvoiceRequest{Kind: types.InvoiceKindSale, PartyName: "x"}},
		{name: "empty_line", req: dto.CreateInvoiceRequest{Kind: types.InvoiceKindSale, PartyName: "x", Items: []dto.LineItemRequest{{ProductID: "p", StoreID: "s"}}}},
		{name: "negative_rate", req: dto.CreateInvoiceRequest{Kind: types.InvoiceKindSale, PartyName: "x", Items: []dto.LineItemRequest{{ProductID: "p", StoreID: "s", Pkt: 1, Rate: decimal.NewFromInt(-1)}}}},
		{name: "negative_discount", req: dto.CreateInvoiceRequest{Kind: types.InvoiceKindSale, PartyName: "x", Discount: decimal.NewFromInt(-5), Items: []dto.LineItemRequest{{ProductID: "p", StoreID: "s", Pkt: 1}}}},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateInvoice(s.GetContext(), tc.req)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *InvoiceServiceSuite) TestListInvoices() {
	for i := 0; i < 3; i++ {
		_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
			Kind:      types.InvoiceKindPurchase,
			PartyName: "Rice Mill",
			Items:     []dto.LineItemRequest{{ProductID: "p1", ProductName: "Rice", StoreID: "s1", Pkt: 1}},
		})
		s.Require().NoError(err)
	}

	resp, err := s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		QueryFilter: &types.QueryFilter{Limit: lo.ToPtr(2)},
		Kind:        types.InvoiceKindPurchase,
	})
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(3, resp.Pagination.Total)
	s.Equal("PI-000003", resp.Items[0].InvoiceNumber)

	resp, err = s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{Kind: types.InvoiceKindSale})
	s.Require().NoError(err)
	s.Empty(resp.Items)
	s.NotNil(resp.Items)
}
