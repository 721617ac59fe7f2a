package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/cache"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/invoice"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type InvoiceService interface {
	// CreateInvoice numbers the invoice, then stores it together with one
	// stock movement per line in a single transaction. A line that cannot be
	// covered by stock aborts the whole invoice.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveParty(ctx, &req); err != nil {
		return nil, err
	}
	if err := s.resolveProductNames(ctx, &req); err != nil {
		return nil, err
	}

	number, err := NewSequenceService(s.ServiceParams).AllocateCode(ctx, req.Kind.SequenceName())
	if err != nil {
		return nil, err
	}

	inv := req.ToInvoice(ctx, number)
	adjustments := req.ToAdjustments(number)

	var entries []*inventory.StockEntry
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		entries, err = NewInventoryService(s.ServiceParams).AdjustBatch(txCtx, adjustments)
		if err != nil {
			return err
		}
		return s.InvoiceRepo.Create(txCtx, inv)
	})
	if err != nil {
		s.Logger.Warnw("invoice not created",
			"kind", req.Kind,
			"invoice_number", number,
			"error", err,
		)
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"kind", inv.Kind,
		"invoice_number", inv.InvoiceNumber,
		"lines", len(inv.Items),
	)

	if s.Cache != nil {
		s.Cache.DeleteByPrefix(ctx, cache.PrefixReport)
	}

	s.publishChange(ctx, types.TopicInvoices, dto.InvoiceCreatedEvent{
		ID:            inv.ID,
		Kind:          inv.Kind,
		InvoiceNumber: inv.InvoiceNumber,
		PartyName:     inv.PartyName,
		NetAmount:     inv.NetAmount.Decimal,
	})
	s.publishChange(ctx, types.TopicStock, lo.Map(entries, func(e *inventory.StockEntry, i int) dto.StockChangedEvent {
		return stockChangedEvent(e, adjustments[i], "invoice:"+inv.InvoiceNumber)
	}))

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

// resolveParty checks the referenced party exists and fills in its name.
// Sales are made to customers, purchases from suppliers.
func (s *invoiceService) resolveParty(ctx context.Context, req *dto.CreateInvoiceRequest) error {
	if req.PartyID == "" {
		return nil
	}

	var name string
	switch req.Kind {
	case types.InvoiceKindSale:
		cust, err := s.CustomerRepo.Get(ctx, req.PartyID)
		if err != nil {
			return err
		}
		name = cust.Name
	case types.InvoiceKindPurchase:
		supp, err := s.SupplierRepo.Get(ctx, req.PartyID)
		if err != nil {
			return err
		}
		name = supp.Name
	}

	if req.PartyName == "" {
		req.PartyName = name
	}
	return nil
}

// resolveProductNames fills in the catalogue name of lines that left it empty
func (s *invoiceService) resolveProductNames(ctx context.Context, req *dto.CreateInvoiceRequest) error {
	names := make(map[string]string)
	for i := range req.Items {
		if req.Items[i].ProductName != "" {
			continue
		}
		id := req.Items[i].ProductID
		name, ok := names[id]
		if !ok {
			prod, err := s.ProductRepo.Get(ctx, id)
			if err != nil {
				return ierr.WithError(err).
					WithHintf("Product %s on line %d does not exist", id, i+1).
					Mark(ierr.ErrValidation)
			}
			name = prod.Name
			names[id] = name
		}
		req.Items[i].ProductName = name
	}
	return nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("invoice_id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (*invoice.Invoice, error) {
		return s.InvoiceRepo.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := validator.ValidateRequest(filter); err != nil {
		return nil, err
	}

	invoices, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) ([]*invoice.Invoice, error) {
		return s.InvoiceRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	total, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (int, error) {
		return s.InvoiceRepo.Count(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
		return &dto.InvoiceResponse{Invoice: inv}
	})
	resp := types.NewListResponse(items, total, filter.QueryFilter)
	return &resp, nil
}
