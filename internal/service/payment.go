package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/payment"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type PaymentService interface {
	// CreatePayment allocates a receipt number, and a cheque number when
	// paying by cheque, before the payment is stored
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveParty(ctx, &req); err != nil {
		return nil, err
	}

	sequences := NewSequenceService(s.ServiceParams)
	receiptNumber, err := sequences.AllocateCode(ctx, types.SequenceReceipt)
	if err != nil {
		return nil, err
	}

	var chequeNumber *string
	if req.NeedsChequeNumber() {
		code, err := sequences.AllocateCode(ctx, types.SequenceCheque)
		if err != nil {
			return nil, err
		}
		chequeNumber = lo.ToPtr(code)
	}

	p := req.ToPayment(ctx, receiptNumber, chequeNumber)
	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.PaymentRepo.Create(txCtx, p)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("created payment",
		"payment_id", p.ID,
		"receipt_number", p.ReceiptNumber,
		"cheque_number", lo.FromPtr(p.ChequeNumber),
		"amount", p.Amount.String(),
	)
	s.publishChange(ctx, types.TopicPayments, p)
	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) resolveParty(ctx context.Context, req *dto.CreatePaymentRequest) error {
	var name string
	switch req.PartyType {
	case types.PartyTypeCustomer:
		cust, err := s.CustomerRepo.Get(ctx, req.PartyID)
		if err != nil {
			return err
		}
		name = cust.Name
	case types.PartyTypeSupplier:
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

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	if id == "" {
		return nil, ierr.NewError("payment_id is required").
			WithHint("Payment ID is required").
			Mark(ierr.ErrValidation)
	}

	p, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (*payment.Payment, error) {
		return s.PaymentRepo.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResponse{Payment: p}, nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := validator.ValidateRequest(filter); err != nil {
		return nil, err
	}

	payments, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) ([]*payment.Payment, error) {
		return s.PaymentRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	total, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (int, error) {
		return s.PaymentRepo.Count(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(payments, func(p *payment.Payment, _ int) *dto.PaymentResponse {
		return &dto.PaymentResponse{Payment: p}
	})
	resp := types.NewListResponse(items, total, filter.QueryFilter)
	return &resp, nil
}
