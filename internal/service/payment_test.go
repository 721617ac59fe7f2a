package service

import (
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/customer"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/supplier"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/testutil"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PaymentService
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPaymentService(newTestServiceParams(&s.BaseServiceTestSuite))

	ctx := s.GetContext()
	s.Require().NoError(s.GetStores().CustomerRepo.Create(ctx, &customer.Customer{
		ID: "cust_1", Code: "CUS-2610-0001", Name: "Ali Traders", BaseModel: types.GetDefaultBaseModel(ctx),
	}))
	s.Require().NoError(s.GetStores().SupplierRepo.Create(ctx, &supplier.Supplier{
		ID: "supp_1", Code: "SUP-00001", Name: "Rice Mill", BaseModel: types.GetDefaultBaseModel(ctx),
	}))
}

func (s *PaymentServiceSuite) receipt(method types.PaymentMethod, amount int64) dto.CreatePaymentRequest {
	req := dto.CreatePaymentRequest{
		Kind:      types.PaymentKindReceipt,
		PartyType: types.PartyTypeCustomer,
		PartyID:   "cust_1",
		Method:    method,
		Amount:    decimal.NewFromInt(amount),
	}
	if method == types.PaymentMethodCheque {
		req.BankName = "HBL"
	}
	return req
}

func (s *PaymentServiceSuite) TestCashReceiptHasNoChequeNumber() {
	resp, err := s.service.CreatePayment(s.GetContext(), s.receipt(types.PaymentMethodCash, 500))
	s.Require().NoError(err)
	s.Equal("RC-000001", resp.ReceiptNumber)
	s.Nil(resp.ChequeNumber)
	s.Equal("Ali Traders", resp.PartyName)
	s.Equal([]string{types.TopicPayments}, s.GetPublisher().Topics())

	cheque, err := NewSequenceService(newTestServiceParams(&s.BaseServiceTestSuite)).Peek(s.GetContext(), types.SequenceCheque)
	s.Require().NoError(err)
	s.Zero(cheque.Value)
}

func (s *PaymentServiceSuite) TestChequeAllocatesBothNumbers() {
	_, err := s.service.CreatePayment(s.GetContext(), s.receipt(types.PaymentMethodCash, 100))
	s.Require().NoError(err)

	resp, err := s.service.CreatePayment(s.GetContext(), s.receipt(types.PaymentMethodCheque, 2500))
	s.Require().NoError(err)
	s.Equal("RC-000002", resp.ReceiptNumber)
	s.Require().NotNil(resp.ChequeNumber)
	s.Equal("CQ-000001", *resp.ChequeNumber)

	stored, err := s.service.GetPayment(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal("CQ-000001", lo.FromPtr(stored.ChequeNumber))
}

func (s *PaymentServiceSuite) TestSupplierPayment() {
	resp, err := s.service.CreatePayment(s.GetContext(), dto.CreatePaymentRequest{
		Kind:      types.PaymentKindPayment,
		PartyType: types.PartyTypeSupplier,
		PartyID:   "supp_1",
		PartyName: "Rice Mill (Gujranwala)",
		Method:    types.PaymentMethodBank,
		BankName:  "MCB",
		Amount:    decimal.RequireFromString("12500.50"),
	})
	s.Require().NoError(err)
	s.Equal("Rice Mill (Gujranwala)", resp.PartyName, "an explicit name is kept")

	list, err := s.service.ListPayments(s.GetContext(), &types.PaymentFilter{Kind: types.PaymentKindPayment})
	s.Require().NoError(err)
	s.Equal(1, list.Pagination.Total)
}

func (s *PaymentServiceSuite) TestRejectedPaymentsConsumeNoNumber() {
	cases := map[string]dto.CreatePaymentRequest{
		"zero_amount":       s.receipt(types.PaymentMethodCash, 0),
		"negative_amount":   s.receipt(types.PaymentMethodCash, -10),
		"cheque_no_bank":    func() dto.CreatePaymentRequest { r := s.receipt(types.PaymentMethodCheque, 10); r.BankName = ""; return r }(),
		"unknown_method":    func() dto.CreatePaymentRequest { r := s.receipt(types.PaymentMethodCash, 10); r.Method = "barter"; return r }(),
		"missing_party_ref": func() dto.CreatePaymentRequest { r := s.receipt(types.PaymentMethodCash, 10); r.PartyID = ""; return r }(),
	}
	for name, req := range cases {
		_, err := s.service.CreatePayment(s.GetContext(), req)
		s.True(ierr.IsValidation(err), name)
	}

	req := s.receipt(types.PaymentMethodCash, 10)
	req.PartyID = "cust_missing"
	_, err := s.service.CreatePayment(s.GetContext(), req)
	s.True(ierr.IsNotFound(err))

	peek, err := NewSequenceService(newTestServiceParams(&s.BaseServiceTestSuite)).Peek(s.GetContext(), types.SequenceReceipt)
	s.Require().NoError(err)
	s.Zero(peek.Value)
	s.Empty(s.GetPublisher().Events())
}

func (s *PaymentServiceSuite) TestAllocationFailureCreatesNoPayment() {
	s.GetStores().SequenceRepo.FailWith(errors.New("connection refused"))

	_, err := s.service.CreatePayment(s.GetContext(), s.receipt(types.PaymentMethodCheque, 10))
	s.True(ierr.IsAllocationFailed(err))

	count, err := s.GetStores().PaymentRepo.Count(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Zero(count)
	s.Empty(s.GetPublisher().Events())
}
