package dto

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/payment"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type CreatePaymentRequest struct {
	Kind        types.PaymentKind   `json:"kind" validate:"required,oneof=receipt payment"`
	PartyType   types.PartyType     `json:"party_type" validate:"required,oneof=customer supplier"`
	PartyID     string              `json:"party_id" validate:"required,max=64"`
	PartyName   string              `json:"party_name" validate:"omitempty,max=255"`
	Method      types.PaymentMethod `json:"method" validate:"required,oneof=cash cheque bank"`
	BankName    string              `json:"bank_name" validate:"omitempty,max=255"`
	Amount      decimal.Decimal     `json:"amount"`
	PaymentDate *time.Time          `json:"payment_date,omitempty"`
	Notes       string              `json:"notes" validate:"omitempty,max=1000"`
}

type PaymentResponse struct {
	*payment.Payment
}

// ListPaymentsResponse represents the response for listing payments
type ListPaymentsResponse = types.ListResponse[*PaymentResponse]

func (r *CreatePaymentRequest) Validate() error {
	r.PartyName = strings.TrimSpace(r.PartyName)
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("invalid payment amount").
			WithHint("Payment amount must be greater than zero").
			WithReportableDetails(map[string]any{"amount": r.Amount.String()}).
			Mark(ierr.ErrValidation)
	}
	if r.Method == types.PaymentMethodCheque && strings.TrimSpace(r.BankName) == "" {
		return ierr.NewError("bank name is required for cheques").
			WithHint("Enter the bank the cheque is drawn on").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// NeedsChequeNumber reports whether a cheque number must be allocated
func (r *CreatePaymentRequest) NeedsChequeNumber() bool {
	return r.Method == types.PaymentMethodCheque
}

// ToPayment builds the payment stored under receiptNumber. chequeNumber is
// nil unless the method is cheque.
func (r *CreatePaymentRequest) ToPayment(ctx context.Context, receiptNumber string, chequeNumber *string) *payment.Payment {
	return &payment.Payment{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		Kind:          r.Kind,
		ReceiptNumber: receiptNumber,
		ChequeNumber:  chequeNumber,
		PartyType:     r.PartyType,
		PartyID:       r.PartyID,
		PartyName:     r.PartyName,
		Method:        r.Method,
		BankName:      r.BankName,
		Amount:        r.Amount,
		PaymentDate:   dateOrNow(r.PaymentDate),
		Notes:         r.Notes,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}
