package types

import (
	"fmt"

	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
)

// InvoiceKind separates sale invoices from purchase invoices
type InvoiceKind string

const (
	InvoiceKindSale     InvoiceKind = "sale"
	InvoiceKindPurchase InvoiceKind = "purchase"
)

func (k InvoiceKind) Validate() error {
	switch k {
	case InvoiceKindSale, InvoiceKindPurchase:
		return nil
	}
	return ierr.NewError(fmt.Sprintf("invalid invoice kind %q", string(k))).
		WithHint("Invoice kind must be sale or purchase").
		Mark(ierr.ErrValidation)
}

// SequenceName is the counter that numbers invoices of this kind
func (k InvoiceKind) SequenceName() string {
	if k == InvoiceKindPurchase {
		return SequencePurchaseInvoice
	}
	return SequenceSaleInvoice
}

// PaymentKind separates money received (receipts) from money paid out
type PaymentKind string

const (
	PaymentKindReceipt PaymentKind = "receipt"
	PaymentKindPayment PaymentKind = "payment"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCheque PaymentMethod = "cheque"
	PaymentMethodBank   PaymentMethod = "bank"
)

type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeSupplier PartyType = "supplier"
)

// Counter names used by the document creation workflow
const (
	SequenceCustomer        = "customer"
	SequenceSupplier        = "supplier"
	SequenceProduct         = "product"
	SequenceSaleInvoice     = "sale_invoice"
	SequencePurchaseInvoice = "purchase_invoice"
	SequenceReceipt         = "receipt"
	SequenceCheque          = "cheque"
)

// Topics on the change notification bus, one per resource kind
const (
	TopicCustomers = "customers"
	TopicSuppliers = "suppliers"
	TopicProducts  = "products"
	TopicInvoices  = "invoices"
	TopicPayments  = "payments"
	TopicStock     = "stock"
)

// Topics lists every topic a client may subscribe to
var Topics = []string{
	TopicCustomers,
	TopicSuppliers,
	TopicProducts,
	TopicInvoices,
	TopicPayments,
	TopicStock,
}
