package service

import (
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/testutil"
)

// newTestServiceParams wires every service dependency to the suite's fakes
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetCache(),
		stores.SequenceRepo,
		stores.StockRepo,
		stores.CustomerRepo,
		stores.SupplierRepo,
		stores.ProductRepo,
		stores.InvoiceRepo,
		stores.PaymentRepo,
		s.GetPublisher(),
	)
}
