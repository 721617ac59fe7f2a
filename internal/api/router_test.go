package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	v1 "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/v1"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/pubsub/memory"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/sentry"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/service"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/stream"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/testutil"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type RouterSuite struct {
	suite.Suite
	cfg    *config.Configuration
	bus    *stream.Bus
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	validator.NewValidator()
}

func (s *RouterSuite) SetupTest() {
	s.cfg = config.GetDefaultConfig()
	s.cfg.Stream.KeepAliveInterval = time.Hour
	s.cfg.Reports.CacheTTL = 0
	log := logger.NewNopLogger()

	s.bus = stream.NewBus(s.cfg, memory.NewPubSub(s.cfg, log), log)

	params := service.NewServiceParams(
		log,
		s.cfg,
		testutil.NewMockPostgresClient(log),
		nil,
		testutil.NewInMemorySequenceStore(),
		testutil.NewInMemoryStockStore(),
		testutil.NewInMemoryCustomerStore(),
		testutil.NewInMemorySupplierStore(),
		testutil.NewInMemoryProductStore(),
		testutil.NewInMemoryInvoiceStore(),
		testutil.NewInMemoryPaymentStore(),
		s.bus,
	)

	handlers := Handlers{
		Health:   v1.NewHealthHandler(log),
		Sequence: v1.NewSequenceHandler(service.NewSequenceService(params), log),
		Stock:    v1.NewStockHandler(service.NewInventoryService(params), log),
		Report:   v1.NewReportHandler(service.NewReportService(params), log),
		Stream:   v1.NewStreamHandler(s.bus, log),
		Customer: v1.NewCustomerHandler(service.NewCustomerService(params), log),
		Supplier: v1.NewSupplierHandler(service.NewSupplierService(params), log),
		Product:  v1.NewProductHandler(service.NewProductService(params), log),
		Invoice:  v1.NewInvoiceHandler(service.NewInvoiceService(params), log),
		Payment:  v1.NewPaymentHandler(service.NewPaymentService(params), log),
	}
	s.router = NewRouter(handlers, s.cfg, log, sentry.NewSentryService(s.cfg, log))
}

func (s *RouterSuite) TearDownTest() {
	s.NoError(s.bus.Close())
}

// do serves one request; header holds key, value pairs
func (s *RouterSuite) do(method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decodeError(w *httptest.ResponseRecorder) ierr.ErrorResponse {
	var resp ierr.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (s *RouterSuite) TestSequenceNextAndPeek() {
	w := s.do(http.MethodPost, "/v1/sequences/receipt/next", "", types.HeaderRequestID, "req-1")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("req-1", w.Header().Get(types.HeaderRequestID))
	s.JSONEq(`{"name":"receipt","value":1,"code":"RC-000001"}`, w.Body.String())

	w = s.do(http.MethodPost, "/v1/sequences/receipt/next", "")
	s.JSONEq(`{"name":"receipt","value":2,"code":"RC-000002"}`, w.Body.String())
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))

	w = s.do(http.MethodGet, "/v1/sequences/receipt", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"name":"receipt","value":2}`, w.Body.String())
}

func (s *RouterSuite) TestInvalidCounterName() {
	w := s.do(http.MethodPost, "/v1/sequences/Bad-Name/next", "", types.HeaderRequestID, "req-2")
	s.Equal(http.StatusBadRequest, w.Code)

	resp := s.decodeError(w)
	s.False(resp.Success)
	s.Equal(ierr.ErrCodeValidation, resp.Error.Code)
	s.Equal("req-2", resp.Error.RequestID)
	s.NotEmpty(resp.Error.Display)
}

func (s *RouterSuite) TestStockAdjustFlow() {
	w := s.do(http.MethodPost, "/v1/stock/adjust", `{"product_id":"p1","store_id":"main","delta_quantity":10,"delta_weight":"25.5"}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var entry struct {
		QuantityPkts int64           `json:"quantity_pkts"`
		WeightKg     decimal.Decimal `json:"weight_kg"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entry))
	s.Equal(int64(10), entry.QuantityPkts)
	s.True(entry.WeightKg.Equal(decimal.RequireFromString("25.5")))

	w = s.do(http.MethodPost, "/v1/stock/adjust", `{"product_id":"p1","store_id":"main","delta_quantity":-11}`)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(ierr.ErrCodeInsufficientStock, s.decodeError(w).Error.Code)

	w = s.do(http.MethodPost, "/v1/stock/adjust", `{"product_id":"p2","store_id":"main","delta_quantity":-1}`)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal(ierr.ErrCodeInvalidInitialAdjustment, s.decodeError(w).Error.Code)

	w = s.do(http.MethodGet, "/v1/stock/p1/main", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entry))
	s.Equal(int64(10), entry.QuantityPkts)

	w = s.do(http.MethodGet, "/v1/stock/p2/main", "")
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/v1/stock?store_ids=main", "")
	s.Require().Equal(http.StatusOK, w.Code)
	var list struct {
		Items      []json.RawMessage        `json:"items"`
		Pagination types.PaginationResponse `json:"pagination"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Len(list.Items, 1)
	s.Equal(1, list.Pagination.Total)
}

func (s *RouterSuite) TestMalformedBody() {
	w := s.do(http.MethodPost, "/v1/stock/adjust", `{"product_id":`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(ierr.ErrCodeValidation, s.decodeError(w).Error.Code)
}

func (s *RouterSuite) TestCreateCustomerThenFetch() {
	w := s.do(http.MethodPost, "/v1/customers", `{"name":"Ali Traders","city":"Lahore"}`)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.True(strings.HasPrefix(created.Code, "CUS-"))
	s.True(strings.HasSuffix(created.Code, "-0001"))

	w = s.do(http.MethodGet, "/v1/customers/"+created.ID, "")
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/customers?search=ali&limit=10", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), created.Code)

	w = s.do(http.MethodGet, "/v1/customers/cust_missing", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestReportsAcceptDateParameters() {
	w := s.do(http.MethodGet, "/v1/reports/monthly-sales?months=3&as_of=2026-10-14", "")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var monthly struct {
		Months []struct {
			Key string `json:"key"`
		} `json:"months"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &monthly))
	s.Require().Len(monthly.Months, 3)
	s.Equal("2026-10", monthly.Months[2].Key)

	w = s.do(http.MethodGet, "/v1/reports/ledger?from=2026-10-14&to=2026-10-01", "")
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/v1/reports/low-movement?limit=5", "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestStreamRejectsUnknownTopic() {
	w := s.do(http.MethodGet, "/v1/stream/orders", "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(ierr.ErrCodeValidation, s.decodeError(w).Error.Code)
}

func (s *RouterSuite) TestStreamDeliversChanges() {
	server := httptest.NewServer(s.router)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/v1/stream/stock", nil)
	s.Require().NoError(err)
	resp, err := server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), "text/event-stream")

	reader := bufio.NewReader(resp.Body)
	s.Equal("connected", s.nextEventName(reader))

	adjust, err := server.Client().Post(server.URL+"/v1/stock/adjust", "application/json",
		strings.NewReader(`{"product_id":"p1","store_id":"main","delta_quantity":4}`))
	s.Require().NoError(err)
	adjust.Body.Close()
	s.Require().Equal(http.StatusOK, adjust.StatusCode)

	s.Equal("change", s.nextEventName(reader))

	cancel()
	s.Eventually(func() bool {
		return s.bus.SubscriberCount(types.TopicStock) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

// nextEventName reads one server sent event and returns its name
func (s *RouterSuite) nextEventName(r *bufio.Reader) string {
	var name string
	for {
		line, err := r.ReadString('\n')
		s.Require().NoError(err)
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if name != "" {
				return name
			}
			continue
		}
		if v, ok := strings.CutPrefix(line, "event:"); ok {
			name = strings.TrimSpace(v)
		}
	}
}
