package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/cache"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/invoice"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

const (
	defaultReportMonths     = 12
	defaultLowMovementLimit = 50
	monthKeyLayout          = "2006-01"
)

// ReportService derives read-only views over invoices. Only the kind and
// date window are pushed to the store; grouping, filtering and ranking
// happen here. Figures that fail to parse count as zero, and a filter that
// selects nothing yields an empty report.
type ReportService interface {
	MonthlySales(ctx context.Context, req dto.MonthlySalesRequest) (*dto.MonthlySalesResponse, error)
	LedgerListing(ctx context.Context, req dto.LedgerListingRequest) (*dto.LedgerListingResponse, error)
	LowMovement(ctx context.Context, req dto.LowMovementRequest) (*dto.LowMovementResponse, error)
}

type reportService struct {
	ServiceParams
}

func NewReportService(params ServiceParams) ReportService {
	return &reportService{
		ServiceParams: params,
	}
}

func (s *reportService) MonthlySales(ctx context.Context, req dto.MonthlySalesRequest) (*dto.MonthlySalesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	months, _ := lo.Coalesce(req.Months, s.Config.Reports.DefaultMonths, defaultReportMonths)
	kind, _ := lo.Coalesce(req.Kind, types.InvoiceKindSale)
	asOf := time.Now().UTC()
	if req.AsOf != nil {
		asOf = req.AsOf.UTC()
	}

	end := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	start := end.AddDate(0, -months, 0)

	key := cache.GenerateKey(cache.PrefixReport, "monthly", kind, months, start.Format(monthKeyLayout))
	return cached(ctx, s, key, func() (*dto.MonthlySalesResponse, error) {
		invoices, err := s.invoices(ctx, kind, &start, &end)
		if err != nil {
			return nil, err
		}

		totals := make([]dto.MonthlyTotal, months)
		index := make(map[string]int, months)
		for i := range totals {
			m := start.AddDate(0, i, 0)
			totals[i] = dto.MonthlyTotal{
				Key:   m.Format(monthKeyLayout),
				Month: m.Format("Jan"),
				Year:  m.Year(),
				Total: decimal.Zero,
			}
			index[totals[i].Key] = i
		}

		for _, inv := range invoices {
			i, ok := index[inv.InvoiceDate.UTC().Format(monthKeyLayout)]
			if !ok {
				continue
			}
			totals[i].Total = totals[i].Total.Add(inv.NetAmount.Decimal)
			totals[i].Count++
		}

		return &dto.MonthlySalesResponse{Kind: kind, Months: totals}, nil
	})
}

func (s *reportService) LedgerListing(ctx context.Context, req dto.LedgerListingRequest) (*dto.LedgerListingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end := dayWindow(req.From, req.To)
	party := strings.ToLower(strings.TrimSpace(req.Party))
	productName := strings.TrimSpace(req.Product)
	store := strings.TrimSpace(req.Store)

	key := cache.GenerateKey(cache.PrefixReport, "ledger", req.Kind, windowKey(start, end), party, strings.ToLower(productName), store)
	return cached(ctx, s, key, func() (*dto.LedgerListingResponse, error) {
		invoices, err := s.invoices(ctx, req.Kind, start, end)
		if err != nil {
			return nil, err
		}

		rows := make([]dto.LedgerRow, 0, len(invoices))
		for _, inv := range invoices {
			if party != "" && !strings.Contains(strings.ToLower(inv.PartyName), party) {
				continue
			}
			if (productName != "" || store != "") && !inv.HasLine(productName, store) {
				continue
			}
			rows = append(rows, dto.LedgerRow{
				InvoiceID:     inv.ID,
				Kind:          inv.Kind,
				Date:          inv.InvoiceDate.UTC().Format(dto.DateLayout),
				InvoiceNumber: inv.InvoiceNumber,
				PartyName:     inv.PartyName,
				TotalAmount:   inv.TotalAmount.Decimal,
				NetAmount:     inv.NetAmount.Decimal,
			})
		}

		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Date != rows[j].Date {
				return rows[i].Date > rows[j].Date
			}
			return rows[i].InvoiceNumber > rows[j].InvoiceNumber
		})

		return &dto.LedgerListingResponse{Items: rows, Total: len(rows)}, nil
	})
}

type movement struct {
	productID   string
	productName string
	units       decimal.Decimal
	revenue     decimal.Decimal
}

func (s *reportService) LowMovement(ctx context.Context, req dto.LowMovementRequest) (*dto.LowMovementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	limit, _ := lo.Coalesce(req.Limit, s.Config.Reports.LowMovementLimit, defaultLowMovementLimit)
	start, end := dayWindow(req.From, req.To)

	key := cache.GenerateKey(cache.PrefixReport, "low_movement", limit, windowKey(start, end))
	return cached(ctx, s, key, func() (*dto.LowMovementResponse, error) {
		invoices, err := s.invoices(ctx, types.InvoiceKindSale, start, end)
		if err != nil {
			return nil, err
		}

		byProduct := make(map[string]*movement)
		for _, inv := range invoices {
			for _, li := range inv.Items {
				pk := li.ProductKey()
				if pk == "" {
					continue
				}
				m, ok := byProduct[pk]
				if !ok {
					m = &movement{productID: li.ProductID, units: decimal.Zero, revenue: decimal.Zero}
					byProduct[pk] = m
				}
				if m.productName == "" {
					m.productName = strings.TrimSpace(li.ProductName)
				}
				m.units = m.units.Add(li.Pkt.Decimal)
				m.revenue = m.revenue.Add(li.Revenue())
			}
		}

		ranked := lo.Values(byProduct)
		sort.Slice(ranked, func(i, j int) bool {
			if c := ranked[i].units.Cmp(ranked[j].units); c != 0 {
				return c < 0
			}
			if ranked[i].productName != ranked[j].productName {
				return ranked[i].productName < ranked[j].productName
			}
			return ranked[i].productID < ranked[j].productID
		})
		if len(ranked) > limit {
			ranked = ranked[:limit]
		}

		items := lo.Map(ranked, func(m *movement, i int) dto.LowMovementItem {
			return dto.LowMovementItem{
				Rank:        i + 1,
				ProductID:   m.productID,
				ProductName: m.productName,
				Units:       m.units,
				Revenue:     m.revenue,
			}
		})
		return &dto.LowMovementResponse{Items: items}, nil
	})
}

// invoices reads every invoice of kind (all kinds when empty) dated in [start, end)
func (s *reportService) invoices(ctx context.Context, kind types.InvoiceKind, start, end *time.Time) ([]*invoice.Invoice, error) {
	filter := &types.InvoiceFilter{
		QueryFilter: types.NewNoLimitQueryFilter(),
		Kind:        kind,
		StartDate:   start,
		EndDate:     end,
	}
	return readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) ([]*invoice.Invoice, error) {
		return s.InvoiceRepo.List(ctx, filter)
	})
}

// dayWindow turns inclusive business dates into a [start, end) window
func dayWindow(from, to *time.Time) (*time.Time, *time.Time) {
	var start, end *time.Time
	if from != nil {
		start = lo.ToPtr(truncateDay(*from))
	}
	if to != nil {
		end = lo.ToPtr(truncateDay(*to).AddDate(0, 0, 1))
	}
	return start, end
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func windowKey(start, end *time.Time) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(dto.DateLayout)
	}
	return format(start) + ".." + format(end)
}

// cached serves a report from the cache when enabled, building and storing it on a miss
func cached[T any](ctx context.Context, s *reportService, key string, build func() (T, error)) (T, error) {
	ttl := s.Config.Reports.CacheTTL
	if s.Cache == nil || ttl <= 0 {
		return build()
	}

	if v, ok := s.Cache.Get(ctx, key); ok {
		if report, ok := v.(T); ok {
			return report, nil
		}
	}

	report, err := build()
	if err != nil {
		return report, err
	}
	s.Cache.Set(ctx, key, report, ttl)
	return report, nil
}
