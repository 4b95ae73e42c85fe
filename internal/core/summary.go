package core

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// Group names used when an asset lacks the grouping field.
const (
	NoCategory    = "Sem categoria"
	NoStatus      = "Sem status"
	NotInformed   = "Não informado"
	summaryRecent = 10
)

// ComputeStatistics totals the inventory. An asset is worth its unit value
// times its quantity; a missing value counts as zero and a missing quantity
// as one. Breakdowns group by tipo and status, highest value first.
func ComputeStatistics(assets []Asset) *tabular.Statistics {
	type acc struct {
		value decimal.Decimal
		items int
		count int
	}
	var (
		total      decimal.Decimal
		items      int
		byCategory = map[string]*acc{}
		byStatus   = map[string]*acc{}
	)
	add := func(groups map[string]*acc, name string, value decimal.Decimal, qty int) {
		g, ok := groups[name]
		if !ok {
			g = &acc{}
			groups[name] = g
		}
		g.value = g.value.Add(value)
		g.items += qty
		g.count++
	}

	for _, a := range assets {
		qty := a.Quantidade
		if qty <= 0 {
			qty = 1
		}
		unit := decimal.Zero
		if a.ValorAquisicao != nil {
			unit = *a.ValorAquisicao
		}
		value := unit.Mul(decimal.NewFromInt(int64(qty)))

		total = total.Add(value)
		items += qty
		add(byCategory, orDefault(a.Tipo, NoCategory), value, qty)
		add(byStatus, orDefault(a.Status, NoStatus), value, qty)
	}

	breakdowns := func(groups map[string]*acc) []tabular.Breakdown {
		out := make([]tabular.Breakdown, 0, len(groups))
		for name, g := range groups {
			out = append(out, tabular.Breakdown{Name: name, Count: g.count, Items: g.items, Value: g.value})
		}
		tabular.SortBreakdowns(out)
		return out
	}

	stats := &tabular.Statistics{
		TotalValue: total,
		TotalItems: items,
		ByCategory: breakdowns(byCategory),
		ByStatus:   breakdowns(byStatus),
	}
	if items > 0 {
		stats.AverageValue = total.Div(decimal.NewFromInt(int64(items))).Round(2)
	}
	return stats
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// GroupReport counts assets per key and sums their unit values. Rows are
// sorted by key in Portuguese collation order.
func GroupReport(assets []Asset, key func(Asset) string) []ReportRow {
	index := map[string]int{}
	var rows []ReportRow
	for _, a := range assets {
		k := key(a)
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, ReportRow{Key: k})
		}
		rows[i].Quantidade++
		if a.ValorAquisicao != nil {
			rows[i].ValorTotal = rows[i].ValorTotal.Add(*a.ValorAquisicao)
		}
	}

	col := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	slices.SortStableFunc(rows, func(a, b ReportRow) int {
		return col.CompareString(a.Key, b.Key)
	})
	return rows
}

// Record flattens a report row under the given key column.
func (r ReportRow) Record(keyColumn string) tabular.Record {
	return tabular.Record{
		keyColumn:     r.Key,
		"quantidade":  r.Quantidade,
		"valor_total": r.ValorTotal,
	}
}

func byLocation(a Asset) string    { return orDefault(a.LocalizacaoAtual, NotInformed) }
func byResponsible(a Asset) string { return orDefault(a.ResponsavelAtual, NotInformed) }
func byType(a Asset) string        { return orDefault(a.Tipo, NoCategory) }
func byStatus(a Asset) string      { return orDefault(a.Status, NoStatus) }

// Summary is the dashboard view of the inventory.
type Summary struct {
	Statistics      *tabular.Statistics `json:"statistics"`
	ByLocation      []ReportRow         `json:"byLocation"`
	ByStatus        []ReportRow         `json:"byStatus"`
	Locations       []string            `json:"locations"`
	RecentMovements []Movement          `json:"recentMovements"`
}

// Summary loads the assets, the latest movements and the location list in
// parallel and derives the dashboard figures.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		assets    []Asset
		movements []Movement
		locations []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = s.ListAllAssets(gctx, SearchFilters{})
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = s.ListAllMovements(gctx, summaryRecent, 0)
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = s.UniqueLocations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Summary{
		Statistics:      ComputeStatistics(assets),
		ByLocation:      GroupReport(assets, byLocation),
		ByStatus:        GroupReport(assets, byStatus),
		Locations:       locations,
		RecentMovements: movements,
	}, nil
}
