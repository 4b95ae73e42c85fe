package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// Report names, also used as file name bases.
const (
	ReportByLocation    = "inventario_por_localizacao"
	ReportByResponsible = "itens_por_responsavel"
	ReportByType        = "resumo_por_tipo"
	ReportByStatus      = "itens_por_status"
	ReportAllAssets     = "todos_os_itens"
	ReportAllMovements  = "todas_as_movimentacoes"
)

type groupedReport struct {
	column  string
	headers func() []tabular.Header
	key     func(Asset) string
}

var groupedReports = map[string]groupedReport{
	ReportByLocation:    {"localizacao", tabular.LocationSummaryHeaders, byLocation},
	ReportByResponsible: {"responsavel", tabular.ResponsibleSummaryHeaders, byResponsible},
	ReportByType:        {"tipo", tabular.TypeSummaryHeaders, byType},
	ReportByStatus:      {"status", tabular.StatusSummaryHeaders, byStatus},
}

// ReportNames lists every report Report accepts.
func ReportNames() []string {
	return []string{
		ReportByLocation,
		ReportByResponsible,
		ReportByType,
		ReportByStatus,
		ReportAllAssets,
		ReportAllMovements,
	}
}

// ParseFormat normalizes a format name. Empty means CSV.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// ExportAssets renders the assets matching filters. JSON and XLSX exports
// carry inventory statistics; a filtered export gets the filters in its
// file name.
func (s *Service) ExportAssets(ctx context.Context, format string, filters SearchFilters) (tabular.Result, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return tabular.Result{}, err
	}
	assets, err := s.ListAllAssets(ctx, filters)
	if err != nil {
		return tabular.Result{}, err
	}

	f := tabular.Filters(filters)
	base := "estoque"
	if f.Active() {
		base = tabular.FilteredBase("estoque_filtrado", f)
	}

	res := s.render(assetRecords(assets), tabular.AssetExportHeaders(), base, format, ComputeStatistics(assets), f)
	return s.finishExport(ctx, "assets", format, res)
}

// ExportMovements renders the full movement history.
func (s *Service) ExportMovements(ctx context.Context, format string) (tabular.Result, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return tabular.Result{}, err
	}
	res, err := s.movementsReport(ctx, format, "movimentacoes")
	if err != nil {
		return tabular.Result{}, err
	}
	return s.finishExport(ctx, "movements", format, res)
}

// Report renders a named report.
func (s *Service) Report(ctx context.Context, name, format string) (tabular.Result, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return tabular.Result{}, err
	}

	var res tabular.Result
	switch name {
	case ReportAllMovements:
		res, err = s.movementsReport(ctx, format, name)
		if err != nil {
			return tabular.Result{}, err
		}
	case ReportAllAssets:
		assets, err := s.ListAllAssets(ctx, SearchFilters{})
		if err != nil {
			return tabular.Result{}, err
		}
		res = s.render(assetRecords(assets), tabular.AssetHeaders(), name, format, nil, tabular.Filters{})
	default:
		rep, ok := groupedReports[name]
		if !ok {
			return tabular.Result{}, fmt.Errorf("unknown report %q", name)
		}
		assets, err := s.ListAllAssets(ctx, SearchFilters{})
		if err != nil {
			return tabular.Result{}, err
		}
		rows := GroupReport(assets, rep.key)
		records := make([]tabular.Record, len(rows))
		for i, r := range rows {
			records[i] = r.Record(rep.column)
		}
		res = s.render(records, rep.headers(), name, format, nil, tabular.Filters{})
	}
	return s.finishExport(ctx, name, format, res)
}

func (s *Service) movementsReport(ctx context.Context, format, base string) (tabular.Result, error) {
	movements, err := s.ListAllMovements(ctx, 0, 0)
	if err != nil {
		return tabular.Result{}, err
	}
	records := make([]tabular.Record, len(movements))
	for i, m := range movements {
		records[i] = m.Record()
	}
	return s.render(records, tabular.MovementHeaders(), base, format, nil, tabular.Filters{}), nil
}

func (s *Service) render(records []tabular.Record, headers []tabular.Header, base, format string, stats *tabular.Statistics, filters tabular.Filters) tabular.Result {
	switch format {
	case FormatJSON:
		return s.exporter.JSON(records, base, tabular.JSONOptions{Statistics: stats, Filters: filters})
	case FormatXLSX:
		return s.exporter.Spreadsheet(records, headers, base, stats)
	default:
		return s.exporter.CSV(records, headers, base)
	}
}

// finishExport audits a successful export and turns a failed one into an
// error.
func (s *Service) finishExport(ctx context.Context, what, format string, res tabular.Result) (tabular.Result, error) {
	if !res.Success {
		return res, res.Err
	}
	s.recordExport(ctx, what, format, res.RowCount)
	return res, nil
}
