// Package export writes cheque listings to CSV or XLSX files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/encoding"
	"github.com/MrJamesThe3rd/tesoreria/internal/lookup"
	"github.com/MrJamesThe3rd/tesoreria/internal/present"
)

// pageSize is the page length used to walk the listing.
const pageSize = 100

// Header is the column row of an export. It carries every column of the
// cartera spreadsheet layout, so an export can be imported back.
var Header = []string{
	"Número",
	"Tipo",
	"Estado",
	"Fecha emisión",
	"Vencimiento",
	"Fecha cobro",
	"Monto",
	"Librador",
	"Banco",
	"Observaciones",
}

// Format is the file type of an export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Cheques"

// Options selects the file type and, for CSV, the charset: encoding.UTF8
// (written with a BOM) or encoding.Windows1252.
type Options struct {
	Format  Format
	Charset string
}

// Result describes a finished export.
type Result struct {
	Path      string
	Format    Format
	Charset   string
	Count     int
	Totales   cheque.Conteo
	PorEstado map[cheque.Estado]cheque.Conteo
}

// Service handles the export of cheque listings.
type Service struct {
	cheques *cheque.Service
	lookups *lookup.Service
	now     func() time.Time
}

func NewService(cheques *cheque.Service, lookups *lookup.Service) *Service {
	return &Service{cheques: cheques, lookups: lookups, now: time.Now}
}

// Export writes every cheque matching filter to a new file in dir, which is
// created if needed.
func (s *Service) Export(ctx context.Context, filter cheque.ListFilter, dir string, opts Options) (*Result, error) {
	if opts.Format == "" {
		opts.Format = FormatCSV
	}

	if opts.Format != FormatCSV && opts.Format != FormatXLSX {
		return nil, fmt.Errorf("unsupported format %q", opts.Format)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, s.filename(filter, opts.Format))

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	var res *Result

	if opts.Format == FormatXLSX {
		res, err = s.WriteXLSX(ctx, filter, f)
	} else {
		res, err = s.Write(ctx, filter, f, opts.Charset)
	}

	if err != nil {
		return nil, err
	}

	res.Path = path

	return res, nil
}

// Write streams the listing to w as semicolon separated CSV.
func (s *Service) Write(ctx context.Context, filter cheque.ListFilter, w io.Writer, charset string) (*Result, error) {
	out, flush, err := encodeTo(w, charset)
	if err != nil {
		return nil, err
	}

	names, err := s.bancoNames(ctx)
	if err != nil {
		return nil, err
	}

	cw := csv.NewWriter(out)
	cw.Comma = ';'
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	res := newResult(FormatCSV)
	res.Charset = charset

	err = s.walk(ctx, filter, func(c *cheque.Cheque) error {
		res.add(c)
		return cw.Write(record(c, names))
	})
	if err != nil {
		return nil, err
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	if err := flush(); err != nil {
		return nil, fmt.Errorf("flushing %s output: %w", charset, err)
	}

	return res, nil
}

// WriteXLSX writes the listing to w as a one-sheet workbook. Amounts are
// numeric cells.
func (s *Service) WriteXLSX(ctx context.Context, filter cheque.ListFilter, w io.Writer) (*Result, error) {
	names, err := s.bancoNames(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return nil, fmt.Errorf("opening sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}

	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: bold}); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	res := newResult(FormatXLSX)
	row := 2

	err = s.walk(ctx, filter, func(c *cheque.Cheque) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		row++
		res.add(c)

		return sw.SetRow(cell, xlsxRecord(c, names))
	})
	if err != nil {
		return nil, err
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flushing sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return res, nil
}

func (s *Service) bancoNames(ctx context.Context) (map[int64]string, error) {
	bancos, err := s.lookups.Bancos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bancos: %w", err)
	}

	return lookup.BancoNames(bancos), nil
}

// walk calls fn for every cheque matching filter, page by page.
func (s *Service) walk(ctx context.Context, filter cheque.ListFilter, fn func(*cheque.Cheque) error) error {
	for p := 1; ; p++ {
		page, err := s.cheques.List(ctx, cheque.ListQuery{Page: p, Limit: pageSize, ListFilter: filter})
		if err != nil {
			return fmt.Errorf("listing cheques page %d: %w", p, err)
		}

		for _, c := range page.Items {
			if err := fn(c); err != nil {
				return fmt.Errorf("writing cheque %d: %w", c.ID, err)
			}
		}

		meta := page.Meta
		if !meta.Paginated || !meta.HasNext || len(page.Items) == 0 || p >= meta.TotalPages {
			return nil
		}
	}
}

func newResult(format Format) *Result {
	return &Result{Format: format, PorEstado: map[cheque.Estado]cheque.Conteo{}}
}

func (r *Result) add(c *cheque.Cheque) {
	r.Count++
	r.Totales.Cantidad++
	r.Totales.Monto = r.Totales.Monto.Add(c.Monto)

	e := r.PorEstado[c.Estado]
	e.Cantidad++
	e.Monto = e.Monto.Add(c.Monto)
	r.PorEstado[c.Estado] = e
}

// encodeTo wraps w in the charset encoder. The returned flush must run
// after the last write.
func encodeTo(w io.Writer, charset string) (io.Writer, func() error, error) {
	switch charset {
	case "", encoding.UTF8:
		if _, err := w.Write([]byte("\ufeff")); err != nil {
			return nil, nil, fmt.Errorf("writing bom: %w", err)
		}

		return w, func() error { return nil }, nil
	case encoding.Windows1252:
		tw := transform.NewWriter(w, xencoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		return tw, tw.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported charset %q", charset)
}

func record(c *cheque.Cheque, bancos map[int64]string) []string {
	banco := ""
	if c.BancoID != nil {
		banco = bancos[*c.BancoID]
	}

	return []string{
		c.Numero,
		c.Tipo.Label(),
		c.Estado.Label(),
		date(c.FechaEmision),
		date(c.FechaVencimiento),
		date(c.FechaCobroPrevista),
		amount(c.Monto),
		c.BeneficiarioNombre,
		banco,
		c.Observaciones,
	}
}

func xlsxRecord(c *cheque.Cheque, bancos map[int64]string) []any {
	rec := record(c, bancos)

	out := make([]any, len(rec))
	for i, v := range rec {
		out[i] = v
	}

	out[6] = c.Monto.InexactFloat64()

	return out
}

func date(d civil.Date) string {
	if d.IsZero() {
		return ""
	}

	return d.Format("02/01/2006")
}

// amount uses a decimal comma and no grouping, which spreadsheets in the
// es-AR locale read as a number.
func amount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// filename is cheques_<desde>_<hasta>.<ext> for a collection-date range,
// or cheques_<today>.<ext> otherwise.
func (s *Service) filename(f cheque.ListFilter, format Format) string {
	if f.PrevistaDesde == nil && f.PrevistaHasta == nil {
		return fmt.Sprintf("cheques_%s.%s", s.now().Format("20060102"), format)
	}

	part := func(d *civil.Date) string {
		if d == nil {
			return "x"
		}

		return d.Format("20060102")
	}

	return fmt.Sprintf("cheques_%s_%s.%s", part(f.PrevistaDesde), part(f.PrevistaHasta), format)
}

// GenerateSummary renders the per-state totals of an export as text lines.
func GenerateSummary(r *Result) string {
	var sb strings.Builder

	for _, e := range cheque.Estados {
		c, ok := r.PorEstado[e]
		if !ok {
			continue
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | %s\n", e.Label(), present.Count(c.Cantidad), present.Money(c.Monto)))
	}

	sb.WriteString(fmt.Sprintf("Total | %s | %s\n", present.Count(r.Totales.Cantidad), present.Money(r.Totales.Monto)))

	return sb.String()
}
