// Package planilla parses spreadsheet exports of cheques (bank eCheq
// portals, ERP portfolio sheets) into create params.
package planilla

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tesoreria/internal/cheque"
	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
	"github.com/MrJamesThe3rd/tesoreria/internal/encoding"
)

var ErrUnknownLayout = errors.New("no known cheque layout found")

var dateLayouts = []string{"02/01/2006", "2/1/2006", time.DateOnly, "02-01-2006"}

// Row is one parsed cheque. Line is 1-based within the input; Banco is
// the raw bank name, left for the caller to resolve.
type Row struct {
	Line   int
	Params cheque.CreateParams
	Banco  string
}

// Parser reads semicolon or comma separated exports. Input must already
// be UTF-8.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse auto-detects the layout from the header row and returns the
// detected profile name with the parsed rows. Rows whose collection date
// is blank or not a date (totals, footers) are skipped.
func (p *Parser) Parse(r io.Reader) (string, []Row, error) {
	records, lines, err := readAll(r)
	if err != nil {
		return "", nil, err
	}

	profile, cols, headerIdx := detectProfile(records)
	if profile == nil {
		return "", nil, fmt.Errorf("%w: expected one of %s", ErrUnknownLayout, strings.Join(Profiles(), ", "))
	}

	rows, err := parseRows(profile, cols, records[headerIdx+1:], lines[headerIdx+1:])
	if err != nil {
		return "", nil, err
	}

	return profile.Name, rows, nil
}

// readAll returns every record with the 1-based input line it started on;
// csv.Reader skips blank lines, so indices and lines diverge.
func readAll(r io.Reader) ([][]string, []int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = sniffComma(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		records [][]string
		lines   []int
	)

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}

	return records, lines, nil
}

// sniffComma picks ';' unless commas clearly dominate; Argentine amounts
// use commas as the decimal mark, so semicolons are the norm.
func sniffComma(s string) rune {
	if strings.Count(s, ";") == 0 && strings.Count(s, ",") > 0 {
		return ','
	}

	return ';'
}

// colIndex maps folded column names to their index in the header.
type colIndex map[string]int

func (c colIndex) get(row []string, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := c[encoding.Fold(name)]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func detectProfile(records [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range records {
		cols := make(colIndex)

		for i, cell := range row {
			if name := encoding.Fold(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[encoding.Fold(name)]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, records [][]string, lines []int) ([]Row, error) {
	var rows []Row

	for i, rec := range records {
		line := lines[i]

		cobro, ok := parseDate(cols.get(rec, p.CobroCol))
		if !ok {
			continue
		}

		numero := strings.TrimLeft(cols.get(rec, p.NumeroCol), "0")
		if numero == "" {
			return nil, fmt.Errorf("line %d: missing cheque number", line)
		}

		monto, err := parseMonto(cols.get(rec, p.MontoCol))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q", line, cols.get(rec, p.MontoCol))
		}

		emision, _ := parseDate(cols.get(rec, p.EmisionCol))

		vencimiento := cobro
		if d, ok := parseDate(cols.get(rec, p.VencimientoCol)); ok {
			vencimiento = d
		}

		rows = append(rows, Row{
			Line:  line,
			Banco: cols.get(rec, p.BancoCol),
			Params: cheque.CreateParams{
				Tipo:               p.Tipo,
				Canal:              p.Canal,
				Numero:             numero,
				Monto:              monto.Abs(),
				FechaEmision:       emision,
				FechaVencimiento:   vencimiento,
				FechaCobroPrevista: cobro,
				BeneficiarioNombre: cols.get(rec, p.ContraparteCol),
				Observaciones:      cols.get(rec, p.ObservacionesCol),
			},
		})
	}

	return rows, nil
}

func parseDate(s string) (civil.Date, bool) {
	if s == "" {
		return civil.Date{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.Date{Time: t}, true
		}
	}

	return civil.Date{}, false
}
