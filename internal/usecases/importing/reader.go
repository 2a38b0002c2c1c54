package importing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PlatformColumn é o cabeçalho da coluna com o nome da DSP
const PlatformColumn = "DSP"

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Table é o arquivo em formato largo: uma linha por DSP e uma coluna por dia
type Table struct {
	DateColumns []string
	Rows        []Row
}

// Row é uma linha de dados: o rótulo da DSP e um valor bruto por coluna de data
type Row struct {
	DSP    string
	Values []string
}

// TotalCells é a quantidade de células de dados (linhas × colunas de data)
func (t *Table) TotalCells() int {
	return len(t.Rows) * len(t.DateColumns)
}

// DSPs devolve os rótulos distintos na ordem em que aparecem no arquivo
func (t *Table) DSPs() []string {
	seen := make(map[string]struct{}, len(t.Rows))
	dsps := make([]string, 0, len(t.Rows))

	for _, row := range t.Rows {
		if row.DSP == "" {
			continue
		}
		if _, ok := seen[row.DSP]; ok {
			continue
		}
		seen[row.DSP] = struct{}{}
		dsps = append(dsps, row.DSP)
	}

	return dsps
}

// DateRange é o intervalo exibido ao usuário: primeira e última coluna de data
func (t *Table) DateRange() string {
	if len(t.DateColumns) == 0 {
		return ""
	}
	return fmt.Sprintf("%s - %s", t.DateColumns[0], t.DateColumns[len(t.DateColumns)-1])
}

// ReadTable lê um arquivo .csv ou .xlsx do disco
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt", "":
		return ParseCSV(f)
	case ".xlsx":
		return ParseXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %w: %s", ErrMalformedInput, ErrUnsupportedFormat, ext)
	}
}

// ParseCSV lê um CSV UTF-8 com cabeçalho "DSP,<dia> <mês>,..."
func ParseCSV(r io.Reader) (*Table, error) {
	reader := bufio.NewReader(r)
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: falha ao ler csv: %w", ErrMalformedInput, err)
	}

	return buildTable(records)
}

// ParseXLSX lê a primeira planilha de um arquivo Excel
func ParseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: falha ao abrir xlsx: %w", ErrMalformedInput, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: planilha sem abas", ErrMalformedInput)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: falha ao ler linhas do xlsx: %w", ErrMalformedInput, err)
	}

	return buildTable(rows)
}

func buildTable(records [][]string) (*Table, error) {
	records = filterEmptyRows(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: arquivo vazio", ErrMalformedInput)
	}

	header := cleanRow(records[0])
	labelIndex := -1
	for i, name := range header {
		if name == PlatformColumn {
			labelIndex = i
			break
		}
	}
	if labelIndex < 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, ErrMissingLabelColumn)
	}

	table := &Table{}
	dateIndexes := make([]int, 0, len(header)-1)
	for i, name := range header {
		if i == labelIndex {
			continue
		}
		table.DateColumns = append(table.DateColumns, name)
		dateIndexes = append(dateIndexes, i)
	}
	if len(table.DateColumns) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, ErrNoDateColumns)
	}

	for n, record := range records[1:] {
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: linha %d tem %d campos, esperado %d", ErrMalformedInput, n+2, len(record), len(header))
		}

		record = cleanRow(padRow(record, len(header)))
		row := Row{
			DSP:    record[labelIndex],
			Values: make([]string, len(dateIndexes)),
		}
		for j, idx := range dateIndexes {
			row.Values[j] = record[idx]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func cleanRow(row []string) []string {
	cleaned := make([]string, len(row))
	for i, value := range row {
		cleaned[i] = strings.TrimSpace(value)
	}
	return cleaned
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}

func filterEmptyRows(rows [][]string) [][]string {
	filtered := make([][]string, 0, len(rows))
	for _, row := range rows {
		empty := true
		for _, value := range row {
			if strings.TrimSpace(value) != "" {
				empty = false
				break
			}
		}
		if !empty {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// IsMalformed indica se o erro invalida o arquivo inteiro
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}
