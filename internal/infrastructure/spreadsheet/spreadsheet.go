// Package spreadsheet exporta listados a XLSX e importa filas desde XLSX o CSV.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/mdaskas/customer-console/internal/domain"
)

// ContentTypeXLSX tipo MIME de los libros exportados.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxImportBytes = 10 << 20

// Record una fila de datos importada. Line es el número de fila en el archivo (la cabecera es 1).
type Record struct {
	Line   int
	Values map[string]string
}

// Get devuelve el valor de la columna (sin distinguir mayúsculas) ya recortado.
func (r Record) Get(column string) string {
	return r.Values[normalize(column)]
}

// WriteXLSX escribe un libro con una hoja: cabecera en negrita y una fila por registro.
func WriteXLSX(w io.Writer, sheet string, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for c, h := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: cabecera %s: %w", cell, err)
		}
	}
	if len(header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("xlsx: estilo cabecera: %w", err)
		}
	}

	for i, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("xlsx: celda %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

// ReadRecords lee un .xlsx (primera hoja) o un .csv. La primera fila es la cabecera y da
// nombre a las columnas; las filas vacías se omiten.
func ReadRecords(filename string, r io.Reader) ([]Record, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("formato no soportado %q (use .xlsx o .csv): %w", filepath.Ext(filename), domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("el archivo no tiene cabecera: %w", domain.ErrInvalidInput)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = normalize(h)
	}
	out := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		values := make(map[string]string, len(header))
		for c, name := range header {
			if name == "" || c >= len(row) {
				continue
			}
			values[name] = strings.TrimSpace(row[c])
		}
		out = append(out, Record{Line: i + 2, Values: values})
	}
	return out, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir: %w: %w", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: el libro no tiene hojas: %w", domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer filas: %w", err)
	}
	return rows, nil
}

// readCSV acepta UTF-8 (con o sin BOM) y, si el contenido no es UTF-8 válido, Windows-1252,
// que es lo que exporta Excel en Windows.
func readCSV(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxImportBytes))
	if err != nil {
		return nil, fmt.Errorf("csv: leer: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(raw) {
		raw, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("csv: decodificar Windows-1252: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if bytes.Count(firstLine(raw), []byte(";")) > bytes.Count(firstLine(raw), []byte(",")) {
		cr.Comma = ';'
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w: %w", domain.ErrInvalidInput, err)
	}
	return rows, nil
}

func firstLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i]
	}
	return b
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
