package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/springlab/internal/sweep"
)

// ExportData is a sweep result laid out as columns. Swept axes come first,
// prefixed with "@", then every scene quantity.
type ExportData struct {
	Scene   string      `json:"scene"`
	Columns []string    `json:"columns"`
	Samples []SampleRow `json:"samples"`
}

type SampleRow struct {
	Params map[string]float64 `json:"params"`
	Values []float64          `json:"values,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func NewExport(scene string, axes []sweep.Axis, quantities []string, samples []sweep.Sample) *ExportData {
	data := &ExportData{Scene: scene}
	for _, a := range axes {
		data.Columns = append(data.Columns, "@"+a.Name)
	}
	data.Columns = append(data.Columns, quantities...)

	data.Samples = make([]SampleRow, len(samples))
	for i, s := range samples {
		row := SampleRow{Params: s.Params}
		if s.Err != nil {
			row.Error = s.Err.Error()
		} else {
			row.Values = make([]float64, len(quantities))
			for j, q := range quantities {
				row.Values[j] = s.Values[q]
			}
		}
		data.Samples[i] = row
	}
	return data
}

// Rows formats each sample as strings in column order. A failed sample
// carries its error in place of the quantity values.
func (d *ExportData) Rows() [][]string {
	axes := 0
	for _, c := range d.Columns {
		if len(c) > 0 && c[0] == '@' {
			axes++
		}
	}
	rows := make([][]string, 0, len(d.Samples))
	for _, s := range d.Samples {
		row := make([]string, 0, len(d.Columns))
		for _, c := range d.Columns[:axes] {
			if v, ok := s.Params[c[1:]]; ok {
				row = append(row, formatFloat(v))
			} else {
				row = append(row, "")
			}
		}
		if s.Error != "" {
			row = append(row, s.Error)
		} else {
			for _, v := range s.Values {
				row = append(row, formatFloat(v))
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func (d *ExportData) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns); err != nil {
		return err
	}
	return cw.WriteAll(d.Rows())
}

func (d *ExportData) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}

func ExportCSV(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := data.WriteCSV(file); err != nil {
		return err
	}
	return file.Close()
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := data.WriteJSON(file); err != nil {
		return err
	}
	return file.Close()
}
