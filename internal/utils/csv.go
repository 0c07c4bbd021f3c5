package utils

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/facette/natsort"
)

type CSV [][]string

// Less is strict: natsort.Compare reports equal keys as ordered both ways.
func (data CSV) Less(i, j int) bool {
	a, b := data[i][0], data[j][0]
	return natsort.Compare(a, b) && !natsort.Compare(b, a)
}

func (data CSV) Len() int {
	return len(data)
}
func (data CSV) Swap(i, j int) {
	data[i], data[j] = data[j], data[i]
}

// WriteCSV writes the column header followed by the rows, naturally ordered
// by their first column. Rows with equal keys keep their relative order.
func WriteCSV(w io.Writer, data CSV, columns []string) error {
	sort.Stable(data)
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	return cw.WriteAll(data)
}
