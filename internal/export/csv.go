package export

import (
	"io"

	"github.com/gocarina/gocsv"
)

func writeCSV(w io.Writer, rows []Row) error {
	return gocsv.Marshal(rows, w)
}
