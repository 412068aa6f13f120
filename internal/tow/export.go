package tow

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ExportHeader is the fixed column order of the tow sheet download. The
// ground crew's import expects exactly these names in this order.
var ExportHeader = []string{
	"Arrival Flight",
	"Tail",
	"Tow From",
	"Tow To",
	"Departure Flight",
	"Departure Time",
}

// WriteCSV writes the instructions as a delimited tow sheet, one data row
// per instruction.
func WriteCSV(w io.Writer, instructions []Instruction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("tow: write header: %w", err)
	}
	for _, ins := range instructions {
		row := []string{ins.ArrFlight, ins.Tail, ins.From, ins.To, ins.DepFlight, ins.DepTime}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("tow: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
