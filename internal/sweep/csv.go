// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the header and every row in evaluation order.
func WriteCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(res.Header))
	for i, row := range res.Rows {
		for j, v := range row.Values {
			record[j] = FormatValue(v)
		}
		record[len(record)-1] = FormatValue(row.Output)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
