// Package export writes finished adoption-count series to external
// destinations: CSV and JSON documents, and a PostgreSQL results store.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-diffusion/pkg/sim"
)

// WriteCSV writes the series as one row per iteration with a header of
// iteration plus one column per technology.
func WriteCSV(w io.Writer, series []sim.Snapshot) error {
	if len(series) == 0 {
		return fmt.Errorf("empty series")
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(series[0].Counts)+1)
	header = append(header, "iteration")
	for tech := range series[0].Counts {
		header = append(header, fmt.Sprintf("technology_%d", tech+1))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for _, snap := range series {
		row[0] = strconv.Itoa(snap.Iteration)
		for tech, count := range snap.Counts {
			row[tech+1] = strconv.Itoa(count)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", snap.Iteration, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the series to a file. With compress set the payload is
// snappy-framed, which keeps long low-entropy series small on disk.
func WriteCSVFile(path string, series []sim.Snapshot, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if !compress {
		return WriteCSV(f, series)
	}

	sw := snappy.NewBufferedWriter(f)
	if err := WriteCSV(sw, series); err != nil {
		sw.Close()
		return err
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("flush snappy writer: %w", err)
	}
	return nil
}

// ReadCSVFile reads a series file written by WriteCSVFile back into
// snapshots, detecting snappy framing from the flag.
func ReadCSVFile(path string, compressed bool) ([]sim.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		r = snappy.NewReader(f)
	}

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: missing header", path)
	}

	series := make([]sim.Snapshot, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(records[0]) {
			return nil, fmt.Errorf("%s: ragged row", path)
		}
		iter, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s: bad iteration %q", path, rec[0])
		}
		counts := make([]int, len(rec)-1)
		for i, cell := range rec[1:] {
			counts[i], err = strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("%s: bad count %q", path, cell)
			}
		}
		series = append(series, sim.Snapshot{Iteration: iter, Counts: counts})
	}
	return series, nil
}
