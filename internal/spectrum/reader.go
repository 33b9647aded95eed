package spectrum

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Plausible 1H chemical shift range; rows outside it are instrument
// artifacts and are dropped during loading.
const (
	DefaultMinShift = -2.0
	DefaultMaxShift = 14.0
)

// ReadOptions control parsing of tabular spectrum files.
type ReadOptions struct {
	// Delimiter for fields. 0 means infer from the file extension:
	// comma for .csv, tab for everything else.
	Delimiter rune
	// MinShift/MaxShift clip the shift axis. Both zero means the
	// default -2 to 14 ppm range.
	MinShift float64
	MaxShift float64
}

func (o ReadOptions) shiftRange() (float64, float64) {
	if o.MinShift == 0 && o.MaxShift == 0 {
		return DefaultMinShift, DefaultMaxShift
	}
	return o.MinShift, o.MaxShift
}

// LoadTable reads a two-column (chemical shift, intensity) delimited text
// file. Header lines and rows with missing or non-numeric fields are
// dropped, the shift axis is clipped to the configured range and the
// result is sorted by ascending shift.
// An unreadable file or a file with no usable rows at all is an error.
func LoadTable(path string, opts ReadOptions) (Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spectrum{}, fmt.Errorf("open spectrum %s: %w", path, err)
	}
	defer f.Close()

	delim := opts.Delimiter
	if delim == 0 {
		delim = '\t'
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			delim = ','
		}
	}

	s, err := ReadTable(f, delim, opts)
	if err != nil {
		return Spectrum{}, fmt.Errorf("%s: %w", path, err)
	}
	s.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s, nil
}

// ReadTable parses spectrum points from r. See LoadTable.
func ReadTable(r io.Reader, delim rune, opts ReadOptions) (Spectrum, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	minShift, maxShift := opts.shiftRange()

	var s Spectrum
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Spectrum{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		if len(record) < 2 {
			continue
		}
		shift, err1 := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		intens, err2 := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err1 != nil || err2 != nil {
			// Header line or a row with missing/non-numeric values
			continue
		}
		if math.IsNaN(shift) || math.IsNaN(intens) {
			continue
		}
		if shift < minShift || shift > maxShift {
			continue
		}
		s.Points = append(s.Points, Point{Shift: shift, Intensity: intens})
	}
	if len(s.Points) == 0 {
		return Spectrum{}, fmt.Errorf("%w: no numeric rows", ErrMalformedInput)
	}
	sortByShift(s.Points)
	return s, nil
}

// WriteTable writes the spectrum as two-column delimited text,
// one point per line, no header.
func WriteTable(w io.Writer, s Spectrum, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	for _, p := range s.Points {
		rec := []string{
			strconv.FormatFloat(p.Shift, 'g', -1, 64),
			strconv.FormatFloat(p.Intensity, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveTable writes the spectrum to a file as tab-delimited text.
func SaveTable(path string, s Spectrum) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteTable(f, s, '\t')
}
