package cashflow

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// seriesHeader is the persisted record format. Changing it breaks every
// stored file and shared string, so it is preserved bit for bit.
var seriesHeader = []string{"desc", "accounts", "dtstart", "rrule"}

// EncodeSeries writes the series as CSV, one row per entry in display order,
// with the start date in ISO-8601. The accounts cell is written back exactly
// as it was authored, so decode followed by encode preserves a stored file.
func EncodeSeries(w io.Writer, s *Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for _, e := range s.Entries() {
		row := []string{e.Desc, e.Accounts, e.DTStart.String(), e.RRule}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeSeries reads a CSV-encoded series. Every row must validate; a single
// bad row fails the whole decode so callers never observe a partial series.
func DecodeSeries(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(seriesHeader)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading series header: %w", err)
	}
	for i, want := range seriesHeader {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected series header %q, want %q", header, seriesHeader)
		}
	}
	var entries []Entry
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading series row: %w", err)
		}
		// Stored dates are strict ISO, unlike the lenient CLI input.
		on, err := time.Parse(DateFormat, row[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", line, row[2], err)
		}
		e, err := NewEntry(row[0], row[1], NewDate(on.Date()), row[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	var s Series
	if err := s.Append(entries...); err != nil {
		return nil, err
	}
	return &s, nil
}

// EncodeSeriesString encodes the series into a compact shareable string:
// the CSV form, gzipped and URL-safe base64 encoded.
func EncodeSeriesString(s *Series) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := EncodeSeries(zw, s); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeSeriesString accepts either the plain CSV form, recognized by its
// header, or the compact form produced by [EncodeSeriesString].
func DecodeSeriesString(str string) (*Series, error) {
	if strings.HasPrefix(str, strings.Join(seriesHeader, ",")) {
		return DecodeSeries(strings.NewReader(str))
	}
	raw, err := base64.URLEncoding.DecodeString(strings.TrimSpace(str))
	if err != nil {
		return nil, fmt.Errorf("decoding compact series: %w", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding compact series: %w", err)
	}
	defer zr.Close()
	return DecodeSeries(zr)
}
