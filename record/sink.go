package record

import (
	"encoding/csv"
	"errors"
	"io"
	"sync"
)

// A destination for result records
type Sink interface {
	Emit(r Record) error
}

// Writes records as comma separated lines
type CSVSink struct {
	w *csv.Writer
}

// Create a CSVSink. The header line is written immediately.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	s := &CSVSink{w: csv.NewWriter(w)}
	if err := s.write(Header); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CSVSink) write(fields []string) error {
	if err := s.w.Write(fields); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *CSVSink) Emit(r Record) error {
	return s.write(r.Fields())
}

// Keeps records in memory
type Memory struct {
	sync.Mutex
	records []Record
}

func (m *Memory) Emit(r Record) error {
	m.Lock()
	defer m.Unlock()
	m.records = append(m.records, r)
	return nil
}

func (m *Memory) Records() []Record {
	m.Lock()
	defer m.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Emits every record to all sinks. All sinks are attempted even if one fails.
type MultiSink []Sink

func (ms MultiSink) Emit(r Record) error {
	var errs []error
	for _, s := range ms {
		if err := s.Emit(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discards all records
type Discard struct{}

func (Discard) Emit(Record) error { return nil }
