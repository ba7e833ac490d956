// Package dataset reads experimental temperature series recorded along a
// packed bed.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

var ErrEmpty = errors.New("dataset has no rows")

// Kind selects the measured medium.
type Kind int

const (
	HTF Kind = iota
	PCM
)

func (k Kind) String() string {
	if k == PCM {
		return "pcm"
	}
	return "htf"
}

type htfRow struct {
	Time        float64 `csv:"Time [min]"`
	Temperature float64 `csv:"HTF Temperature [degC]"`
}

type pcmRow struct {
	Time        float64 `csv:"Time [min]"`
	Temperature float64 `csv:"PCM Temperature [degC]"`
}

// Series is one thermocouple record.
type Series struct {
	Position    float64   // fraction of the pipe length
	Time        []float64 // min
	Temperature []float64 // degC
}

// Seconds returns the times in s.
func (s *Series) Seconds() []float64 {
	out := make([]float64, len(s.Time))
	for i, t := range s.Time {
		out[i] = 60 * t
	}
	return out
}

// Data holds the HTF and PCM series of one experiment, in position order.
type Data struct {
	HTF []*Series
	PCM []*Series
}

// DefaultPositions are the thermocouple positions as fractions of the pipe
// length.
var DefaultPositions = []float64{0.25, 0.5, 0.75, 1}

// FileName is the file holding the series of kind k at position x.
func FileName(k Kind, x float64) string {
	return fmt.Sprintf("%s_%.2fL.csv", k, x)
}

// Read loads one series.
func Read(path string, k Kind) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := &Series{}
	switch k {
	case HTF:
		var rows []*htfRow
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for _, r := range rows {
			s.Time = append(s.Time, r.Time)
			s.Temperature = append(s.Temperature, r.Temperature)
		}
	case PCM:
		var rows []*pcmRow
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for _, r := range rows {
			s.Time = append(s.Time, r.Time)
			s.Temperature = append(s.Temperature, r.Temperature)
		}
	}
	if len(s.Time) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return s, nil
}

// Write stores a series in the format Read expects.
func Write(path string, k Kind, s *Series) error {
	if len(s.Time) != len(s.Temperature) {
		return fmt.Errorf("write %s: %d times for %d temperatures", path, len(s.Time), len(s.Temperature))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch k {
	case HTF:
		rows := make([]*htfRow, len(s.Time))
		for i := range rows {
			rows[i] = &htfRow{Time: s.Time[i], Temperature: s.Temperature[i]}
		}
		err = gocsv.MarshalFile(&rows, f)
	case PCM:
		rows := make([]*pcmRow, len(s.Time))
		for i := range rows {
			rows[i] = &pcmRow{Time: s.Time[i], Temperature: s.Temperature[i]}
		}
		err = gocsv.MarshalFile(&rows, f)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads the HTF and PCM series at every position from dir.
func Load(dir string, positions []float64) (*Data, error) {
	if len(positions) == 0 {
		positions = DefaultPositions
	}
	d := &Data{}
	for _, x := range positions {
		htf, err := Read(filepath.Join(dir, FileName(HTF, x)), HTF)
		if err != nil {
			return nil, err
		}
		htf.Position = x
		d.HTF = append(d.HTF, htf)

		pcm, err := Read(filepath.Join(dir, FileName(PCM, x)), PCM)
		if err != nil {
			return nil, err
		}
		pcm.Position = x
		d.PCM = append(d.PCM, pcm)
	}
	return d, nil
}
