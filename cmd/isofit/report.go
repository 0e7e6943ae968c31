package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/isotonic/diag"
	"github.com/arloliu/isotonic/internal/config"
	"github.com/arloliu/isotonic/model"
	"github.com/arloliu/isotonic/pava"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// report is a command result that renders as a YAML/JSON document or a CSV table.
type report interface {
	document() any
	csvHeader() []string
	csvRows() [][]string
}

func writeReport(w io.Writer, format string, r report) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r.document())
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.document()); err != nil {
			return err
		}

		return enc.Close()
	case config.FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(r.csvHeader()); err != nil {
			return err
		}
		if err := cw.WriteAll(r.csvRows()); err != nil {
			return err
		}

		return cw.Error()
	default:
		return fmt.Errorf("invalid format %q", format)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// fitReport is the result of fitting one series.
type fitReport struct {
	Source      string         `json:"source" yaml:"source"`
	Fingerprint string         `json:"fingerprint" yaml:"fingerprint"`
	Direction   pava.Direction `json:"direction" yaml:"direction"`
	Center      int            `json:"center" yaml:"center"`
	Cached      bool           `json:"cached" yaml:"cached"`
	Values      []float64      `json:"values" yaml:"values,flow"`
	Weights     []float64      `json:"weights" yaml:"weights,flow"`
	Summary     diag.Summary   `json:"summary" yaml:"summary"`

	input series
}

type fitReports []fitReport

func (r fitReports) document() any {
	if len(r) == 1 {
		return r[0]
	}

	return []fitReport(r)
}

func (fitReports) csvHeader() []string {
	return []string{"source", "index", "value", "weight", "fitted", "pooled_weight"}
}

func (r fitReports) csvRows() [][]string {
	var rows [][]string
	for _, rep := range r {
		for i, y := range rep.Values {
			weight := "1"
			if rep.input.Weights != nil {
				weight = formatFloat(rep.input.Weights[i])
			}
			rows = append(rows, []string{
				rep.Source,
				strconv.Itoa(i),
				formatFloat(rep.input.Values[i]),
				weight,
				formatFloat(y),
				formatFloat(rep.Weights[i]),
			})
		}
	}

	return rows
}

// poolReport is one pool of a decoded model.
type poolReport struct {
	Start  int     `json:"start" yaml:"start"`
	End    int     `json:"end" yaml:"end"`
	Value  float64 `json:"value" yaml:"value"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// modelReport describes a decoded model blob.
type modelReport struct {
	ID           string         `json:"id" yaml:"id"`
	Direction    pava.Direction `json:"direction" yaml:"direction"`
	Center       int            `json:"center" yaml:"center"`
	Length       int            `json:"length" yaml:"length"`
	Compression  string         `json:"compression,omitempty" yaml:"compression,omitempty"`
	Checksum     string         `json:"checksum,omitempty" yaml:"checksum,omitempty"`
	PayloadBytes int            `json:"payload_bytes,omitempty" yaml:"payload_bytes,omitempty"`
	Pools        []poolReport   `json:"pools" yaml:"pools"`
	Values       []float64      `json:"values,omitempty" yaml:"values,flow,omitempty"`
}

func newModelReport(m model.Model, expand bool) modelReport {
	r := modelReport{
		ID:        m.ID.String(),
		Direction: m.Direction,
		Center:    m.Center,
		Length:    m.Len(),
		Pools:     make([]poolReport, len(m.Pools)),
	}
	for k, p := range m.Pools {
		r.Pools[k] = poolReport{Start: p.Start, End: p.End, Value: p.Value, Weight: p.Weight}
	}
	if expand {
		r.Values = m.Regression().Values
	}

	return r
}

// withBlob adds the blob header details of a decoded model.
func (r modelReport) withBlob(h model.Header) modelReport {
	r.Compression = h.Compression.String()
	r.Checksum = fmt.Sprintf("%016x", h.Checksum)
	r.PayloadBytes = int(h.PayloadLength)

	return r
}

func (r modelReport) document() any { return r }

func (modelReport) csvHeader() []string {
	return []string{"start", "end", "value", "weight"}
}

func (r modelReport) csvRows() [][]string {
	rows := make([][]string, len(r.Pools))
	for k, p := range r.Pools {
		rows[k] = []string{strconv.Itoa(p.Start), strconv.Itoa(p.End), formatFloat(p.Value), formatFloat(p.Weight)}
	}

	return rows
}

// configReport renders the effective configuration.
type configReport struct {
	cfg *config.Config
}

func (r configReport) document() any { return r.cfg }

func (configReport) csvHeader() []string { return []string{"key", "value"} }

func (r configReport) csvRows() [][]string {
	return [][]string{
		{"direction", r.cfg.Direction},
		{"center", strconv.Itoa(r.cfg.Center)},
		{"compression", r.cfg.Compression},
		{"format", r.cfg.Format},
		{"cache_ttl", r.cfg.CacheTTL.String()},
	}
}

// idReport lists model IDs.
type idReport []uuid.UUID

func (r idReport) document() any {
	ids := make([]string, len(r))
	for i, id := range r {
		ids[i] = id.String()
	}

	return ids
}

func (idReport) csvHeader() []string { return []string{"id"} }

func (r idReport) csvRows() [][]string {
	rows := make([][]string, len(r))
	for i, id := range r {
		rows[i] = []string{id.String()}
	}

	return rows
}
