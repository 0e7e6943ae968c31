package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Input formats.
const (
	inputAuto = "auto"
	inputCSV  = "csv"
	inputJSON = "json"
	inputYAML = "yaml"
)

// series is one input series. Nil weights mean unit weights.
type series struct {
	Values  []float64 `json:"values" yaml:"values"`
	Weights []float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

// readSeries reads and parses one series.
func readSeries(path, inputFormat string, stdin io.Reader) (series, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return series{}, err
	}

	s, err := parseSeries(data, detectFormat(path, inputFormat, data))
	if err != nil {
		return series{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// detectFormat resolves inputAuto from the file extension, then from the content.
func detectFormat(path, inputFormat string, data []byte) string {
	if inputFormat != "" && inputFormat != inputAuto {
		return inputFormat
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return inputCSV
	case ".json":
		return inputJSON
	case ".yaml", ".yml":
		return inputYAML
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		return inputJSON
	case bytes.Contains(trimmed, []byte("values:")):
		return inputYAML
	default:
		return inputCSV
	}
}

func parseSeries(data []byte, inputFormat string) (series, error) {
	var (
		s   series
		err error
	)

	switch inputFormat {
	case inputCSV:
		s, err = parseCSV(data)
	case inputJSON:
		err = json.Unmarshal(data, &s)
	case inputYAML:
		err = yaml.Unmarshal(data, &s)
	default:
		return series{}, fmt.Errorf("unknown input format %q: want auto, csv, json or yaml", inputFormat)
	}
	if err != nil {
		return series{}, fmt.Errorf("parse %s: %w", inputFormat, err)
	}
	if len(s.Values) == 0 {
		return series{}, errors.New("no values in input")
	}

	return s, nil
}

// parseCSV reads rows of value[,weight]. A non-numeric first row is taken
// as a header; lines starting with '#' are comments.
func parseCSV(data []byte) (series, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return series{}, err
	}

	var (
		s          series
		hasWeights = -1 // unknown until the first data row
	)
	for i, rec := range records {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if len(rec) > 2 {
			return series{}, fmt.Errorf("row %d: %d fields, want value[,weight]", i+1, len(rec))
		}

		v, err := cast.ToFloat64E(strings.TrimSpace(rec[0]))
		if err != nil {
			if i == 0 {
				continue
			}

			return series{}, fmt.Errorf("row %d: value: %w", i+1, err)
		}

		rowWeights := 0
		if len(rec) == 2 {
			rowWeights = 1
		}
		if hasWeights == -1 {
			hasWeights = rowWeights
		} else if hasWeights != rowWeights {
			return series{}, fmt.Errorf("row %d: weight column must be present on every row or none", i+1)
		}

		s.Values = append(s.Values, v)
		if rowWeights == 1 {
			w, err := cast.ToFloat64E(strings.TrimSpace(rec[1]))
			if err != nil {
				return series{}, fmt.Errorf("row %d: weight: %w", i+1, err)
			}
			s.Weights = append(s.Weights, w)
		}
	}

	return s, nil
}
