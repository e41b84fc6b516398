// Package importer turns uploaded GPX and FIT activity files into runs.
package importer

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"time"

	"runcoach/backend/internal/model"
)

type Format string

const (
	FormatGPX Format = "gpx"
	FormatFIT Format = "fit"
)

const (
	metersPerMile = 1609.344
	feetPerMeter  = 3.28084
)

var (
	ErrUnsupportedFormat = errors.New("unsupported activity file format")
	ErrNoRunData         = errors.New("activity file has no usable distance or duration")
	ErrNotARun           = errors.New("activity is not a run")
)

// DetectFormat uses the file extension, falling back to content sniffing.
func DetectFormat(filename string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gpx":
		return FormatGPX, nil
	case ".fit":
		return FormatFIT, nil
	}
	if len(data) >= 12 && string(data[8:12]) == ".FIT" {
		return FormatFIT, nil
	}
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<gpx")) {
		return FormatGPX, nil
	}
	return "", ErrUnsupportedFormat
}

// Parse detects the format of data and converts it to a run. The returned
// run has no ID.
func Parse(filename string, data []byte) (model.Run, Format, error) {
	format, err := DetectFormat(filename, data)
	if err != nil {
		return model.Run{}, "", err
	}
	var r model.Run
	switch format {
	case FormatGPX:
		r, err = ParseGPX(data)
	case FormatFIT:
		r, err = ParseFIT(data)
	}
	return r, format, err
}

func newRun(name string, start time.Time, meters, seconds float64, ascentMeters *float64) (model.Run, error) {
	// NaN from unset FIT fields fails these comparisons too.
	if !(meters > 0) || !(seconds > 0) {
		return model.Run{}, ErrNoRunData
	}
	miles := meters / metersPerMile
	r := model.Run{
		Date:                  start.UTC(),
		DistanceMiles:         math.Round(miles*100) / 100,
		DurationSeconds:       int(math.Round(seconds)),
		AveragePaceMinPerMile: math.Round(seconds/60/miles*100) / 100,
		Type:                  ClassifyRun(name, miles),
		Notes:                 strings.TrimSpace(name),
	}
	if ascentMeters != nil {
		feet := math.Round(*ascentMeters * feetPerMeter)
		r.ElevationFeet = &feet
	}
	return r, nil
}
