package raster

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// worldFile holds the six-parameter affine georeference of an ESRI world
// file: cell sizes, rotation terms, and the center of the upper-left cell.
type worldFile struct {
	cellW   float64 // x size of a cell
	rotY    float64 // rotation about the y axis
	rotX    float64 // rotation about the x axis
	cellH   float64 // y size of a cell, negative for north-up rasters
	centerX float64 // x of the center of the upper-left cell
	centerY float64 // y of the center of the upper-left cell
}

// readWorldFile parses a world file. Rotated rasters are not supported.
func readWorldFile(path string) (*worldFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "raster: open world file %s", path)
	}
	defer f.Close() //nolint:errcheck

	var vals []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "raster: parse world file line %q", line)
		}
		vals = append(vals, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "raster: read world file")
	}
	if len(vals) < 6 {
		return nil, eris.Errorf("raster: world file has %d lines, want 6", len(vals))
	}

	wf := &worldFile{
		cellW:   vals[0],
		rotY:    vals[1],
		rotX:    vals[2],
		cellH:   vals[3],
		centerX: vals[4],
		centerY: vals[5],
	}
	if wf.rotX != 0 || wf.rotY != 0 {
		return nil, eris.New("raster: rotated rasters are not supported")
	}
	if wf.cellW <= 0 || wf.cellH >= 0 {
		return nil, eris.Errorf("raster: unexpected cell size %g x %g, want north-up", wf.cellW, wf.cellH)
	}
	return wf, nil
}
