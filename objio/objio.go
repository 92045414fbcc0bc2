// Package objio is a minimal Wavefront OBJ reader/writer feeding the
// V/TC/F/FT arrays the decimation core operates on. OBJ I/O is named as an
// external collaborator by spec.md §1 ("assumed available as primitives");
// this package exists only because cmd/duvdecimate needs a concrete reader
// and writer to be a runnable program, the same way nat-n-shapeset carries
// its own io.go for its (JSON) format even though the simplification
// algorithm proper never touches a file.
package objio

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Mesh is the OBJ-level view of a mesh: 3D positions, 2D texture
// coordinates, and co-indexed position/uv face triples.
type Mesh struct {
	V  [][3]float64
	TC [][2]float64
	F  [][3]int32
	FT [][3]int32
}

// Read parses a Wavefront OBJ file, keeping only v/vt/f lines (the subset
// decimater.cpp's igl::readOBJ call relies on). Faces must be triangles and
// must carry a texture-coordinate index on every vertex.
func Read(path string) (Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return Mesh{}, err
	}
	defer file.Close()

	var m Mesh
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return Mesh{}, fmt.Errorf("objio: line %d: %w", lineNo, err)
			}
			m.V = append(m.V, v)
		case "vt":
			t, err := parseFloats2(fields[1:])
			if err != nil {
				return Mesh{}, fmt.Errorf("objio: line %d: %w", lineNo, err)
			}
			m.TC = append(m.TC, t)
		case "f":
			face, faceT, err := parseFace(fields[1:])
			if err != nil {
				return Mesh{}, fmt.Errorf("objio: line %d: %w", lineNo, err)
			}
			m.F = append(m.F, face)
			m.FT = append(m.FT, faceT)
		}
	}
	if err := scanner.Err(); err != nil {
		return Mesh{}, err
	}
	return m, nil
}

// Write emits V/TC/F/FT as a Wavefront OBJ (1-based face indices).
func Write(path string, m Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()

	for _, v := range m.V {
		if _, err := fmt.Fprintf(w, "v %.17g %.17g %.17g\n", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, t := range m.TC {
		if _, err := fmt.Fprintf(w, "vt %.17g %.17g\n", t[0], t[1]); err != nil {
			return err
		}
	}
	for i, f := range m.F {
		ft := m.FT[i]
		if _, err := fmt.Fprintf(w, "f %d/%d %d/%d %d/%d\n",
			f[0]+1, ft[0]+1, f[1]+1, ft[1]+1, f[2]+1, ft[2]+1); err != nil {
			return err
		}
	}
	return nil
}

func parseFloats3(fields []string) ([3]float64, error) {
	var out [3]float64
	if len(fields) < 3 {
		return out, errors.New("expected 3 floats")
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}

func parseFloats2(fields []string) ([2]float64, error) {
	var out [2]float64
	if len(fields) < 2 {
		return out, errors.New("expected 2 floats")
	}
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}

// parseFace parses three "v/vt[/vn]" corners into 0-based position and uv
// index triples.
func parseFace(fields []string) ([3]int32, [3]int32, error) {
	var face, faceT [3]int32
	if len(fields) != 3 {
		return face, faceT, fmt.Errorf("only triangles are supported, got %d corners", len(fields))
	}
	for i, corner := range fields {
		parts := strings.Split(corner, "/")
		if len(parts) < 2 || parts[1] == "" {
			return face, faceT, errors.New("face corner is missing a texture-coordinate index")
		}
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return face, faceT, err
		}
		t, err := strconv.Atoi(parts[1])
		if err != nil {
			return face, faceT, err
		}
		face[i] = int32(v - 1)
		faceT[i] = int32(t - 1)
	}
	return face, faceT, nil
}
