// Command duvdecimate is the CLI front end for the decimater package: read
// an OBJ, run a seam-aware 5D edge collapse down to a target vertex count,
// write the result. The flag surface and default output naming mirror
// decimater.cpp's main(); the plain stdlib flag style (rather than a
// pipeline/stage framework) follows sstool.go's own flag-based invocation.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	decimater "github.com/FV-ConeLabs/SeamAwareDecimater"
	"github.com/FV-ConeLabs/SeamAwareDecimater/objio"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s -in mesh.obj {-num-vertices N | -percent-vertices P} [options]\n\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var (
		inPath             string
		outPath            string
		numVertices        int
		percentVertices    float64
		abortOnNoProgress  bool
		uvWeight           float64
		preserveBoundaries bool
		seamAware          string
		debugLevel         int
	)

	flag.StringVar(&inPath, "in", "", "input OBJ mesh (required)")
	flag.StringVar(&outPath, "out", "", "output OBJ path (default: derived from -in and the achieved error)")
	flag.IntVar(&numVertices, "num-vertices", 0, "absolute target vertex count")
	flag.Float64Var(&percentVertices, "percent-vertices", 0, "target vertex count as a percentage of the input (0,100)")
	flag.BoolVar(&abortOnNoProgress, "abort-on-no-progress", true, "no-progress abort compares a failed collapse against the previous attempted edge; false compares it against the previous failed edge only (the §9 StrictNoProgress option; unrelated to decimater.cpp's --strict, which sets seam-aware degree — see -seam-aware-degree)")
	flag.Float64Var(&uvWeight, "uv-weight", 1.0, "relative weight of UV error against geometric error")
	flag.BoolVar(&preserveBoundaries, "preserve-boundaries", false, "at -seam-aware-degree none, still restrict collapses touching a boundary or seam vertex to seam-interior edges (higher degrees always do); boundary edges between two seam-degree-2 vertices can still collapse")
	flag.StringVar(&seamAware, "seam-aware-degree", "seamless", "seam strictness: none, uv-shape, or seamless")
	flag.IntVar(&debugLevel, "debug-level", 0, "set DUV_DEBUG_LEVEL for verbose progress logging")
	flag.Usage = usage
	flag.Parse()

	if inPath == "" {
		usage()
		os.Exit(2)
	}
	if debugLevel > 0 {
		os.Setenv("DUV_DEBUG_LEVEL", fmt.Sprintf("%d", debugLevel))
	}

	in, err := objio.Read(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "duvdecimate: %v\n", err)
		os.Exit(1)
	}

	target, err := resolveTarget(len(in.V), numVertices, percentVertices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "duvdecimate: %v\n", err)
		os.Exit(2)
	}

	degree, err := parseSeamAwareDegree(seamAware)
	if err != nil {
		fmt.Fprintf(os.Stderr, "duvdecimate: %v\n", err)
		os.Exit(2)
	}

	opts := decimater.DefaultOptions(target)
	opts.SeamAwareDegree = degree
	opts.UVWeight = uvWeight
	opts.PreserveBoundaries = preserveBoundaries
	opts.StrictNoProgress = abortOnNoProgress

	out, err := decimater.Decimate(decimater.Mesh{V: in.V, TC: in.TC, F: in.F, FT: in.FT}, opts)
	if err != nil && !out.Success {
		fmt.Fprintf(os.Stderr, "duvdecimate: %v (max_error=%.6g, seam_edges %d->%d)\n",
			err, out.MaxError, out.SeamEdgesBefore, out.SeamEdgesAfter)
		os.Exit(1)
	}

	if outPath == "" {
		outPath = defaultOutputPath(inPath, target, out.MaxError)
	}
	if err := objio.Write(outPath, objio.Mesh{V: out.Mesh.V, TC: out.Mesh.TC, F: out.Mesh.F, FT: out.Mesh.FT}); err != nil {
		fmt.Fprintf(os.Stderr, "duvdecimate: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("decimated %s -> %s: %d vertices, max_error=%.6g, seam_edges %d->%d\n",
		inPath, outPath, len(out.Mesh.V), out.MaxError, out.SeamEdgesBefore, out.SeamEdgesAfter)
}

func resolveTarget(n, numVertices int, percentVertices float64) (int, error) {
	switch {
	case numVertices > 0 && percentVertices > 0:
		return 0, fmt.Errorf("specify only one of -num-vertices or -percent-vertices")
	case numVertices > 0:
		return numVertices, nil
	case percentVertices > 0:
		if percentVertices >= 100 {
			return 0, fmt.Errorf("-percent-vertices must be in (0, 100)")
		}
		target := int(math.Round(float64(n) * percentVertices / 100.0))
		if target < 1 {
			target = 1
		}
		return target, nil
	default:
		return 0, fmt.Errorf("one of -num-vertices or -percent-vertices is required")
	}
}

func parseSeamAwareDegree(s string) (decimater.SeamAwareDegree, error) {
	switch strings.ToLower(s) {
	case "none":
		return decimater.NoUVShapePreserving, nil
	case "uv-shape":
		return decimater.UVShapePreserving, nil
	case "seamless":
		return decimater.Seamless, nil
	default:
		return 0, fmt.Errorf("unknown -seam-aware-degree %q (want none, uv-shape, or seamless)", s)
	}
}

// defaultOutputPath mirrors decimater.cpp's default output naming:
// "<input>-decimated_to_<n>_err_<error>.obj" alongside the input file.
func defaultOutputPath(inPath string, target int, maxError float64) string {
	dir := filepath.Dir(inPath)
	base := filepath.Base(inPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := fmt.Sprintf("%s-decimated_to_%d_err_%.6g.obj", base, target, maxError)
	return filepath.Join(dir, name)
}
