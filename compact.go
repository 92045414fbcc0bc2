package decimater

// compact implements the final compaction step of spec.md §3/§4.8: drop
// NULL_FACE rows, then remove_unreferenced on V/F and on TC/FT. Grounded on
// original_source/decimate.cpp's clean_mesh, which only ever looks at the
// first nF rows of F/FT (the caller's pre-infinity-augmentation face count)
// — the virtual infinity faces appended by connectBoundaryToInfinity are
// never copied into the output, which is how the infinity vertex/uv
// disappear from the final mesh without any special-case filtering.
func compact(V [][3]float64, F [][3]int32, TC [][2]float64, FT [][3]int32, origFaceCount int) (Vout [][3]float64, Fout [][3]int32, TCout [][2]float64, FTout [][3]int32) {
	var liveF [][3]int32
	var liveFT [][3]int32
	for f := 0; f < origFaceCount && f < len(F); f++ {
		row := F[f]
		if row[0] == NullFace && row[1] == NullFace && row[2] == NullFace {
			continue
		}
		liveF = append(liveF, row)
		liveFT = append(liveFT, FT[f])
	}

	Vout, Fout = removeUnreferenced3(V, liveF)
	TCout, FTout = removeUnreferenced2(TC, liveFT)
	return
}

// removeUnreferenced3 implements the §6 `remove_unreferenced` primitive for
// 3D positions: vertices not referenced by any live face are dropped and F
// is reindexed accordingly.
func removeUnreferenced3(V [][3]float64, F [][3]int32) ([][3]float64, [][3]int32) {
	used := make([]bool, len(V))
	for _, f := range F {
		for _, v := range f {
			used[v] = true
		}
	}
	remap := make([]int32, len(V))
	out := make([][3]float64, 0, len(V))
	for i, u := range used {
		if u {
			remap[i] = int32(len(out))
			out = append(out, V[i])
		} else {
			remap[i] = -1
		}
	}
	newF := make([][3]int32, len(F))
	for i, f := range F {
		newF[i] = [3]int32{remap[f[0]], remap[f[1]], remap[f[2]]}
	}
	return out, newF
}

// removeUnreferenced2 is removeUnreferenced3's 2D-coordinate counterpart,
// applied to TC/FT (spec.md §4.8: "remove_unreferenced on V and on TC").
func removeUnreferenced2(TC [][2]float64, FT [][3]int32) ([][2]float64, [][3]int32) {
	used := make([]bool, len(TC))
	for _, f := range FT {
		for _, v := range f {
			used[v] = true
		}
	}
	remap := make([]int32, len(TC))
	out := make([][2]float64, 0, len(TC))
	for i, u := range used {
		if u {
			remap[i] = int32(len(out))
			out = append(out, TC[i])
		} else {
			remap[i] = -1
		}
	}
	newFT := make([][3]int32, len(FT))
	for i, f := range FT {
		newFT[i] = [3]int32{remap[f[0]], remap[f[1]], remap[f[2]]}
	}
	return out, newFT
}
