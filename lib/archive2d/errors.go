package archive2d

import "github.com/cma-es/moarchiving-go/lib/archiveerr"

func archiveerrNotInitialized() error {
	return archiveerr.NotInitializedf("archive2d: reference point is not set")
}

func archiveerrOutOfRange(idx, n int) error {
	if idx < 0 {
		return archiveerr.OutOfRangef("archive2d: point does not match any resident")
	}
	return archiveerr.OutOfRangef("archive2d: index %d out of range [0,%d)", idx, n)
}
