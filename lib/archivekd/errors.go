package archivekd

import "github.com/cma-es/moarchiving-go/lib/archiveerr"

func archiveerrNotInitialized() error {
	return archiveerr.NotInitializedf("archivekd: reference point is not set")
}

func archiveerrOutOfRange(idx, n int) error {
	if idx < 0 {
		return archiveerr.OutOfRangef("archivekd: point does not match any resident")
	}
	return archiveerr.OutOfRangef("archivekd: index %d out of range [0,%d)", idx, n)
}

func archiveerrArity(dim, got int) error {
	return archiveerr.Arityf("archivekd: archive has dimension %d, got a %d-coordinate vector", dim, got)
}
