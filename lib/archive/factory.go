package archive

import (
	"github.com/cma-es/moarchiving-go/lib/archive2d"
	"github.com/cma-es/moarchiving-go/lib/archiveerr"
	"github.com/cma-es/moarchiving-go/lib/archivekd"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// Config is the construction-time parameter bundle shared by
// GetMOArchive, dimensionality-agnostic over the 2D/3D/4D split (spec
// §6 "Factory dispatch... selects the 2D/3D/4D implementation from
// the dimensionality of the reference point or an explicit n_obj").
type Config[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	// Dim is the objective count. If zero, it is inferred from
	// Ref or, failing that, from the first element of Initial.
	Dim       int
	Initial   [][]C
	Infos     []Info
	Ref       []C
	PreSorted bool
	ToFinal   scalar.ToFinal[C, F]
	Debug     bool
}

func (c Config[C, F, Info]) resolveDim() int {
	if c.Dim != 0 {
		return c.Dim
	}
	if c.Ref != nil {
		return len(c.Ref)
	}
	if len(c.Initial) > 0 {
		return len(c.Initial[0])
	}
	return 0
}

// GetMOArchive dispatches to archive2d for a 2-objective configuration
// and to archivekd for 3 or 4, returning a common MOArchive value
// (spec §9 "Dynamic dispatch by dimensionality. Factory returns a
// common interface value selected from 2D/3D/4D implementations").
func GetMOArchive[C scalar.Value[C], F scalar.Value[F], Info any](cfg Config[C, F, Info]) (MOArchive[C, F, Info], error) {
	dim := cfg.resolveDim()
	switch dim {
	case 2:
		var ref *archive2d.Point2[C]
		if cfg.Ref != nil {
			p, err := toPoint2(cfg.Ref)
			if err != nil {
				return nil, err
			}
			ref = &p
		}
		initial := make([]archive2d.Point2[C], len(cfg.Initial))
		for i, p := range cfg.Initial {
			p2, err := toPoint2(p)
			if err != nil {
				return nil, err
			}
			initial[i] = p2
		}
		a, err := archive2d.New(archive2d.Config[C, F, Info]{
			Initial:   initial,
			Infos:     cfg.Infos,
			Ref:       ref,
			PreSorted: cfg.PreSorted,
			ToFinal:   cfg.ToFinal,
			Debug:     cfg.Debug,
		})
		if err != nil {
			return nil, err
		}
		return Wrap2D(a), nil
	case 3, 4:
		a, err := archivekd.New(archivekd.Config[C, F, Info]{
			Dim:       dim,
			Initial:   toPoints(cfg.Initial),
			Infos:     cfg.Infos,
			Ref:       archivekd.Point[C](cfg.Ref),
			PreSorted: cfg.PreSorted,
			ToFinal:   cfg.ToFinal,
			Debug:     cfg.Debug,
		})
		if err != nil {
			return nil, err
		}
		return WrapKD(a), nil
	default:
		return nil, archiveerr.Arityf("archive: unsupported objective count %d (want 2, 3, or 4)", dim)
	}
}
