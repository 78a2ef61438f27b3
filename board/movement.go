package board

// DirectionSet selects which of the 8 compass rays a piece may step along.
type DirectionSet uint8

const (
	Orthogonal DirectionSet = iota
	Diagonal
	AllDirections
)

type dir struct{ df, dr int }

var orthogonalDirs = []dir{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var diagonalDirs = []dir{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// Dirs returns the concrete (file,rank) step deltas for the set.
func (d DirectionSet) Dirs() []dir {
	switch d {
	case Orthogonal:
		return orthogonalDirs
	case Diagonal:
		return diagonalDirs
	default:
		all := make([]dir, 0, 8)
		all = append(all, orthogonalDirs...)
		all = append(all, diagonalDirs...)
		return all
	}
}

// unlimitedRange marks a ray that only stops at an edge, blocker, or the
// diagonal cap — used for Commander's move range and the long-range pieces.
const unlimitedRange = NumFiles + NumRanks

// NavalAttack holds Navy's two distinct attack profiles.
type NavalAttack struct {
	TorpedoRange int // vs Navy targets
	NavalGunRange int // vs Land targets
}

// MovementConfig captures everything the generator needs to know about how
// a piece kind moves and captures (spec.md §4.C).
type MovementConfig struct {
	MoveRange                  int
	CaptureRange                int
	Directions                  DirectionSet
	MoveIgnoresBlocking         bool
	CaptureIgnoresBlocking      bool
	DiagonalCap                 int // 0 = no cap
	CommanderAdjacentCaptureOnly bool
	Naval                       *NavalAttack
	AirDefenseLevel             int
	IgnoresTerrain              bool // true only for AirForce
	StayCapture                 bool // bombardment pieces: capture without relocating
}

var movementTable = map[PieceKind]MovementConfig{
	Commander: {
		MoveRange:                    unlimitedRange,
		CaptureRange:                 1,
		Directions:                   Orthogonal,
		CommanderAdjacentCaptureOnly: true,
	},
	Infantry: {
		MoveRange:    1,
		CaptureRange: 1,
		Directions:   AllDirections,
	},
	Militia: {
		MoveRange:    1,
		CaptureRange: 1,
		Directions:   AllDirections,
	},
	Engineer: {
		MoveRange:    1,
		CaptureRange: 1,
		Directions:   AllDirections,
	},
	Tank: {
		MoveRange:              2,
		CaptureRange:           2,
		Directions:              Orthogonal,
		CaptureIgnoresBlocking: true,
		StayCapture:            true,
	},
	Artillery: {
		MoveRange:              3,
		CaptureRange:           3,
		Directions:              Orthogonal,
		CaptureIgnoresBlocking: true,
		StayCapture:            true,
	},
	AntiAir: {
		MoveRange:       2,
		CaptureRange:    2,
		Directions:       Orthogonal,
		AirDefenseLevel: 1,
	},
	Missile: {
		MoveRange:              2,
		CaptureRange:           2,
		Directions:              AllDirections,
		CaptureIgnoresBlocking: true,
		DiagonalCap:             1,
		AirDefenseLevel:         2,
		StayCapture:             true,
	},
	AirForce: {
		MoveRange:              unlimitedRange,
		CaptureRange:           unlimitedRange,
		Directions:              AllDirections,
		MoveIgnoresBlocking:    true,
		CaptureIgnoresBlocking: true,
		IgnoresTerrain:         true,
	},
	Navy: {
		MoveRange:              unlimitedRange,
		CaptureRange:           unlimitedRange,
		Directions:              Orthogonal,
		MoveIgnoresBlocking:    true,
		CaptureIgnoresBlocking: true,
		Naval:                   &NavalAttack{TorpedoRange: unlimitedRange, NavalGunRange: unlimitedRange - 1},
		AirDefenseLevel:         1,
	},
	Headquarters: {
		MoveRange:    0,
		CaptureRange: 0,
		Directions:   Orthogonal,
	},
}

// ConfigFor returns the movement configuration for kind, applying heroic
// overrides when heroic is true (spec.md §4.C "Heroic application").
func ConfigFor(kind PieceKind, heroic bool) MovementConfig {
	cfg := movementTable[kind]
	if !heroic {
		return cfg
	}
	if kind == Commander {
		cfg.CaptureRange = 2
		cfg.Directions = AllDirections
		return cfg
	}
	if kind == Headquarters {
		// Heroic Headquarters becomes mobile, 1-square all-direction like Militia.
		cfg.MoveRange = 1
		cfg.CaptureRange = 1
		cfg.Directions = AllDirections
		if cfg.AirDefenseLevel > 0 {
			cfg.AirDefenseLevel++
		}
		return cfg
	}
	if cfg.MoveRange != unlimitedRange {
		cfg.MoveRange++
	}
	if cfg.CaptureRange != unlimitedRange {
		cfg.CaptureRange++
	}
	cfg.Directions = AllDirections
	if cfg.DiagonalCap > 0 {
		cfg.DiagonalCap++
	}
	if cfg.AirDefenseLevel > 0 {
		cfg.AirDefenseLevel++
	}
	if cfg.Naval != nil {
		naval := *cfg.Naval
		if naval.TorpedoRange != unlimitedRange {
			naval.TorpedoRange++
		}
		if naval.NavalGunRange != unlimitedRange {
			naval.NavalGunRange++
		}
		cfg.Naval = &naval
	}
	return cfg
}

// isDiagonal reports whether (df, dr) is one of the four diagonal deltas.
func isDiagonal(df, dr int) bool {
	return df != 0 && dr != 0
}
