package board

// AirDefenseIndex tracks, for one color, which squares are covered by that
// color's air-defense-capable pieces (Navy, AntiAir, Missile, and their
// heroic variants) and by whom (spec.md §4.E).
type AirDefenseIndex struct {
	// contribution[sq] is the defense level the piece at sq currently
	// projects, so RemoveDefender can cleanly retract exactly what was
	// added without needing the piece passed back in.
	contribution map[Square]int
	// coverage[target] lists the defender squares whose disc covers target.
	coverage map[Square][]Square
}

// NewAirDefenseIndex returns an empty index.
func NewAirDefenseIndex() *AirDefenseIndex {
	return &AirDefenseIndex{
		contribution: make(map[Square]int),
		coverage:     make(map[Square][]Square),
	}
}

func (idx *AirDefenseIndex) clone() *AirDefenseIndex {
	n := NewAirDefenseIndex()
	for k, v := range idx.contribution {
		n.contribution[k] = v
	}
	for k, v := range idx.coverage {
		n.coverage[k] = append([]Square(nil), v...)
	}
	return n
}

// defenseLevel returns the air-defense radius a piece (and any carried
// members, taking the maximum) projects from its square. Only Navy,
// AntiAir, and Missile (and their heroic variants) contribute.
func defenseLevel(piece Piece) int {
	level := 0
	for _, m := range piece.Flatten() {
		cfg := ConfigFor(m.Kind, m.Heroic)
		if cfg.AirDefenseLevel > level {
			level = cfg.AirDefenseLevel
		}
	}
	return level
}

// AddDefender adds the disc piece projects from sq into the index.
func (idx *AirDefenseIndex) AddDefender(sq Square, piece Piece) {
	level := defenseLevel(piece)
	if level <= 0 {
		return
	}
	idx.contribution[sq] = level
	for _, target := range discSquares(sq, level) {
		idx.coverage[target] = append(idx.coverage[target], sq)
	}
}

// RemoveDefender retracts whatever disc was previously added from sq, if
// any; a no-op if sq was not contributing.
func (idx *AirDefenseIndex) RemoveDefender(sq Square) {
	level, ok := idx.contribution[sq]
	if !ok {
		return
	}
	delete(idx.contribution, sq)
	for _, target := range discSquares(sq, level) {
		list := idx.coverage[target]
		for i, s := range list {
			if s == sq {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(idx.coverage, target)
		} else {
			idx.coverage[target] = list
		}
	}
}

// CoveredBy returns the defender squares covering target, or nil.
func (idx *AirDefenseIndex) CoveredBy(target Square) []Square {
	return idx.coverage[target]
}

// discSquares returns every on-board square within Euclidean distance
// level of center: (Δx)²+(Δy)² ≤ level².
func discSquares(center Square, level int) []Square {
	var out []Square
	cf, cr := center.File(), center.Rank()
	for df := -level; df <= level; df++ {
		for dr := -level; dr <= level; dr++ {
			if df*df+dr*dr > level*level {
				continue
			}
			sq := NewSquare(cf+df, cr+dr)
			if sq.OnBoard() {
				out = append(out, sq)
			}
		}
	}
	return out
}

// AirPathResult classifies an AirForce's flight path through enemy
// air-defense coverage (spec.md §4.E).
type AirPathResult int

const (
	SafePass AirPathResult = iota
	Kamikaze
	Destroyed
)

// EvaluateAirPath classifies the path (traversed squares, inclusive of the
// destination, exclusive of the origin) against the enemy's air-defense
// index. When the result is Kamikaze, it also returns the single defender
// square responsible.
func EvaluateAirPath(path []Square, enemy *AirDefenseIndex) (AirPathResult, Square) {
	type hit struct {
		idx       int
		defenders []Square
	}
	var hits []hit
	for i, sq := range path {
		if d := enemy.CoveredBy(sq); len(d) > 0 {
			hits = append(hits, hit{idx: i, defenders: d})
		}
	}
	if len(hits) == 0 {
		return SafePass, NoSquare
	}
	// Must be a contiguous suffix: once covered, stays covered to the end.
	firstCovered := hits[0].idx
	for i := firstCovered; i < len(path); i++ {
		if len(enemy.CoveredBy(path[i])) == 0 {
			return Destroyed, NoSquare
		}
	}
	// All covering squares across the suffix must share exactly one
	// common defender.
	common := map[Square]bool{}
	for _, d := range hits[0].defenders {
		common[d] = true
	}
	for _, h := range hits[1:] {
		next := map[Square]bool{}
		for _, d := range h.defenders {
			if common[d] {
				next[d] = true
			}
		}
		common = next
		if len(common) == 0 {
			return Destroyed, NoSquare
		}
	}
	if len(common) != 1 {
		return Destroyed, NoSquare
	}
	var defender Square
	for d := range common {
		defender = d
	}
	return Kamikaze, defender
}
