package board

// AttacksSquare reports whether a piece of kind/heroic sitting at from
// threatens target, given the current board content for blocking and
// terrain purposes (spec.md §4.F). Only the mover's own Kind/Heroic matter;
// a stack's carried members do not contribute to its attack reach.
func AttacksSquare(pos *Position, from Square, mover Piece, target Square) bool {
	if from == target {
		return false
	}
	cfg := ConfigFor(mover.Kind, mover.Heroic)
	df := target.File() - from.File()
	dr := target.Rank() - from.Rank()
	dirSet, dist, ok := alignment(df, dr)
	if !ok {
		return false
	}
	if cfg.Directions == Orthogonal && dirSet != Orthogonal {
		return false
	}
	if cfg.Directions == Diagonal && dirSet != Diagonal {
		return false
	}
	captureRange := cfg.CaptureRange
	if dirSet == Diagonal && cfg.DiagonalCap > 0 && cfg.DiagonalCap < captureRange {
		captureRange = cfg.DiagonalCap
	}
	if dist > captureRange {
		return false
	}
	stepF, stepR := sign(df), sign(dr)
	for i := 1; i <= dist; i++ {
		sq := from.step(stepF*i, stepR*i)
		if !sq.OnBoard() {
			return false
		}
		if !cfg.IgnoresTerrain {
			onTerrain := LandMask(sq)
			if mover.Kind == Navy {
				onTerrain = NavyMask(sq)
			}
			if !onTerrain {
				return false
			}
		}
		if isHeavyEquipment(mover.Kind) {
			prev := from.step(stepF*(i-1), stepR*(i-1))
			if CrossesRiverBetween(prev, sq) && !IsBridge(sq) && !IsBridge(prev) {
				return false
			}
		}
		if i < dist {
			if _, occ := pos.Get(sq); occ && !cfg.CaptureIgnoresBlocking {
				return false
			}
		}
	}
	if mover.Kind == Navy && cfg.Naval != nil {
		rangeLimit := cfg.Naval.NavalGunRange
		if targetPiece, ok := pos.Get(target); ok && targetPiece.Kind == Navy {
			rangeLimit = cfg.Naval.TorpedoRange
		}
		if dist > rangeLimit {
			return false
		}
	}
	return true
}

// alignment reports whether (df,dr) lies along a single ray, and if so its
// DirectionSet family and distance in squares.
func alignment(df, dr int) (DirectionSet, int, bool) {
	if df == 0 && dr == 0 {
		return 0, 0, false
	}
	if df == 0 || dr == 0 {
		return Orthogonal, max(abs(df), abs(dr)), true
	}
	if abs(df) == abs(dr) {
		return Diagonal, abs(df), true
	}
	return 0, 0, false
}

// AttackersOf returns every square holding a byColor piece that attacks
// target (spec.md §4.F).
func AttackersOf(pos *Position, target Square, byColor Color) []Square {
	var out []Square
	for sq := Square(0); int(sq) < BoardWidth*BoardWidth; sq++ {
		if !sq.OnBoard() {
			continue
		}
		piece, ok := pos.grid[sq]
		if !ok || piece.Color != byColor {
			continue
		}
		if AttacksSquare(pos, sq, piece.Solo(), target) {
			out = append(out, sq)
		}
	}
	return out
}

// IsFlyingGeneralExposed reports whether the two commanders face each other
// on an open file or rank with nothing between them (spec.md §4.F, I4): an
// illegal exposure for whichever side just moved into or revealed it.
func IsFlyingGeneralExposed(pos *Position) bool {
	red, blue := pos.Commanders[Red], pos.Commanders[Blue]
	if red == NoSquare || blue == NoSquare {
		return false
	}
	if red.File() != blue.File() && red.Rank() != blue.Rank() {
		return false
	}
	for _, sq := range squaresBetween(red, blue) {
		if _, occ := pos.Get(sq); occ {
			return false
		}
	}
	return true
}

// squaresBetween returns the squares strictly between a and b, which must
// share a file or a rank.
func squaresBetween(a, b Square) []Square {
	df, dr := sign(b.File()-a.File()), sign(b.Rank()-a.Rank())
	dist := max(abs(b.File()-a.File()), abs(b.Rank()-a.Rank()))
	var out []Square
	for i := 1; i < dist; i++ {
		out = append(out, a.step(df*i, dr*i))
	}
	return out
}

// IsCommanderInCheck reports whether color's commander is attacked by the
// opposing side, including via flying-general exposure (spec.md §4.F).
func IsCommanderInCheck(pos *Position, color Color) bool {
	sq := pos.Commanders[color]
	if sq == NoSquare {
		return false
	}
	if len(AttackersOf(pos, sq, color.Other())) > 0 {
		return true
	}
	return IsFlyingGeneralExposed(pos)
}

// LegalFilter narrows pseudo-legal candidates to those that do not leave
// the mover's own commander exposed afterward (spec.md §4.F, I4). Each
// candidate is tried on a scratch copy of pos.
func LegalFilter(pos *Position, candidates []Move, us Color) []Move {
	var out []Move
	for _, mv := range candidates {
		scratch := pos.Copy()
		cmd, err := BuildMoveCommand(scratch, mv)
		if err != nil {
			continue
		}
		if err := cmd.Execute(scratch); err != nil {
			continue
		}
		if IsCommanderInCheck(scratch, us) {
			continue
		}
		out = append(out, mv)
	}
	return out
}
