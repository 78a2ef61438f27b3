package board

// GeneratePseudoMoves returns every pseudo-legal whole-unit move for color:
// a solo piece or an entire stack relocating, capturing, or combining with
// a friendly square, under the carrier's movement rules (spec.md §4.D). It
// does not check whether the move leaves color's own commander exposed;
// call LegalFilter (or Game.Moves with Legal set) to narrow to legal moves. Deploy
// steps are generated separately by GenerateDeploySteps once a session is
// open.
func GeneratePseudoMoves(pos *Position, color Color) []Move {
	var out []Move
	for sq := Square(0); int(sq) < BoardWidth*BoardWidth; sq++ {
		if !sq.OnBoard() {
			continue
		}
		piece, ok := pos.grid[sq]
		if !ok || piece.Color != color {
			continue
		}
		out = append(out, genRayMoves(pos, sq, piece, color)...)
	}
	return out
}

// GenerateDeploySteps returns every pseudo-legal deploy step for the
// currently open session: for each not-yet-deployed member, a Stay
// candidate plus every relocation/capture/combine candidate available to
// that member alone, moving from the carrier square (spec.md §4.D, §4.H).
func GenerateDeploySteps(pos *Position, s *DeploySession) []Move {
	var out []Move
	for _, member := range s.remainingMembers() {
		out = append(out, Move{
			From: s.CarrierSquare, To: s.CarrierSquare, Kind: MoveNormal,
			Color: s.Color, Deploy: true, CarrierSquare: s.CarrierSquare,
			MemberKind: member.Kind, Stay: true,
		})
		for _, mv := range genRayMoves(pos, s.CarrierSquare, member, s.Color) {
			mv.Deploy = true
			mv.CarrierSquare = s.CarrierSquare
			mv.MemberKind = member.Kind
			out = append(out, mv)
		}
	}
	return out
}

// genRayMoves walks every direction mover's MovementConfig permits from
// `from`, emitting Normal/Capture/StayCapture/SuicideCapture/Combine
// candidates. mover is evaluated alone (its own Kind/Heroic), which is
// correct both for a solo piece and for a single deploying stack member;
// whole-stack moves pass the carrier (pos.Get(from)) as mover.
func genRayMoves(pos *Position, from Square, mover Piece, color Color) []Move {
	cfg := ConfigFor(mover.Kind, mover.Heroic)
	var out []Move
	maxDist := cfg.MoveRange
	if cfg.CaptureRange > maxDist {
		maxDist = cfg.CaptureRange
	}
	if maxDist > unlimitedRange {
		maxDist = unlimitedRange
	}
	for _, d := range cfg.Directions.Dirs() {
		moveBlocked := false
		captureBlocked := false
		for dist := 1; dist <= maxDist; dist++ {
			diag := isDiagonal(d.df, d.dr)
			effMoveRange, effCaptureRange := cfg.MoveRange, cfg.CaptureRange
			if diag && cfg.DiagonalCap > 0 {
				if cfg.DiagonalCap < effMoveRange {
					effMoveRange = cfg.DiagonalCap
				}
				if cfg.DiagonalCap < effCaptureRange {
					effCaptureRange = cfg.DiagonalCap
				}
			}
			sq := from.step(d.df*dist, d.dr*dist)
			if !sq.OnBoard() {
				break
			}
			if !cfg.IgnoresTerrain {
				onTerrain := LandMask(sq)
				if mover.Kind == Navy {
					onTerrain = NavyMask(sq)
				}
				if !onTerrain {
					break
				}
			}
			if isHeavyEquipment(mover.Kind) {
				prev := from.step(d.df*(dist-1), d.dr*(dist-1))
				if CrossesRiverBetween(prev, sq) && !IsBridge(sq) && !IsBridge(prev) {
					break
				}
			}
			occupant, occupied := pos.Get(sq)
			if !occupied {
				if dist <= effMoveRange && !moveBlocked {
					out = append(out, Move{From: from, To: sq, Kind: MoveNormal, Color: color})
				}
				continue
			}
			if occupant.Color == color {
				if dist <= effMoveRange && !moveBlocked {
					if _, err := AddToStack(occupant, mover); err == nil {
						out = append(out, Move{From: from, To: sq, Kind: MoveCombine, Color: color})
					}
				}
				if !cfg.MoveIgnoresBlocking {
					moveBlocked = true
				}
				if !cfg.CaptureIgnoresBlocking {
					captureBlocked = true
					break
				}
				continue
			}
			// enemy occupant
			if dist <= effCaptureRange && !captureBlocked {
				out = append(out, captureMoves(pos, from, sq, mover, occupant, color, cfg)...)
			}
			if !cfg.MoveIgnoresBlocking {
				moveBlocked = true
			}
			if !cfg.CaptureIgnoresBlocking {
				captureBlocked = true
				break
			}
		}
	}
	return out
}

// captureMoves resolves the kind-specific capture semantics once a ray has
// reached an enemy-occupied square within range (spec.md §4.D.2-3).
func captureMoves(pos *Position, from, to Square, mover, target Piece, color Color, cfg MovementConfig) []Move {
	switch {
	case mover.Kind == AirForce:
		path := buildPath(from, to)
		result, _ := EvaluateAirPath(path, pos.AirDefense[color.Other()])
		switch result {
		case Destroyed:
			return nil
		case Kamikaze:
			return []Move{{From: from, To: to, Kind: MoveSuicideCapture, Color: color, AirKamikaze: true}}
		default:
			return []Move{{From: from, To: to, Kind: MoveCapture, Color: color}}
		}
	case mover.Kind == Navy && cfg.Naval != nil:
		rangeLimit := cfg.Naval.NavalGunRange
		if target.Kind == Navy {
			rangeLimit = cfg.Naval.TorpedoRange
		}
		dist := max(abs(to.File()-from.File()), abs(to.Rank()-from.Rank()))
		if dist > rangeLimit {
			return nil
		}
		return []Move{{From: from, To: to, Kind: MoveCapture, Color: color}}
	case cfg.StayCapture:
		return []Move{{From: from, To: to, Kind: MoveStayCapture, Color: color}}
	default:
		return []Move{{From: from, To: to, Kind: MoveCapture, Color: color}}
	}
}

// buildPath returns the squares an AirForce traverses from->to, inclusive
// of the destination and exclusive of the origin, for air-defense
// evaluation (spec.md §4.E).
func buildPath(from, to Square) []Square {
	df, dr := to.File()-from.File(), to.Rank()-from.Rank()
	dist := max(abs(df), abs(dr))
	if dist == 0 {
		return nil
	}
	stepF, stepR := sign(df), sign(dr)
	path := make([]Square, 0, dist)
	for i := 1; i <= dist; i++ {
		path = append(path, from.step(stepF*i, stepR*i))
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// BuildMoveCommand composes the reversible Command for a non-deploy Move
// (spec.md §4.G).
func BuildMoveCommand(pos *Position, mv Move) (Command, error) {
	mover, ok := pos.Get(mv.From)
	if !ok {
		return nil, NewMoveError(ErrPieceNotFound, "")
	}
	var cmd Command
	switch mv.Kind {
	case MoveNormal:
		cmd = append(cmd, RemovePieceAction(mv.From), PlacePieceAction(mv.To, mover))
	case MoveCapture:
		if _, occ := pos.Get(mv.To); occ {
			cmd = append(cmd, RemovePieceAction(mv.To))
		}
		cmd = append(cmd, RemovePieceAction(mv.From), PlacePieceAction(mv.To, mover))
	case MoveStayCapture:
		if _, occ := pos.Get(mv.To); occ {
			cmd = append(cmd, RemovePieceAction(mv.To))
		}
	case MoveSuicideCapture:
		if _, occ := pos.Get(mv.To); occ {
			cmd = append(cmd, RemovePieceAction(mv.To))
		}
		cmd = append(cmd, RemovePieceAction(mv.From))
	case MoveCombine:
		cmd = append(cmd, RemovePieceAction(mv.From), PushToStackAction(mv.To, mover))
	default:
		return nil, NewMoveError(ErrIllegalMove, "unhandled move kind")
	}
	return cmd, nil
}
