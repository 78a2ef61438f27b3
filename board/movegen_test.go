package board

import "testing"

func sq(s string) Square {
	p, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return p
}

func movesFrom(moves []Move, from Square) []Move {
	var out []Move
	for _, m := range moves {
		if m.From == from {
			out = append(out, m)
		}
	}
	return out
}

func hasMoveTo(moves []Move, to Square, kind MoveKind) bool {
	for _, m := range moves {
		if m.To == to && m.Kind == kind {
			return true
		}
	}
	return false
}

func TestInfantryMovesOneSquareAnyDirection(t *testing.T) {
	pos := NewEmptyPosition()
	from := sq("f5")
	pos.Put(from, Piece{Kind: Infantry, Color: Red})
	moves := movesFrom(GeneratePseudoMoves(pos, Red), from)
	if len(moves) != 8 {
		t.Fatalf("Infantry on an open board should have 8 candidate moves, got %d", len(moves))
	}
}

func TestTankBlockedByFriendlyCombinesInstead(t *testing.T) {
	pos := NewEmptyPosition()
	from := sq("f5")
	blocker := sq("f6")
	pos.Put(from, Piece{Kind: Tank, Color: Red})
	pos.Put(blocker, Piece{Kind: Infantry, Color: Red})
	moves := movesFrom(GeneratePseudoMoves(pos, Red), from)
	if !hasMoveTo(moves, blocker, MoveCombine) {
		t.Error("Tank should be able to combine with a friendly piece at f6")
	}
	beyond := sq("f7")
	if hasMoveTo(moves, beyond, MoveNormal) {
		t.Error("Tank's move should be blocked by the friendly piece, not pass through it")
	}
}

func TestTankStayCaptureDoesNotRelocate(t *testing.T) {
	pos := NewEmptyPosition()
	from := sq("f5")
	target := sq("f6")
	pos.Put(from, Piece{Kind: Tank, Color: Red})
	pos.Put(target, Piece{Kind: Infantry, Color: Blue})
	moves := movesFrom(GeneratePseudoMoves(pos, Red), from)
	if !hasMoveTo(moves, target, MoveStayCapture) {
		t.Fatal("Tank capturing at range should produce a StayCapture move")
	}
	cmd, err := BuildMoveCommand(pos, Move{From: from, To: target, Kind: MoveStayCapture, Color: Red})
	if err != nil {
		t.Fatalf("BuildMoveCommand: %v", err)
	}
	if err := cmd.Execute(pos); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := pos.Get(target); ok {
		t.Error("target should be removed by the stay-capture")
	}
	mover, ok := pos.Get(from)
	if !ok || mover.Kind != Tank {
		t.Error("Tank should remain at its origin square after a stay-capture")
	}
}

func TestNavyCaptureRelocates(t *testing.T) {
	pos := NewEmptyPosition()
	from := sq("a1")
	target := sq("a5")
	pos.Put(from, Piece{Kind: Navy, Color: Red})
	pos.Put(target, Piece{Kind: Navy, Color: Blue})
	moves := movesFrom(GeneratePseudoMoves(pos, Red), from)
	if !hasMoveTo(moves, target, MoveCapture) {
		t.Fatal("Navy vs Navy within torpedo range should be a plain Capture")
	}
}

func TestHeavyEquipmentCannotCrossRiverOffBridge(t *testing.T) {
	pos := NewEmptyPosition()
	from := sq("d6") // inside the river band, not a bridge square
	pos.Put(from, Piece{Kind: Artillery, Color: Red})
	moves := movesFrom(GeneratePseudoMoves(pos, Red), from)
	blocked := sq("d7")
	if hasMoveTo(moves, blocked, MoveNormal) {
		t.Error("Artillery should not cross the river between d6 and d7 off a bridge square")
	}
}

func TestHeavyEquipmentCrossesAtBridge(t *testing.T) {
	pos := NewEmptyPosition()
	from := sq("f6")
	pos.Put(from, Piece{Kind: Artillery, Color: Red})
	moves := movesFrom(GeneratePseudoMoves(pos, Red), from)
	bridge := sq("f7")
	if !hasMoveTo(moves, bridge, MoveNormal) {
		t.Error("Artillery should be able to cross the river via the f6/f7 bridge")
	}
}

func TestAirForceIgnoresTerrainAndBlocking(t *testing.T) {
	pos := NewEmptyPosition()
	from := sq("a1")
	pos.Put(from, Piece{Kind: AirForce, Color: Red})
	pos.Put(sq("a3"), Piece{Kind: Infantry, Color: Red}) // would block a land piece
	moves := movesFrom(GeneratePseudoMoves(pos, Red), from)
	beyond := sq("a6")
	if !hasMoveTo(moves, beyond, MoveNormal) {
		t.Error("AirForce should fly over a friendly blocker and over water/land terrain alike")
	}
}

func TestAirForceKamikazeThroughAirDefense(t *testing.T) {
	pos := NewEmptyPosition()
	from := sq("a1")
	target := sq("a3")
	pos.Put(from, Piece{Kind: AirForce, Color: Red})
	pos.Put(target, Piece{Kind: Infantry, Color: Blue})
	pos.Put(sq("a3"), Piece{Kind: AntiAir, Color: Blue}) // overwrite with defender at the target itself
	moves := movesFrom(GeneratePseudoMoves(pos, Red), from)
	if !hasMoveTo(moves, target, MoveSuicideCapture) {
		t.Error("attacking directly into a lone covering defender should be a kamikaze suicide capture")
	}
}

func TestGenerateDeploySteps(t *testing.T) {
	pos := NewEmptyPosition()
	origin := sq("f5")
	stack, err := BuildStack([]Piece{
		{Kind: Navy, Color: Red},
		{Kind: Tank, Color: Red},
	})
	if err != nil {
		t.Fatalf("BuildStack: %v", err)
	}
	if err := pos.Put(origin, stack); err != nil {
		t.Fatalf("Put: %v", err)
	}
	session, err := OpenSession(pos, origin, Red)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	steps := GenerateDeploySteps(pos, session)
	foundStay := false
	for _, mv := range steps {
		if !mv.Deploy || mv.CarrierSquare != origin {
			t.Errorf("deploy step missing Deploy/CarrierSquare bookkeeping: %+v", mv)
		}
		if mv.Stay && mv.MemberKind == Tank {
			foundStay = true
		}
	}
	if !foundStay {
		t.Error("expected a Stay candidate for the carried Tank")
	}
}
