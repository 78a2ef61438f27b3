package board

import "testing"

func TestBuildMoveCommandNormalMove(t *testing.T) {
	pos := NewEmptyPosition()
	from, to := sq("f5"), sq("f6")
	pos.Put(from, Piece{Kind: Tank, Color: Red})
	cmd, err := BuildMoveCommand(pos, Move{From: from, To: to, Kind: MoveNormal, Color: Red})
	if err != nil {
		t.Fatalf("BuildMoveCommand: %v", err)
	}
	if err := cmd.Execute(pos); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := pos.Get(from); ok {
		t.Error("origin square should be empty after a normal move")
	}
	if p, ok := pos.Get(to); !ok || p.Kind != Tank {
		t.Error("destination square should hold the Tank")
	}
}

func TestCommandExecuteUnexecuteRoundTrip(t *testing.T) {
	pos := NewEmptyPosition()
	from, to := sq("a1"), sq("a5")
	pos.Put(from, Piece{Kind: Navy, Color: Red})
	pos.Put(to, Piece{Kind: Navy, Color: Blue})
	before := RenderFEN(pos)
	cmd, err := BuildMoveCommand(pos, Move{From: from, To: to, Kind: MoveCapture, Color: Red})
	if err != nil {
		t.Fatalf("BuildMoveCommand: %v", err)
	}
	if err := cmd.Execute(pos); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	cmd.Unexecute(pos)
	if after := RenderFEN(pos); after != before {
		t.Errorf("Unexecute did not restore state:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestActionSetHeroicRoundTrip(t *testing.T) {
	pos := NewEmptyPosition()
	sqr := sq("f5")
	pos.Put(sqr, Piece{Kind: Tank, Color: Red})
	action := SetHeroicAction(sqr, Tank, true)
	if err := action.Execute(pos); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	p, _ := pos.Get(sqr)
	if !p.Heroic {
		t.Fatal("piece should be heroic after SetHeroicAction")
	}
	action.Unexecute(pos)
	p, _ = pos.Get(sqr)
	if p.Heroic {
		t.Error("piece should no longer be heroic after Unexecute")
	}
}

func TestActionSetMetaRoundTrip(t *testing.T) {
	pos := NewEmptyPosition()
	pos.SideToMove = Red
	pos.HalfMoveClock = 3
	pos.FullMoveNumber = 5
	action := SetMetaAction(Blue, 0, 6)
	if err := action.Execute(pos); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if pos.SideToMove != Blue || pos.HalfMoveClock != 0 || pos.FullMoveNumber != 6 {
		t.Fatalf("unexpected meta after Execute: %+v", pos)
	}
	action.Unexecute(pos)
	if pos.SideToMove != Red || pos.HalfMoveClock != 3 || pos.FullMoveNumber != 5 {
		t.Errorf("unexpected meta after Unexecute: %+v", pos)
	}
}

func TestBuildMoveCommandSuicideCaptureRemovesBoth(t *testing.T) {
	pos := NewEmptyPosition()
	from, to := sq("a1"), sq("a3")
	pos.Put(from, Piece{Kind: AirForce, Color: Red})
	pos.Put(to, Piece{Kind: Infantry, Color: Blue})
	cmd, err := BuildMoveCommand(pos, Move{From: from, To: to, Kind: MoveSuicideCapture, Color: Red, AirKamikaze: true})
	if err != nil {
		t.Fatalf("BuildMoveCommand: %v", err)
	}
	if err := cmd.Execute(pos); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := pos.Get(from); ok {
		t.Error("mover should be destroyed by a suicide capture")
	}
	if _, ok := pos.Get(to); ok {
		t.Error("target should be destroyed by a suicide capture")
	}
}

func TestHeroicScanPromotesAttackersOfEnemyCommander(t *testing.T) {
	pos := NewEmptyPosition()
	pos.Put(sq("f1"), Piece{Kind: Commander, Color: Red})
	pos.Put(sq("f12"), Piece{Kind: Commander, Color: Blue})
	pos.Put(sq("f9"), Piece{Kind: Artillery, Color: Red}) // attacks f12 at range 3
	cmd := HeroicScan(pos, Red)
	if len(cmd) == 0 {
		t.Fatal("expected the Artillery threatening the enemy commander to be promoted")
	}
	p, _ := pos.Get(sq("f9"))
	if !p.Heroic {
		t.Error("Artillery should now be heroic")
	}
	cmd.Unexecute(pos)
	p, _ = pos.Get(sq("f9"))
	if p.Heroic {
		t.Error("Unexecute should revert the heroic promotion")
	}
}
