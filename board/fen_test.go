package board

import "testing"

func TestParseStartingFEN(t *testing.T) {
	pos, err := ParseFEN(StartingFEN)
	if err != nil {
		t.Fatalf("ParseFEN(StartingFEN): %v", err)
	}
	if pos.SideToMove != Red {
		t.Errorf("side to move = %v, want Red", pos.SideToMove)
	}
	if pos.Commanders[Red] == NoSquare || pos.Commanders[Blue] == NoSquare {
		t.Error("both commanders should be placed from the starting FEN")
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("starting position should validate: %v", err)
	}
}

func TestFENRoundTrip(t *testing.T) {
	pos, err := ParseFEN(StartingFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	rendered := RenderFEN(pos)
	reparsed, err := ParseFEN(rendered)
	if err != nil {
		t.Fatalf("ParseFEN(rendered): %v", err)
	}
	if RenderFEN(reparsed) != rendered {
		t.Errorf("FEN did not round trip:\nfirst:  %s\nsecond: %s", rendered, RenderFEN(reparsed))
	}
}

func TestFENStackNotation(t *testing.T) {
	pos := NewEmptyPosition()
	stack, err := BuildStack([]Piece{
		{Kind: Navy, Color: Red},
		{Kind: Tank, Color: Red},
	})
	if err != nil {
		t.Fatalf("BuildStack: %v", err)
	}
	if err := pos.Put(sq("a1"), stack); err != nil {
		t.Fatalf("Put: %v", err)
	}
	pos.Put(sq("f1"), Piece{Kind: Commander, Color: Red})
	pos.Put(sq("f12"), Piece{Kind: Commander, Color: Blue})
	fen := RenderFEN(pos)
	reparsed, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	piece, ok := reparsed.Get(sq("a1"))
	if !ok || piece.Kind != Navy || len(piece.Carried) != 1 || piece.Carried[0].Kind != Tank {
		t.Errorf("stack did not round trip correctly: %+v", piece)
	}
}

func TestFENHeroicMarker(t *testing.T) {
	pos := NewEmptyPosition()
	pos.Put(sq("a1"), Piece{Kind: Tank, Color: Red, Heroic: true})
	pos.Put(sq("f1"), Piece{Kind: Commander, Color: Red})
	pos.Put(sq("f12"), Piece{Kind: Commander, Color: Blue})
	fen := RenderFEN(pos)
	reparsed, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	piece, ok := reparsed.Get(sq("a1"))
	if !ok || !piece.Heroic {
		t.Errorf("heroic flag did not round trip: %+v", piece)
	}
}

func TestParseFENRejectsWrongFileCount(t *testing.T) {
	bad := "10/12/12/12/12/12/12/12/12/12/12/12 r - - 0 1"
	if _, err := ParseFEN(bad); err == nil {
		t.Error("expected an error for a rank with the wrong file count")
	}
}

func TestParseFENRejectsWrongRankCount(t *testing.T) {
	bad := "11/11/11 r - - 0 1"
	if _, err := ParseFEN(bad); err == nil {
		t.Error("expected an error for the wrong number of ranks")
	}
}

func TestFENOpenDeploySessionRoundTrip(t *testing.T) {
	pos := NewEmptyPosition()
	origin := sq("f5")
	stack, _ := BuildStack([]Piece{
		{Kind: Navy, Color: Red},
		{Kind: Tank, Color: Red},
	})
	pos.Put(origin, stack)
	pos.Put(sq("f1"), Piece{Kind: Commander, Color: Red})
	pos.Put(sq("f12"), Piece{Kind: Commander, Color: Blue})
	session, err := OpenSession(pos, origin, Red)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	navyMove := Move{From: origin, To: sq("a1"), Kind: MoveNormal, Color: Red,
		Deploy: true, CarrierSquare: origin, MemberKind: Navy}
	if err := session.Append(pos, navyMove); err != nil {
		t.Fatalf("Append: %v", err)
	}
	fen := RenderFEN(pos)
	reparsed, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	if reparsed.Session == nil {
		t.Fatal("expected an open deploy session to survive the FEN round trip")
	}
	if reparsed.Session.CarrierSquare != origin {
		t.Errorf("session carrier square = %v, want %v", reparsed.Session.CarrierSquare, origin)
	}
	if reparsed.Session.Deployed[Navy] != sq("a1") {
		t.Errorf("session should record Navy deployed to a1, got %v", reparsed.Session.Deployed[Navy])
	}
	if len(reparsed.Session.remainingMembers()) != 1 {
		t.Errorf("Tank should still be pending in the reconstructed session")
	}
}
