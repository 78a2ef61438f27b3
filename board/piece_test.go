package board

import "testing"

func TestRoleFlagCarrierSelection(t *testing.T) {
	// Navy outranks AirForce outranks Tank outranks Infantry (spec.md §3).
	pieces := []Piece{
		{Kind: Infantry, Color: Red},
		{Kind: Navy, Color: Red},
		{Kind: Tank, Color: Red},
	}
	stack, err := BuildStack(pieces)
	if err != nil {
		t.Fatalf("BuildStack: %v", err)
	}
	if stack.Kind != Navy {
		t.Errorf("carrier = %v, want Navy", stack.Kind)
	}
	if len(stack.Carried) != 2 {
		t.Fatalf("want 2 carried members, got %d", len(stack.Carried))
	}
}

func TestBuildStackRejectsColorMismatch(t *testing.T) {
	_, err := BuildStack([]Piece{
		{Kind: Navy, Color: Red},
		{Kind: Tank, Color: Blue},
	})
	if err == nil {
		t.Fatal("expected error for mismatched colors")
	}
}

func TestBuildStackRejectsTooManyMembers(t *testing.T) {
	_, err := BuildStack([]Piece{
		{Kind: Navy, Color: Red},
		{Kind: Tank, Color: Red},
		{Kind: AirForce, Color: Red},
		{Kind: Infantry, Color: Red},
	})
	if err == nil {
		t.Fatal("expected error for a 4-piece stack")
	}
}

func TestBuildStackRejectsBlueprintViolation(t *testing.T) {
	// Engineer (the higher role flag, so the carrier) may only carry heavy
	// equipment, not Infantry.
	_, err := BuildStack([]Piece{
		{Kind: Infantry, Color: Red},
		{Kind: Engineer, Color: Red},
	})
	if err == nil {
		t.Fatal("expected blueprint violation: Engineer cannot carry Infantry")
	}
}

func TestBuildStackSingleIsSolo(t *testing.T) {
	p, err := BuildStack([]Piece{{Kind: Commander, Color: Red}})
	if err != nil {
		t.Fatalf("BuildStack: %v", err)
	}
	if p.IsStack() {
		t.Error("single-member stack should not be IsStack")
	}
}

func TestAddToStack(t *testing.T) {
	solo := Piece{Kind: Navy, Color: Blue}
	combined, err := AddToStack(solo, Piece{Kind: AirForce, Color: Blue})
	if err != nil {
		t.Fatalf("AddToStack: %v", err)
	}
	if combined.Kind != Navy || len(combined.Carried) != 1 || combined.Carried[0].Kind != AirForce {
		t.Errorf("unexpected combined stack: %+v", combined)
	}
}

func TestRemoveFromStackLeavesCarrier(t *testing.T) {
	stack, _ := BuildStack([]Piece{
		{Kind: Navy, Color: Red},
		{Kind: Tank, Color: Red},
	})
	remaining, present, removed, err := RemoveFromStack(stack, Tank)
	if err != nil {
		t.Fatalf("RemoveFromStack: %v", err)
	}
	if !present {
		t.Fatal("expected a remaining piece")
	}
	if removed.Kind != Tank {
		t.Errorf("removed = %v, want Tank", removed.Kind)
	}
	if remaining.Kind != Navy || remaining.IsStack() {
		t.Errorf("remaining should be a solo Navy, got %+v", remaining)
	}
}

func TestRemoveFromStackEmptiesSquare(t *testing.T) {
	solo := Piece{Kind: Commander, Color: Red}
	_, present, removed, err := RemoveFromStack(solo, Commander)
	if err != nil {
		t.Fatalf("RemoveFromStack: %v", err)
	}
	if present {
		t.Error("removing the only member should leave nothing present")
	}
	if removed.Kind != Commander {
		t.Errorf("removed = %v, want Commander", removed.Kind)
	}
}

func TestRemoveFromStackMissingKind(t *testing.T) {
	solo := Piece{Kind: Commander, Color: Red}
	_, _, _, err := RemoveFromStack(solo, Tank)
	if err == nil {
		t.Fatal("expected an error removing a kind that isn't present")
	}
}

func TestKindLetterRoundTrip(t *testing.T) {
	for k := Commander; k <= Headquarters; k++ {
		letter := k.Letter()
		got, ok := KindFromLetter(letter)
		if !ok || got != k {
			t.Errorf("KindFromLetter(%c) = %v,%v; want %v,true", letter, got, ok, k)
		}
	}
}

func TestPieceLetterColorCase(t *testing.T) {
	red := Piece{Kind: Tank, Color: Red}
	blue := Piece{Kind: Tank, Color: Blue}
	if red.Letter() != "T" {
		t.Errorf("red Tank letter = %q, want %q", red.Letter(), "T")
	}
	if blue.Letter() != "t" {
		t.Errorf("blue Tank letter = %q, want %q", blue.Letter(), "t")
	}
	heroic := Piece{Kind: Tank, Color: Red, Heroic: true}
	if heroic.Letter() != "+T" {
		t.Errorf("heroic letter = %q, want %q", heroic.Letter(), "+T")
	}
}
