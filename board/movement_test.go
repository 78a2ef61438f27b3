package board

import "testing"

func TestConfigForHeroicCommander(t *testing.T) {
	base := ConfigFor(Commander, false)
	if base.CaptureRange != 1 || base.Directions != Orthogonal {
		t.Fatalf("base commander config = %+v", base)
	}
	heroic := ConfigFor(Commander, true)
	if heroic.CaptureRange != 2 {
		t.Errorf("heroic commander capture range = %d, want 2", heroic.CaptureRange)
	}
	if heroic.Directions != AllDirections {
		t.Errorf("heroic commander directions = %v, want AllDirections", heroic.Directions)
	}
}

func TestConfigForHeroicGenericPiece(t *testing.T) {
	base := ConfigFor(Tank, false)
	heroic := ConfigFor(Tank, true)
	if heroic.MoveRange != base.MoveRange+1 {
		t.Errorf("heroic move range = %d, want %d", heroic.MoveRange, base.MoveRange+1)
	}
	if heroic.CaptureRange != base.CaptureRange+1 {
		t.Errorf("heroic capture range = %d, want %d", heroic.CaptureRange, base.CaptureRange+1)
	}
	if heroic.Directions != AllDirections {
		t.Errorf("heroic Tank should gain all-direction movement")
	}
}

func TestConfigForHeroicUnlimitedRangeUnchanged(t *testing.T) {
	heroic := ConfigFor(AirForce, true)
	if heroic.MoveRange != unlimitedRange || heroic.CaptureRange != unlimitedRange {
		t.Error("heroic promotion must not alter an already-unlimited range")
	}
}

func TestConfigForHeroicNavalRanges(t *testing.T) {
	base := ConfigFor(Navy, false)
	heroic := ConfigFor(Navy, true)
	if heroic.Naval.NavalGunRange != base.Naval.NavalGunRange+1 {
		t.Errorf("heroic naval gun range = %d, want %d", heroic.Naval.NavalGunRange, base.Naval.NavalGunRange+1)
	}
	if heroic.Naval.TorpedoRange != base.Naval.TorpedoRange {
		t.Error("torpedo range is already unlimited and should stay unlimited")
	}
}

func TestConfigForHeroicHeadquartersBecomesMobile(t *testing.T) {
	base := ConfigFor(Headquarters, false)
	if base.MoveRange != 0 {
		t.Fatalf("base Headquarters should be immobile, got range %d", base.MoveRange)
	}
	heroic := ConfigFor(Headquarters, true)
	if heroic.MoveRange != 1 || heroic.Directions != AllDirections {
		t.Errorf("heroic Headquarters should move 1 square in any direction, got %+v", heroic)
	}
}

func TestDirectionSetDirs(t *testing.T) {
	if len(Orthogonal.Dirs()) != 4 {
		t.Errorf("orthogonal dirs = %d, want 4", len(Orthogonal.Dirs()))
	}
	if len(Diagonal.Dirs()) != 4 {
		t.Errorf("diagonal dirs = %d, want 4", len(Diagonal.Dirs()))
	}
	if len(AllDirections.Dirs()) != 8 {
		t.Errorf("all-direction dirs = %d, want 8", len(AllDirections.Dirs()))
	}
}
