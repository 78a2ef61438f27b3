package board

// HeroicScan implements the post-commit heroic promotion rule (spec.md
// §4.I): every mover piece that currently attacks the enemy commander's
// square, and is not already heroic, is promoted. It returns the Command
// of SetHeroic actions already applied, so the caller can append it to the
// move's Command for undo (spec.md P7).
func HeroicScan(pos *Position, mover Color) Command {
	var cmd Command
	target := pos.Commanders[mover.Other()]
	if target == NoSquare {
		return cmd
	}
	for _, sq := range AttackersOf(pos, target, mover) {
		piece, ok := pos.Get(sq)
		if !ok || piece.Heroic {
			continue
		}
		action := SetHeroicAction(sq, piece.Kind, true)
		if err := action.Execute(pos); err != nil {
			continue
		}
		cmd = append(cmd, action)
	}
	return cmd
}
