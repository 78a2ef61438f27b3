package board

// ActionKind tags the kind of atomic, reversible edit an Action performs
// (spec.md §3 Command, §4.G).
type ActionKind int

const (
	ActRemovePiece ActionKind = iota
	ActPlacePiece
	ActPopFromStack
	ActPushToStack
	ActSetHeroic
	ActSetMeta
)

// Action is one atomic board edit. Fields not relevant to Kind are unused.
// Each Action records, on Execute, whatever prior value it overwrote, so
// Unexecute can restore it exactly without consulting anything else.
type Action struct {
	Kind ActionKind
	Sq   Square

	// ActPlacePiece: piece to place.
	Piece Piece

	// ActPopFromStack / ActPushToStack: which member kind to remove/add.
	StackKind PieceKind

	// ActSetHeroic: which member and its new heroic value.
	HeroicKind  PieceKind
	HeroicValue bool

	// ActSetMeta: new values (old values captured into priorMeta on Execute).
	NewSideToMove     Color
	NewHalfMoveClock  int
	NewFullMoveNumber int

	// prior state, captured by Execute, consumed by Unexecute.
	priorPiece        Piece
	priorPresent      bool
	priorHeroic       bool
	priorSideToMove   Color
	priorHalfMoveClock int
	priorFullMoveNumber int
}

// RemovePieceAction builds an unexecuted ActRemovePiece action.
func RemovePieceAction(sq Square) Action { return Action{Kind: ActRemovePiece, Sq: sq} }

// PlacePieceAction builds an unexecuted ActPlacePiece action.
func PlacePieceAction(sq Square, piece Piece) Action {
	return Action{Kind: ActPlacePiece, Sq: sq, Piece: piece}
}

// PopFromStackAction builds an unexecuted ActPopFromStack action.
func PopFromStackAction(sq Square, kind PieceKind) Action {
	return Action{Kind: ActPopFromStack, Sq: sq, StackKind: kind}
}

// PushToStackAction builds an unexecuted ActPushToStack action.
func PushToStackAction(sq Square, piece Piece) Action {
	return Action{Kind: ActPushToStack, Sq: sq, Piece: piece}
}

// SetHeroicAction builds an unexecuted ActSetHeroic action.
func SetHeroicAction(sq Square, kind PieceKind, heroic bool) Action {
	return Action{Kind: ActSetHeroic, Sq: sq, HeroicKind: kind, HeroicValue: heroic}
}

// SetMetaAction builds an unexecuted ActSetMeta action (turn flip, clocks).
func SetMetaAction(side Color, halfMove, fullMove int) Action {
	return Action{Kind: ActSetMeta, NewSideToMove: side, NewHalfMoveClock: halfMove, NewFullMoveNumber: fullMove}
}

// Execute applies the action to pos, capturing whatever it overwrites.
func (a *Action) Execute(pos *Position) error {
	switch a.Kind {
	case ActRemovePiece:
		piece, ok := pos.Remove(a.Sq)
		a.priorPiece, a.priorPresent = piece, ok
	case ActPlacePiece:
		prior, ok := pos.Get(a.Sq)
		a.priorPiece, a.priorPresent = prior, ok
		if err := pos.Put(a.Sq, a.Piece); err != nil {
			return err
		}
	case ActPopFromStack:
		existing, _ := pos.Get(a.Sq)
		a.priorPiece, a.priorPresent = existing, true
		remaining, present, removed, err := RemoveFromStack(existing, a.StackKind)
		if err != nil {
			return err
		}
		a.Piece = removed
		if present {
			if err := pos.Put(a.Sq, remaining); err != nil {
				return err
			}
		} else {
			pos.Remove(a.Sq)
		}
	case ActPushToStack:
		existing, ok := pos.Get(a.Sq)
		a.priorPiece, a.priorPresent = existing, ok
		var combined Piece
		var err error
		if ok {
			combined, err = AddToStack(existing, a.Piece)
		} else {
			combined, err = BuildStack([]Piece{a.Piece})
		}
		if err != nil {
			return err
		}
		if err := pos.Put(a.Sq, combined); err != nil {
			return err
		}
	case ActSetHeroic:
		existing, _ := pos.Get(a.Sq)
		a.priorPiece, a.priorPresent = existing, true
		members := existing.Flatten()
		for i := range members {
			if members[i].Kind == a.HeroicKind {
				a.priorHeroic = members[i].Heroic
				members[i].Heroic = a.HeroicValue
			}
		}
		rebuilt, err := BuildStack(members)
		if err != nil {
			return err
		}
		if err := pos.Put(a.Sq, rebuilt); err != nil {
			return err
		}
	case ActSetMeta:
		a.priorSideToMove = pos.SideToMove
		a.priorHalfMoveClock = pos.HalfMoveClock
		a.priorFullMoveNumber = pos.FullMoveNumber
		pos.SideToMove = a.NewSideToMove
		pos.HalfMoveClock = a.NewHalfMoveClock
		pos.FullMoveNumber = a.NewFullMoveNumber
	}
	return nil
}

// Unexecute reverses an already-executed action using its captured prior
// state.
func (a *Action) Unexecute(pos *Position) error {
	switch a.Kind {
	case ActRemovePiece, ActPlacePiece, ActPopFromStack, ActPushToStack, ActSetHeroic:
		if a.priorPresent {
			return pos.Put(a.Sq, a.priorPiece)
		}
		pos.Remove(a.Sq)
		return nil
	case ActSetMeta:
		pos.SideToMove = a.priorSideToMove
		pos.HalfMoveClock = a.priorHalfMoveClock
		pos.FullMoveNumber = a.priorFullMoveNumber
	}
	return nil
}

// Command is an ordered list of atomic actions composing one move (of any
// kind) or one deploy step. Unexecuting a Command in reverse order exactly
// restores the position it was applied to.
type Command []Action

// Execute runs every action in order. On failure it unwinds the actions
// already applied so the position is left unchanged.
func (c Command) Execute(pos *Position) error {
	for i := range c {
		if err := c[i].Execute(pos); err != nil {
			for j := i - 1; j >= 0; j-- {
				c[j].Unexecute(pos)
			}
			return err
		}
	}
	return nil
}

// Unexecute reverses every action, in reverse order.
func (c Command) Unexecute(pos *Position) {
	for i := len(c) - 1; i >= 0; i-- {
		c[i].Unexecute(pos)
	}
}
