package board

import "fmt"

// DeploySession tracks an in-progress stack deployment at CarrierSquare
// (spec.md §4.H). A stack's members can be peeled off and sent to separate
// destinations across several Append calls; legality (commander safety) is
// only checked once, at Commit, not after every individual step.
type DeploySession struct {
	CarrierSquare Square
	Color         Color
	OriginalStack Piece
	Commands      []Command
	// Deployed maps each member kind that has already left the origin
	// square (or was explicitly left in place via a Stay step) to the
	// square it currently occupies.
	Deployed map[PieceKind]Square
}

// OpenSession starts a deploy session for the stack at sq, which must
// belong to color and actually be a stack (more than one member).
func OpenSession(pos *Position, sq Square, color Color) (*DeploySession, error) {
	if pos.Session != nil {
		return nil, NewMoveError(ErrSession, ReasonSessionAlreadyOpen)
	}
	piece, ok := pos.Get(sq)
	if !ok {
		return nil, NewMoveError(ErrPieceNotFound, "")
	}
	if piece.Color != color {
		return nil, NewMoveError(ErrIllegalMove, ReasonOutOfRange)
	}
	if !piece.IsStack() {
		return nil, NewMoveError(ErrSession, "square does not hold a stack")
	}
	session := &DeploySession{
		CarrierSquare: sq,
		Color:         color,
		OriginalStack: clonePiece(piece),
		Deployed:      make(map[PieceKind]Square),
	}
	pos.Session = session
	return session, nil
}

// remainingMembers returns the stack members not yet deployed out of the
// origin square.
func (s *DeploySession) remainingMembers() []Piece {
	var out []Piece
	for _, m := range s.OriginalStack.Flatten() {
		if _, done := s.Deployed[m.Kind]; !done {
			out = append(out, m)
		}
	}
	return out
}

// Append executes one deploy step (built by BuildDeployCommand) and records
// it. The move's legality w.r.t. commander safety is not checked here.
func (s *DeploySession) Append(pos *Position, mv Move) error {
	if pos.Session != s {
		return NewMoveError(ErrSession, ReasonNoSessionOpen)
	}
	if _, done := s.Deployed[mv.MemberKind]; done {
		return NewMoveError(ErrSession, "member already deployed this session")
	}
	cmd, err := BuildDeployCommand(pos, s, mv)
	if err != nil {
		return err
	}
	if err := cmd.Execute(pos); err != nil {
		return err
	}
	s.Commands = append(s.Commands, cmd)
	if mv.Stay || mv.Kind == MoveStayCapture {
		s.Deployed[mv.MemberKind] = s.CarrierSquare
	} else {
		s.Deployed[mv.MemberKind] = mv.To
	}
	return nil
}

// CanCommit reports whether the session may be committed: every member
// must have been assigned a fate (deployed or explicitly left behind), and
// committing must not leave the mover's own commander in check.
func (s *DeploySession) CanCommit(pos *Position) bool {
	if pos.Session != s {
		return false
	}
	if len(s.remainingMembers()) > 0 {
		return false
	}
	return !IsCommanderInCheck(pos, s.Color)
}

// Commit finalizes the session: the accumulated Commands stay applied and
// the session is cleared. Returns a *MoveError if the resulting position is
// illegal or the session is incomplete.
func (s *DeploySession) Commit(pos *Position) error {
	if pos.Session != s {
		return NewMoveError(ErrSession, ReasonNoSessionOpen)
	}
	if len(s.remainingMembers()) > 0 {
		return NewMoveError(ErrSession, ReasonCannotCommit)
	}
	if IsCommanderInCheck(pos, s.Color) {
		return NewMoveError(ErrIllegalMove, ReasonLeavesOwnInCheck)
	}
	pos.Session = nil
	return nil
}

// Cancel unwinds every step executed so far, in reverse order, restoring
// the position to how it was before the session opened, and clears it.
func (s *DeploySession) Cancel(pos *Position) error {
	if pos.Session != s {
		return NewMoveError(ErrSession, ReasonNoSessionOpen)
	}
	for i := len(s.Commands) - 1; i >= 0; i-- {
		s.Commands[i].Unexecute(pos)
	}
	pos.Session = nil
	return nil
}

// digest folds the session's origin, color, and partial deploy state into
// the position's Zobrist-style hash (see zobrist.go).
func (s *DeploySession) digest() uint64 {
	if s == nil {
		return 0
	}
	h := zobristSession[s.CarrierSquare][s.Color]
	for kind, sq := range s.Deployed {
		h ^= zobristPiece[sq][s.Color][kind][0][0]
	}
	return h
}

// BuildDeployCommand composes the Command for one deploy step: mv.MemberKind
// leaves (or stays at) the origin stack and, unless Stay, lands at mv.To
// with whatever interaction (capture, combine, ...) mv.Kind calls for.
func BuildDeployCommand(pos *Position, s *DeploySession, mv Move) (Command, error) {
	origin, ok := pos.Get(s.CarrierSquare)
	if !ok {
		return nil, fmt.Errorf("deploy origin %v is empty", s.CarrierSquare)
	}
	member, found := memberOfKind(origin, mv.MemberKind)
	if !found {
		return nil, fmt.Errorf("origin stack has no %v", mv.MemberKind)
	}
	var cmd Command
	cmd = append(cmd, PopFromStackAction(s.CarrierSquare, mv.MemberKind))
	if mv.Stay || mv.Kind == MoveStayCapture {
		if mv.Kind == MoveStayCapture {
			if _, ok := pos.Get(mv.To); ok {
				cmd = append(cmd, RemovePieceAction(mv.To))
			}
		}
		cmd = append(cmd, PushToStackAction(s.CarrierSquare, member))
		return cmd, nil
	}
	dest, err := buildArrivalActions(pos, mv, member)
	if err != nil {
		return nil, err
	}
	cmd = append(cmd, dest...)
	return cmd, nil
}

func memberOfKind(piece Piece, kind PieceKind) (Piece, bool) {
	for _, m := range piece.Flatten() {
		if m.Kind == kind {
			return m, true
		}
	}
	return Piece{}, false
}

// buildArrivalActions composes the actions that place mover at mv.To,
// honoring mv.Kind (capture removes the defender first; combine merges into
// an existing friendly piece; suicide-capture removes both). MoveStayCapture
// is handled by the caller before reaching here, since the mover never
// leaves the origin square for that kind.
func buildArrivalActions(pos *Position, mv Move, mover Piece) (Command, error) {
	var cmd Command
	switch mv.Kind {
	case MoveNormal:
		cmd = append(cmd, PushToStackAction(mv.To, mover))
	case MoveCapture:
		if _, ok := pos.Get(mv.To); ok {
			cmd = append(cmd, RemovePieceAction(mv.To))
		}
		cmd = append(cmd, PushToStackAction(mv.To, mover))
	case MoveSuicideCapture:
		if _, ok := pos.Get(mv.To); ok {
			cmd = append(cmd, RemovePieceAction(mv.To))
		}
		// mover is destroyed too: nothing placed at mv.To or mv.From.
	case MoveCombine:
		cmd = append(cmd, PushToStackAction(mv.To, mover))
	default:
		return nil, fmt.Errorf("unhandled move kind %v", mv.Kind)
	}
	return cmd, nil
}
