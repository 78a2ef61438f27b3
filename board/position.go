package board

import "fmt"

// Position is the complete board state: piece placement, side to move,
// commander cache, per-color air-defense index, clocks, and (if one is
// in progress) the open deploy session.
type Position struct {
	grid           map[Square]Piece
	SideToMove     Color
	Commanders     [2]Square
	HalfMoveClock  int
	FullMoveNumber int
	AirDefense     [2]*AirDefenseIndex
	Session        *DeploySession
}

// NewEmptyPosition returns a position with no pieces, Red to move.
func NewEmptyPosition() *Position {
	p := &Position{
		grid:           make(map[Square]Piece),
		SideToMove:     Red,
		FullMoveNumber: 1,
	}
	p.Commanders[Red] = NoSquare
	p.Commanders[Blue] = NoSquare
	p.AirDefense[Red] = NewAirDefenseIndex()
	p.AirDefense[Blue] = NewAirDefenseIndex()
	return p
}

// Get returns the piece at sq, if any.
func (p *Position) Get(sq Square) (Piece, bool) {
	pc, ok := p.grid[sq]
	return pc, ok
}

// IsEmpty reports whether sq holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	_, ok := p.grid[sq]
	return !ok
}

// Put places piece at sq, rejecting a second commander of the same color.
// It rebuilds the commander cache and the affected color's air-defense
// index incrementally.
func (p *Position) Put(sq Square, piece Piece) error {
	if !sq.OnBoard() {
		return fmt.Errorf("square %v not on board", sq)
	}
	for _, m := range piece.Flatten() {
		if m.Kind == Commander {
			if p.Commanders[m.Color] != NoSquare && p.Commanders[m.Color] != sq {
				return fmt.Errorf("color %v already has a commander", m.Color)
			}
		}
	}
	p.AirDefense[Red].RemoveDefender(sq)
	p.AirDefense[Blue].RemoveDefender(sq)
	p.grid[sq] = piece
	for _, m := range piece.Flatten() {
		if m.Kind == Commander {
			p.Commanders[m.Color] = sq
		}
	}
	p.AirDefense[piece.Color].AddDefender(sq, piece)
	return nil
}

// Remove removes and returns the piece at sq, if any.
func (p *Position) Remove(sq Square) (Piece, bool) {
	piece, ok := p.grid[sq]
	if !ok {
		return Piece{}, false
	}
	delete(p.grid, sq)
	for _, m := range piece.Flatten() {
		if m.Kind == Commander && p.Commanders[m.Color] == sq {
			p.Commanders[m.Color] = NoSquare
		}
	}
	p.AirDefense[Red].RemoveDefender(sq)
	p.AirDefense[Blue].RemoveDefender(sq)
	return piece, true
}

// Copy returns a deep copy of the position, including the open session.
func (p *Position) Copy() *Position {
	np := &Position{
		grid:           make(map[Square]Piece, len(p.grid)),
		SideToMove:     p.SideToMove,
		Commanders:     p.Commanders,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
	}
	for sq, pc := range p.grid {
		np.grid[sq] = clonePiece(pc)
	}
	np.AirDefense[Red] = p.AirDefense[Red].clone()
	np.AirDefense[Blue] = p.AirDefense[Blue].clone()
	if p.Session != nil {
		s := *p.Session
		s.OriginalStack = clonePiece(p.Session.OriginalStack)
		s.Commands = append([]Command(nil), p.Session.Commands...)
		s.Deployed = make(map[PieceKind]Square, len(p.Session.Deployed))
		for k, v := range p.Session.Deployed {
			s.Deployed[k] = v
		}
		np.Session = &s
	}
	return np
}

func clonePiece(p Piece) Piece {
	cp := p
	if len(p.Carried) > 0 {
		cp.Carried = append([]Piece(nil), p.Carried...)
	}
	return cp
}

// RebuildAirDefense recomputes the air-defense index for color from
// scratch by scanning every piece on the board (spec.md §4.E, I6).
func (p *Position) RebuildAirDefense(color Color) {
	idx := NewAirDefenseIndex()
	for sq, piece := range p.grid {
		if piece.Color == color {
			idx.AddDefender(sq, piece)
		}
	}
	p.AirDefense[color] = idx
}

// RebuildCommanders recomputes the commander cache by scanning the board
// (spec.md I3).
func (p *Position) RebuildCommanders() {
	p.Commanders[Red] = NoSquare
	p.Commanders[Blue] = NoSquare
	for sq, piece := range p.grid {
		for _, m := range piece.Flatten() {
			if m.Kind == Commander {
				p.Commanders[m.Color] = sq
			}
		}
	}
}

// Validate checks invariants I1-I3 hold; used by tests and defensively
// after FEN load.
func (p *Position) Validate() error {
	for color := Red; color <= Blue; color++ {
		if p.Commanders[color] == NoSquare {
			continue
		}
		piece, ok := p.Get(p.Commanders[color])
		if !ok {
			return fmt.Errorf("commander cache for %v points to empty square", color)
		}
		found := false
		for _, m := range piece.Flatten() {
			if m.Kind == Commander && m.Color == color {
				found = true
			}
		}
		if !found {
			return fmt.Errorf("commander cache for %v does not match board", color)
		}
	}
	for sq, piece := range p.grid {
		members := piece.Flatten()
		if len(members) > 1 {
			maxFlag := uint16(0)
			for _, m := range members {
				if m.Kind.RoleFlag() > maxFlag {
					maxFlag = m.Kind.RoleFlag()
				}
			}
			if members[0].Kind.RoleFlag() != maxFlag {
				return fmt.Errorf("square %v: carrier is not the maximal-role-flag member", sq)
			}
		}
	}
	return nil
}

// String renders a simple board diagram for debugging.
func (p *Position) String() string {
	s := "\n"
	for r := NumRanks - 1; r >= 0; r-- {
		s += fmt.Sprintf("%-3d", r+1)
		for f := 0; f < NumFiles; f++ {
			sq := NewSquare(f, r)
			piece, ok := p.Get(sq)
			if !ok {
				s += ". "
				continue
			}
			s += piece.Letter() + " "
		}
		s += "\n"
	}
	s += "   "
	for f := 0; f < NumFiles; f++ {
		s += fmt.Sprintf("%c ", 'a'+f)
	}
	s += fmt.Sprintf("\nside=%v half=%d full=%d\n", p.SideToMove, p.HalfMoveClock, p.FullMoveNumber)
	return s
}
