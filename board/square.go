// Package board implements the CoTuLenh board representation: coordinates,
// terrain, pieces and stacks, movement rules, move generation, the
// attack/exposure oracle, the reversible command layer, deploy sessions,
// heroic promotion, and FEN/SAN/LAN notation.
package board

import "fmt"

// Square is an index into a padded 16-wide grid. The valid playing area is
// 11 files by 12 ranks; squares outside that area are never on_board but
// still addressable so ray-walks can step off the edge and stop cleanly.
type Square int16

// BoardWidth is the padded stride between ranks.
const BoardWidth = 16

// NumFiles and NumRanks bound the valid playing area.
const (
	NumFiles = 11
	NumRanks = 12
)

// NoSquare is the sentinel for "no square" (e.g. no commander on board).
const NoSquare Square = -1

// NewSquare builds a Square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*BoardWidth + file)
}

// File returns the 0-indexed file (0=a .. 10=k).
func (sq Square) File() int {
	f := int(sq) % BoardWidth
	if f < 0 {
		f += BoardWidth
	}
	return f
}

// Rank returns the 0-indexed rank (0=1 .. 11=12).
func (sq Square) Rank() int {
	return int(sq) / BoardWidth
}

// OnBoard reports whether sq lies within the 11x12 playing area.
func (sq Square) OnBoard() bool {
	if sq < 0 {
		return false
	}
	f, r := sq.File(), sq.Rank()
	return f >= 0 && f < NumFiles && r >= 0 && r < NumRanks
}

// String returns algebraic notation, e.g. "c5", "k12". Returns "-" for
// NoSquare or any off-board square.
func (sq Square) String() string {
	if !sq.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank()+1)
}

// ParseSquare parses algebraic notation (file letter a-k, rank 1-12).
func ParseSquare(s string) (Square, error) {
	if len(s) < 2 || len(s) > 3 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	file := int(s[0] - 'a')
	if file < 0 || file >= NumFiles {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	rank := 0
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return NoSquare, fmt.Errorf("invalid square: %q", s)
		}
		rank = rank*10 + int(c-'0')
	}
	rank--
	if rank < 0 || rank >= NumRanks {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	return NewSquare(file, rank), nil
}

// step returns the square obtained by moving (df, dr) files/ranks from sq.
// The result is not guaranteed on_board; callers must check.
func (sq Square) step(df, dr int) Square {
	return NewSquare(sq.File()+df, sq.Rank()+dr)
}

// isRiverRank reports whether rank (0-indexed) is one of the two river banks,
// 6 or 7 in 1-indexed terms (index 5, 6).
func isRiverRank(r int) bool {
	return r == 5 || r == 6
}

// bridgeSquares are the four crossing points heavy pieces must use to cross
// the river between ranks 6 and 7: f6, f7, h6, h7.
var bridgeSquares = map[Square]bool{}

func init() {
	for _, s := range []string{"f6", "f7", "h6", "h7"} {
		sq, err := ParseSquare(s)
		if err != nil {
			panic(err)
		}
		bridgeSquares[sq] = true
	}
}

// IsBridge reports whether sq is one of the four river-crossing squares.
func IsBridge(sq Square) bool {
	return bridgeSquares[sq]
}

// NavyMask reports whether a Navy-family piece may occupy sq: files a-c in
// full, plus the four river squares d6/e6/d7/e7.
func NavyMask(sq Square) bool {
	if !sq.OnBoard() {
		return false
	}
	f, r := sq.File(), sq.Rank()
	if f <= 2 {
		return true
	}
	return (f == 3 || f == 4) && isRiverRank(r)
}

// LandMask reports whether a land-family piece may occupy sq: files c..k.
func LandMask(sq Square) bool {
	if !sq.OnBoard() {
		return false
	}
	return sq.File() >= 2
}

// CrossesRiverBetween reports whether a step from `from` to `to` transitions
// between river ranks 6 and 7 (1-indexed), the case heavy pieces must cross
// via a bridge square.
func CrossesRiverBetween(from, to Square) bool {
	fr, tr := from.Rank(), to.Rank()
	return (fr == 5 && tr == 6) || (fr == 6 && tr == 5)
}
