package board

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StartingFEN is the standard opening position: a minimal, legal,
// symmetric setup for the 11x12 board (exact historical opening arrays
// are outside this engine's scope).
const StartingFEN = "6h4/n1n8/2i1efcei2/2a1m1ma3/2t3t1t2/11/11/2T3T1T2/2A1M1MA3/2I1EFCEI2/N1N8/6H4 r - - 0 1"

// ParseFEN builds a Position from a FEN string, including the optional
// stack-parenthesization and trailing deploy-session block (spec.md §4.J).
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 6 {
		return nil, NewMoveError(ErrInvalidFEN, "too few fields")
	}
	pos := NewEmptyPosition()
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != NumRanks {
		return nil, NewMoveError(ErrInvalidFEN, fmt.Sprintf("expected %d ranks", NumRanks))
	}
	for i, rankStr := range ranks {
		rank := NumRanks - 1 - i
		file := 0
		r := []rune(rankStr)
		for j := 0; j < len(r); j++ {
			c := r[j]
			switch {
			case c >= '0' && c <= '9':
				n := 0
				for j < len(r) && r[j] >= '0' && r[j] <= '9' {
					n = n*10 + int(r[j]-'0')
					j++
				}
				j--
				file += n
			case c == '(':
				end := strings.IndexRune(string(r[j:]), ')')
				if end < 0 {
					return nil, NewMoveError(ErrInvalidFEN, "unterminated stack group")
				}
				group := string(r[j+1 : j+end])
				piece, err := parseStackGroup(group)
				if err != nil {
					return nil, err
				}
				if err := pos.Put(NewSquare(file, rank), piece); err != nil {
					return nil, err
				}
				j += end
				file++
			default:
				piece, consumed, err := parsePieceToken(r[j:])
				if err != nil {
					return nil, err
				}
				if err := pos.Put(NewSquare(file, rank), piece); err != nil {
					return nil, err
				}
				j += consumed - 1
				file++
			}
		}
		if file != NumFiles {
			return nil, NewMoveError(ErrInvalidFEN, fmt.Sprintf("rank %d has %d files, want %d", rank+1, file, NumFiles))
		}
	}
	switch fields[1] {
	case "r":
		pos.SideToMove = Red
	case "b":
		pos.SideToMove = Blue
	default:
		return nil, NewMoveError(ErrInvalidFEN, "bad side to move")
	}
	half, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, NewMoveError(ErrInvalidFEN, "bad halfmove clock")
	}
	full, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, NewMoveError(ErrInvalidFEN, "bad fullmove number")
	}
	pos.HalfMoveClock = half
	pos.FullMoveNumber = full
	if len(fields) > 6 {
		if err := parseSessionBlock(pos, strings.Join(fields[6:], " ")); err != nil {
			return nil, err
		}
	}
	return pos, nil
}

// parsePieceToken parses a single "[+]Letter" token and returns how many
// runes it consumed (1 or 2).
func parsePieceToken(r []rune) (Piece, int, error) {
	heroic := false
	i := 0
	if r[i] == '+' {
		heroic = true
		i++
	}
	if i >= len(r) {
		return Piece{}, 0, NewMoveError(ErrInvalidFEN, "truncated piece token")
	}
	letter := byte(r[i])
	color := Red
	kindLetter := letter
	if letter >= 'a' && letter <= 'z' {
		color = Blue
		kindLetter = letter - 'a' + 'A'
	}
	kind, ok := KindFromLetter(kindLetter)
	if !ok {
		return Piece{}, 0, NewMoveError(ErrInvalidFEN, fmt.Sprintf("unknown piece letter %q", string(letter)))
	}
	return Piece{Kind: kind, Color: color, Heroic: heroic}, i + 1, nil
}

// parseStackGroup parses the inside of a "(...)" stack group: a sequence of
// "[+]Letter" tokens, carrier first.
func parseStackGroup(group string) (Piece, error) {
	r := []rune(group)
	var members []Piece
	for i := 0; i < len(r); {
		p, consumed, err := parsePieceToken(r[i:])
		if err != nil {
			return Piece{}, err
		}
		members = append(members, p)
		i += consumed
	}
	return BuildStack(members)
}

// parseSessionBlock parses the optional trailing "<origin>:<step>,... [...]"
// block (spec.md §4.J) and reconstructs the DeploySession bookkeeping it
// describes; the board itself is already fully parsed by this point.
func parseSessionBlock(pos *Position, block string) error {
	block = strings.TrimSpace(block)
	if block == "" {
		return nil
	}
	open := strings.HasSuffix(block, "...")
	block = strings.TrimSuffix(block, "...")
	block = strings.TrimSpace(block)
	parts := strings.SplitN(block, ":", 2)
	if len(parts) != 2 {
		return NewMoveError(ErrInvalidFEN, "malformed session block")
	}
	originSq, err := ParseSquare(parts[0])
	if err != nil {
		return err
	}
	// The main board field already shows every piece at its post-deploy
	// location; this block only records which members have a decided fate
	// (deployed-to, or left-in-place-at-origin) and where, since the board
	// alone cannot distinguish "not yet decided" from "decided to stay".
	deployed := make(map[PieceKind]Square)
	var originalMembers []Piece
	if origin, ok := pos.Get(originSq); ok {
		originalMembers = append(originalMembers, origin.Flatten()...)
	}
	if parts[1] != "" {
		for _, tok := range strings.Split(parts[1], ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			kind, ok := KindFromLetter(tok[0])
			if !ok {
				return NewMoveError(ErrInvalidFEN, fmt.Sprintf("bad session token %q", tok))
			}
			rest := tok[1:]
			if rest == "" {
				deployed[kind] = originSq
				continue
			}
			destSq, err := ParseSquare(rest)
			if err != nil {
				return err
			}
			destPiece, ok := pos.Get(destSq)
			if !ok {
				return NewMoveError(ErrInvalidFEN, "session step destination is empty")
			}
			member, found := memberOfKind(destPiece, kind)
			if !found {
				return NewMoveError(ErrInvalidFEN, "session step destination lacks declared member")
			}
			deployed[kind] = destSq
			originalMembers = append(originalMembers, member)
		}
	}
	if len(originalMembers) == 0 {
		return NewMoveError(ErrInvalidFEN, "empty deploy session")
	}
	originalStack, err := BuildStack(originalMembers)
	if err != nil {
		return err
	}
	session := &DeploySession{
		CarrierSquare: originSq,
		Color:         originalMembers[0].Color,
		OriginalStack: originalStack,
		Deployed:      deployed,
	}
	pos.Session = session
	if !open {
		return session.Commit(pos)
	}
	return nil
}

// RenderFEN renders pos back to FEN text, including any open session.
func RenderFEN(pos *Position) string {
	var sb strings.Builder
	for i := 0; i < NumRanks; i++ {
		rank := NumRanks - 1 - i
		empty := 0
		for file := 0; file < NumFiles; file++ {
			piece, ok := pos.Get(NewSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(renderPieceField(piece))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if i != NumRanks-1 {
			sb.WriteString("/")
		}
	}
	side := "r"
	if pos.SideToMove == Blue {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s - - %d %d", side, pos.HalfMoveClock, pos.FullMoveNumber)
	if pos.Session != nil {
		sb.WriteString(" ")
		sb.WriteString(renderSessionBlock(pos.Session))
	}
	return sb.String()
}

func renderPieceField(p Piece) string {
	if !p.IsStack() {
		return p.Letter()
	}
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(p.Letter())
	for _, m := range p.Carried {
		sb.WriteString(m.Letter())
	}
	sb.WriteString(")")
	return sb.String()
}

// renderSessionBlock renders the Deployed map in a stable, letter-sorted
// order so FEN output is deterministic: each resolved member is either its
// bare kind letter (stayed at origin) or kind letter + destination square.
func renderSessionBlock(s *DeploySession) string {
	kinds := make([]PieceKind, 0, len(s.Deployed))
	for kind := range s.Deployed {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Letter() < kinds[j].Letter() })
	steps := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		sq := s.Deployed[kind]
		if sq == s.CarrierSquare {
			steps = append(steps, string(kind.Letter()))
			continue
		}
		steps = append(steps, fmt.Sprintf("%c%s", kind.Letter(), sq))
	}
	return fmt.Sprintf("%s:%s ...", s.CarrierSquare, strings.Join(steps, ","))
}
