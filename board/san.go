package board

import (
	"fmt"
	"strconv"
	"strings"
)

// NeedsDisambiguation reports whether mv's rendering must include an
// origin hint: true when another legal candidate of the same piece kind
// and color also lands on mv.To (spec.md §4.J, "disambiguation as in
// chess").
func NeedsDisambiguation(pos *Position, mv Move, siblings []Move) bool {
	mover, ok := pos.Get(mv.From)
	if !ok {
		return false
	}
	count := 0
	for _, c := range siblings {
		if c.Deploy || c.To != mv.To {
			continue
		}
		other, ok := pos.Get(c.From)
		if !ok || other.Kind != mover.Kind || other.Color != mover.Color {
			continue
		}
		count++
	}
	return count > 1
}

// RenderSAN renders mv in short algebraic form. siblings should be the full
// legal move list for the side to move, used only to decide whether
// disambiguation is required; checkSuffix is appended as given ("+", "#",
// or "").
func RenderSAN(pos *Position, mv Move, siblings []Move, checkSuffix string) string {
	if mv.Deploy {
		if mv.Stay {
			return fmt.Sprintf("%c<%s", mv.MemberKind.Letter(), checkSuffix)
		}
		return fmt.Sprintf("%c>%s%s%s", mv.MemberKind.Letter(), operatorFor(mv.Kind), mv.To, checkSuffix)
	}
	mover, _ := pos.Get(mv.From)
	disambig := ""
	if NeedsDisambiguation(pos, mv, siblings) {
		disambig = mv.From.String()
	}
	return fmt.Sprintf("%c%s%s%s%s", mover.Kind.Letter(), disambig, operatorFor(mv.Kind), mv.To, checkSuffix)
}

// RenderDeploySequence joins a session's committed steps into one SAN
// string, e.g. "d3:N>-e5,F<,T>xg7" (spec.md §4.J, ":" session separator).
func RenderDeploySequence(origin Square, steps []Move) string {
	parts := make([]string, len(steps))
	for i, mv := range steps {
		if mv.Stay {
			parts[i] = fmt.Sprintf("%c<", mv.MemberKind.Letter())
		} else {
			parts[i] = fmt.Sprintf("%c>%s%s", mv.MemberKind.Letter(), operatorFor(mv.Kind), mv.To)
		}
	}
	return fmt.Sprintf("%s:%s", origin, strings.Join(parts, ","))
}

// ParseSAN parses SAN text against the supplied legal candidates for
// color, resolving piece letter, optional disambiguator, operator, and
// destination. Deploy-step SAN ("<KindLetter>>..." or "<KindLetter><") is
// recognized by the presence of '<' or '>', which never appear in square
// notation.
func ParseSAN(pos *Position, s string, color Color, candidates []Move) (Move, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#")
	if s == "" {
		return Move{}, NewMoveError(ErrIllegalMove, "empty move text")
	}
	if strings.ContainsAny(s, "<>") {
		return parseDeploySAN(s, candidates)
	}
	kind, ok := KindFromLetter(s[0])
	if !ok {
		return Move{}, NewMoveError(ErrIllegalMove, fmt.Sprintf("unknown piece letter %q", s[:1]))
	}
	rest := s[1:]
	opIdx, op, opLen, err := findOperator(rest)
	if err != nil {
		return Move{}, err
	}
	disambig := rest[:opIdx]
	to, err := ParseSquare(rest[opIdx+opLen:])
	if err != nil {
		return Move{}, err
	}
	var matches []Move
	for _, c := range candidates {
		if c.Deploy || c.To != to || c.Kind != op || c.Color != color {
			continue
		}
		mover, ok := pos.Get(c.From)
		if !ok || mover.Kind != kind {
			continue
		}
		matches = append(matches, c)
	}
	matches, err = filterByDisambig(matches, disambig)
	if err != nil {
		return Move{}, err
	}
	switch len(matches) {
	case 0:
		return Move{}, NewMoveError(ErrIllegalMove, "no legal move matches")
	case 1:
		return matches[0], nil
	default:
		return Move{}, NewMoveError(ErrIllegalMove, "ambiguous move")
	}
}

func parseDeploySAN(s string, candidates []Move) (Move, error) {
	if len(s) < 2 {
		return Move{}, fmt.Errorf("malformed deploy SAN %q", s)
	}
	kind, ok := KindFromLetter(s[0])
	if !ok {
		return Move{}, fmt.Errorf("unknown piece letter in %q", s)
	}
	rest := s[1:]
	stay := rest == "<"
	var op MoveKind
	var to Square
	if !stay {
		if !strings.HasPrefix(rest, ">") {
			return Move{}, fmt.Errorf("malformed deploy SAN %q", s)
		}
		var err error
		op, to, err = splitOpDest(rest[1:])
		if err != nil {
			return Move{}, err
		}
	}
	for _, c := range candidates {
		if !c.Deploy || c.MemberKind != kind {
			continue
		}
		if stay && c.Stay {
			return c, nil
		}
		if !stay && !c.Stay && c.To == to && c.Kind == op {
			return c, nil
		}
	}
	return Move{}, NewMoveError(ErrIllegalMove, "no legal deploy step matches")
}

// filterByDisambig narrows candidates by an optional file letter, rank
// digits, or full-square disambiguator.
func filterByDisambig(candidates []Move, disambig string) ([]Move, error) {
	if disambig == "" {
		return candidates, nil
	}
	if len(disambig) >= 2 {
		if sq, err := ParseSquare(disambig); err == nil {
			var out []Move
			for _, c := range candidates {
				if c.From == sq {
					out = append(out, c)
				}
			}
			return out, nil
		}
	}
	allDigits := true
	for _, r := range disambig {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		rank, _ := strconv.Atoi(disambig)
		rank--
		var out []Move
		for _, c := range candidates {
			if c.From.Rank() == rank {
				out = append(out, c)
			}
		}
		return out, nil
	}
	if len(disambig) == 1 {
		c0 := disambig[0]
		if c0 >= 'a' && c0 <= 'k' {
			file := int(c0 - 'a')
			var out []Move
			for _, c := range candidates {
				if c.From.File() == file {
					out = append(out, c)
				}
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("bad disambiguator %q", disambig)
}
