// Package cotulenh is the public facade over the board package: the
// collaborator-facing surface described in spec.md §6 (new/load/fen,
// get/put/remove, moves/move/undo, history, deploy-session operations,
// game-state predicates, and the metadata hatch).
package cotulenh

import (
	"fmt"

	"github.com/hailam/cotulenh/board"
)

// HistoryEntry records one committed move or commit, enough to render it
// verbosely and to support undo.
type HistoryEntry struct {
	SAN        string
	LAN        string
	Move       board.Move   // zero value for a session commit (see DeploySteps)
	DeploySteps []board.Move // non-nil only for a committed deploy session
	Check      bool
	Checkmate  bool
	Heroic     []board.Square
	cmd        board.Command
	posHash    uint64
}

// MoveResult is returned by Move and Undo.
type MoveResult struct {
	SAN       string
	LAN       string
	Check     bool
	Checkmate bool
	Heroic    []board.Square
}

// SessionCommitResult is the non-throwing outcome of CommitSession
// (spec.md §7: "session commit surfaces {success, reason}").
type SessionCommitResult struct {
	Success bool
	Reason  string
	Result  *MoveResult
}

// Metadata holds the opt-in rule tweaks spec.md §6 describes. These are
// tutorial-layer overrides, not core rule variations.
type Metadata struct {
	SkipLastGuardPromotion bool
	InfiniteTurnFor        *board.Color
	LegalMovesOnly         bool
}

// Game is the mutable, single-threaded game session (spec.md §5: no
// internal parallelism, callers must serialize externally).
type Game struct {
	pos            *board.Position
	history        []HistoryEntry
	positionCounts map[uint64]int
	cache          board.Cache
	metadata       Metadata
}

// New returns a Game at fen, or the standard opening if fen is empty.
func New(fen string) (*Game, error) {
	if fen == "" {
		fen = board.StartingFEN
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		pos:            pos,
		positionCounts: make(map[uint64]int),
		cache:          board.NewMoveCache(4096),
	}
	if pos.Session == nil {
		g.positionCounts[pos.ComputeHash()]++
	}
	return g, nil
}

// SetCache swaps the move-cache backend (e.g. a board.PersistentMoveCache
// opened by the caller), discarding whatever was cached under the old one.
func (g *Game) SetCache(backend board.Cache) {
	g.cache = backend
}

// Load replaces the game's position with fen, resetting history.
func (g *Game) Load(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	if err := pos.Validate(); err != nil {
		return err
	}
	g.pos = pos
	g.history = nil
	g.positionCounts = make(map[uint64]int)
	g.cache.Clear()
	if pos.Session == nil {
		g.positionCounts[pos.ComputeHash()]++
	}
	return nil
}

// FEN renders the current position (spec.md P1: round-trips through Load).
func (g *Game) FEN() string { return board.RenderFEN(g.pos) }

// Turn returns the side to move.
func (g *Game) Turn() board.Color { return g.pos.SideToMove }

// Fullmove returns the current full-move number.
func (g *Game) Fullmove() int { return g.pos.FullMoveNumber }

// HalfmoveClock returns the current halfmove clock.
func (g *Game) HalfmoveClock() int { return g.pos.HalfMoveClock }

// Get returns the piece at sq, if any.
func (g *Game) Get(sq board.Square) (board.Piece, bool) { return g.pos.Get(sq) }

// Put places piece at sq. Returns an error if the setup is invalid (e.g. a
// second commander for that color); this is the Go-idiomatic analogue of
// the abstract "returns bool" the interface describes.
func (g *Game) Put(piece board.Piece, sq board.Square) error {
	g.cache.Clear()
	return g.pos.Put(sq, piece)
}

// Remove removes and returns the piece at sq, if any.
func (g *Game) Remove(sq board.Square) (board.Piece, bool) {
	g.cache.Clear()
	return g.pos.Remove(sq)
}

// MovesOptions narrows a Moves query.
type MovesOptions struct {
	Verbose bool
	Square  board.Square // NoSquare = unfiltered
	Piece   board.PieceKind // NoPieceKind = unfiltered
	Legal   bool
}

// DefaultMovesOptions returns {Legal: true, unfiltered}.
func DefaultMovesOptions() MovesOptions {
	return MovesOptions{Square: board.NoSquare, Piece: board.NoPieceKind, Legal: true}
}

// Moves returns the candidate moves for the side to move: deploy steps if
// a session is open, otherwise whole-unit moves, filtered by opts.
func (g *Game) Moves(opts MovesOptions) []board.Move {
	color := g.pos.SideToMove
	if g.metadata.InfiniteTurnFor != nil {
		color = *g.metadata.InfiniteTurnFor
	}
	key := noFilterKeyFor(g.pos, opts)
	if cached, ok := g.cache.Get(key); ok {
		return cached
	}
	var candidates []board.Move
	if g.pos.Session != nil {
		candidates = board.GenerateDeploySteps(g.pos, g.pos.Session)
	} else {
		candidates = board.GeneratePseudoMoves(g.pos, color)
		if opts.Legal {
			candidates = board.LegalFilter(g.pos, candidates, color)
		}
	}
	candidates = filterMoves(candidates, opts)
	g.cache.Put(key, candidates)
	return candidates
}

func noFilterKeyFor(pos *board.Position, opts MovesOptions) board.MoveCacheKey {
	return board.MoveCacheKey{Hash: pos.ComputeHash(), Legal: opts.Legal, FilterSq: opts.Square, FilterKind: opts.Piece}
}

func filterMoves(moves []board.Move, opts MovesOptions) []board.Move {
	if opts.Square == board.NoSquare && opts.Piece == board.NoPieceKind {
		return moves
	}
	var out []board.Move
	for _, m := range moves {
		if opts.Square != board.NoSquare && m.From != opts.Square && m.CarrierSquare != opts.Square {
			continue
		}
		if opts.Piece != board.NoPieceKind && m.MemberKind != opts.Piece {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Move parses input (SAN or LAN) against the current candidates and applies
// it: non-deploy moves commit immediately; a deploy step instead opens or
// extends a session and does not itself appear in history. autoCommit is
// not consulted: a resolved move is applied whatever its value, and a
// session is only committed by CommitSession.
func (g *Game) Move(input string, legal bool, autoCommit bool) (*MoveResult, error) {
	candidates := g.Moves(MovesOptions{Square: board.NoSquare, Piece: board.NoPieceKind, Legal: legal})
	mv, err := resolveMoveText(g.pos, input, g.pos.SideToMove, candidates)
	if err != nil {
		return nil, err
	}
	return g.applyMove(mv, autoCommit)
}

// resolveMoveText tries SAN first (it is the default render format), then
// LAN, matching the parsed intent against candidates.
func resolveMoveText(pos *board.Position, input string, color board.Color, candidates []board.Move) (board.Move, error) {
	if mv, err := board.ParseSAN(pos, input, color, candidates); err == nil {
		return mv, nil
	}
	parsed, err := board.ParseLAN(input)
	if err != nil {
		return board.Move{}, err
	}
	for _, c := range candidates {
		if parsed.Deploy {
			if !c.Deploy || c.MemberKind != parsed.MemberKind {
				continue
			}
			if parsed.Stay && c.Stay {
				return c, nil
			}
			if !parsed.Stay && !c.Stay && c.To == parsed.To && c.Kind == parsed.Op {
				return c, nil
			}
			continue
		}
		if c.Deploy || c.From != parsed.Origin || c.To != parsed.To || c.Kind != parsed.Op {
			continue
		}
		return c, nil
	}
	return board.Move{}, board.NewMoveError(board.ErrIllegalMove, "no legal move matches input")
}

func (g *Game) applyMove(mv board.Move, autoCommit bool) (*MoveResult, error) {
	if mv.Deploy {
		return g.applyDeployStep(mv)
	}
	cmd, err := board.BuildMoveCommand(g.pos, mv)
	if err != nil {
		return nil, err
	}
	preMove := g.pos.Copy()
	if err := cmd.Execute(g.pos); err != nil {
		return nil, err
	}
	if board.IsCommanderInCheck(g.pos, mv.Color) {
		cmd.Unexecute(g.pos)
		return nil, board.NewMoveError(board.ErrIllegalMove, board.ReasonLeavesOwnInCheck)
	}
	heroicCmd := board.HeroicScan(g.pos, mv.Color)
	cmd = append(cmd, heroicCmd...)
	metaAction := board.SetMetaAction(mv.Color.Other(), g.nextHalfMoveClock(mv, len(heroicCmd) > 0), g.nextFullMoveNumber(mv.Color.Other()))
	if err := metaAction.Execute(g.pos); err != nil {
		cmd.Unexecute(g.pos)
		return nil, err
	}
	cmd = append(cmd, metaAction)
	g.cache.Clear()
	g.recordPosition()
	entry := HistoryEntry{
		Move:      mv,
		LAN:       board.RenderLAN(mv),
		Heroic:    heroicTargets(heroicCmd),
		cmd:       cmd,
		posHash:   g.pos.ComputeHash(),
		Check:     board.IsCommanderInCheck(g.pos, g.pos.SideToMove),
	}
	entry.Checkmate = entry.Check && len(g.legalMovesFor(g.pos.SideToMove)) == 0
	entry.SAN = board.RenderSAN(preMove, mv, nil, checkSuffix(entry.Check, entry.Checkmate))
	g.history = append(g.history, entry)
	return &MoveResult{SAN: entry.SAN, LAN: entry.LAN, Check: entry.Check, Checkmate: entry.Checkmate, Heroic: entry.Heroic}, nil
}

func (g *Game) applyDeployStep(mv board.Move) (*MoveResult, error) {
	session := g.pos.Session
	if session == nil {
		var err error
		session, err = board.OpenSession(g.pos, mv.CarrierSquare, mv.Color)
		if err != nil {
			return nil, err
		}
	}
	if err := session.Append(g.pos, mv); err != nil {
		return nil, err
	}
	g.cache.Clear()
	return &MoveResult{LAN: board.RenderLAN(mv)}, nil
}

// commandCaptures reports whether any action in cmd removed an enemy
// piece from the board (as opposed to just relocating the mover).
func commandCaptures(cmd board.Command) bool {
	for _, a := range cmd {
		if a.Kind == board.ActRemovePiece {
			return true
		}
	}
	return false
}

func heroicTargets(cmd board.Command) []board.Square {
	var out []board.Square
	for _, a := range cmd {
		if a.Kind == board.ActSetHeroic {
			out = append(out, a.Sq)
		}
	}
	return out
}

func checkSuffix(check, mate bool) string {
	switch {
	case mate:
		return "#"
	case check:
		return "+"
	default:
		return ""
	}
}

// nextHalfMoveClock resets to 0 on a capture or a heroic promotion
// (spec.md §3, §4.I); promoted reports whether HeroicScan promoted
// anything on this move/commit.
func (g *Game) nextHalfMoveClock(mv board.Move, promoted bool) int {
	if promoted || mv.Kind == board.MoveCapture || mv.Kind == board.MoveStayCapture || mv.Kind == board.MoveSuicideCapture {
		return 0
	}
	return g.pos.HalfMoveClock + 1
}

func (g *Game) nextFullMoveNumber(nextToMove board.Color) int {
	if nextToMove == board.Red {
		return g.pos.FullMoveNumber + 1
	}
	return g.pos.FullMoveNumber
}

func (g *Game) recordPosition() {
	if g.pos.Session == nil {
		g.positionCounts[g.pos.ComputeHash()]++
	}
}

// Undo reverses the most recent history entry (spec.md L1). Open sessions
// never appear in history, so Undo never touches an in-progress deploy.
func (g *Game) Undo() (*MoveResult, error) {
	if len(g.history) == 0 {
		return nil, fmt.Errorf("no move to undo")
	}
	entry := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.positionCounts[entry.posHash]--
	if g.positionCounts[entry.posHash] <= 0 {
		delete(g.positionCounts, entry.posHash)
	}
	entry.cmd.Unexecute(g.pos)
	g.cache.Clear()
	return &MoveResult{SAN: entry.SAN, LAN: entry.LAN, Check: entry.Check, Checkmate: entry.Checkmate, Heroic: entry.Heroic}, nil
}

// History returns the committed move list.
func (g *Game) History() []HistoryEntry { return g.history }

// OpenDeploySession begins deploying the stack at sq for the side to move.
// Subsequent Move calls that name one of its members are routed to
// DeploySession.Append instead of committing immediately.
func (g *Game) OpenDeploySession(sq board.Square) error {
	_, err := board.OpenSession(g.pos, sq, g.pos.SideToMove)
	if err == nil {
		g.cache.Clear()
	}
	return err
}

// GetSession reports the currently open deploy session, if any.
func (g *Game) GetSession() *board.DeploySession { return g.pos.Session }

// CanCommitSession reports whether the open session may be committed.
func (g *Game) CanCommitSession() bool {
	return g.pos.Session != nil && g.pos.Session.CanCommit(g.pos)
}

// CommitSession finalizes the open session: every accumulated deploy step
// becomes one history entry, the heroic scan runs, and the turn flips.
func (g *Game) CommitSession() SessionCommitResult {
	session := g.pos.Session
	if session == nil {
		return SessionCommitResult{Success: false, Reason: board.ReasonNoSessionOpen}
	}
	if !session.CanCommit(g.pos) {
		return SessionCommitResult{Success: false, Reason: board.ReasonCannotCommit}
	}
	var cmd board.Command
	captured := false
	for _, step := range session.Commands {
		cmd = append(cmd, step...)
		if commandCaptures(step) {
			captured = true
		}
	}
	color := session.Color
	if err := session.Commit(g.pos); err != nil {
		return SessionCommitResult{Success: false, Reason: err.Error()}
	}
	heroicCmd := board.HeroicScan(g.pos, color)
	cmd = append(cmd, heroicCmd...)
	resetClock := captured || len(heroicCmd) > 0
	metaAction := board.SetMetaAction(color.Other(), g.nextHalfMoveClock(board.Move{}, resetClock), g.nextFullMoveNumber(color.Other()))
	metaAction.Execute(g.pos)
	cmd = append(cmd, metaAction)
	g.cache.Clear()
	g.recordPosition()
	check := board.IsCommanderInCheck(g.pos, g.pos.SideToMove)
	entry := HistoryEntry{
		DeploySteps: append([]board.Move(nil), deploySessionMoves(session)...),
		LAN:         board.RenderDeploySequence(session.CarrierSquare, deploySessionMoves(session)),
		Heroic:      heroicTargets(heroicCmd),
		cmd:         cmd,
		posHash:     g.pos.ComputeHash(),
		Check:       check,
	}
	entry.Checkmate = check && len(g.legalMovesFor(g.pos.SideToMove)) == 0
	entry.SAN = entry.LAN
	g.history = append(g.history, entry)
	result := &MoveResult{SAN: entry.SAN, LAN: entry.LAN, Check: entry.Check, Checkmate: entry.Checkmate, Heroic: entry.Heroic}
	return SessionCommitResult{Success: true, Result: result}
}

func deploySessionMoves(s *board.DeploySession) []board.Move {
	var out []board.Move
	for kind, sq := range s.Deployed {
		out = append(out, board.Move{CarrierSquare: s.CarrierSquare, MemberKind: kind, Deploy: true, Stay: sq == s.CarrierSquare, To: sq})
	}
	return out
}

// CancelSession unwinds the open session back to its pre-open snapshot.
func (g *Game) CancelSession() error {
	if g.pos.Session == nil {
		return board.NewMoveError(board.ErrSession, board.ReasonCannotCancelEmpty)
	}
	err := g.pos.Session.Cancel(g.pos)
	g.cache.Clear()
	return err
}

// DeployView describes the open session for display purposes.
type DeployView struct {
	Origin   board.Square
	Color    board.Color
	Pending  []board.PieceKind
	Deployed map[board.PieceKind]board.Square
}

// GetDeployState returns a DeployView of the open session, or nil.
func (g *Game) GetDeployState() *DeployView {
	s := g.pos.Session
	if s == nil {
		return nil
	}
	var pending []board.PieceKind
	for _, m := range s.OriginalStack.Flatten() {
		if _, done := s.Deployed[m.Kind]; !done {
			pending = append(pending, m.Kind)
		}
	}
	return &DeployView{Origin: s.CarrierSquare, Color: s.Color, Pending: pending, Deployed: s.Deployed}
}

func (g *Game) legalMovesFor(color board.Color) []board.Move {
	return board.LegalFilter(g.pos, board.GeneratePseudoMoves(g.pos, color), color)
}

// IsCheck reports whether the side to move is in check.
func (g *Game) IsCheck() bool { return board.IsCommanderInCheck(g.pos, g.pos.SideToMove) }

// IsCommanderInDanger reports whether color's commander is currently
// attacked.
func (g *Game) IsCommanderInDanger(color board.Color) bool {
	return board.IsCommanderInCheck(g.pos, color)
}

// IsCommanderCaptured reports whether either commander is off the board.
func (g *Game) IsCommanderCaptured() bool {
	return g.pos.Commanders[board.Red] == board.NoSquare || g.pos.Commanders[board.Blue] == board.NoSquare
}

// IsCheckmate reports whether the side to move is in check with no legal
// moves.
func (g *Game) IsCheckmate() bool {
	return g.IsCheck() && g.pos.Session == nil && len(g.legalMovesFor(g.pos.SideToMove)) == 0
}

// IsStalemate reports whether the side to move has no legal moves but is
// not in check.
func (g *Game) IsStalemate() bool {
	return !g.IsCheck() && g.pos.Session == nil && len(g.legalMovesFor(g.pos.SideToMove)) == 0 && !g.IsCommanderCaptured()
}

// IsDrawByFiftyMoves reports whether 50 full moves (100 halfmoves) have
// passed without a capture or heroic promotion.
func (g *Game) IsDrawByFiftyMoves() bool { return g.pos.HalfMoveClock >= 100 }

// IsThreefoldRepetition reports whether the current position (board, side
// to move, no open session) has occurred three or more times.
func (g *Game) IsThreefoldRepetition() bool {
	if g.pos.Session != nil {
		return false
	}
	return g.positionCounts[g.pos.ComputeHash()] >= 3
}

// IsDraw reports any drawing condition.
func (g *Game) IsDraw() bool {
	return g.IsDrawByFiftyMoves() || g.IsThreefoldRepetition() || g.IsStalemate()
}

// IsGameOver reports checkmate, a draw, or a captured commander.
func (g *Game) IsGameOver() bool {
	return g.IsCheckmate() || g.IsDraw() || g.IsCommanderCaptured()
}

// GetMetadata returns the current rule-tweak metadata.
func (g *Game) GetMetadata() Metadata { return g.metadata }

// SetMetadata replaces the current rule-tweak metadata wholesale; callers
// that want a partial update should read GetMetadata first. SkipLastGuardPromotion
// is accepted but never consulted by HeroicScan: the "last non-commander
// piece becomes heroic" rule isn't part of the base rules (spec.md §9), so
// there is nothing for the flag to suppress yet.
func (g *Game) SetMetadata(partial Metadata) {
	g.metadata = partial
}
