// Package chess adapts the corentings/chess rules library to the narrow
// position contract the game rooms consume.
package chess

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// StartingFEN is the serialization of the standard starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Outcome values reported by Engine.Outcome.
const (
	OutcomeOngoing  = "*"
	OutcomeWhiteWon = "1-0"
	OutcomeBlackWon = "0-1"
	OutcomeDraw     = "1/2-1/2"
)

var uciPattern = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbn]?$`)

// Position is an immutable game position. Obtain one from Engine.NewGame.
type Position struct {
	game  *nchess.Game
	moves []string
}

// Moves returns the UCI moves played since the starting position.
func (p Position) Moves() []string {
	return slices.Clone(p.moves)
}

// Engine is the move legality oracle. It holds no state and is safe for
// concurrent use.
type Engine struct{}

// NewEngine creates a new position engine
func NewEngine() *Engine {
	return &Engine{}
}

// NewGame returns the standard starting position.
func (e *Engine) NewGame() Position {
	return Position{game: nchess.NewGame()}
}

// LegalMoves returns every legal move from p in UCI notation.
func (e *Engine) LegalMoves(p Position) []string {
	valid := p.game.Position().ValidMoves()
	moves := make([]string, 0, len(valid))
	for _, mv := range valid {
		moves = append(moves, mv.String())
	}
	return moves
}

// ApplyIfLegal parses notation as a UCI move and applies it to p. The
// returned error is a *MoveError wrapping ErrMalformedMove or ErrIllegalMove.
// p itself is never modified.
func (e *Engine) ApplyIfLegal(p Position, notation string) (Position, error) {
	uci := strings.ToLower(strings.TrimSpace(notation))
	if !uciPattern.MatchString(uci) {
		return Position{}, &MoveError{Notation: notation, Err: ErrMalformedMove}
	}

	if !slices.Contains(e.LegalMoves(p), uci) {
		return Position{}, &MoveError{Notation: notation, Err: ErrIllegalMove}
	}

	moves := append(slices.Clone(p.moves), uci)
	next, err := replay(moves)
	if err != nil {
		return Position{}, &MoveError{Notation: notation, Err: fmt.Errorf("%w: %v", ErrIllegalMove, err)}
	}
	return next, nil
}

// Serialize returns the FEN of p.
func (e *Engine) Serialize(p Position) string {
	return p.game.FEN()
}

// Outcome reports the game result for p ("*" while the game is ongoing).
func (e *Engine) Outcome(p Position) string {
	return string(p.game.Outcome())
}

// replay rebuilds a game from the starting position so that history-dependent
// rules (repetition, fifty-move counter) keep working.
func replay(moves []string) (Position, error) {
	game := nchess.NewGame()
	for _, mv := range moves {
		if err := game.PushNotationMove(mv, nchess.UCINotation{}, nil); err != nil {
			return Position{}, fmt.Errorf("replay %s: %w", mv, err)
		}
	}
	return Position{game: game, moves: moves}, nil
}
