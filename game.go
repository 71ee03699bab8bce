package gobblet

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Classic gobblet setup: a 4×4 board and four nesting sizes, three pieces
// of each per player.
var DefaultSizeNames = []string{"small", "medium", "large", "huge"}

const (
	DefaultBoardSize = 4
	DefaultNumStacks = 3
)

// Game drives one match: the shared board, the players in seat order, and
// the commit step that applies validated moves. The rule core underneath
// never mutates anything on its own; Apply is the only writer, and one
// Apply call is the serialization unit for concurrent callers.
type Game struct {
	Board   *Board
	Players []*Player
	Meta    []*Tag

	current int
	winner  *Player
}

// NewGame builds a board and a full dugout for every named player. At
// least two players are required.
func NewGame(size int, sizeNames []string, numStacks int, names ...string) (*Game, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("a game needs at least two players, got %d", len(names))
	}
	if len(sizeNames) == 0 {
		sizeNames = DefaultSizeNames
	}
	if numStacks < 1 {
		numStacks = DefaultNumStacks
	}

	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}

	g := &Game{Board: board}
	for _, name := range names {
		p := NewPlayer(g.nextTurn, board, sizeNames, numStacks)
		p.SetName(name)
		g.Players = append(g.Players, p)
	}

	return g, nil
}

func (g *Game) nextTurn() {
	g.current = (g.current + 1) % len(g.Players)
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	return g.Players[g.current]
}

// GameOver returns the winner and whether the game has ended.
func (g *Game) GameOver() (*Player, bool) {
	return g.winner, g.winner != nil
}

// GetMeta does a linear search for the key specified and returns the
// value. It returns an error if the key does not exist.
func (g *Game) GetMeta(key string) (string, error) {
	for _, t := range g.Meta {
		if t != nil && t.Key == key {
			return t.Value, nil
		}
	}

	return "", fmt.Errorf("no such meta key '%s'", key)
}

// Apply validates mv for p and, if it is legal, commits it. A
// dugout-sourced piece is consumed from the dugout and appended to the
// destination stack; a board-sourced piece is lifted off its source stack
// and appended to the destination. The win check runs after every commit.
func (g *Game) Apply(p *Player, mv *Move) error {
	if g.winner != nil {
		return invalidMove("game is already over")
	}
	if p != g.CurrentPlayer() {
		return invalidMove("it is not %s's turn", p.Name())
	}

	var dugoutSrc *Piece
	if mv.IsPlace() {
		piece := Piece{Player: p.id, Size: mv.Size}
		if mv.Size < len(p.dugout.sizeNames) {
			piece.Name = p.dugout.sizeNames[mv.Size]
		}
		dugoutSrc = &piece
	}

	if err := p.Validate(dugoutSrc, BoardMove{Src: mv.Src, Dest: mv.Dest}); err != nil {
		return err
	}

	var moving Piece
	if dugoutSrc != nil {
		used, err := p.dugout.Use(RefPiece(*dugoutSrc))
		if err != nil {
			return err
		}
		moving = used
	} else {
		cell, err := g.Board.Cell(*mv.Src)
		if err != nil {
			return err
		}
		moving, _ = cell.Pop()
	}

	if err := g.Board.Place(*mv.Dest, moving); err != nil {
		return err
	}

	p.clearPending()

	if p.CheckWin(g.Board) {
		g.winner = p
		log.Infow("game over", "winner", p.Name(), "move", mv.Text)
	}

	if p.onTurnEnd != nil {
		p.onTurnEnd()
	}

	return nil
}

// ParseRecord parses a game record and replays it through the rules
// engine. A record is a set of `[Key "Value"]` tag lines followed by
// numbered turn lines such as `1. 2a1 3d4`. The Size tag is required;
// Sizes (comma separated, smallest first), Stacks, Player1 and Player2
// are optional. Replay stops as soon as a move wins.
func ParseRecord(record []byte) (*Game, error) {
	var meta []*Tag
	var turns []*Turn

	s := bufio.NewScanner(bytes.NewReader(record))
	for s.Scan() {
		l := s.Text()
		ta, err := parseTag(l)
		if err != nil {
			return nil, err
		}

		if ta != nil {
			meta = append(meta, ta)
			continue
		}

		tu, err := parseTurn(l)
		if err != nil {
			return nil, err
		}
		if tu != nil && tu.Number > 0 {
			turns = append(turns, tu)
		}
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	g, err := gameFromMeta(meta)
	if err != nil {
		return nil, err
	}

	for _, t := range turns {
		for seat, mv := range []*Move{t.First, t.Second} {
			if mv == nil {
				continue
			}
			if _, over := g.GameOver(); over {
				break
			}
			if err := g.Apply(g.Players[seat], mv); err != nil {
				return nil, fmt.Errorf("turn %d, %s: %w", t.Number, mv.Text, err)
			}
		}
	}

	return g, nil
}

func gameFromMeta(meta []*Tag) (*Game, error) {
	lookup := func(key, fallback string) string {
		for _, t := range meta {
			if t != nil && t.Key == key {
				return t.Value
			}
		}
		return fallback
	}

	sizeVal := lookup("Size", "")
	if sizeVal == "" {
		return nil, fmt.Errorf("record has no Size tag")
	}
	size, err := strconv.Atoi(sizeVal)
	if err != nil {
		return nil, err
	}

	sizeNames := DefaultSizeNames
	if v := lookup("Sizes", ""); v != "" {
		sizeNames = strings.Split(v, ",")
	}

	numStacks := DefaultNumStacks
	if v := lookup("Stacks", ""); v != "" {
		numStacks, err = strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
	}

	g, err := NewGame(size, sizeNames, numStacks,
		lookup("Player1", "Player 1"), lookup("Player2", "Player 2"))
	if err != nil {
		return nil, err
	}
	g.Meta = meta

	return g, nil
}

func parseTag(line string) (*Tag, error) {
	var tag *Tag

	// Example: [Tag_Name "Tag Data"]
	tagRegex := regexp.MustCompile(`\[([0-9A-Za-z_]+) "(.*)"\]`)
	parts := tagRegex.FindStringSubmatch(line)

	if len(parts) >= 3 {
		tag = &Tag{
			Key:   parts[1],
			Value: parts[2],
		}
	}

	return tag, nil
}

func parseTurn(line string) (*Turn, error) {
	turn := &Turn{}

	// Parse out comments
	commentRegex := regexp.MustCompile("{.+}")
	cmnt := strings.TrimSpace(strings.Join(commentRegex.FindAllString(line, -1), " "))
	cmnt = strings.Trim(cmnt, "{}")
	turn.Comment = cmnt

	cleanLine := strings.TrimSpace(commentRegex.ReplaceAllString(line, ""))

	if cleanLine != "" {
		fields := strings.Fields(cleanLine)
		if len(fields) < 3 || len(fields) > 4 {
			return turn, fmt.Errorf("line doesn't have correct number of parts: %+v", fields)
		}

		numberVal := strings.TrimRight(fields[0], ".")
		if regexp.MustCompile("[^0-9]+").MatchString(numberVal) {
			return nil, nil
		}
		num, err := strconv.ParseInt(numberVal, 10, 64)
		if err != nil {
			return nil, err
		}
		turn.Number = num

		first, err := NewMove(fields[1])
		if err != nil {
			return nil, err
		}

		second, err := NewMove(fields[2])
		if err != nil {
			return nil, err
		}

		turn.First = first
		turn.Second = second

		if len(fields) == 4 {
			turn.Result = fields[3]
		}
	}

	if turn.Comment != "" || (turn.Number > 0 && (turn.First != nil || turn.Second != nil)) {
		return turn, nil
	}

	return nil, nil
}
