package logs

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/nelhage/connect4/c4"
	"github.com/nelhage/connect4/notation"
)

const (
	ResultOne        = "1-0"
	ResultTwo        = "0-1"
	ResultDraw       = "1/2"
	ResultUnfinished = "*"
)

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

type Game struct {
	ID               int64     `db:"id"`
	Timestamp        time.Time `db:"time"`
	Player1, Player2 string
	Result           string `db:"result"`
	Winner           string `db:"winner"`
	Plies            int    `db:"plies"`
	Moves            string `db:"moves"`
	Final            string `db:"final"`
}

type Standing struct {
	Player string `db:"player"`
	Wins   int    `db:"wins"`
	Losses int    `db:"losses"`
	Draws  int    `db:"draws"`
	Games  int    `db:"games"`
}

// NewGame describes a game between two named players that ended in
// final after the given moves.
func NewGame(player1, player2 string, moves []c4.Move, final *c4.Position) *Game {
	g := &Game{
		Timestamp: time.Now().UTC(),
		Player1:   player1,
		Player2:   player2,
		Result:    ResultUnfinished,
		Plies:     len(moves),
		Moves:     notation.FormatMoves(moves),
		Final:     fmt.Sprintf("%016x", final.Hash()),
	}
	if over, winner := final.GameOver(); over {
		switch winner {
		case c4.One:
			g.Result = ResultOne
		case c4.Two:
			g.Result = ResultTwo
		default:
			g.Result = ResultDraw
		}
		if winner != c4.NoColor {
			g.Winner = winner.String()
		}
	}
	return g
}

func Open(db string) (*Repository, error) {
	sql, err := sqlx.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}
	_, err = sql.Exec(createGameTable)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create game table: %w", err)
	}
	_, err = sql.Exec(createPlayerTable)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create player_games view: %w", err)
	}

	repo := &Repository{db: sql}
	repo.insert, err = sql.PrepareNamed(insertStmt)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertGame(g *Game) error {
	return r.insertGame(r.insert, g)
}

func (r *Repository) insertGame(stmt *sqlx.NamedStmt, g *Game) error {
	res, err := stmt.Exec(g)
	if err != nil {
		return err
	}
	g.ID, err = res.LastInsertId()
	return err
}

// InsertGames writes all of gs in a single transaction.
func (r *Repository) InsertGames(gs []*Game) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmt(r.insert)
	for _, g := range gs {
		if e := r.insertGame(stmt, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

// RecentGames returns up to limit games, newest first.
func (r *Repository) RecentGames(limit int) ([]Game, error) {
	var gs []Game
	if err := r.db.Select(&gs, selectRecent, limit); err != nil {
		return nil, fmt.Errorf("recent games: %w", err)
	}
	return gs, nil
}

// Standings tallies results per player across both colors, most wins
// first.
func (r *Repository) Standings() ([]Standing, error) {
	var ss []Standing
	if err := r.db.Select(&ss, selectStandings); err != nil {
		return nil, fmt.Errorf("standings: %w", err)
	}
	return ss, nil
}

func (r *Repository) Close() error {
	if r.insert != nil {
		r.insert.Close()
	}
	return r.db.Close()
}
