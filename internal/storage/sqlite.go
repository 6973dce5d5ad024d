// Package storage keeps a ledger of finished games in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match results.
type Store struct {
	db *sql.DB
}

// GameResult is the outcome of one game of a match.
type GameResult struct {
	ID         int64
	MatchID    string
	GameIndex  int
	Map        string
	WinnerTeam int // -1 for a draw
	DurationMs int
	Players    []PlayerResult
	CreatedAt  time.Time
}

// PlayerResult is one slot's line in a game result.
type PlayerResult struct {
	Slot  int
	Team  int
	AI    bool
	Kills int
	Alive bool
	Won   bool
}

// SlotTally aggregates all recorded games per slot.
type SlotTally struct {
	Slot  int
	Games int
	Wins  int
	Kills int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			game_index INTEGER NOT NULL,
			map TEXT NOT NULL,
			winner_team INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (match_id, game_index)
		);
		CREATE INDEX IF NOT EXISTS idx_games_match_id ON games(match_id);

		CREATE TABLE IF NOT EXISTS game_players (
			game_id INTEGER NOT NULL REFERENCES games(id),
			slot INTEGER NOT NULL,
			team INTEGER NOT NULL,
			ai INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			alive INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (game_id, slot)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game with its player lines in one transaction.
// Returns the ID of the inserted game.
func (s *Store) SaveGame(r GameResult) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO games (match_id, game_index, map, winner_team, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		r.MatchID, r.GameIndex, r.Map, r.WinnerTeam, r.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, p := range r.Players {
		if _, err := tx.Exec(
			`INSERT INTO game_players (game_id, slot, team, ai, kills, alive, won)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, p.Slot, p.Team, p.AI, p.Kills, p.Alive, p.Won,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save player %d: %w", p.Slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit game: %w", err)
	}
	return id, nil
}

// RecentGames returns the latest games, newest first, with their player lines.
func (s *Store) RecentGames(limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, game_index, map, winner_team, duration_ms, created_at
		 FROM games
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameResult
	for rows.Next() {
		var g GameResult
		var createdAt any
		if err := rows.Scan(&g.ID, &g.MatchID, &g.GameIndex, &g.Map, &g.WinnerTeam, &g.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for i := range games {
		players, err := s.players(games[i].ID)
		if err != nil {
			return nil, err
		}
		games[i].Players = players
	}
	return games, nil
}

func (s *Store) players(gameID int64) ([]PlayerResult, error) {
	rows, err := s.db.Query(
		`SELECT slot, team, ai, kills, alive, won
		 FROM game_players
		 WHERE game_id = ?
		 ORDER BY slot`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var out []PlayerResult
	for rows.Next() {
		var p PlayerResult
		if err := rows.Scan(&p.Slot, &p.Team, &p.AI, &p.Kills, &p.Alive, &p.Won); err != nil {
			return nil, fmt.Errorf("storage: cannot scan player: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Tally sums games, wins and kills per slot over every recorded game.
func (s *Store) Tally() ([]SlotTally, error) {
	rows, err := s.db.Query(
		`SELECT slot, COUNT(*), SUM(won), SUM(kills)
		 FROM game_players
		 GROUP BY slot
		 ORDER BY slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tally: %w", err)
	}
	defer rows.Close()

	var out []SlotTally
	for rows.Next() {
		var t SlotTally
		if err := rows.Scan(&t.Slot, &t.Games, &t.Wins, &t.Kills); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tally: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
