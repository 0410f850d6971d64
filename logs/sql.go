package logs

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  id integer primary key autoincrement,
  time datetime,
  player1 varchar,
  player2 varchar,
  result string,
  winner string,
  plies int,
  moves string,
  final string
)`

const createPlayerTable = `
CREATE VIEW IF NOT EXISTS player_games (
  id, player, opponent, color, outcome, plies
) AS
SELECT id, player2, player1, 'two',
       CASE result WHEN '1-0' THEN 'loss' WHEN '0-1' THEN 'win' WHEN '1/2' THEN 'draw' ELSE 'unfinished' END,
       plies
 FROM games
UNION ALL
SELECT id, player1, player2, 'one',
       CASE result WHEN '1-0' THEN 'win' WHEN '0-1' THEN 'loss' WHEN '1/2' THEN 'draw' ELSE 'unfinished' END,
       plies
 FROM games
`

const insertStmt = `
INSERT INTO games (time, player1, player2, result, winner, plies, moves, final)
VALUES (:time, :player1, :player2, :result, :winner, :plies, :moves, :final)
`

const selectRecent = `
SELECT id, time, player1, player2, result, winner, plies, moves, final
FROM games
ORDER BY id DESC
LIMIT ?
`

const selectStandings = `
SELECT player,
       SUM(outcome = 'win') AS wins,
       SUM(outcome = 'loss') AS losses,
       SUM(outcome = 'draw') AS draws,
       COUNT(*) AS games
FROM player_games
GROUP BY player
ORDER BY wins DESC, player
`
