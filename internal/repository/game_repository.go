package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"OddsPull/internal/domain/models"
	"OddsPull/internal/domain/repository"
	pkgch "OddsPull/pkg/clickhouse"
	pkgkafka "OddsPull/pkg/kafka"
	"OddsPull/pkg/util"
)

// ClickHouse DDL, idempotent. The games table is keyed by (sport, date,
// game_id) so re-ingesting a day replaces rather than duplicates.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS games (
		game_id            String,
		sport              LowCardinality(String),
		date               Date,
		status             LowCardinality(String),
		home_team          String,
		away_team          String,
		home_score         Int32,
		away_score         Int32,
		is_completed       UInt8,
		total_score        Int32,
		score_differential Int32,
		winner             String,
		home_team_result   LowCardinality(String),
		flags              String,
		ingested_at        DateTime DEFAULT now()
	) ENGINE = ReplacingMergeTree(ingested_at)
	ORDER BY (sport, date, game_id)`,

	`CREATE TABLE IF NOT EXISTS opportunities (
		game_id               String,
		bookmaker             LowCardinality(String),
		team                  String,
		odds                  Int32,
		predicted_probability Float64,
		expected_value        Float64,
		market                LowCardinality(String),
		ts                    DateTime
	) ENGINE = MergeTree
	ORDER BY (ts, game_id)`,
}

// ClickHouseGameStore implements GameStore on ClickHouse.
type ClickHouseGameStore struct {
	client *pkgch.Client
	db     *sql.DB
}

func NewClickHouseGameStore(client *pkgch.Client) repository.GameStore {
	return &ClickHouseGameStore{client: client, db: client.DB()}
}

func (s *ClickHouseGameStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, schemaStatements)
}

const gameInsertColumns = "(game_id, sport, date, status, home_team, away_team, home_score, away_score, is_completed, total_score, score_differential, winner, home_team_result, flags)"

func (s *ClickHouseGameStore) StoreGames(ctx context.Context, games []models.GameRecord) error {
	if len(games) == 0 {
		return nil
	}
	const chunkSize = 1000
	for start := 0; start < len(games); start += chunkSize {
		end := start + chunkSize
		if end > len(games) {
			end = len(games)
		}

		values := make([]string, 0, end-start)
		args := make([]any, 0, (end-start)*14)
		for _, g := range games[start:end] {
			day, ok := util.ParseDay(g.Date)
			if !ok {
				continue
			}
			flags, err := json.Marshal(g.Flags)
			if err != nil {
				flags = []byte("{}")
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				g.GameID, g.Sport, day, g.Status,
				g.HomeTeam, g.AwayTeam, g.HomeScore, g.AwayScore,
				boolToUInt8(g.IsCompleted), g.TotalScore, g.ScoreDifferential,
				g.Winner, g.HomeTeamResult, string(flags),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO games %s VALUES %s", gameInsertColumns, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("store games: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseGameStore) StoreOpportunities(ctx context.Context, opps []models.EVOpportunity) error {
	if len(opps) == 0 {
		return nil
	}
	values := make([]string, 0, len(opps))
	args := make([]any, 0, len(opps)*8)
	for _, o := range opps {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			o.GameID, o.Bookmaker, o.Team, o.Odds,
			o.PredictedProbability, o.ExpectedValue, o.Market, o.Timestamp,
		)
	}
	q := "INSERT INTO opportunities (game_id, bookmaker, team, odds, predicted_probability, expected_value, market, ts) VALUES " +
		strings.Join(values, ",")
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("store opportunities: %w", err)
	}
	return nil
}

const gameSelectColumns = "game_id, sport, date, status, home_team, away_team, home_score, away_score, is_completed, total_score, score_differential, winner, home_team_result, flags"

func (s *ClickHouseGameStore) GamesByTeam(ctx context.Context, sport repository.Sport, team string, from, to time.Time) ([]models.GameRecord, error) {
	q := fmt.Sprintf(`SELECT %s FROM games FINAL
		WHERE sport = ? AND (home_team = ? OR away_team = ?) AND date >= ? AND date <= ?
		ORDER BY date`, gameSelectColumns)
	rows, err := s.db.QueryContext(ctx, q, string(sport), team, team, from, to)
	if err != nil {
		return nil, fmt.Errorf("query games by team: %w", err)
	}
	defer rows.Close()
	return scanGames(rows)
}

func (s *ClickHouseGameStore) GamesByDate(ctx context.Context, sport repository.Sport, day time.Time) ([]models.GameRecord, error) {
	q := fmt.Sprintf(`SELECT %s FROM games FINAL
		WHERE sport = ? AND date = ?
		ORDER BY game_id`, gameSelectColumns)
	rows, err := s.db.QueryContext(ctx, q, string(sport), day)
	if err != nil {
		return nil, fmt.Errorf("query games by date: %w", err)
	}
	defer rows.Close()
	return scanGames(rows)
}

func scanGames(rows *sql.Rows) ([]models.GameRecord, error) {
	var games []models.GameRecord
	for rows.Next() {
		var (
			g         models.GameRecord
			day       time.Time
			completed uint8
			flags     string
		)
		if err := rows.Scan(
			&g.GameID, &g.Sport, &day, &g.Status,
			&g.HomeTeam, &g.AwayTeam, &g.HomeScore, &g.AwayScore,
			&completed, &g.TotalScore, &g.ScoreDifferential,
			&g.Winner, &g.HomeTeamResult, &flags,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.Date = util.DayString(day)
		g.IsCompleted = completed != 0
		if flags != "" && flags != "null" {
			_ = json.Unmarshal([]byte(flags), &g.Flags)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *ClickHouseGameStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseGameStore) Close() error {
	return nil // pool owned by pkg client
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// KafkaPublisher implements Publisher on the shared producer.
type KafkaPublisher struct {
	producer   *pkgkafka.Producer
	gamesTopic string
	oppsTopic  string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, gamesTopic, oppsTopic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, gamesTopic: gamesTopic, oppsTopic: oppsTopic}
}

func (p *KafkaPublisher) PublishGames(ctx context.Context, games []models.GameRecord) error {
	if len(games) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(games))
	for i, g := range games {
		msgs[i] = pkgkafka.Message{Key: []byte(g.GameID), Value: g}
	}
	return p.producer.PublishBatch(ctx, p.gamesTopic, msgs)
}

func (p *KafkaPublisher) PublishOpportunities(ctx context.Context, opps []models.EVOpportunity) error {
	if len(opps) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(opps))
	for i, o := range opps {
		msgs[i] = pkgkafka.Message{Key: []byte(o.GameID), Value: o}
	}
	return p.producer.PublishBatch(ctx, p.oppsTopic, msgs)
}

// PublishMessage sends a single payload to an arbitrary topic. The log
// collector uses this for shipping aggregated log entries.
func (p *KafkaPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
