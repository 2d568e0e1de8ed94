package logic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jclfantasy/optimizer-api/internal/models"
)

// scoreKey is the Redis sorted set holding one team's scores for one kind.
func scoreKey(teamID int64, kind models.PlayerKind) string {
	return fmt.Sprintf("standard_gain:%d:%s", teamID, kind)
}

// Sorted-set members carry the player name so rankings need no extra lookup.
func scoreMember(p models.ScoredPlayer) string {
	return strconv.FormatInt(p.PlayerID, 10) + ":" + p.Name
}

func parseScoreMember(member string) (int64, string, error) {
	id, name, _ := strings.Cut(member, ":")
	playerID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("bad score member %q", member)
	}
	return playerID, name, nil
}

type scoreStore struct {
	pg     PgPool
	redis  RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewScoreStore returns a ScoreStore that writes Postgres and Redis and reads
// Redis first.
func NewScoreStore(pg PgPool, rdb RedisClient, ttl time.Duration, logger *zap.Logger) ScoreStore {
	return &scoreStore{pg: pg, redis: rdb, ttl: ttl, logger: logger.Sugar()}
}

// SaveScores upserts the scores in Postgres and replaces the team's ranking
// sets in Redis. Both writes are idempotent; a Redis failure is logged only.
func (s *scoreStore) SaveScores(ctx context.Context, teamID int64, scores []models.ScoredPlayer) error {
	if len(scores) == 0 {
		return nil
	}
	ids := make([]int64, len(scores))
	gains := make([]float64, len(scores))
	byKind := make(map[models.PlayerKind][]redis.Z)
	for i, sp := range scores {
		ids[i] = sp.PlayerID
		gains[i] = sp.StandardGain
		byKind[sp.Kind] = append(byKind[sp.Kind], redis.Z{Score: sp.StandardGain, Member: scoreMember(sp)})
	}

	_, err := s.pg.Exec(ctx, `
		INSERT INTO player_scores (team_id, player_id, standard_gain, computed_at)
		SELECT $1, u.player_id, u.standard_gain, now()
		FROM unnest($2::bigint[], $3::float8[]) AS u(player_id, standard_gain)
		ON CONFLICT (team_id, player_id)
		DO UPDATE SET standard_gain = EXCLUDED.standard_gain, computed_at = EXCLUDED.computed_at`,
		teamID, ids, gains)
	if err != nil {
		return fmt.Errorf("score upsert failed: %w", err)
	}

	for kind, members := range byKind {
		if err := s.cache(ctx, teamID, kind, members); err != nil {
			s.logger.Warnw("Failed to cache scores", "team", teamID, "kind", kind, "error", err)
		}
	}
	return nil
}

// cache swaps in a new ranking in one MULTI/EXEC, so readers never see the
// set empty or half written.
func (s *scoreStore) cache(ctx context.Context, teamID int64, kind models.PlayerKind, members []redis.Z) error {
	key := scoreKey(teamID, kind)
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.ZAdd(ctx, key, members...)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	return err
}

// TopScores returns the highest scores for a team and kind, best first.
func (s *scoreStore) TopScores(ctx context.Context, teamID int64, kind models.PlayerKind, limit int) ([]models.ScoredPlayer, error) {
	if limit <= 0 {
		return nil, invalidf("limit must be positive")
	}

	zs, err := s.redis.ZRevRangeWithScores(ctx, scoreKey(teamID, kind), 0, int64(limit-1)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warnw("Score cache read failed, using Postgres", "team", teamID, "error", err)
	}
	if err == nil && len(zs) > 0 {
		out := make([]models.ScoredPlayer, 0, len(zs))
		for i, z := range zs {
			member, _ := z.Member.(string)
			id, name, perr := parseScoreMember(member)
			if perr != nil {
				s.logger.Warnw("Dropping unreadable score member", "member", z.Member)
				continue
			}
			out = append(out, models.ScoredPlayer{
				Rank: i + 1, PlayerID: id, Name: name, Kind: kind, StandardGain: z.Score,
			})
		}
		return out, nil
	}

	rows, err := s.pg.Query(ctx, `
		SELECT p.id, p.name, s.standard_gain
		FROM player_scores s
		JOIN players p ON p.id = s.player_id
		WHERE s.team_id = $1 AND p.kind = $2
		ORDER BY s.standard_gain DESC, p.id`, teamID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("top score query failed: %w", err)
	}
	defer rows.Close()

	var out []models.ScoredPlayer
	for rows.Next() {
		sp := models.ScoredPlayer{Rank: len(out) + 1, Kind: kind}
		if err := rows.Scan(&sp.PlayerID, &sp.Name, &sp.StandardGain); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("score row iteration failed: %w", err)
	}

	// Warm the cache with the full ranking, then trim to the requested size.
	if len(out) > 0 {
		members := make([]redis.Z, len(out))
		for i, sp := range out {
			members[i] = redis.Z{Score: sp.StandardGain, Member: scoreMember(sp)}
		}
		if err := s.cache(ctx, teamID, kind, members); err != nil {
			s.logger.Warnw("Failed to warm score cache", "team", teamID, "kind", kind, "error", err)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
