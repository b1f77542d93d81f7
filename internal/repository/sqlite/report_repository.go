package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/chessinsight/internal/logger"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/report"
	"github.com/vytor/chessinsight/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const defaultListLimit = 50

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a ReportRepository backed by db.
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Insert(ctx context.Context, sr models.StoredReport) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")

	status := sr.Status
	if status == "" {
		status = models.StatusPending
	}
	res, err := sqlBuilder.Insert("reports").
		Columns("player", "color", "status", "pgn").
		Values(sr.Player, sr.Color, status, sr.PGN).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		log.Error("failed to insert report: %v", err)
		return 0, fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("report inserted: id=%d player=%s", id, sr.Player)
	return id, nil
}

func (r *reportRepository) Get(ctx context.Context, id int64) (*models.StoredReport, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")

	q := sqlBuilder.Select(slices.Concat(summaryColumns, []string{"pgn", "report_json"})...).
		From("reports").
		Where(squirrel.Eq{"id": id}).
		RunWith(r.db).
		QueryRowContext(ctx)

	var (
		row  reportRow
		pgn  string
		body sql.NullString
	)
	if err := q.Scan(append(row.targets(), &pgn, &body)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("report not found: id=%d", id)
			return nil, fmt.Errorf("report %d: %w", id, repository.ErrNotFound)
		}
		log.Error("failed to get report: %v", err)
		return nil, err
	}
	sr := row.report()
	sr.PGN = pgn
	if body.Valid && body.String != "" {
		sr.Report = &models.Report{}
		if err := json.Unmarshal([]byte(body.String), sr.Report); err != nil {
			return nil, fmt.Errorf("decode report %d: %w", id, err)
		}
	}
	return &sr, nil
}

var summaryColumns = []string{
	"id", "player", "color", "status", "error", "total_games", "matched_games",
	"mistake_count", "created_at", "completed_at",
}

// reportRow receives the summary columns of one reports row.
type reportRow struct {
	sr          models.StoredReport
	completedAt sql.NullTime
}

func (row *reportRow) targets() []any {
	sr := &row.sr
	return []any{
		&sr.ID, &sr.Player, &sr.Color, &sr.Status, &sr.Error, &sr.TotalGames,
		&sr.MatchedGames, &sr.MistakeCount, &sr.CreatedAt, &row.completedAt,
	}
}

func (row *reportRow) report() models.StoredReport {
	sr := row.sr
	if row.completedAt.Valid {
		t := row.completedAt.Time
		sr.CompletedAt = &t
	}
	return sr
}

func filtered(q squirrel.SelectBuilder, f models.ReportFilter) squirrel.SelectBuilder {
	if f.Player != "" {
		q = q.Where(squirrel.Eq{"player": f.Player})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"status": f.Status})
	}
	return q
}

func (r *reportRepository) List(ctx context.Context, f models.ReportFilter) ([]models.StoredReport, error) {
	log := logger.FromContext(ctx).WithPrefix("report_repo")
	log.Debug("listing reports: player=%s status=%s limit=%d offset=%d", f.Player, f.Status, f.Limit, f.Offset)

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	q := filtered(sqlBuilder.Select(summaryColumns...).From("reports"), f).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	rows, err := q.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		log.Error("failed to list reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []models.StoredReport{}
	for rows.Next() {
		var row reportRow
		if err := rows.Scan(row.targets()...); err != nil {
			return nil, err
		}
		out = append(out, row.report())
	}
	return out, rows.Err()
}

func (r *reportRepository) Count(ctx context.Context, f models.ReportFilter) (int, error) {
	var n int
	err := filtered(sqlBuilder.Select("COUNT(*)").From("reports"), f).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&n)
	return n, err
}

// transition moves a report from one of the from states and fails with
// ErrNotFound or ErrStateChange when nothing matched.
func (r *reportRepository) transition(ctx context.Context, runner squirrel.BaseRunner, id int64, set map[string]any, from ...string) error {
	q := sqlBuilder.Update("reports").SetMap(set).Where(squirrel.Eq{"id": id})
	if len(from) > 0 {
		q = q.Where(squirrel.Eq{"status": from})
	}
	res, err := q.RunWith(runner).ExecContext(ctx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var status string
	err = sqlBuilder.Select("status").From("reports").Where(squirrel.Eq{"id": id}).
		RunWith(runner).QueryRowContext(ctx).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("report %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("report %d is %s: %w", id, status, repository.ErrStateChange)
}

func (r *reportRepository) MarkRunning(ctx context.Context, id int64) error {
	logger.FromContext(ctx).WithPrefix("report_repo").Debug("marking report running: id=%d", id)
	return r.transition(ctx, r.db, id, map[string]any{"status": models.StatusProcessing}, models.StatusPending)
}

func (r *reportRepository) Complete(ctx context.Context, id int64, rep *models.Report) error {
	log := logger.FromContext(ctx).WithPrefix("report_repo")

	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report %d: %w", id, err)
	}
	return tx(ctx, r.db, func(t *sql.Tx) error {
		err := r.transition(ctx, t, id, map[string]any{
			"status":        models.StatusCompleted,
			"error":         "",
			"total_games":   rep.TotalGames,
			"matched_games": rep.MatchedGames,
			"mistake_count": len(rep.Mistakes),
			"report_json":   string(body),
			"pgn":           "",
			"completed_at":  time.Now().UTC(),
		}, models.StatusProcessing)
		if err != nil {
			return err
		}
		if len(rep.Mistakes) == 0 {
			return nil
		}
		ins := sqlBuilder.Insert("report_mistakes").Columns(
			"report_id", "game_index", "ply", "played_san", "kind", "severity", "theme", "tags", "cp_loss", "fen_before",
		)
		for _, m := range rep.Mistakes {
			ins = ins.Values(id, m.Game.Index, m.Ply, m.PlayedSAN, m.Kind.String(), m.Severity.String(),
				m.Theme.String(), report.Signature(m.Tags), m.CPLossAbs, m.FENBefore)
		}
		if _, err := ins.RunWith(t).ExecContext(ctx); err != nil {
			log.Error("failed to index mistakes of report %d: %v", id, err)
			return err
		}
		log.Debug("report completed: id=%d mistakes=%d", id, len(rep.Mistakes))
		return nil
	})
}

func (r *reportRepository) Fail(ctx context.Context, id int64, reason string) error {
	logger.FromContext(ctx).WithPrefix("report_repo").Warn("report %d failed: %s", id, reason)
	return r.transition(ctx, r.db, id, map[string]any{
		"status":       models.StatusFailed,
		"error":        reason,
		"pgn":          "",
		"completed_at": time.Now().UTC(),
	}, models.StatusPending, models.StatusProcessing)
}

func (r *reportRepository) ResetProcessingToPending(ctx context.Context) (int64, error) {
	res, err := sqlBuilder.Update("reports").
		Set("status", models.StatusPending).
		Where(squirrel.Eq{"status": models.StatusProcessing}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *reportRepository) PendingIDs(ctx context.Context) ([]int64, error) {
	rows, err := sqlBuilder.Select("id").From("reports").
		Where(squirrel.Eq{"status": models.StatusPending}).
		OrderBy("id").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *reportRepository) Mistakes(ctx context.Context, f models.MistakeFilter) ([]models.MistakeRow, error) {
	q := sqlBuilder.Select(
		"report_id", "game_index", "ply", "played_san", "kind", "severity", "theme", "tags", "cp_loss", "fen_before",
	).From("report_mistakes").Where(squirrel.Eq{"report_id": f.ReportID})
	if f.Kind != "" {
		q = q.Where(squirrel.Eq{"kind": f.Kind})
	}
	if f.Theme != "" {
		q = q.Where(squirrel.Eq{"theme": f.Theme})
	}
	q = q.OrderBy("id")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	rows, err := q.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.MistakeRow{}
	for rows.Next() {
		var (
			m                     models.MistakeRow
			kind, severity, theme string
			loss                  sql.NullInt64
		)
		if err := rows.Scan(&m.ReportID, &m.GameIndex, &m.Ply, &m.PlayedSAN, &kind, &severity, &theme, &m.Tags, &loss, &m.FENBefore); err != nil {
			return nil, err
		}
		if err := errors.Join(
			m.Kind.UnmarshalText([]byte(kind)),
			m.Severity.UnmarshalText([]byte(severity)),
			m.Theme.UnmarshalText([]byte(theme)),
		); err != nil {
			return nil, err
		}
		if loss.Valid {
			v := int(loss.Int64)
			m.CPLoss = &v
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
