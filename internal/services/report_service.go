// Package services holds the report use cases behind the CLI and the HTTP
// API.
package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/analysis"
	"github.com/vytor/chessinsight/internal/errors"
	"github.com/vytor/chessinsight/internal/jobs"
	"github.com/vytor/chessinsight/internal/logger"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/repository"
	"github.com/vytor/chessinsight/internal/stats"
)

// MaxPGNBytes bounds the text accepted in one request.
const MaxPGNBytes = 16 << 20

// AnalyzeRequest is the input of a mistake report.
type AnalyzeRequest struct {
	PGN         string `json:"pgn"`
	Player      string `json:"player"`
	Color       string `json:"color,omitempty"`
	MaxMove     int    `json:"max_move,omitempty"`
	TopMistakes int    `json:"top_mistakes,omitempty"`
}

// StructuresRequest is the input of a pawn-structure report.
type StructuresRequest struct {
	PGN        string `json:"pgn"`
	Player     string `json:"player"`
	Color      string `json:"color"`
	MoveNumber int    `json:"move_number"`
}

// ReportService creates, runs and reads reports.
type ReportService interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*models.Report, error)
	Submit(ctx context.Context, req AnalyzeRequest) (*models.StoredReport, error)
	RunReport(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.StoredReport, error)
	List(ctx context.Context, filter models.ReportFilter) ([]models.StoredReport, int, error)
	Mistakes(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeRow, error)
	Structures(ctx context.Context, req StructuresRequest) (*models.StructureReport, error)
	Recover(ctx context.Context) (int, error)
}

type reportService struct {
	repo  repository.ReportRepository
	queue jobs.JobQueue
	opts  analysis.Options
	stats stats.Collector
	now   func() time.Time
}

// NewReportService wires the service. queue may be nil when only
// synchronous analysis is needed.
func NewReportService(repo repository.ReportRepository, queue jobs.JobQueue, opts analysis.Options, collector stats.Collector) ReportService {
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &reportService{repo: repo, queue: queue, opts: opts, stats: collector, now: time.Now}
}

func validate(pgnText, player, color string) error {
	switch {
	case strings.TrimSpace(player) == "":
		return errors.NewValidationError("player", "cannot be empty")
	case strings.TrimSpace(pgnText) == "":
		return errors.NewValidationError("pgn", "cannot be empty")
	case len(pgnText) > MaxPGNBytes:
		return errors.NewValidationError("pgn", "too large")
	case color != "" && analysis.ParseColor(color) == chess.NoColor:
		return errors.NewValidationError("color", "must be white or black")
	}
	return nil
}

func (s *reportService) options(ctx context.Context, req AnalyzeRequest) analysis.Options {
	o := s.opts
	o.Logger = logger.FromContext(ctx)
	o.PlayerColor = analysis.ParseColor(req.Color)
	if req.MaxMove > 0 {
		o.MaxMove = req.MaxMove
	}
	if req.TopMistakes > 0 {
		o.TopMistakes = req.TopMistakes
	}
	return o
}

// run analyses and records metrics.
func (s *reportService) run(ctx context.Context, req AnalyzeRequest) *models.Report {
	start := s.now()
	r := analysis.Analyze(req.PGN, req.Player, s.options(ctx, req))
	s.stats.ObserveHistogram(stats.MetricAnalyzeSeconds, s.now().Sub(start).Seconds())
	s.stats.IncCounter(stats.MetricGamesParsed, int64(r.TotalGames))
	s.stats.IncCounter(stats.MetricGamesMatched, int64(r.MatchedGames))
	s.stats.IncCounter(stats.MetricPliesAnalyzed, int64(r.AnalyzedPlies))
	s.stats.IncCounter(stats.MetricMistakes, int64(len(r.Mistakes)))
	return r
}

func (s *reportService) Analyze(ctx context.Context, req AnalyzeRequest) (*models.Report, error) {
	if err := validate(req.PGN, req.Player, req.Color); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx).WithField("player", req.Player)
	r := s.run(ctx, req)
	log.Info("analysed %d games (%d matched), %d mistakes", r.TotalGames, r.MatchedGames, len(r.Mistakes))
	return r, nil
}

func (s *reportService) Submit(ctx context.Context, req AnalyzeRequest) (*models.StoredReport, error) {
	if err := validate(req.PGN, req.Player, req.Color); err != nil {
		return nil, err
	}
	if s.queue == nil {
		return nil, errors.NewUnavailableError("background analysis is disabled", nil)
	}
	log := logger.FromContext(ctx)

	color := ""
	if c := analysis.ParseColor(req.Color); c != chess.NoColor {
		color = analysis.ColorName(c)
	}
	id, err := s.repo.Insert(ctx, models.StoredReport{Player: req.Player, Color: color, PGN: req.PGN})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if err := s.queue.EnqueueReport(id); err != nil {
		log.Warn("could not enqueue report %d: %v", id, err)
		if ferr := s.repo.Fail(ctx, id, "queue unavailable"); ferr != nil {
			log.Error("failed to mark report %d failed: %v", id, ferr)
		}
		s.stats.IncCounter(stats.MetricReportsFailed, 1)
		return nil, errors.NewUnavailableError("analysis queue is full, try again later", err)
	}
	log.Info("report %d queued for %s", id, req.Player)
	return &models.StoredReport{
		ID:        id,
		Player:    req.Player,
		Color:     color,
		Status:    models.StatusPending,
		CreatedAt: s.now().UTC(),
	}, nil
}

// RunReport is the body of a background job.
func (s *reportService) RunReport(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithField("report_id", id)

	if err := s.repo.MarkRunning(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrStateChange) {
			log.Debug("report no longer pending, skipping")
			return nil
		}
		return err
	}
	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	r := s.run(ctx, AnalyzeRequest{PGN: stored.PGN, Player: stored.Player, Color: stored.Color})
	if err := ctx.Err(); err != nil {
		// Left as processing; Recover puts it back in the queue on restart.
		return err
	}
	if r.TotalGames == 0 {
		s.stats.IncCounter(stats.MetricReportsFailed, 1)
		return s.repo.Fail(ctx, id, "no games found in PGN")
	}
	if err := s.repo.Complete(ctx, id, r); err != nil {
		s.stats.IncCounter(stats.MetricReportsFailed, 1)
		if ferr := s.repo.Fail(ctx, id, err.Error()); ferr != nil {
			log.Error("failed to mark report failed: %v", ferr)
		}
		return err
	}
	log.Info("report completed: %d mistakes", len(r.Mistakes))
	return nil
}

func (s *reportService) Get(ctx context.Context, id int64) (*models.StoredReport, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFoundError("report", id)
		}
		return nil, errors.NewInternalError(err)
	}
	r.PGN = ""
	return r, nil
}

func (s *reportService) List(ctx context.Context, filter models.ReportFilter) ([]models.StoredReport, int, error) {
	if filter.Status != "" {
		switch filter.Status {
		case models.StatusPending, models.StatusProcessing, models.StatusCompleted, models.StatusFailed:
		default:
			return nil, 0, errors.NewValidationError("status", "unknown status "+filter.Status)
		}
	}
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return list, total, nil
}

func (s *reportService) Mistakes(ctx context.Context, filter models.MistakeFilter) ([]models.MistakeRow, error) {
	stored, err := s.Get(ctx, filter.ReportID)
	if err != nil {
		return nil, err
	}
	if stored.Status != models.StatusCompleted {
		return nil, errors.NewConflictError("report is " + stored.Status)
	}
	rows, err := s.repo.Mistakes(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return rows, nil
}

func (s *reportService) Structures(ctx context.Context, req StructuresRequest) (*models.StructureReport, error) {
	if err := validate(req.PGN, req.Player, req.Color); err != nil {
		return nil, err
	}
	color := analysis.ParseColor(req.Color)
	if color == chess.NoColor {
		return nil, errors.NewValidationError("color", "must be white or black")
	}
	if req.MoveNumber < 1 {
		return nil, errors.NewValidationError("move_number", "must be at least 1")
	}
	o := s.opts
	o.Logger = logger.FromContext(ctx)
	return analysis.PawnStructures(req.PGN, req.Player, req.MoveNumber, color, o), nil
}

// Recover re-queues reports interrupted by a restart and returns how many
// were queued.
func (s *reportService) Recover(ctx context.Context) (int, error) {
	if s.queue == nil {
		return 0, nil
	}
	log := logger.FromContext(ctx)
	reset, err := s.repo.ResetProcessingToPending(ctx)
	if err != nil {
		return 0, err
	}
	if reset > 0 {
		log.Info("reset %d interrupted reports", reset)
	}
	ids, err := s.repo.PendingIDs(ctx)
	if err != nil {
		return 0, err
	}
	queued := 0
	for _, id := range ids {
		if err := s.queue.EnqueueReport(id); err != nil {
			log.Warn("stopped re-queueing at report %d: %v", id, err)
			break
		}
		queued++
	}
	return queued, nil
}
