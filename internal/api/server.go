package api

//go:generate go tool oapi-codegen -config ../../api/cfg.yaml ../../api/openapi.yaml

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"

	"hamming-numbers/internal/errors"
	"hamming-numbers/internal/hamming"
	"hamming-numbers/internal/primes"
	"hamming-numbers/internal/store"
	"hamming-numbers/internal/sweep"
)

// Largest threshold ListNumbers will enumerate into a response body.
const maxNumbersThreshold = 1_000_000

// Limits bounds the work a single request may trigger.
type Limits struct {
	MaxType        int64
	MaxThreshold   int64
	MaxNaive       int64
	MaxSweepCells  int64
	SweepWorkers   int
	ComputeTimeout time.Duration // zero disables the timeout
}

// DefaultLimits mirrors the config defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxType:        100_000,
		MaxThreshold:   1_000_000_000_000,
		MaxNaive:       10_000_000,
		MaxSweepCells:  10_000,
		ComputeTimeout: 30 * time.Second,
	}
}

// Server implements ServerInterface on top of the counting library and the
// SQLite result store.
type Server struct {
	db     *sql.DB
	logger *zap.Logger
	limits Limits
}

// NewServer creates a new API server
func NewServer(db *sql.DB, logger *zap.Logger, limits Limits) ServerInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		db:     db,
		logger: logger,
		limits: limits,
	}
}

// GetCount handles GET /count
func (s *Server) GetCount(w http.ResponseWriter, r *http.Request, params GetCountParams) {
	var strategyName, basisName string
	if params.Strategy != nil {
		strategyName = string(*params.Strategy)
	}
	if params.Basis != nil {
		basisName = string(*params.Basis)
	}

	strategy, err := hamming.ParseStrategy(strategyName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	basis, err := primes.ParseBasis(basisName)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidParameter("basis", err.Error()))
		return
	}

	if err := s.checkType(params.Type); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.checkThreshold(params.Threshold, strategy); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	key := store.CountKey{Type: params.Type, Threshold: params.Threshold, Strategy: strategy, Basis: basis}
	resp := CountResponse{
		Type:      params.Type,
		Threshold: params.Threshold,
		Strategy:  string(strategy),
		Basis:     string(basis),
	}

	if s.db != nil {
		count, found, err := store.GetCount(s.db, key)
		if err != nil {
			s.logger.Warn("count cache lookup failed", zap.Error(err))
		} else if found {
			countCacheHits.Inc()
			resp.Count = count
			resp.Cached = true
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	ctx, cancel := s.computeContext(r.Context())
	defer cancel()

	start := time.Now()
	resp.Count, err = hamming.CountContext(ctx, params.Type, params.Threshold, hamming.WithStrategy(strategy), hamming.WithBasis(basis))
	if err != nil {
		s.logger.Warn("count aborted",
			zap.Int64("type", params.Type),
			zap.Int64("threshold", params.Threshold),
			zap.String("strategy", string(strategy)),
			zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, errors.Wrap(errors.ErrCodeTimeout, "Count did not finish in time", err))
		return
	}
	countDuration.WithLabelValues(string(strategy)).Observe(time.Since(start).Seconds())
	countsComputed.WithLabelValues(string(strategy)).Inc()

	s.logger.Debug("count computed",
		zap.Int64("type", params.Type),
		zap.Int64("threshold", params.Threshold),
		zap.String("strategy", string(strategy)),
		zap.String("basis", string(basis)),
		zap.Int64("count", resp.Count),
		zap.Duration("elapsed", time.Since(start)))

	if s.db != nil {
		if err := store.SaveCount(s.db, key, resp.Count); err != nil {
			s.logger.Warn("failed to cache count", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListNumbers handles GET /numbers
func (s *Server) ListNumbers(w http.ResponseWriter, r *http.Request, params ListNumbersParams) {
	var basisName string
	if params.Basis != nil {
		basisName = string(*params.Basis)
	}
	basis, err := primes.ParseBasis(basisName)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidParameter("basis", err.Error()))
		return
	}

	if err := s.checkType(params.Type); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if params.Threshold > maxNumbersThreshold {
		writeError(w, http.StatusBadRequest, errors.InvalidParameter("threshold",
			fmt.Sprintf("threshold must not exceed %d when listing numbers", maxNumbersThreshold)))
		return
	}

	numbers := hamming.Numbers(primes.ForType(params.Type, basis), params.Threshold)
	writeJSON(w, http.StatusOK, NumbersResponse{
		Type:      params.Type,
		Threshold: params.Threshold,
		Basis:     string(basis),
		Numbers:   numbers,
	})
}

// ListPrimes handles GET /primes
func (s *Server) ListPrimes(w http.ResponseWriter, r *http.Request, params ListPrimesParams) {
	if params.Bound > s.limits.MaxType {
		writeError(w, http.StatusBadRequest, errors.InvalidParameter("bound",
			fmt.Sprintf("bound must not exceed %d", s.limits.MaxType)))
		return
	}

	writeJSON(w, http.StatusOK, PrimesResponse{
		Bound:  params.Bound,
		Primes: primes.List(params.Bound),
	})
}

// ListSweeps handles GET /sweeps
func (s *Server) ListSweeps(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	stored, err := store.ListSweeps(s.db)
	if err != nil {
		s.logger.Error("failed to list sweeps", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, "Failed to list sweeps", err))
		return
	}

	resp := make([]Sweep, 0, len(stored))
	for i := range stored {
		resp = append(resp, toAPISweep(&stored[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateSweep handles POST /sweeps
func (s *Server) CreateSweep(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var body CreateSweepJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidParameter, "Invalid request body", err))
		return
	}

	params := fromAPIParams(body)
	if err := sweep.Validate(params); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.checkType(params.MaxType); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.checkThreshold(params.MaxThreshold, hamming.StrategyEnumeration); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.checkSweepSize(params); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := s.computeContext(r.Context())
	defer cancel()

	start := time.Now()
	grid, err := sweep.Sample(ctx, params,
		sweep.WithWorkers(s.limits.SweepWorkers),
		sweep.WithLogger(s.logger))
	if err != nil && ctx.Err() != nil {
		s.logger.Warn("sweep aborted", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, errors.Wrap(errors.ErrCodeTimeout, "Sweep did not finish in time", err))
		return
	}
	if err != nil {
		s.logger.Error("sweep failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, "Failed to run sweep", err))
		return
	}
	sweepDuration.Observe(time.Since(start).Seconds())

	id, err := store.SaveSweep(s.db, params, grid)
	if err != nil {
		s.logger.Error("failed to save sweep", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, "Failed to save sweep", err))
		return
	}

	stored, err := store.GetSweep(s.db, id)
	if err != nil || stored == nil {
		s.logger.Error("failed to reload sweep", zap.String("sweep_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.New(errors.ErrCodeInternal, "Failed to load sweep"))
		return
	}

	rows, cols := grid.Shape()
	s.logger.Info("sweep stored",
		zap.String("sweep_id", id),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Duration("elapsed", time.Since(start)))

	writeJSON(w, http.StatusCreated, toAPISweep(stored))
}

// GetSweep handles GET /sweeps/{sweepId}
func (s *Server) GetSweep(w http.ResponseWriter, r *http.Request, sweepId openapi_types.UUID) {
	if !s.requireStore(w) {
		return
	}

	stored, err := store.GetSweep(s.db, sweepId.String())
	if err != nil {
		s.logger.Error("failed to fetch sweep", zap.String("sweep_id", sweepId.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, "Failed to fetch sweep", err))
		return
	}
	if stored == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "Sweep not found"))
		return
	}

	writeJSON(w, http.StatusOK, toAPISweep(stored))
}

// requireStore writes a 500 response when the server runs without a database.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.db == nil {
		writeError(w, http.StatusInternalServerError, errors.New(errors.ErrCodeInternal, "Result store unavailable"))
		return false
	}
	return true
}

func (s *Server) checkType(typ int64) error {
	if typ > s.limits.MaxType {
		return errors.InvalidParameter("type", fmt.Sprintf("type must not exceed %d", s.limits.MaxType))
	}
	return nil
}

func (s *Server) checkThreshold(threshold int64, strategy hamming.Strategy) error {
	if threshold > s.limits.MaxThreshold {
		return errors.InvalidParameter("threshold", fmt.Sprintf("threshold must not exceed %d", s.limits.MaxThreshold))
	}
	if strategy == hamming.StrategyNaive && threshold > s.limits.MaxNaive {
		return errors.InvalidParameter("threshold",
			fmt.Sprintf("threshold must not exceed %d with the naive strategy", s.limits.MaxNaive))
	}
	return nil
}

// checkSweepSize rejects sweeps whose grid would exceed MaxSweepCells before
// any of it is allocated.
func (s *Server) checkSweepSize(p sweep.Params) error {
	if s.limits.MaxSweepCells <= 0 {
		return nil
	}
	rows, cols := p.Size()
	if rows == 0 || cols == 0 {
		return nil
	}
	if cols > s.limits.MaxSweepCells || rows > s.limits.MaxSweepCells/cols {
		return errors.InvalidParameter("granularity",
			fmt.Sprintf("sweep of %d thresholds x %d types exceeds the limit of %d cells", rows, cols, s.limits.MaxSweepCells))
	}
	return nil
}

// computeContext bounds a counting request by ComputeTimeout.
func (s *Server) computeContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.limits.ComputeTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.limits.ComputeTimeout)
}

func fromAPIParams(body SweepParams) sweep.Params {
	params := sweep.DefaultParams(body.MaxType, body.MaxThreshold, body.Granularity)
	if body.MinType != nil {
		params.MinType = *body.MinType
	}
	if body.MinThreshold != nil {
		params.MinThreshold = *body.MinThreshold
	}
	if body.Basis != nil {
		params.Basis = primes.Basis(*body.Basis)
	}
	return params
}

func toAPISweep(s *store.Sweep) Sweep {
	basis := SweepParamsBasis(s.Params.Basis)
	minType := s.Params.MinType
	minThreshold := s.Params.MinThreshold

	out := Sweep{
		Id:        parseUUID(s.ID),
		CreatedAt: s.CreatedAt,
		Params: SweepParams{
			Basis:        &basis,
			Granularity:  s.Params.Granularity,
			MaxThreshold: s.Params.MaxThreshold,
			MaxType:      s.Params.MaxType,
			MinThreshold: &minThreshold,
			MinType:      &minType,
		},
	}
	if s.Grid != nil {
		out.Grid = &SweepGrid{
			Types:      s.Grid.Types,
			Thresholds: s.Grid.Thresholds,
			Counts:     s.Grid.Counts,
		}
	}
	return out
}
