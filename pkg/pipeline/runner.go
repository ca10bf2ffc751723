package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/chart"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/roster"
	"github.com/matzehuels/seatplan/pkg/seating"
)

const (
	keyTypeAssignment = "assignment"
	keyTypeChart      = "chart"
)

// Runner runs assignments and keeps their results in a cache.
//
// The Runner holds no per-assignment state; multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long results stay retrievable. 0 keeps them until evicted.
	TTL time.Duration
}

// NewRunner creates a runner that keeps results for [cache.TTLAssignment].
// A nil cache disables result lookup, a nil keyer uses [cache.DefaultKeyer]
// and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLAssignment,
	}
}

// Assign seats the roster on ch.
//
// On any error the chart is left untouched and no result is cached. A nil
// chart or a chart that fails validation is rejected with INVALID_CHART.
func (r *Runner) Assign(ctx context.Context, ch *chart.Chart, opts Options) (*Result, error) {
	if ch == nil {
		return nil, errors.New(errors.ErrCodeInvalidChart, "no chart")
	}
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Assign()

	names := opts.Names
	if names == "" {
		names = ch.Names
	}

	parseStart := time.Now()
	ros, err := ParseRoster(names, opts)
	if err != nil {
		return nil, err
	}
	stats := Stats{
		People:    ros.Len(),
		Seats:     ch.SeatCount(),
		Groups:    ros.GroupCount(),
		Locked:    ros.LockedCount(),
		ParseTime: time.Since(parseStart),
	}
	hooks.OnParse(ctx, stats.People, stats.Groups, stats.Locked)
	opts.Logger.Debug("parsed roster",
		"people", stats.People,
		"groups", stats.Groups,
		"locked", stats.Locked)

	if err := CheckCount(stats.People, stats.Seats, opts.AllowUnderfill); err != nil {
		return nil, err
	}

	mode := modeFor(ros, opts)
	hooks.OnSolveStart(ctx, mode, stats.Seats, stats.Groups)
	solveStart := time.Now()
	persons, err := r.place(ros, ch, mode, opts, &stats)
	stats.SolveTime = time.Since(solveStart)
	hooks.OnSolveComplete(ctx, mode, stats.Seats, stats.SolveTime, err)
	if err != nil {
		opts.Logger.Debug("assignment failed", "mode", mode, "steps", stats.Steps, "err", err)
		return nil, err
	}

	result := &Result{
		ID:        uuid.NewString(),
		ChartID:   ch.ID,
		ChartName: ch.Name,
		Seed:      opts.Seed,
		Mode:      mode,
		Seats:     make([]SeatAssignment, len(persons)),
		Stats:     stats,
		CreatedAt: time.Now().UTC(),
	}
	for i, id := range ch.SeatNumbers() {
		result.Seats[i] = SeatAssignment{SeatID: id, Number: i + 1, Person: persons[i]}
	}

	opts.Logger.Info("assigned seats",
		"mode", mode,
		"people", stats.People,
		"seats", stats.Seats,
		"seed", opts.Seed,
		"duration", stats.SolveTime)

	r.storeSnapshot(ctx, ch, result, opts.Logger)
	r.store(ctx, result, opts.Logger)
	return result, nil
}

func modeFor(ros roster.Roster, opts Options) string {
	switch {
	case opts.KeepOrder:
		return ModeOrdered
	case ros.HasGroups():
		return ModeSolve
	default:
		return ModeShuffle
	}
}

func (r *Runner) place(ros roster.Roster, ch *chart.Chart, mode string, opts Options, stats *Stats) ([]roster.Person, error) {
	rng := seating.NewRand(opts.Seed)

	switch mode {
	case ModeSolve:
		edges := ch.NormalizedEdges()
		persons, solveStats, err := seating.SolveStats(ros, edges, stats.Seats, &seating.Options{
			Rand:                 rng,
			MaxSteps:             opts.MaxSteps,
			ReshuffleProbability: opts.ReshuffleProbability,
		})
		stats.Edges = solveStats.Edges
		stats.Steps = solveStats.Steps
		return persons, err
	case ModeShuffle:
		return seating.ShuffleUnlocked(padded(ros, stats.Seats), rng), nil
	default:
		return padded(ros, stats.Seats), nil
	}
}

// padded flattens ros and appends empty people up to n seats.
func padded(ros roster.Roster, n int) []roster.Person {
	out := ros.Flatten()
	for len(out) < n {
		out = append(out, roster.Person{})
	}
	return out
}

func (r *Runner) store(ctx context.Context, result *Result, logger *log.Logger) {
	data, err := json.Marshal(result)
	if err != nil {
		logger.Warn("encode result", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, r.Keyer.AssignmentKey(result.ID), data, r.TTL); err != nil {
		logger.Warn("cache result", "id", result.ID, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeAssignment, len(data))
}

// storeSnapshot caches the chart as it was when result was produced and
// records its content hash on the result.
func (r *Runner) storeSnapshot(ctx context.Context, ch *chart.Chart, result *Result, logger *log.Logger) {
	data, err := json.Marshal(ch)
	if err != nil {
		logger.Warn("encode chart", "err", err)
		return
	}
	hash := cache.Hash(data)
	if err := r.Cache.Set(ctx, r.Keyer.ChartKey(ch.ID, hash), data, r.TTL); err != nil {
		logger.Warn("cache chart", "id", ch.ID, "err", err)
		return
	}
	result.ChartHash = hash
	observability.Cache().OnCacheSet(ctx, keyTypeChart, len(data))
}

// Snapshot returns the chart a cached result was assigned on.
func (r *Runner) Snapshot(ctx context.Context, result *Result) (*chart.Chart, error) {
	if result.ChartHash == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "assignment %s has no chart snapshot", result.ID)
	}
	data, hit, err := r.Cache.Get(ctx, r.Keyer.ChartKey(result.ChartID, result.ChartHash))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", result.ID, err)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeChart)
		return nil, errors.Wrap(errors.ErrCodeNotFound, cache.ErrCacheMiss, "chart snapshot for assignment %s", result.ID)
	}
	observability.Cache().OnCacheHit(ctx, keyTypeChart)
	return chart.ReadJSON(bytes.NewReader(data))
}

// Lookup returns a cached result. A result that was never stored, or that
// expired, is a NOT_FOUND error wrapping [cache.ErrCacheMiss].
func (r *Runner) Lookup(ctx context.Context, id string) (*Result, error) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.AssignmentKey(id))
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeAssignment)
		return nil, errors.Wrap(errors.ErrCodeNotFound, cache.ErrCacheMiss, "assignment %s", id)
	}
	observability.Cache().OnCacheHit(ctx, keyTypeAssignment)

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode assignment %s", id)
	}
	return &result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
