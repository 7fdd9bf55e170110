// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/swiri/internal/adapters/repository"
	"github.com/okian/swiri/internal/domain/classifier"
	"github.com/okian/swiri/internal/domain/model"
	"github.com/okian/swiri/internal/domain/sensor"
	"github.com/okian/swiri/internal/domain/session"
	"github.com/okian/swiri/pkg/logger"
	"github.com/okian/swiri/pkg/metrics"
)

// Service implements the API dependencies for the monitoring demo.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	generator session.Generator
	predictor session.Predictor

	// Configuration
	modelPath     string
	sessionTTL    time.Duration
	sweepInterval time.Duration
	maxSessions   int
	maxLogs       int
	location      string
	randomSeed    int64

	// State
	started  bool
	modelErr error
	stopCh   chan struct{}
	wg       sync.WaitGroup

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGenerator replaces the synthetic sensor generator.
func WithGenerator(gen session.Generator) Option {
	return func(s *Service) {
		if gen != nil {
			s.generator = gen
		}
	}
}

// WithPredictor installs a ready classifier and skips loading the model file.
func WithPredictor(p session.Predictor) Option {
	return func(s *Service) {
		if p != nil {
			s.predictor = p
		}
	}
}

// WithStore replaces the session store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithModelPath sets the classifier artifact path.
func WithModelPath(path string) Option {
	return func(s *Service) {
		s.modelPath = path
	}
}

// WithSessionTTL sets how long idle sessions are kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithSweepInterval sets how often expired sessions are removed.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithMaxSessions bounds the number of live sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithMaxLogs bounds each session's event log.
func WithMaxLogs(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLogs = n
		}
	}
}

// WithLocation sets the location reported for new sessions.
func WithLocation(loc string) Option {
	return func(s *Service) {
		if loc != "" {
			s.location = loc
		}
	}
}

// WithRandomSeed pins the default generator; 0 keeps the wall-clock seed.
func WithRandomSeed(seed int64) Option {
	return func(s *Service) {
		s.randomSeed = seed
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessionTTL:    repository.DefaultTTL,
		sweepInterval: time.Minute,
		maxSessions:   repository.DefaultMaxSessions,
		maxLogs:       session.DefaultMaxLogs,
		location:      session.DefaultLocation,
		stopCh:        make(chan struct{}),
		logger:        nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components. A model that cannot be loaded
// is recorded and reported by ModelStatus; the service still starts.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting monitoring service...")

	if s.store == nil {
		s.store = repository.NewSessionStore(
			repository.WithTTL(s.sessionTTL),
			repository.WithMaxSessions(s.maxSessions),
		)
	}
	if s.generator == nil {
		var genOpts []sensor.Option
		if s.randomSeed != 0 {
			genOpts = append(genOpts, sensor.WithSeed(s.randomSeed))
		}
		s.generator = sensor.New(genOpts...)
	}

	if s.predictor == nil {
		s.loadModelLocked(ctx)
	}
	metrics.SetModelLoaded(s.predictor != nil)

	s.stopCh = make(chan struct{})
	s.startSweeper(ctx)

	s.started = true
	s.logger.Info(ctx, "monitoring service started",
		logger.Bool("modelAvailable", s.predictor != nil),
		logger.Duration("sessionTTL", s.sessionTTL),
		logger.Int("maxSessions", s.maxSessions),
		logger.String("location", s.location),
	)

	return nil
}

func (s *Service) loadModelLocked(ctx context.Context) {
	if s.modelPath == "" {
		s.modelErr = classifier.ErrModelUnavailable
		s.logger.Warn(ctx, "no model path configured, classification disabled")
		metrics.RecordDomainError(KindModelUnavailable)
		return
	}

	forest, err := classifier.Load(ctx, s.modelPath)
	if err == nil {
		var adapter *classifier.Adapter
		adapter, err = classifier.NewAdapter(forest)
		if err == nil {
			s.predictor = adapter
			s.modelErr = nil
			s.logger.Info(ctx, "classifier loaded",
				logger.String("path", s.modelPath),
				logger.String("model", forest.Name),
				logger.Int("trees", len(forest.Trees)),
			)
			return
		}
	}

	s.modelErr = err
	s.logger.Warn(ctx, "classifier unavailable, classification disabled",
		logger.String("path", s.modelPath),
		logger.Error(err),
	)
	metrics.RecordDomainError(KindModelUnavailable)
}

// startSweeper removes expired sessions until Stop is called.
func (s *Service) startSweeper(ctx context.Context) {
	store, interval, stopCh := s.store, s.sweepInterval, s.stopCh
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case <-ticker.C:
				if removed := store.Sweep(ctx); removed > 0 {
					s.logger.Debug(ctx, "expired sessions removed", logger.Int("removed", removed))
				}
			}
		}
	}()
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.logger.Info(context.Background(), "stopping monitoring service...")

	// Signal sweep loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "monitoring service stopped")
}

// ModelStatus reports whether a classifier is loaded.
func (s *Service) ModelStatus() classifier.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := classifier.Status{Available: s.predictor != nil, Path: s.modelPath}
	if !st.Available && s.modelErr != nil {
		st.Error = s.modelErr.Error()
	}
	return st
}

// deps returns the components needed by a session operation.
func (s *Service) deps() (repository.Store, session.Generator, session.Predictor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, nil, nil, ErrNotStarted
	}
	return s.store, s.generator, s.predictor, nil
}

// NewSession creates an empty demo session.
func (s *Service) NewSession(ctx context.Context) (*session.State, error) {
	store, _, _, err := s.deps()
	if err != nil {
		return nil, err
	}
	st, err := store.Create(ctx,
		session.WithLocation(s.location),
		session.WithMaxLogs(s.maxLogs),
	)
	if err != nil {
		return nil, s.fail(ctx, "create session", "", err)
	}
	metrics.RecordSessionCreated()
	s.logger.Debug(ctx, "session created", logger.String("sessionID", st.ID))
	return st, nil
}

// Session returns a copy of the session.
func (s *Service) Session(ctx context.Context, id string) (*session.State, error) {
	store, _, _, err := s.deps()
	if err != nil {
		return nil, err
	}
	st, err := store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get session", id, err)
	}
	return st, nil
}

// SelectScenario generates a new sensor window for the session.
func (s *Service) SelectScenario(ctx context.Context, id string, sc model.Scenario) (*session.State, error) {
	store, gen, _, err := s.deps()
	if err != nil {
		return nil, err
	}
	st, err := store.Update(ctx, id, func(st *session.State) error {
		return st.SelectScenario(ctx, gen, sc)
	})
	if err != nil {
		return nil, s.fail(ctx, "select scenario", id, err)
	}
	metrics.RecordWindowGenerated(sc.String())
	s.logger.Debug(ctx, "scenario selected",
		logger.String("sessionID", id),
		logger.String("scenario", sc.String()),
	)
	return st, nil
}

// Classify extracts features from the session's window and predicts a label.
func (s *Service) Classify(ctx context.Context, id string) (*session.State, error) {
	store, _, predictor, err := s.deps()
	if err != nil {
		return nil, err
	}
	if predictor == nil {
		return nil, s.fail(ctx, "classify", id, s.unavailable())
	}

	start := time.Now()
	var pred model.Prediction
	st, err := store.Update(ctx, id, func(st *session.State) error {
		var perr error
		pred, perr = st.Classify(ctx, predictor)
		return perr
	})
	if err != nil {
		return nil, s.fail(ctx, "classify", id, err)
	}
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	metrics.RecordClassification(pred.Label.String(), pred.Confidence, latencyMs)
	if pred.Label == model.LabelDanger {
		metrics.RecordDangerAlert()
		s.logger.Warn(ctx, "danger detected",
			logger.String("sessionID", id),
			logger.String("location", st.Location),
			logger.Float64("confidence", pred.Confidence),
		)
	} else {
		s.logger.Debug(ctx, "window classified",
			logger.String("sessionID", id),
			logger.String("label", pred.Label.String()),
			logger.Float64("confidence", pred.Confidence),
		)
	}
	return st, nil
}

// Capture records the emergency photo for a session in danger.
func (s *Service) Capture(ctx context.Context, id string) (*session.State, error) {
	store, _, _, err := s.deps()
	if err != nil {
		return nil, err
	}
	st, err := store.Update(ctx, id, func(st *session.State) error {
		return st.RecordCapture(ctx)
	})
	if err != nil {
		return nil, s.fail(ctx, "capture", id, err)
	}
	metrics.RecordCapture()
	s.logger.Info(ctx, "emergency photo captured", logger.String("sessionID", id))
	return st, nil
}

// Confirm records the parent's response to a danger alert.
func (s *Service) Confirm(ctx context.Context, id string, c session.Confirmation) (*session.State, error) {
	store, _, _, err := s.deps()
	if err != nil {
		return nil, err
	}
	st, err := store.Update(ctx, id, func(st *session.State) error {
		return st.Confirm(ctx, c)
	})
	if err != nil {
		return nil, s.fail(ctx, "confirm", id, err)
	}
	metrics.RecordConfirmation(string(c))
	s.logger.Info(ctx, "alert response recorded",
		logger.String("sessionID", id),
		logger.String("outcome", string(c)),
	)
	return st, nil
}

// ClearLogs empties the session's event log.
func (s *Service) ClearLogs(ctx context.Context, id string) (*session.State, error) {
	store, _, _, err := s.deps()
	if err != nil {
		return nil, err
	}
	st, err := store.Update(ctx, id, func(st *session.State) error {
		st.ClearLogs()
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "clear logs", id, err)
	}
	return st, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"modelAvailable": s.predictor != nil,
		"modelPath":      s.modelPath,
		"location":       s.location,
		"maxSessions":    s.maxSessions,
		"maxLogEntries":  s.maxLogs,
		"sessionTTL":     s.sessionTTL.String(),
	}

	if s.started {
		sessions := s.store.Count(context.Background())
		stats["sessions"] = sessions
		metrics.UpdateActiveSessions(sessions)
	}

	return stats
}

func (s *Service) unavailable() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.modelErr != nil && errors.Is(s.modelErr, classifier.ErrModelUnavailable) {
		return s.modelErr
	}
	return classifier.ErrModelUnavailable
}

// fail records err against the domain error metrics and returns it.
func (s *Service) fail(ctx context.Context, op, id string, err error) error {
	kind := ErrorKind(err)
	metrics.RecordDomainError(kind)
	s.logger.Debug(ctx, op+" failed",
		logger.String("sessionID", id),
		logger.String("kind", kind),
		logger.Error(err),
	)
	return err
}
