package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Rakise/Geyser/internal/config"
	"github.com/Rakise/Geyser/internal/core/entity"
	"github.com/Rakise/Geyser/internal/core/identifier"
	"github.com/Rakise/Geyser/internal/core/metadata"
	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/packet"
	"github.com/Rakise/Geyser/internal/core/properties"
	"github.com/Rakise/Geyser/internal/session"
	"github.com/Rakise/Geyser/pkg/concurrent"
)

// Server owns the translation sessions of connected players and flushes them
// once per tick.
type Server struct {
	config     config.Config
	logger     log.Log
	properties *properties.Registry
	defs       entity.Definitions
	items      metadata.ItemTranslator
	sink       packet.Sink

	sessions     sync.Map // map[uuid.UUID]*session.Session
	sessionCount int64    // atomic

	tap        *Tap
	listener   net.Listener
	httpServer *http.Server

	// Server state
	running int32 // atomic bool
	closed  int32 // atomic bool

	ticks       uint64 // atomic
	workerGroup sync.WaitGroup
	stopChan    chan struct{}
}

// Option customizes a Server.
type Option func(*Server)

// WithItemTranslator sets the item mapping shared by all sessions.
func WithItemTranslator(items metadata.ItemTranslator) Option {
	return func(s *Server) { s.items = items }
}

// WithSink adds a sink that receives the packets of every session.
func WithSink(sink packet.Sink) Option {
	return func(s *Server) { s.sink = sink }
}

// NewServer creates a server. Sessions get their packets delivered to the sink
// passed to OpenSession, teed to the WithSink sink and the packet tap.
func NewServer(cfg config.Config, logger log.Log, props *properties.Registry, defs entity.Definitions, opts ...Option) *Server {
	s := &Server{
		config:     cfg,
		logger:     logger.With(log.String("component", "server")),
		properties: props,
		defs:       defs,
		items:      metadata.PassthroughTranslator{},
		stopChan:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.Tap.Addr != "" {
		s.tap = NewTap(cfg.Tap, s.logger)
	}

	for _, family := range props.Families() {
		schema := props.Schema(family)
		s.logger.Info("Property family registered",
			log.String("family", family),
			log.Int("properties", schema.Len()),
			log.Uint64("fingerprint", schema.Fingerprint()))
	}
	s.logger.Info("Server created",
		log.Duration("tick_interval", cfg.TickInterval),
		log.Int("max_sessions", cfg.MaxSessions))

	return s
}

// Start launches the tick loop and, when configured, the packet tap listener.
func (s *Server) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}

	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	s.logger.Info("Starting server")
	s.stopChan = make(chan struct{})

	if s.tap != nil {
		listener, err := net.Listen("tcp", s.config.Tap.Addr)
		if err != nil {
			atomic.StoreInt32(&s.running, 0)
			s.logger.Error("Failed to create tap listener", log.Error(err))
			return err
		}
		s.listener = listener
		mux := http.NewServeMux()
		mux.Handle("/packets", s.tap)
		s.httpServer = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		s.workerGroup.Add(1)
		go func() {
			defer s.workerGroup.Done()
			if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Packet tap stopped", log.Error(err))
			}
		}()
		s.logger.Info("Packet tap listening", log.String("addr", listener.Addr().String()))
	}

	stop := s.stopChan
	s.workerGroup.Add(1)
	go func() {
		defer s.workerGroup.Done()
		s.tickLoop(stop)
	}()

	s.logger.Info("Server started successfully")

	return nil
}

// Stop halts the tick loop and the packet tap. Sessions stay open.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server")

	close(s.stopChan)

	if s.httpServer != nil {
		_ = s.httpServer.Shutdown(ctx)
	}
	if s.tap != nil {
		s.tap.Close()
	}

	s.workerGroup.Wait()

	s.logger.Info("Server stopped")

	return nil
}

// Close stops the server if needed and closes every session.
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil // Already closed
	}

	s.logger.Info("Closing server")

	if atomic.LoadInt32(&s.running) == 1 {
		_ = s.Stop(context.Background())
	}

	// A concurrent CloseSession may win the delete; only the winner decrements.
	var sessions []*session.Session
	s.sessions.Range(func(key, _ any) bool {
		if v, loaded := s.sessions.LoadAndDelete(key); loaded {
			atomic.AddInt64(&s.sessionCount, -1)
			sessions = append(sessions, v.(*session.Session))
		}
		return true
	})

	var (
		mu  sync.Mutex
		all error
	)
	concurrent.ForEachMute(context.Background(), sessions, s.config.FlushWorkers,
		func(_ context.Context, sess *session.Session) error {
			return sess.Close()
		},
		func(sess *session.Session, err error) {
			s.logger.Warn("Session close failed",
				log.String("session_id", sess.ID().String()),
				log.Error(err))
			mu.Lock()
			all = errors.Join(all, err)
			mu.Unlock()
		})

	s.logger.Info("Server closed")

	return all
}

// OpenSession creates a session whose packets go to sink. Runtime ids come from
// the process-wide allocator so they never collide across sessions.
func (s *Server) OpenSession(sink packet.Sink) (*session.Session, error) {
	if atomic.LoadInt32(&s.closed) == 1 {
		return nil, ErrServerClosed
	}
	if int(atomic.AddInt64(&s.sessionCount, 1)) > s.config.MaxSessions {
		atomic.AddInt64(&s.sessionCount, -1)
		return nil, ErrMaxSessionsReached
	}

	sinks := packet.Tee{}
	if sink != nil {
		sinks = append(sinks, sink)
	}
	if s.sink != nil {
		sinks = append(sinks, s.sink)
	}
	if s.tap != nil {
		sinks = append(sinks, s.tap)
	}

	sess := session.New(&entity.Context{
		Sink:       sinks,
		IDs:        identifier.Entities(),
		Properties: s.properties,
		Items:      s.items,
		Log:        s.logger,
	}, s.defs)
	s.sessions.Store(sess.ID(), sess)

	s.logger.Info("Session opened",
		log.String("session_id", sess.ID().String()),
		log.Int64("total_sessions", atomic.LoadInt64(&s.sessionCount)))

	return sess, nil
}

// Session returns an open session by id.
func (s *Server) Session(id uuid.UUID) (*session.Session, bool) {
	v, ok := s.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*session.Session), true
}

// CloseSession despawns everything the session owns and forgets it.
func (s *Server) CloseSession(id uuid.UUID) error {
	v, ok := s.sessions.LoadAndDelete(id)
	if !ok {
		return ErrSessionNotFound
	}
	atomic.AddInt64(&s.sessionCount, -1)

	s.logger.Info("Session closed",
		log.String("session_id", id.String()),
		log.Int64("total_sessions", atomic.LoadInt64(&s.sessionCount)))

	return v.(*session.Session).Close()
}

// Tick flushes every session. Sessions are flushed concurrently, each one by a
// single goroutine.
func (s *Server) Tick(ctx context.Context) error {
	var sessions []*session.Session
	s.sessions.Range(func(_, value any) bool {
		sessions = append(sessions, value.(*session.Session))
		return true
	})

	atomic.AddUint64(&s.ticks, 1)
	return concurrent.ForEach(ctx, sessions, s.config.FlushWorkers, func(_ context.Context, sess *session.Session) error {
		sess.Flush()
		return nil
	})
}

// GetStats returns server statistics
func (s *Server) GetStats() Stats {
	stats := Stats{
		SessionCount: atomic.LoadInt64(&s.sessionCount),
		Ticks:        atomic.LoadUint64(&s.ticks),
		Running:      atomic.LoadInt32(&s.running) == 1,
	}
	if s.tap != nil {
		stats.TapObservers = s.tap.Observers()
	}
	return stats
}

// Stats contains server statistics
type Stats struct {
	SessionCount int64
	TapObservers int
	Ticks        uint64
	Running      bool
}

// Addr returns the address of the packet tap listener, or nil when it is off.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) tickLoop(stop <-chan struct{}) {
	s.logger.Debug("Tick loop started")

	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		select {
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.logger.Error("Tick failed", log.Error(err))
			}
		case <-stop:
			s.logger.Debug("Tick loop stopped")
			return
		}
	}
}
