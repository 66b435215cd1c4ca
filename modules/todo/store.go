package todo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domain "github.com/example/todo-tracker/domain/todo"
	"github.com/example/todo-tracker/logging"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options configures how a Store is opened.
type Options struct {
	Env    Environment
	Dir    string
	Logger types.Logger
	// Debug enables GORM SQL logging.
	Debug bool
}

// Store owns the todos table and the single database handle used to reach it.
type Store struct {
	mu     sync.Mutex
	db     *gorm.DB
	repo   *Repository
	env    Environment
	dir    string
	path   string
	debug  bool
	logger types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Store)(nil)
var _ mono.HealthCheckableModule = (*Store)(nil)

// NewStore creates a Store that is not yet connected. Call Start to open it.
func NewStore(opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		env:    opts.Env,
		dir:    opts.Dir,
		path:   opts.Env.Location(opts.Dir),
		debug:  opts.Debug,
		logger: log.WithModule("todo"),
	}
}

// Open creates and starts a Store in one step.
func Open(ctx context.Context, opts Options) (*Store, error) {
	s := NewStore(opts)
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the module name.
func (s *Store) Name() string {
	return "todo"
}

// Path returns the SQLite file backing this store.
func (s *Store) Path() string {
	return s.path
}

// Env returns the environment the store was opened for.
func (s *Store) Env() Environment {
	return s.env
}

// Start creates the store file if needed, connects and ensures the schema.
func (s *Store) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return newStoreError("open", "", ErrStorageUnavailable, err)
		}
	}
	if info, err := os.Stat(s.path); err == nil && info.IsDir() {
		return errorf("open", ErrStorageUnavailable, "%s is a directory", s.path)
	}

	s.logger.Debug("Opening SQLite database", "path", s.path, "env", s.env.String())

	logLevel := logger.Silent
	if s.debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return newStoreError("open", "", ErrStorageUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return newStoreError("open", "", ErrStorageUnavailable, err)
	}
	// One connection for the lifetime of the store.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return newStoreError("open", "", ErrStorageUnavailable, err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&todoRow{}); err != nil {
		_ = sqlDB.Close()
		return newStoreError("create table", "", ErrSchema, err)
	}

	s.db = db
	s.repo = NewRepository(db)

	s.logger.Debug("Store ready", "path", s.path)
	return nil
}

// Stop closes the database handle. Calling Stop on a closed store is a no-op.
func (s *Store) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	sqlDB, err := s.db.DB()
	s.db = nil
	s.repo = nil
	if err != nil {
		return newStoreError("close", "", ErrConnection, err)
	}
	if err := sqlDB.Close(); err != nil {
		return newStoreError("close", "", ErrConnection, err)
	}

	s.logger.Debug("Database connection closed", "path", s.path)
	return nil
}

// Close is Stop without a context.
func (s *Store) Close() error {
	return s.Stop(context.Background())
}

// Health reports whether the database handle is usable.
func (s *Store) Health(ctx context.Context) mono.HealthStatus {
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()

	if db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	var count int64
	if err := db.WithContext(ctx).Model(&todoRow{}).Count(&count).Error; err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("count todos failed: %v", err),
		}
	}

	path := s.path
	if abs, err := filepath.Abs(s.path); err == nil {
		path = abs
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"env":    s.env.String(),
			"path":   path,
			"tasks":  count,
		},
	}
}

func (s *Store) repository(op string) (*Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo == nil {
		return nil, newStoreError(op, "", ErrConnection, fmt.Errorf("store is closed"))
	}
	return s.repo, nil
}

// Insert stores a new task. The id must not already exist.
func (s *Store) Insert(ctx context.Context, task domain.Task) error {
	repo, err := s.repository("insert")
	if err != nil {
		return err
	}
	return repo.Create(ctx, task)
}

// Get returns the task with the given id.
func (s *Store) Get(ctx context.Context, id string) (domain.Task, error) {
	repo, err := s.repository("get")
	if err != nil {
		return domain.Task{}, err
	}
	return repo.FindByID(ctx, id)
}

// ListAll returns every task ordered by creation time.
func (s *Store) ListAll(ctx context.Context) ([]domain.Task, error) {
	repo, err := s.repository("list all")
	if err != nil {
		return nil, err
	}
	return repo.FindAll(ctx)
}

// ListRecent returns up to limit tasks, most recently created first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]domain.Task, error) {
	repo, err := s.repository("list recent")
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, errorf("list recent", ErrQuery, "limit must be non-negative, got %d", limit)
	}
	if limit == 0 {
		return []domain.Task{}, nil
	}
	return repo.FindRecent(ctx, limit)
}

// ListIncomplete returns tasks that are not completed, ordered by creation time.
func (s *Store) ListIncomplete(ctx context.Context) ([]domain.Task, error) {
	repo, err := s.repository("list incomplete")
	if err != nil {
		return nil, err
	}
	return repo.FindIncomplete(ctx)
}

// MarkComplete sets completed and refreshes updated_at. Repeating it is allowed.
func (s *Store) MarkComplete(ctx context.Context, id string) error {
	repo, err := s.repository("mark complete")
	if err != nil {
		return err
	}
	return repo.MarkComplete(ctx, id, domain.NowMillis())
}
