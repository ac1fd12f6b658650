// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/infra/buntstore"
	"github.com/runoshun/duelist/internal/infra/config"
	"github.com/runoshun/duelist/internal/infra/crypto"
	"github.com/runoshun/duelist/internal/infra/gitstore"
	"github.com/runoshun/duelist/internal/infra/idgen"
	"github.com/runoshun/duelist/internal/infra/jsonstore"
	"github.com/runoshun/duelist/internal/infra/logging"
	"github.com/runoshun/duelist/internal/taskstore"
	"github.com/runoshun/duelist/internal/usecase"
)

// Config holds the paths the container is built from.
// Fields are ordered to minimize memory padding.
type Config struct {
	LogWriter     io.Writer // Log destination when LogPath is empty (default stderr)
	WorkDir       string    // Directory searched for .duelist.toml
	GlobalConfDir string    // Global config directory (empty = $XDG_CONFIG_HOME/duelist)
	DataHome      string    // Base for default storage paths (empty = $XDG_DATA_HOME)
	LogPath       string    // Log file; set while the TUI owns the terminal
}

// LogFilePath returns the log file used while the TUI runs.
func LogFilePath(dataHome string) string {
	if dataHome == "" {
		dataHome = config.DefaultDataHome()
	}
	return filepath.Join(domain.DataDir(dataHome), "duelist.log")
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	KV            domain.KeyValueStore
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Pointer fields
	Store     *taskstore.Store
	Notices   *NoticeRelay
	Logger    *slog.Logger
	AppConfig *domain.Config
	closeLog  func() error

	// Configuration
	Config Config
}

// New loads configuration, opens the configured backend and loads the tasks.
func New(ctx context.Context, cfg Config) (*Container, error) {
	if cfg.DataHome == "" {
		cfg.DataHome = config.DefaultDataHome()
	}

	var (
		configLoader  *config.Loader
		configManager *config.Manager
	)
	if cfg.GlobalConfDir == "" {
		configLoader = config.NewLoader(cfg.WorkDir)
		configManager = config.NewManager(cfg.WorkDir)
	} else {
		configLoader = config.NewLoaderWithGlobalDir(cfg.WorkDir, cfg.GlobalConfDir, nil)
		configManager = config.NewManagerWithGlobalDir(cfg.WorkDir, cfg.GlobalConfDir)
	}

	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Writer: cfg.LogWriter,
		Path:   cfg.LogPath,
		Level:  appConfig.Log.Level,
		Format: appConfig.Log.Format,
	})
	if err != nil {
		return nil, err
	}

	kv, err := OpenKV(appConfig.Storage, cfg.DataHome)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	logger.Debug("storage opened", "backend", appConfig.Storage.Backend, "key", appConfig.Storage.Key)

	c := NewWithDeps(cfg, appConfig, kv, idgen.New(), domain.RealClock{}, logger.Logger)
	c.ConfigLoader = configLoader
	c.ConfigManager = configManager
	c.closeLog = logger.Close
	c.Store.Load(ctx)
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// The store is created but not loaded.
func NewWithDeps(cfg Config, appConfig *domain.Config, kv domain.KeyValueStore, ids domain.IDGenerator, clock domain.Clock, logger *slog.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	notices := &NoticeRelay{}
	store := taskstore.New(kv, ids, notices, logger).WithKey(appConfig.Storage.Key)

	return &Container{
		KV:        kv,
		Clock:     clock,
		Store:     store,
		Notices:   notices,
		Logger:    logger,
		AppConfig: appConfig,
		Config:    cfg,
	}
}

// OpenKV opens the key-value store selected by the [storage] section.
// An empty path means the backend's default location under dataHome.
func OpenKV(sc domain.StorageConfig, dataHome string) (domain.KeyValueStore, error) {
	path := sc.Path
	if path == "" {
		path = domain.DefaultStoragePath(dataHome, sc.Backend)
	}

	switch sc.Backend {
	case domain.BackendBunt, "":
		return buntstore.Open(path)
	case domain.BackendMemory:
		return buntstore.Open(buntstore.MemoryPath)
	case domain.BackendJSON:
		return jsonstore.New(path), nil
	case domain.BackendGit:
		namespace := sc.Namespace
		if namespace == "" {
			namespace = domain.DefaultNamespace
		}
		key := sc.Key
		if key == "" {
			key = domain.DefaultStorageKey
		}
		if !gitstore.ValidKey(key) {
			return nil, fmt.Errorf("git backend: %w: %q", gitstore.ErrInvalidKey, key)
		}
		store, err := gitstore.Open(path, namespace)
		if err != nil {
			return nil, err
		}
		if sc.EncryptionKey == "" {
			return store, nil
		}
		enc, err := crypto.NewEncryptor(sc.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.EnvEncryptionKey, err)
		}
		return store.WithEncryptor(enc), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, sc.Backend)
}

// Close releases the storage backend and the log file.
func (c *Container) Close() error {
	var errs []error
	if c.KV != nil {
		errs = append(errs, c.KV.Close())
	}
	if c.closeLog != nil {
		errs = append(errs, c.closeLog())
	}
	return errors.Join(errs...)
}

// UseCase factory methods

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Store, c.Clock)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Store, c.Clock)
}

// SubmitTaskUseCase returns a new SubmitTask use case.
func (c *Container) SubmitTaskUseCase() *usecase.SubmitTask {
	return usecase.NewSubmitTask(c.Store, c.Clock)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Store)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.Clock)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Store, c.Clock)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store, c.Clock)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// NoticeRelay forwards user-facing messages to whichever surface is active.
// Messages sent while no sink is attached are dropped; CLI commands report
// the returned error instead.
type NoticeRelay struct {
	sink domain.Notifier
	mu   sync.Mutex
}

// Attach sets the receiving surface. A nil sink detaches.
func (r *NoticeRelay) Attach(sink domain.Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = sink
}

// Notify forwards msg to the attached sink.
func (r *NoticeRelay) Notify(msg string) {
	r.mu.Lock()
	sink := r.sink
	r.mu.Unlock()
	if sink != nil {
		sink.Notify(msg)
	}
}

// Ensure NoticeRelay implements Notifier.
var _ domain.Notifier = (*NoticeRelay)(nil)
