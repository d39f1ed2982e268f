package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"openrecorder/internal/config"
	"openrecorder/internal/insights"
	"openrecorder/internal/library"
	"openrecorder/internal/logging"
	"openrecorder/internal/media/probe"
	"openrecorder/internal/metastore"
	"openrecorder/internal/services/openai"
	"openrecorder/internal/storage"
	"openrecorder/internal/transcriber"
	"openrecorder/internal/transcript"
)

// commandContext lazily assembles the engine for CLI commands so commands
// that never touch storage or the network pay nothing for them.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	engineOnce sync.Once
	engine     *engine
	engineErr  error
}

// engine holds the wired subsystems shared by all commands.
type engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	root     string
	manager  *storage.Manager
	resolver *transcript.Resolver
	scanner  *library.Scanner
	client   *openai.Client
	insights *insights.Service
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureEngine() (*engine, error) {
	c.engineOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.engineErr = err
			return
		}

		logger, err := newLogger(cfg)
		if err != nil {
			c.engineErr = err
			return
		}

		root, err := storage.ResolveRoot(cfg.Paths.StorageRoot)
		if err != nil {
			c.engineErr = err
			return
		}

		locator := storage.NewLocator(root)
		manager := storage.NewManager(locator, logger)
		resolver := transcript.NewResolver(manager, logger)
		prober := probe.New("")
		scanner := library.NewScanner(prober.Duration, logger)
		client := openai.NewClient(openai.Config{
			APIKey:          cfg.OpenAI.APIKey,
			BaseURL:         cfg.OpenAI.BaseURL,
			TranscribeModel: cfg.OpenAI.TranscribeModel,
			ChatModel:       cfg.OpenAI.ChatModel,
			TimeoutSeconds:  cfg.OpenAI.TimeoutSeconds,
		})
		store := insights.NewStore(locator.SummariesDir(), logger)

		c.engine = &engine{
			cfg:      cfg,
			logger:   logger,
			root:     root,
			manager:  manager,
			resolver: resolver,
			scanner:  scanner,
			client:   client,
			insights: insights.NewService(store, client, logger),
		}
	})
	return c.engine, c.engineErr
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if cfg.Paths.LogDir != "" {
		file, err := logging.OpenLogFile(filepath.Join(cfg.Paths.LogDir, "openrecorder.log"))
		if err != nil {
			return nil, err
		}
		opts.Writer = file
	}
	return logging.New(opts)
}

// openMetastore opens the transcription metadata database. Callers own the
// returned store and must close it.
func (e *engine) openMetastore() (*metastore.Store, error) {
	path := e.cfg.Paths.MetadataDB
	if path == "" {
		path = filepath.Join(e.root, "metadata.db")
	}
	return metastore.Open(path)
}

// newTranscriber wires a transcription workflow over the engine.
func (e *engine) newTranscriber(meta *metastore.Store) *transcriber.Transcriber {
	return transcriber.New(e.client, e.resolver, meta, e.root, e.logger)
}
