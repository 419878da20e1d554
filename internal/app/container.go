package app

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	configapp "github.com/doeshing/toolgate/internal/application/config"
	"github.com/doeshing/toolgate/internal/application/dispatch"
	"github.com/doeshing/toolgate/internal/application/doctor"
	"github.com/doeshing/toolgate/internal/application/tools"
	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/infrastructure/config"
	"github.com/doeshing/toolgate/internal/infrastructure/executor"
	"github.com/doeshing/toolgate/internal/infrastructure/metrics"
	"github.com/doeshing/toolgate/internal/infrastructure/security"
	"github.com/doeshing/toolgate/internal/infrastructure/workspace"
	"github.com/doeshing/toolgate/internal/pkg/logger"
)

// Options selects where configuration comes from.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// Container wires up application services with infrastructure adapters.
// The operator-facing Prompter and Reporter of Tools are attached by the CLI.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	Logger       *logger.SlogLogger
	Classifier   *security.Classifier
	Metrics      *metrics.Recorder
	Executor     *executor.LocalExecutor
	Tools        *tools.Service
	Dispatcher   *dispatch.Service
}

// BuildContainer constructs the dependency graph. A malformed config or rules
// file is a startup error.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := configapp.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfgLoader.Path(), err)
	}

	log, err := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	classifier, err := security.NewClassifier(cfg.Security.RulesFile)
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	recorder := metrics.NewRecorder()
	runner := executor.NewLocalExecutor(cfg.Execution.Shell)

	toolService := &tools.Service{
		Classifier: classifier,
		FS:         workspace.NewLocal(),
		Runner:     runner,
		Logger:     log,
		AllowShell: cfg.Execution.AllowShell,
	}

	log.Debug("container ready", map[string]interface{}{
		"config":        cfgLoader.Path(),
		"command_rules": len(classifier.CommandRules()),
		"path_rules":    len(classifier.PathRules()),
		"allow_shell":   cfg.Execution.AllowShell,
	})

	return &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Logger:       log,
		Classifier:   classifier,
		Metrics:      recorder,
		Executor:     runner,
		Tools:        toolService,
		Dispatcher: &dispatch.Service{
			Executor: toolService,
			Metrics:  recorder,
			Logger:   log,
		},
	}, nil
}

// Ready reports whether every collaborator, including the operator-facing
// ones, has been attached.
func (c *Container) Ready() error {
	if err := c.Tools.Validate(); err != nil {
		return err
	}
	return c.Dispatcher.Validate()
}

// Close releases the log file, if any.
func (c *Container) Close() error {
	if c == nil || c.Logger == nil {
		return nil
	}
	return c.Logger.Close()
}

// NewDoctorService builds diagnostics that work even when the container
// itself cannot be built.
func NewDoctorService(opts Options, interactive func() bool) *doctor.Service {
	return &doctor.Service{
		ConfigProvider: config.NewFileLoader(opts.ConfigPath),
		LoadRules: func(path string) (doctor.RuleSet, error) {
			classifier, err := security.NewClassifier(path)
			if err != nil {
				return nil, err
			}
			return classifier, nil
		},
		Interactive:  interactive,
		ResolveShell: func(shell string) string { return executor.NewLocalExecutor(shell).Shell() },
		LookPath:     exec.LookPath,
	}
}

// Lazy builds the container on first use. Options is read at that point, so
// flags parsed after construction still apply.
type Lazy struct {
	opts *Options

	once      sync.Once
	container *Container
	err       error
}

// NewLazy defers BuildContainer until Get.
func NewLazy(opts *Options) *Lazy {
	return &Lazy{opts: opts}
}

// Get returns the container, building it once.
func (l *Lazy) Get(ctx context.Context) (*Container, error) {
	l.once.Do(func() {
		if l.opts == nil {
			l.err = errors.New("container options missing")
			return
		}
		l.container, l.err = BuildContainer(ctx, *l.opts)
	})
	return l.container, l.err
}

// Options returns the options the container is (or will be) built with.
func (l *Lazy) Options() Options {
	if l.opts == nil {
		return Options{}
	}
	return *l.opts
}

// Close closes the container if it was built.
func (l *Lazy) Close() error {
	if l.container == nil {
		return nil
	}
	return l.container.Close()
}
