package svcrun

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/svcrun/extension"
	"github.com/viant/svcrun/internal/project"
	"github.com/viant/svcrun/model/types"
	"github.com/viant/svcrun/policy"
	"github.com/viant/svcrun/service/action/dev"
	"github.com/viant/svcrun/service/action/django"
	"github.com/viant/svcrun/service/action/publish"
	"github.com/viant/svcrun/service/action/quality"
	"github.com/viant/svcrun/service/dispatcher"
	"github.com/viant/svcrun/service/manifest"
	"github.com/viant/svcrun/service/meta"
	"github.com/viant/svcrun/service/reporter"
	"github.com/viant/svcrun/service/runner"
)

// Service wires the command registry, the tool runner, the reporter and the
// dispatcher into one runnable unit.
type Service struct {
	config            *Config
	workspace         *project.Workspace
	actions           *extension.Actions
	toolRunner        runner.Runner
	metaService       *meta.Service
	manifests         *manifest.Service
	reporterSvc       *reporter.Service
	dispatcherSvc     *dispatcher.Service
	policy            *policy.Policy
	metaFsOptions     []storage.Option
	extensionServices []types.Service
	logger            *slog.Logger
	errWriter         io.Writer
}

// New builds a service from the supplied options, registers the built-in and
// extension services and loads the configured manifests.
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.ensureBaseSetup()
	if err := s.registerBuiltins(); err != nil {
		return err
	}
	for _, service := range s.extensionServices {
		if err := s.actions.Register(service); err != nil {
			return err
		}
	}
	if err := s.loadManifests(ctx); err != nil {
		return err
	}
	var dispatcherOptions []dispatcher.Option
	if s.logger != nil {
		dispatcherOptions = append(dispatcherOptions, dispatcher.WithLogger(s.logger))
	}
	if s.errWriter != nil {
		dispatcherOptions = append(dispatcherOptions, dispatcher.WithErrWriter(s.errWriter))
	}
	s.dispatcherSvc = dispatcher.New(s.actions, dispatcherOptions...)
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.workspace == nil {
		s.workspace = project.New(s.config.BaseURL, s.config.EnsureVenv)
	}
	if s.toolRunner == nil {
		s.toolRunner = runner.New(
			runner.WithBaseDir(s.workspace.Root),
			runner.WithEnvironment(s.workspace.ToolEnv()),
			runner.WithDefaultTimeoutMs(s.config.DefaultTimeoutMs))
	}
	if s.reporterSvc == nil {
		s.reporterSvc = reporter.New(reporter.WithFormat(s.config.Output))
	}
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.config.BaseURL, s.metaFsOptions...)
	}
	if s.manifests == nil {
		s.manifests = manifest.New(s.metaService, s.toolRunner)
	}
	if s.actions == nil {
		s.actions = extension.NewActions()
	}
	if s.policy == nil && s.config.Policy != nil {
		s.policy = policy.FromConfig(s.config.Policy)
	}
}

func (s *Service) registerBuiltins() error {
	services := []types.Service{
		quality.New(s.toolRunner, s.reporterSvc, s.workspace),
		dev.New(s.toolRunner, s.reporterSvc, s.workspace),
		django.New(s.toolRunner, s.reporterSvc, s.workspace),
		publish.New(s.toolRunner, s.reporterSvc, s.workspace,
			publish.WithCredentials(s.config.Publish.CredentialsURL, s.config.Publish.CredentialsKey)),
	}
	for _, service := range services {
		if err := s.actions.Register(service); err != nil {
			return fmt.Errorf("failed to register %v service: %w", service.Name(), err)
		}
	}
	return nil
}

func (s *Service) loadManifests(ctx context.Context) error {
	if URL := s.config.ManifestURL; URL != "" {
		loaded, err := s.manifests.Load(ctx, URL)
		if err != nil {
			return err
		}
		if err := s.manifests.Register(s.actions, loaded); err != nil {
			return err
		}
	}
	if dirURL := s.config.ManifestDirURL; dirURL != "" {
		if err := s.manifests.Discover(ctx, s.actions, dirURL); err != nil {
			return err
		}
	}
	return nil
}

// RegisterExtensionServices registers additional command services after
// construction.
func (s *Service) RegisterExtensionServices(services ...types.Service) error {
	for i := range services {
		if err := s.actions.Register(services[i]); err != nil {
			return err
		}
	}
	return nil
}

// Actions exposes the command registry.
func (s *Service) Actions() *extension.Actions {
	return s.actions
}

// Dispatch resolves and runs one (service, command) invocation, returning the
// process exit code.
func (s *Service) Dispatch(ctx context.Context, args []string) int {
	if s.policy != nil {
		ctx = policy.WithPolicy(ctx, s.policy)
	}
	return s.dispatcherSvc.Dispatch(ctx, args)
}
