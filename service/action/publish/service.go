// Package publish builds distribution packages and uploads them to a package
// index, resolving upload credentials from an encrypted secret resource.
package publish

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"sort"

	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	"github.com/viant/svcrun/internal/project"
	"github.com/viant/svcrun/model/types"
	"github.com/viant/svcrun/service/reporter"
	"github.com/viant/svcrun/service/runner"
)

// Name is the service registration name.
const Name = "publish"

// Service implements the publish commands.
type Service struct {
	runner         runner.Runner
	reporter       *reporter.Service
	project        *project.Workspace
	secrets        *scy.Service
	credentialsURL string
	credentialsKey string
}

// Option customises the publish service.
type Option func(s *Service)

// WithCredentials points the upload command at an encrypted basic-auth secret.
func WithCredentials(URL, key string) Option {
	return func(s *Service) {
		s.credentialsURL = URL
		s.credentialsKey = key
	}
}

// WithSecrets overrides the secret service, mainly for testing.
func WithSecrets(secrets *scy.Service) Option {
	return func(s *Service) {
		s.secrets = secrets
	}
}

// New creates a publish service operating on the supplied workspace.
func New(toolRunner runner.Runner, reporterSvc *reporter.Service, workspace *project.Workspace, options ...Option) *Service {
	ret := &Service{runner: toolRunner, reporter: reporterSvc, project: workspace}
	for _, option := range options {
		option(ret)
	}
	if ret.secrets == nil {
		ret.secrets = scy.New()
	}
	return ret
}

// Name returns the service name.
func (s *Service) Name() string {
	return Name
}

// Commands returns the command signatures in declaration order.
func (s *Service) Commands() types.Signatures {
	return types.Signatures{
		{Name: "build", Description: "build the sdist and wheel"},
		{Name: "check", Description: "validate the built artifacts with twine"},
		{Name: "upload", Description: "upload the built artifacts to the package index"},
	}
}

// Command returns the executable for a command name.
func (s *Service) Command(name string) (types.Executable, error) {
	switch name {
	case "build":
		return s.build, nil
	case "check":
		return s.check, nil
	case "upload":
		return s.upload, nil
	}
	return nil, types.NewCommandNotFoundError(Name, name)
}

// artifacts lists the built distribution files in deterministic order.
func (s *Service) artifacts() []string {
	matches, err := filepath.Glob(s.project.Path(filepath.Join("dist", "*")))
	if err != nil {
		return nil
	}
	var ret []string
	for _, match := range matches {
		if rel, err := filepath.Rel(s.project.Root, match); err == nil {
			ret = append(ret, rel)
		}
	}
	sort.Strings(ret)
	return ret
}

// loadCredentials resolves the configured basic-auth secret; a service without
// a credentials URL returns nil and the upload relies on the ambient twine
// configuration.
func (s *Service) loadCredentials(ctx context.Context) (*cred.Basic, error) {
	if s.credentialsURL == "" {
		return nil, nil
	}
	resource := scy.NewResource(reflect.TypeOf(cred.Basic{}), s.credentialsURL, s.credentialsKey)
	secret, err := s.secrets.Load(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to load publish credentials: %w", err)
	}
	basic, ok := secret.Target.(*cred.Basic)
	if !ok {
		return nil, fmt.Errorf("unexpected publish credentials type: %T", secret.Target)
	}
	return basic, nil
}
