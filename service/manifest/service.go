// Package manifest implements declarative command registration: YAML
// documents listing (service, command, target) entries consumed at startup,
// before the first dispatch. Manifests extend the compiled-in registration
// table with out-of-tree additions without any code change.
package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/structology/conv"
	"github.com/viant/svcrun/extension"
	"github.com/viant/svcrun/model/types"
	"github.com/viant/svcrun/progress"
	"github.com/viant/svcrun/service/meta"
	"github.com/viant/svcrun/service/runner"
	"gopkg.in/yaml.v3"
)

// Entry declares one command registration. Exactly one of Target (dynamic
// lookup of an already registered service.command) or Tool (a wrapped
// executable) must be set.
type Entry struct {
	Service     string         `yaml:"service" json:"service"`
	Command     string         `yaml:"command" json:"command"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Target      string         `yaml:"target,omitempty" json:"target,omitempty"`
	Tool        string         `yaml:"tool,omitempty" json:"tool,omitempty"`
	Args        interface{}    `yaml:"args,omitempty" json:"args,omitempty"`
	Dir         string         `yaml:"dir,omitempty" json:"dir,omitempty"`
	Env         map[string]any `yaml:"env,omitempty" json:"env,omitempty"`
	TimeoutMs   int            `yaml:"timeoutMs,omitempty" json:"timeoutMs,omitempty"`
}

// Manifest is a parsed declarative registration document.
type Manifest struct {
	Services []*Entry `yaml:"services" json:"services"`
}

// Service loads manifests and registers their entries.
type Service struct {
	meta      *meta.Service
	runner    runner.Runner
	converter *conv.Converter
}

// New creates a manifest service.
func New(metaService *meta.Service, toolRunner runner.Runner) *Service {
	return &Service{
		meta:      metaService,
		runner:    toolRunner,
		converter: conv.NewConverter(conv.DefaultOptions()),
	}
}

// Load downloads and parses a manifest document.
func (s *Service) Load(ctx context.Context, URI string) (*Manifest, error) {
	data, err := s.meta.Download(ctx, URI)
	if err != nil {
		return nil, err
	}
	manifest := &Manifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %v: %w", URI, err)
	}
	return manifest, nil
}

// Register adds every manifest entry to the registration table, in document
// order, so duplicate detection is reproducible across runs.
func (s *Service) Register(actions *extension.Actions, manifest *Manifest) error {
	for i, entry := range manifest.Services {
		executable, err := s.executable(actions, entry)
		if err != nil {
			return fmt.Errorf("manifest entry %d: %w", i, err)
		}
		if err := actions.RegisterCommand(entry.Service, entry.Command, entry.Description, executable); err != nil {
			return err
		}
	}
	return nil
}

// Discover loads every *.yaml manifest directly under dirURI in lexicographic
// name order and registers their entries.
func (s *Service) Discover(ctx context.Context, actions *extension.Actions, dirURI string) error {
	URLs, err := s.meta.List(ctx, dirURI, ".yaml")
	if err != nil {
		return err
	}
	for _, URL := range URLs {
		manifest, err := s.Load(ctx, URL)
		if err != nil {
			return err
		}
		if err := s.Register(actions, manifest); err != nil {
			return fmt.Errorf("%v: %w", URL, err)
		}
	}
	return nil
}

func (s *Service) executable(actions *extension.Actions, entry *Entry) (types.Executable, error) {
	if entry.Service == "" || entry.Command == "" {
		return nil, fmt.Errorf("service and command are required")
	}
	switch {
	case entry.Target != "" && entry.Tool != "":
		return nil, fmt.Errorf("%v %v: target and tool are mutually exclusive", entry.Service, entry.Command)
	case entry.Target != "":
		return s.targetExecutable(actions, entry)
	case entry.Tool != "":
		return s.toolExecutable(entry)
	default:
		return nil, fmt.Errorf("%v %v: either target or tool is required", entry.Service, entry.Command)
	}
}

// targetExecutable aliases an already registered service.command. Resolution
// is deferred to invocation time so that entry order within a manifest does
// not matter.
func (s *Service) targetExecutable(actions *extension.Actions, entry *Entry) (types.Executable, error) {
	pair := strings.Split(entry.Target, ".")
	if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
		return nil, fmt.Errorf("%v %v: invalid target %q, expected service.command", entry.Service, entry.Command, entry.Target)
	}
	return func(ctx context.Context, args []string) (bool, error) {
		executable, err := actions.Resolve(pair[0], pair[1])
		if err != nil {
			return false, fmt.Errorf("target %v: %w", entry.Target, err)
		}
		return executable(ctx, args)
	}, nil
}

func (s *Service) toolExecutable(entry *Entry) (types.Executable, error) {
	args, err := s.stringSlice(entry.Args)
	if err != nil {
		return nil, fmt.Errorf("%v %v: invalid args: %w", entry.Service, entry.Command, err)
	}
	env, err := s.stringMap(entry.Env)
	if err != nil {
		return nil, fmt.Errorf("%v %v: invalid env: %w", entry.Service, entry.Command, err)
	}
	command := &runner.Command{
		Executable: entry.Tool,
		Args:       args,
		Dir:        entry.Dir,
		Env:        env,
		TimeoutMs:  entry.TimeoutMs,
	}
	return func(ctx context.Context, extra []string) (bool, error) {
		invocation := *command
		invocation.Args = append(append([]string{}, command.Args...), extra...)
		if tracker, ok := progress.FromContext(ctx); ok {
			tracker.Update(progress.Delta{Total: 1, Running: 1})
			defer func() { tracker.Update(progress.Delta{Running: -1}) }()
		}
		execution, err := s.runner.Run(ctx, &invocation)
		if err != nil {
			return false, err
		}
		if tracker, ok := progress.FromContext(ctx); ok {
			if execution.Success {
				tracker.Update(progress.Delta{Passed: 1})
			} else {
				tracker.Update(progress.Delta{Failed: 1})
			}
		}
		return execution.Success, nil
	}, nil
}

func (s *Service) stringSlice(value interface{}) ([]string, error) {
	switch actual := value.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.Fields(actual), nil
	case []string:
		return actual, nil
	}
	var args []string
	if err := s.converter.Convert(value, &args); err != nil {
		return nil, err
	}
	return args, nil
}

func (s *Service) stringMap(value map[string]any) (map[string]string, error) {
	if len(value) == 0 {
		return nil, nil
	}
	var env map[string]string
	if err := s.converter.Convert(value, &env); err != nil {
		return nil, err
	}
	return env, nil
}
