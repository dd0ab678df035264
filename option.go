package svcrun

import (
	"io"
	"log/slog"

	"github.com/viant/afs/storage"
	"github.com/viant/svcrun/internal/project"
	"github.com/viant/svcrun/model/types"
	"github.com/viant/svcrun/policy"
	"github.com/viant/svcrun/service/meta"
	"github.com/viant/svcrun/service/reporter"
	"github.com/viant/svcrun/service/runner"
	"github.com/viant/svcrun/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the service.
type Option func(s *Service)

// WithConfig sets the configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithBaseURL sets the project root all commands operate on.
func WithBaseURL(URL string) Option {
	return func(s *Service) {
		s.config.BaseURL = URL
	}
}

// WithManifestURL points at a single command manifest to register.
func WithManifestURL(URL string) Option {
	return func(s *Service) {
		s.config.ManifestURL = URL
	}
}

// WithManifestDirURL points at a directory of *.yaml manifests.
func WithManifestDirURL(URL string) Option {
	return func(s *Service) {
		s.config.ManifestDirURL = URL
	}
}

// WithOutput selects the report format: table or json.
func WithOutput(format string) Option {
	return func(s *Service) {
		s.config.Output = format
	}
}

// WithWorkspace overrides the project workspace.
func WithWorkspace(workspace *project.Workspace) Option {
	return func(s *Service) {
		s.workspace = workspace
	}
}

// WithRunner overrides the tool runner.
func WithRunner(toolRunner runner.Runner) Option {
	return func(s *Service) {
		s.toolRunner = toolRunner
	}
}

// WithMetaService sets the meta service
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithMetaFsOptions with meta file system options
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithReporter overrides the report renderer.
func WithReporter(service *reporter.Service) Option {
	return func(s *Service) {
		s.reporterSvc = service
	}
}

// WithExtensionServices sets the extension services
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = services
	}
}

// WithPolicy sets the approval policy applied before every dispatch.
func WithPolicy(aPolicy *policy.Policy) Option {
	return func(s *Service) {
		s.policy = aPolicy
	}
}

// WithLogger sets the structured logger used by the dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithErrWriter redirects dispatcher diagnostics; defaults to stderr.
func WithErrWriter(w io.Writer) Option {
	return func(s *Service) {
		s.errWriter = w
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stderr exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times – the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter. This enables
// integrations with exporters other than the built-in stderr exporter, for example OTLP, Jaeger or
// Zipkin. The function is safe to call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
