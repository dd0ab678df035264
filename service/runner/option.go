package runner

import "io"

// Option customises the runner service.
type Option func(*Service)

// WithBaseDir sets the default working directory (the project root).
func WithBaseDir(dir string) Option {
	return func(s *Service) { s.baseDir = dir }
}

// WithEnvironment sets the base environment snapshot inherited by every
// command; per-command entries override it.
func WithEnvironment(env map[string]string) Option {
	return func(s *Service) { s.baseEnv = env }
}

// WithDefaultTimeoutMs sets a deadline applied to commands that do not carry
// their own. Zero keeps runs unbounded.
func WithDefaultTimeoutMs(timeoutMs int) Option {
	return func(s *Service) { s.defaultTimeoutMs = timeoutMs }
}

// WithEcho mirrors each tool's captured output to the supplied writer,
// batched per tool.
func WithEcho(w io.Writer) Option {
	return func(s *Service) { s.echo = w }
}
