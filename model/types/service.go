package types

// Service groups related commands under a single name, e.g. "quality" or
// "dev". Implementations are stateless between invocations; any side effects
// (subprocess calls, filesystem changes) belong to the individual commands.
type Service interface {
	Name() string
	Commands() Signatures
	Command(name string) (Executable, error)
}

// Proxy decorates a base service, e.g. to add tracing or approval checks.
type Proxy func(base Service) Service
