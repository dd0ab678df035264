package extension

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/svcrun/model/types"
)

var (
	// ErrDuplicateService indicates a service name registered twice.
	ErrDuplicateService = errors.New("service already registered")
	// ErrDuplicateCommand indicates a (service, command) pair registered twice.
	ErrDuplicateCommand = errors.New("command already registered")
)

// Actions holds the (service, command) registration table for a single engine
// instance. The table is populated at startup (explicit registration calls
// plus declarative manifests) and is read-only once the first dispatch runs;
// the mutex only guards the discovery phase.
type Actions struct {
	services map[string]types.Service
	pairs    map[string]bool
	mux      sync.RWMutex
}

// NewActions creates a new registration table.
func NewActions() *Actions {
	return &Actions{
		services: make(map[string]types.Service),
		pairs:    make(map[string]bool),
	}
}

// Register registers a service and all its declared commands. It fails with
// ErrDuplicateService / ErrDuplicateCommand on conflicts so that
// configuration mistakes abort before any dispatch.
func (s *Actions) Register(service types.Service) error {
	if service == nil {
		return fmt.Errorf("service was nil")
	}
	name := service.Name()
	if name == "" {
		return fmt.Errorf("service name was empty")
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.services[name]; ok {
		return fmt.Errorf("%v: %w", name, ErrDuplicateService)
	}
	for _, signature := range service.Commands() {
		key := pairKey(name, signature.Name)
		if s.pairs[key] {
			return fmt.Errorf("%v: %w", key, ErrDuplicateCommand)
		}
		s.pairs[key] = true
	}
	s.services[name] = service
	return nil
}

// Lookup returns a service by name, or nil.
func (s *Actions) Lookup(name string) types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.services[name]
}

// Resolve returns the executable registered under the (service, command)
// pair. Resolution never invokes the handler.
func (s *Actions) Resolve(service, command string) (types.Executable, error) {
	svc := s.Lookup(service)
	if svc == nil {
		return nil, types.NewServiceNotFoundError(service)
	}
	if svc.Commands().Lookup(command) == nil {
		return nil, types.NewCommandNotFoundError(service, command)
	}
	return svc.Command(command)
}

// Services returns registered service names sorted lexicographically.
func (s *Actions) Services() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	names := make([]string, 0, len(s.services))
	for name := range s.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns the signatures declared by the named service.
func (s *Actions) Commands(service string) types.Signatures {
	svc := s.Lookup(service)
	if svc == nil {
		return nil
	}
	return svc.Commands()
}

func pairKey(service, command string) string {
	return service + "." + command
}
