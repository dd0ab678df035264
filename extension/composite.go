package extension

import (
	"fmt"

	"github.com/viant/svcrun/model/types"
)

// dynamicService accumulates commands registered one pair at a time, e.g.
// from a declarative manifest. It satisfies types.Service like any compiled-in
// service.
type dynamicService struct {
	name       string
	signatures types.Signatures
	handlers   map[string]types.Executable
}

func (s *dynamicService) Name() string {
	return s.name
}

func (s *dynamicService) Commands() types.Signatures {
	return s.signatures
}

func (s *dynamicService) Command(name string) (types.Executable, error) {
	if handler, ok := s.handlers[name]; ok {
		return handler, nil
	}
	return nil, types.NewCommandNotFoundError(s.name, name)
}

func (s *dynamicService) add(signature types.Signature, handler types.Executable) {
	s.signatures = append(s.signatures, signature)
	s.handlers[signature.Name] = handler
}

// compositeService extends a compiled-in base service with out-of-tree
// additions without mutating the base.
type compositeService struct {
	base  types.Service
	extra *dynamicService
}

func (s *compositeService) Name() string {
	return s.base.Name()
}

func (s *compositeService) Commands() types.Signatures {
	return append(append(types.Signatures{}, s.base.Commands()...), s.extra.signatures...)
}

func (s *compositeService) Command(name string) (types.Executable, error) {
	if s.base.Commands().Lookup(name) != nil {
		return s.base.Command(name)
	}
	return s.extra.Command(name)
}

// RegisterCommand registers a single (service, command) pair, creating or
// extending the owning service as needed. Used by declarative discovery.
func (s *Actions) RegisterCommand(service, command, description string, handler types.Executable) error {
	if service == "" || command == "" {
		return fmt.Errorf("service and command names cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler was nil for %v %v", service, command)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	key := pairKey(service, command)
	if s.pairs[key] {
		return fmt.Errorf("%v: %w", key, ErrDuplicateCommand)
	}
	signature := types.Signature{Name: command, Description: description}
	existing := s.services[service]
	switch actual := existing.(type) {
	case nil:
		target := &dynamicService{name: service, handlers: map[string]types.Executable{}}
		target.add(signature, handler)
		s.services[service] = target
	case *dynamicService:
		actual.add(signature, handler)
	case *compositeService:
		actual.extra.add(signature, handler)
	default:
		extra := &dynamicService{name: service, handlers: map[string]types.Executable{}}
		extra.add(signature, handler)
		s.services[service] = &compositeService{base: existing, extra: extra}
	}
	s.pairs[key] = true
	return nil
}
