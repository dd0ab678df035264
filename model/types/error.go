package types

import "fmt"

func NewCommandNotFoundError(service, name string) error {
	return fmt.Errorf("command %v not found in service %v", name, service)
}

func NewServiceNotFoundError(name string) error {
	return fmt.Errorf("service %v not found", name)
}
