package types

import "context"

// Executable runs a single command with its positional arguments. The boolean
// reports whether the command succeeded; a non-nil error indicates an internal
// fault (as opposed to a command that ran and failed).
type Executable func(ctx context.Context, args []string) (bool, error)

type Signatures []Signature

func (s Signatures) Lookup(name string) *Signature {
	for i := range s {
		sig := &s[i]
		if sig.Name == name {
			return sig
		}
	}
	return nil
}

// Names returns command names in declaration order.
func (s Signatures) Names() []string {
	var names []string
	for i := range s {
		names = append(names, s[i].Name)
	}
	return names
}

// Signature describes a single command
type Signature struct {
	Name        string
	Description string
}
