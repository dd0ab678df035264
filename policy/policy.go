// Package policy provides a simple, optional per-command approval layer that
// can be attached to an invocation via context.  It is deliberately decoupled
// from the dispatcher so that using it is entirely opt-in - engines that do
// not embed the Policy in their context keep the original "auto" behaviour.

package policy

import (
	"context"
	"strings"
)

// Execution modes recognised by the dispatcher.
const (
	ModeAsk  = "ask"  // ask user before every gated command
	ModeAuto = "auto" // execute automatically (default)
	ModeDeny = "deny" // block execution
)

// AskFunc is invoked when Mode==ask. Returning true approves the command,
// false rejects it. Implementations MAY mutate the policy (for example,
// switching to ModeAuto after the first approval).
type AskFunc func(
	ctx context.Context,
	action string, // service.command
	args []string, // positional arguments - may be nil
	p *Policy,
) bool

// Policy represents the approval settings for the current invocation.
//
//   - Mode controls the high-level behaviour (ask / auto / deny).
//   - AllowList, BlockList allow coarse filtering regardless of Mode.
//   - Ask is only used when Mode==ask.
//
// A nil *Policy means "execute everything automatically" and is therefore the
// zero-cost default.
type Policy struct {
	Mode      string   // ask / auto / deny      (default = auto)
	AllowList []string // whitelist (empty => all)
	BlockList []string // blacklist
	Ask       AskFunc  // used only when Mode==ask
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config back to a runtime Policy (without AskFunc).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed evaluates AllowList / BlockList. Both lists match by exact,
// case-insensitive comparison of the fully-qualified command name
// "service.command".
func (p *Policy) IsAllowed(action string) bool {
	if p == nil {
		return true
	}
	action = strings.ToLower(action)
	for _, blocked := range p.BlockList {
		if strings.ToLower(blocked) == action {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, allowed := range p.AllowList {
		if strings.ToLower(allowed) == action {
			return true
		}
	}
	return false
}

// Approve decides whether the named command may run given the policy mode and
// lists. It consults AskFunc only for Mode==ask.
func (p *Policy) Approve(ctx context.Context, action string, args []string) bool {
	if p == nil {
		return true
	}
	if !p.IsAllowed(action) {
		return false
	}
	switch p.Mode {
	case ModeDeny:
		return false
	case ModeAsk:
		if p.Ask == nil {
			return false
		}
		return p.Ask(ctx, action, args, p)
	default:
		return true
	}
}

type policyKeyT struct{}

var policyKey policyKeyT

// WithPolicy returns a context carrying the supplied policy.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, policyKey, p)
}

// FromContext returns the policy attached to ctx, or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(policyKey).(*Policy)
	return p
}
