// Package policy provides optional declarative rules applied on top of a
// running svcrun engine - for example to require confirmation before
// destructive commands such as `dev clean` or `publish upload`.
package policy
