// Package storedefs contains definitions of the history store API.
//
// It is a separate package so that packages that only use the API do not need
// to depend on the bbolt-backed implementation.
package storedefs

import "errors"

// ErrNoMatchingCmd is returned when a query for a single input finds nothing.
var ErrNoMatchingCmd = errors.New("no matching input")

// Store is the persistent history of submitted inputs.
type Store interface {
	NextCmdSeq() (int, error)
	AddCmd(text string) (int, error)
	DelCmd(seq int) error
	Cmd(seq int) (string, error)
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	LastCmds(n int) ([]Cmd, error)
	NextCmd(from int, prefix string) (Cmd, error)
	PrevCmd(upto int, prefix string) (Cmd, error)
	Trim(keep int) error
}

// Cmd is an entry in the input history.
type Cmd struct {
	Text string
	Seq  int
}
