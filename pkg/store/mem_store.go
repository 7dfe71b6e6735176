package store

import (
	"strings"

	. "src.slt.sh/pkg/store/storedefs"
)

// NewMemStore returns a DBStore that keeps the input history in memory. It
// numbers inputs the same way as the database-backed store.
func NewMemStore() DBStore {
	return &memStore{next: 1}
}

type memStore struct {
	// Sorted by Seq.
	cmds []Cmd
	next int
}

func (s *memStore) NextCmdSeq() (int, error) { return s.next, nil }

func (s *memStore) AddCmd(text string) (int, error) {
	seq := s.next
	s.next++
	s.cmds = append(s.cmds, Cmd{Text: text, Seq: seq})
	return seq, nil
}

func (s *memStore) DelCmd(seq int) error {
	if i := s.index(seq); i >= 0 {
		s.cmds = append(s.cmds[:i:i], s.cmds[i+1:]...)
	}
	return nil
}

func (s *memStore) Cmd(seq int) (string, error) {
	if i := s.index(seq); i >= 0 {
		return s.cmds[i].Text, nil
	}
	return "", ErrNoMatchingCmd
}

func (s *memStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	for _, cmd := range s.cmds {
		if from <= cmd.Seq && cmd.Seq < upto {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

func (s *memStore) LastCmds(n int) ([]Cmd, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > len(s.cmds) {
		n = len(s.cmds)
	}
	return append([]Cmd(nil), s.cmds[len(s.cmds)-n:]...), nil
}

func (s *memStore) NextCmd(from int, prefix string) (Cmd, error) {
	for _, cmd := range s.cmds {
		if cmd.Seq >= from && strings.HasPrefix(cmd.Text, prefix) {
			return cmd, nil
		}
	}
	return Cmd{}, ErrNoMatchingCmd
}

func (s *memStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	for i := len(s.cmds) - 1; i >= 0; i-- {
		if cmd := s.cmds[i]; cmd.Seq < upto && strings.HasPrefix(cmd.Text, prefix) {
			return cmd, nil
		}
	}
	return Cmd{}, ErrNoMatchingCmd
}

func (s *memStore) Trim(keep int) error {
	if keep < 0 {
		keep = 0
	}
	if len(s.cmds) > keep {
		s.cmds = append([]Cmd(nil), s.cmds[len(s.cmds)-keep:]...)
	}
	return nil
}

func (s *memStore) Close() error { return nil }

func (s *memStore) index(seq int) int {
	for i, cmd := range s.cmds {
		if cmd.Seq == seq {
			return i
		}
	}
	return -1
}
