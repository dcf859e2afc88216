package expr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/agbru/largeint/internal/largeint"
)

const sessionVersion = 1

// session is the on-disk form of an Env.
type session struct {
	Version int                      `msgpack:"version"`
	Vars    map[string]*largeint.Int `msgpack:"vars"`
	Last    *largeint.Int            `msgpack:"last,omitempty"`
}

// Save writes the variables and the last result to path in msgpack form.
// The file is replaced atomically.
func (e *Env) Save(path string) error {
	e.mu.Lock()
	s := session{Version: sessionVersion, Vars: e.vars, Last: e.last}
	data, err := msgpack.Marshal(&s)
	e.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".largeint-session-*")
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("saving session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Load replaces the variables and last result with those stored at path.
func (e *Env) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	var s session
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding session %s: %w", path, err)
	}
	if s.Version != sessionVersion {
		return fmt.Errorf("session %s: unsupported version %d", path, s.Version)
	}
	if s.Vars == nil {
		s.Vars = make(map[string]*largeint.Int)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars = s.Vars
	e.last = s.Last
	return nil
}

// LoadEnv creates an Env with the given options and loads path into it.
func LoadEnv(path string, opts ...Option) (*Env, error) {
	e := NewEnv(opts...)
	if err := e.Load(path); err != nil {
		return nil, err
	}
	return e, nil
}
