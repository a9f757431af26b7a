// Copyright (C) 2025 Camille Roussille. All Rights Reserved.

// Package session maintains the mutable editing state around an entity
// tree: a single current root, replaced wholesale by each edit, with a
// change-notification hook for the presentation layer.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/croussille/jent/entity"
)

// ErrNoDocument is reported by operations that require a seeded session.
var ErrNoDocument = errors.New("no document")

// A Session holds the current root entity of a document under edit. The
// entity values themselves are immutable; the session is the sole mutable
// holder of "the current root" and is replaced wholesale on every edit.
//
// A Session is not safe for concurrent use. Confine it to the single
// goroutine that owns the editing surface; the entity values it hands out
// may be shared freely.
type Session struct {
	root   entity.Entity
	watch  func(entity.Entity)
	log    *zap.Logger
	retype entity.RetypePolicy

	requireContainer bool
}

// An Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for session events. The default discards them.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithWatcher sets the change-notification callback, invoked with the new
// root after every replacement, including the initial seed.
func WithWatcher(f func(entity.Entity)) Option {
	return func(s *Session) { s.watch = f }
}

// WithRetypePolicy sets the policy the session's Retype convenience applies.
// The default is entity.RetypeStrict.
func WithRetypePolicy(p entity.RetypePolicy) Option {
	return func(s *Session) { s.retype = p }
}

// RequireContainer makes Seed reject scalar roots, enforcing the
// conventional constraint that a document's top level is an object or
// array. The entity model itself does not care.
func RequireContainer() Option {
	return func(s *Session) { s.requireContainer = true }
}

// New constructs an empty session. Call Seed before editing.
func New(opts ...Option) *Session {
	s := &Session{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed replaces the current root from one of:
//
//   - an entity.Entity, used as-is;
//   - a []byte or string of JSON text, parsed leniently (comments and
//     trailing commas permitted) with member order preserved;
//   - any other native value, converted via entity.FromValue.
func (s *Session) Seed(seed any) error {
	var root entity.Entity
	var err error
	switch t := seed.(type) {
	case entity.Entity:
		root = t
	case []byte:
		root, err = entity.ParseLenient(t)
	case string:
		root, err = entity.ParseLenient([]byte(t))
	default:
		root = entity.FromValue(t)
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if s.requireContainer && root.Kind().IsLeaf() {
		return fmt.Errorf("seed: scalar root %v: %w", root.Kind(), entity.ErrInvalidTransition)
	}
	s.apply(root, "seed")
	return nil
}

// Apply replaces the current root with newRoot and notifies the watcher.
// The caller is responsible for having threaded any nested edit back up to
// the root, typically via entity.Update or EditAt.
func (s *Session) Apply(newRoot entity.Entity) { s.apply(newRoot, "apply") }

func (s *Session) apply(root entity.Entity, op string) {
	s.root = root
	s.log.Debug("root replaced",
		zap.String("op", op),
		zap.Stringer("kind", root.Kind()))
	if s.watch != nil {
		s.watch(root)
	}
}

// Root returns the current root entity, or nil if the session is unseeded.
func (s *Session) Root() entity.Entity { return s.root }

// EditAt applies f to the entity at path beneath the current root and
// installs the resulting root, notifying the watcher. On error the session
// is left unchanged; positional errors (entity.ErrIndexOutOfRange) are
// recoverable by re-deriving the path from the current state.
func (s *Session) EditAt(path []any, f func(entity.Entity) (entity.Entity, error)) error {
	if s.root == nil {
		return ErrNoDocument
	}
	root, err := entity.Update(s.root, path, f)
	if err != nil {
		return err
	}
	s.apply(root, "edit")
	return nil
}

// Retype retypes the entity at path under the session's retype policy.
func (s *Session) Retype(path []any, kind entity.Kind) error {
	return s.EditAt(path, func(e entity.Entity) (entity.Entity, error) {
		return entity.Retype(e, kind, s.retype)
	})
}

// Extract renders the current root as canonical JSON text. It does not
// change session state and may be called after every edit or on demand; a
// *entity.DuplicateKeyError is returned as-is for the caller to surface,
// and the document remains editable.
func (s *Session) Extract() (string, error) {
	if s.root == nil {
		return "", ErrNoDocument
	}
	data, err := entity.Marshal(s.root)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
