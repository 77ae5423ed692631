package permission

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/telnet2/cmdtree/internal/event"
	"github.com/telnet2/cmdtree/pkg/command"
	"gopkg.in/yaml.v3"
)

// DefaultGroup is consulted for every sender after their own groups.
const DefaultGroup = "default"

// ErrUnknownGroup is returned when joining a group that has no entries.
var ErrUnknownGroup = errors.New("unknown group")

// File is the persisted permission document.
type File struct {
	Namespace string              `yaml:"namespace,omitempty"`
	Operators []string            `yaml:"operators,omitempty"`
	Groups    map[string][]string `yaml:"groups,omitempty"`
	Users     map[string]*User    `yaml:"users,omitempty"`
}

// User holds one sender's memberships and explicit patterns.
type User struct {
	Groups []string `yaml:"groups,omitempty"`
	Grants []string `yaml:"grants,omitempty"`
	Denies []string `yaml:"denies,omitempty"`
}

// Store is a command.Policy backed by a YAML file. It is safe for
// concurrent use.
type Store struct {
	mu   sync.RWMutex
	fs   afero.Fs
	path string
	bus  *event.Bus
	data File

	// operators and namespace come from the host configuration. They are
	// never written to the file and survive Load.
	operators []string
	namespace string
}

var _ command.Policy = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBus publishes permission.changed events to bus.
func WithBus(bus *event.Bus) StoreOption {
	return func(s *Store) { s.bus = bus }
}

// WithFile persists the store at path on fsys.
func WithFile(fsys afero.Fs, path string) StoreOption {
	return func(s *Store) {
		s.fs = fsys
		s.path = path
	}
}

// WithData seeds the store.
func WithData(f File) StoreOption {
	return func(s *Store) { s.data = f }
}

// NewStore creates a store. Without WithFile it lives in memory only.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	s.data.normalize()
	return s
}

// Path returns the backing file path, or "".
func (s *Store) Path() string { return s.path }

// Load replaces the store's content with the backing file. A missing file
// leaves an empty store.
func (s *Store) Load() error {
	if s.fs == nil || s.path == "" {
		return nil
	}
	raw, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read permissions: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse permissions %s: %w", s.path, err)
	}
	if err := f.validate(); err != nil {
		return fmt.Errorf("permissions %s: %w", s.path, err)
	}
	f.normalize()

	s.mu.Lock()
	s.data = f
	s.mu.Unlock()
	return nil
}

// Save writes the store to its backing file.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if s.fs == nil || s.path == "" {
		return nil
	}
	raw, err := yaml.Marshal(&s.data)
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, s.path, raw, 0644)
}

// Namespace returns the display namespace: the file's, or the fallback
// set with SetDefaultNamespace.
func (s *Store) Namespace() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Namespace != "" {
		return s.data.Namespace
	}
	return s.namespace
}

// SetDefaultNamespace sets the namespace used while the file has none.
func (s *Store) SetDefaultNamespace(ns string) {
	s.mu.Lock()
	s.namespace = ns
	s.mu.Unlock()
}

// AddOperators marks names as operators without persisting them.
func (s *Store) AddOperators(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && !slices.Contains(s.operators, n) {
			s.operators = append(s.operators, n)
		}
	}
}

// IsOperator reports whether name is an operator in the file or the
// configuration.
func (s *Store) IsOperator(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOperatorLocked(strings.ToLower(name))
}

func (s *Store) isOperatorLocked(name string) bool {
	return slices.Contains(s.data.Operators, name) || slices.Contains(s.operators, name)
}

// Resolve implements command.Policy.
func (s *Store) Resolve(sender command.Sender, permission string) bool {
	if sender.IsOperator() {
		return true
	}
	return s.Check(sender.Name(), permission)
}

// Check resolves permission for a sender name.
func (s *Store) Check(name, permission string) bool {
	name = strings.ToLower(name)
	node := strings.ToLower(permission)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.isOperatorLocked(name) {
		return true
	}

	var groups []string
	if u := s.data.Users[name]; u != nil {
		if matchAny(u.Denies, node) {
			return false
		}
		if matchAny(u.Grants, node) {
			return true
		}
		groups = u.Groups
	}
	for _, g := range append(slices.Clip(groups), DefaultGroup) {
		if allowed, decided := evaluate(s.data.Groups[g], node); decided {
			return allowed
		}
	}
	return false
}

// Describe implements command.Policy.
func (s *Store) Describe(permission string) string {
	ns := s.Namespace()
	if ns == "" {
		return strings.ToLower(permission)
	}
	return strings.ToLower(ns + "." + permission)
}

// Nodes returns the patterns that apply to name: explicit grants, then
// group entries, then default group entries. Denies are prefixed with "-".
func (s *Store) Nodes(name string) []string {
	name = strings.ToLower(name)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	var groups []string
	if u := s.data.Users[name]; u != nil {
		for _, d := range u.Denies {
			out = append(out, "-"+d)
		}
		out = append(out, u.Grants...)
		groups = u.Groups
	}
	for _, g := range append(slices.Clip(groups), DefaultGroup) {
		out = append(out, s.data.Groups[g]...)
	}
	return out
}

// Users returns the names with explicit entries, sorted.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.data.Users))
	for n := range s.data.Users {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Grant adds a grant pattern for name and removes a matching deny.
func (s *Store) Grant(name, pattern string) error {
	return s.mutate(name, pattern, true, func(u *User, p string) {
		u.Denies = slices.DeleteFunc(u.Denies, func(d string) bool { return d == p })
		if !slices.Contains(u.Grants, p) {
			u.Grants = append(u.Grants, p)
		}
	})
}

// Revoke removes a grant pattern of name and records a deny for it.
func (s *Store) Revoke(name, pattern string) error {
	return s.mutate(name, pattern, false, func(u *User, p string) {
		u.Grants = slices.DeleteFunc(u.Grants, func(g string) bool { return g == p })
		if !slices.Contains(u.Denies, p) {
			u.Denies = append(u.Denies, p)
		}
	})
}

// JoinGroup adds name to group.
func (s *Store) JoinGroup(name, group string) error {
	group = strings.ToLower(group)
	s.mu.Lock()
	if _, ok := s.data.Groups[group]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
	u := s.userLocked(strings.ToLower(name))
	if !slices.Contains(u.Groups, group) {
		u.Groups = append(u.Groups, group)
	}
	err := s.saveLocked()
	s.mu.Unlock()

	s.publish(event.PermissionChangedData{User: strings.ToLower(name), Group: group, Granted: true})
	return err
}

// SetGroup replaces the entries of group.
func (s *Store) SetGroup(group string, patterns ...string) error {
	for _, p := range patterns {
		if err := validatePattern(strings.TrimPrefix(p, "-")); err != nil {
			return err
		}
	}
	group = strings.ToLower(group)
	s.mu.Lock()
	s.data.Groups[group] = lowerAll(patterns)
	err := s.saveLocked()
	s.mu.Unlock()

	s.publish(event.PermissionChangedData{Group: group, Node: strings.Join(patterns, ","), Granted: true})
	return err
}

func (s *Store) mutate(name, pattern string, granted bool, apply func(*User, string)) error {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if err := validatePattern(pattern); err != nil {
		return err
	}
	name = strings.ToLower(name)

	s.mu.Lock()
	apply(s.userLocked(name), pattern)
	err := s.saveLocked()
	s.mu.Unlock()

	s.publish(event.PermissionChangedData{User: name, Node: pattern, Granted: granted})
	return err
}

func (s *Store) userLocked(name string) *User {
	u := s.data.Users[name]
	if u == nil {
		u = &User{}
		s.data.Users[name] = u
	}
	return u
}

func (s *Store) publish(data event.PermissionChangedData) {
	if s.bus != nil {
		s.bus.PublishSync(event.Event{Type: event.PermissionChanged, Data: data})
	}
}

func (f *File) normalize() {
	if f.Groups == nil {
		f.Groups = make(map[string][]string)
	}
	if f.Users == nil {
		f.Users = make(map[string]*User)
	}
	f.Operators = lowerAll(f.Operators)

	groups := make(map[string][]string, len(f.Groups))
	for g, patterns := range f.Groups {
		groups[strings.ToLower(g)] = lowerAll(patterns)
	}
	f.Groups = groups

	users := make(map[string]*User, len(f.Users))
	for n, u := range f.Users {
		if u == nil {
			u = &User{}
		}
		u.Groups = lowerAll(u.Groups)
		u.Grants = lowerAll(u.Grants)
		u.Denies = lowerAll(u.Denies)
		users[strings.ToLower(n)] = u
	}
	f.Users = users
}

func (f *File) validate() error {
	for g, patterns := range f.Groups {
		for _, p := range patterns {
			if err := validatePattern(strings.TrimPrefix(p, "-")); err != nil {
				return fmt.Errorf("group %s: %w", g, err)
			}
		}
	}
	for n, u := range f.Users {
		if u == nil {
			continue
		}
		for _, p := range append(append([]string(nil), u.Grants...), u.Denies...) {
			if err := validatePattern(p); err != nil {
				return fmt.Errorf("user %s: %w", n, err)
			}
		}
	}
	return nil
}

func lowerAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
