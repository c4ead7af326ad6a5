package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rcliao/wingman-memory/internal/templates"
)

// Init creates the state root, user and crushes directories, and writes the
// user templates when they are absent or force is set. It is safe to run
// repeatedly.
func (s *Store) Init(force bool) error {
	for _, dir := range []string{s.root, s.userDir(), s.crushesDir()} {
		if err := s.ensureDir(dir); err != nil {
			return err
		}
	}

	docs := []struct {
		path string
		tmpl string
	}{
		{s.UserProfilePath(), templates.UserProfile},
		{s.UserMemoryPath(), templates.UserMemory},
	}
	for _, d := range docs {
		if exists(d.path) && !force {
			s.logger.Debug("keeping existing document", zap.String("path", d.path))
			continue
		}
		content, err := s.render(d.tmpl, s.vars())
		if err != nil {
			return err
		}
		if err := s.writeText(d.path, content); err != nil {
			return err
		}
	}
	return nil
}

// InitUser writes the user profile template. An existing profile is only
// replaced when force is set.
func (s *Store) InitUser(force bool) (string, error) {
	path := s.UserProfilePath()
	if exists(path) && !force {
		return "", fmt.Errorf("user profile %w: %s", ErrAlreadyExists, path)
	}
	content, err := s.render(templates.UserProfile, s.vars())
	if err != nil {
		return "", err
	}
	if err := s.writeText(path, content); err != nil {
		return "", err
	}
	return path, nil
}
