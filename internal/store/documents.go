package store

import (
	"github.com/rcliao/wingman-memory/internal/model"
)

// Documents enumerates every markdown document that exists under the root:
// user profile and memory, then each crush's profile, memory and logs.
func (s *Store) Documents() ([]model.Document, error) {
	var docs []model.Document
	add := func(kind model.Kind, handle, path string) {
		if exists(path) {
			docs = append(docs, model.Document{Kind: kind, Handle: handle, Path: path})
		}
	}

	add(model.KindUserProfile, "", s.UserProfilePath())
	add(model.KindUserMemory, "", s.UserMemoryPath())

	handles, err := s.ListCrushes()
	if err != nil {
		return nil, err
	}
	for _, h := range handles {
		add(model.KindCrushProfile, h, s.CrushProfilePath(h))
		add(model.KindCrushMemory, h, s.CrushMemoryPath(h))
		logs, err := s.Logs(h)
		if err != nil {
			return nil, err
		}
		for _, p := range logs {
			docs = append(docs, model.Document{Kind: model.KindCrushLog, Handle: h, Path: p})
		}
	}
	return docs, nil
}
