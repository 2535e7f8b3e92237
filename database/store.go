package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"guardian-bot/models"
)

// document is the full durable state, serialized as a single JSON file.
// Collections are keyed by guild ID, then subject ID (temp actions are
// additionally keyed by action kind).
type document struct {
	Warnings    map[string]map[string][]models.Warning             `json:"warnings"`
	Jails       map[string]map[string]models.JailRecord            `json:"jails"`
	TempActions map[string]map[string]map[string]models.TempAction `json:"tempactions"`
	Tags        map[string]map[string]models.Tag                   `json:"tags"`
	Config      map[string]models.GuildConfig                      `json:"config"`
	Backups     map[string]models.Backup                           `json:"backups"`
}

func emptyDocument() document {
	return document{
		Warnings:    make(map[string]map[string][]models.Warning),
		Jails:       make(map[string]map[string]models.JailRecord),
		TempActions: make(map[string]map[string]map[string]models.TempAction),
		Tags:        make(map[string]map[string]models.Tag),
		Config:      make(map[string]models.GuildConfig),
		Backups:     make(map[string]models.Backup),
	}
}

// Store is the durable moderation store. All mutations are serialized and
// flushed to disk before they return; reads may run concurrently.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document

	defaultThreshold int
	defaultWindow    int
}

// Open loads the store from path, creating an empty one if the file does not
// exist yet. A file that exists but cannot be parsed is a startup error: the
// process must not continue with unknown moderation history.
func Open(path string, defaultThreshold, defaultWindow int) (*Store, error) {
	s := &Store{
		path:             path,
		defaultThreshold: defaultThreshold,
		defaultWindow:    defaultWindow,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
		}
		s.doc = emptyDocument()
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}
	// Collections may be absent in files written by older versions.
	if s.doc.Warnings == nil {
		s.doc.Warnings = make(map[string]map[string][]models.Warning)
	}
	if s.doc.Jails == nil {
		s.doc.Jails = make(map[string]map[string]models.JailRecord)
	}
	if s.doc.TempActions == nil {
		s.doc.TempActions = make(map[string]map[string]map[string]models.TempAction)
	}
	if s.doc.Tags == nil {
		s.doc.Tags = make(map[string]map[string]models.Tag)
	}
	if s.doc.Config == nil {
		s.doc.Config = make(map[string]models.GuildConfig)
	}
	if s.doc.Backups == nil {
		s.doc.Backups = make(map[string]models.Backup)
	}
	return s, nil
}

// persistLocked writes the full document to a temporary file and renames it
// over the durable one, so a crash mid-write never leaves a truncated file.
// Callers must hold the write lock.
func (s *Store) persistLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// Warnings returns a copy of the warnings issued to a member.
func (s *Store) Warnings(guildID, subjectID string) []models.Warning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	warns := s.doc.Warnings[guildID][subjectID]
	out := make([]models.Warning, len(warns))
	copy(out, warns)
	return out
}

// AddWarning appends a warning to the member's list.
func (s *Store) AddWarning(guildID, subjectID string, w models.Warning) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Warnings[guildID] == nil {
		s.doc.Warnings[guildID] = make(map[string][]models.Warning)
	}
	s.doc.Warnings[guildID][subjectID] = append(s.doc.Warnings[guildID][subjectID], w)
	return s.persistLocked()
}

// ClearWarnings removes all warnings for a member.
func (s *Store) ClearWarnings(guildID, subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Warnings[guildID] == nil {
		return nil
	}
	delete(s.doc.Warnings[guildID], subjectID)
	if len(s.doc.Warnings[guildID]) == 0 {
		delete(s.doc.Warnings, guildID)
	}
	return s.persistLocked()
}

// TempAction looks up the pending temp action for (guild, subject, kind).
func (s *Store) TempAction(guildID, subjectID string, kind models.ActionKind) (models.TempAction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ta, ok := s.doc.TempActions[guildID][subjectID][string(kind)]
	return ta, ok
}

// PutTempAction records a pending temp action, replacing any existing one
// for the same (guild, subject, kind).
func (s *Store) PutTempAction(ta models.TempAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.TempActions[ta.GuildID] == nil {
		s.doc.TempActions[ta.GuildID] = make(map[string]map[string]models.TempAction)
	}
	if s.doc.TempActions[ta.GuildID][ta.SubjectID] == nil {
		s.doc.TempActions[ta.GuildID][ta.SubjectID] = make(map[string]models.TempAction)
	}
	s.doc.TempActions[ta.GuildID][ta.SubjectID][string(ta.Kind)] = ta
	return s.persistLocked()
}

// DeleteTempAction removes a pending temp action record. Deleting a record
// that does not exist is a no-op.
func (s *Store) DeleteTempAction(guildID, subjectID string, kind models.ActionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	subjects := s.doc.TempActions[guildID]
	if subjects == nil || subjects[subjectID] == nil {
		return nil
	}
	delete(subjects[subjectID], string(kind))
	if len(subjects[subjectID]) == 0 {
		delete(subjects, subjectID)
	}
	if len(subjects) == 0 {
		delete(s.doc.TempActions, guildID)
	}
	return s.persistLocked()
}

// TempActions returns every pending temp action across all guilds, for
// startup reconciliation.
func (s *Store) TempActions() []models.TempAction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.TempAction
	for _, subjects := range s.doc.TempActions {
		for _, kinds := range subjects {
			for _, ta := range kinds {
				out = append(out, ta)
			}
		}
	}
	return out
}

// Jail looks up the jail record for a member.
func (s *Store) Jail(guildID, subjectID string) (models.JailRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.doc.Jails[guildID][subjectID]
	return rec, ok
}

// PutJail records a member as jailed.
func (s *Store) PutJail(guildID, subjectID string, rec models.JailRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Jails[guildID] == nil {
		s.doc.Jails[guildID] = make(map[string]models.JailRecord)
	}
	s.doc.Jails[guildID][subjectID] = rec
	return s.persistLocked()
}

// DeleteJail clears a member's jail record.
func (s *Store) DeleteJail(guildID, subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Jails[guildID] == nil {
		return nil
	}
	delete(s.doc.Jails[guildID], subjectID)
	if len(s.doc.Jails[guildID]) == 0 {
		delete(s.doc.Jails, guildID)
	}
	return s.persistLocked()
}

// Tag returns the moderation note for a member, if any.
func (s *Store) Tag(guildID, subjectID string) (models.Tag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tag, ok := s.doc.Tags[guildID][subjectID]
	return tag, ok
}

// PutTag sets the moderation note for a member; the latest write wins.
func (s *Store) PutTag(guildID, subjectID string, tag models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc.Tags[guildID] == nil {
		s.doc.Tags[guildID] = make(map[string]models.Tag)
	}
	s.doc.Tags[guildID][subjectID] = tag
	return s.persistLocked()
}

// GuildConfig returns the guild's configuration with the global anti-spam
// defaults applied where the guild has no override.
func (s *Store) GuildConfig(guildID string) models.GuildConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.doc.Config[guildID]
	if cfg.SpamThreshold <= 0 {
		cfg.SpamThreshold = s.defaultThreshold
	}
	if cfg.SpamWindowSeconds <= 0 {
		cfg.SpamWindowSeconds = s.defaultWindow
	}
	return cfg
}

// PutGuildConfig replaces the guild's configuration.
func (s *Store) PutGuildConfig(guildID string, cfg models.GuildConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Config[guildID] = cfg
	return s.persistLocked()
}

// UpdateGuildConfig applies fn to the guild's stored configuration and
// persists the result.
func (s *Store) UpdateGuildConfig(guildID string, fn func(*models.GuildConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.doc.Config[guildID]
	fn(&cfg)
	s.doc.Config[guildID] = cfg
	return s.persistLocked()
}

// Backup returns the stored snapshot for a guild, if any.
func (s *Store) Backup(guildID string) (models.Backup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.doc.Backups[guildID]
	return b, ok
}

// PutBackup stores a guild snapshot, replacing any previous one.
func (s *Store) PutBackup(guildID string, b models.Backup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Backups[guildID] = b
	return s.persistLocked()
}
