package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

const (
	keyCastMediaID   = "cast.media_id"
	keyCastPlaying   = "cast.play_status"
	keyAuthTokenHash = "auth.token_hash"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting setting: %w", err)
	}
	return value, nil
}

const settingUpsert = `INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`

func (s *Store) SetSetting(key, value string) error {
	if _, err := s.db.Exec(settingUpsert, key, value); err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) DeleteSetting(key string) error {
	if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// CastMediaID returns the id of the media last known to be casting, empty
// when none is.
func (s *Store) CastMediaID() (string, error) {
	return s.GetSetting(keyCastMediaID)
}

func (s *Store) SetCastMediaID(id string) error {
	return s.SetSetting(keyCastMediaID, id)
}

// CastPlayStatus returns the last persisted remote play/pause state.
// Missing or unparsable values read as false.
func (s *Store) CastPlayStatus() (bool, error) {
	v, err := s.GetSetting(keyCastPlaying)
	if err != nil {
		return false, err
	}
	playing, _ := strconv.ParseBool(v)
	return playing, nil
}

func (s *Store) SetCastPlayStatus(playing bool) error {
	return s.SetSetting(keyCastPlaying, strconv.FormatBool(playing))
}

// ClearCastState removes the cast linkage, equivalent to a remote-session
// disconnect.
func (s *Store) ClearCastState() error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE key IN (?, ?)`, keyCastMediaID, keyCastPlaying)
	if err != nil {
		return fmt.Errorf("clearing cast state: %w", err)
	}
	return nil
}

// TokenHash returns the control-API token hash, empty when auth is not
// configured.
func (s *Store) TokenHash() (string, error) {
	return s.GetSetting(keyAuthTokenHash)
}

func (s *Store) SetTokenHash(hash string) error {
	return s.SetSetting(keyAuthTokenHash, hash)
}
