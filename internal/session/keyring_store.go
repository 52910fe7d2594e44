package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/logger"
	"github.com/zalando/go-keyring"
)

const (
	serviceName = "ai-planner"
	keyringUser = "session-token"
)

// KeyringStore keeps the token in the OS keyring and the profile as a
// JSON file in the config dir. When the keyring is unavailable (headless
// machines, stripped-down containers) the token falls back to a 0600 file
// next to the profile.
type KeyringStore struct {
	dir string
}

// NewKeyringStore creates a store rooted at the given config dir.
func NewKeyringStore(dir string) *KeyringStore {
	return &KeyringStore{dir: dir}
}

func (k *KeyringStore) profilePath() string { return filepath.Join(k.dir, "profile.json") }
func (k *KeyringStore) tokenPath() string   { return filepath.Join(k.dir, "token") }

func (k *KeyringStore) Current() (*Session, error) {
	token, err := k.readToken()
	if err != nil || token == "" {
		return nil, err
	}

	s := Session{Token: token}

	// A missing or unparseable profile is not fatal: the token alone is
	// enough to talk to the backend.
	if data, err := os.ReadFile(k.profilePath()); err == nil {
		var profile domain.UserProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			logger.Warn("discarding malformed profile cache", "path", k.profilePath())
		} else {
			s.User = profile
		}
	}

	return &s, nil
}

func (k *KeyringStore) Save(s Session) error {
	if err := os.MkdirAll(k.dir, 0o700); err != nil {
		return err
	}

	if err := keyring.Set(serviceName, keyringUser, s.Token); err != nil {
		logger.Warn("keyring unavailable, falling back to token file", "err", err)
		if err := os.WriteFile(k.tokenPath(), []byte(s.Token), 0o600); err != nil {
			return err
		}
	}

	data, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	return os.WriteFile(k.profilePath(), data, 0o600)
}

func (k *KeyringStore) Clear() error {
	if err := keyring.Delete(serviceName, keyringUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Warn("keyring delete failed", "err", err)
	}
	if err := os.Remove(k.tokenPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(k.profilePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (k *KeyringStore) readToken() (string, error) {
	token, err := keyring.Get(serviceName, keyringUser)
	if err == nil {
		return token, nil
	}
	// Fall through to the token file for both ErrNotFound and keyring
	// backends that are not available at all.
	data, ferr := os.ReadFile(k.tokenPath())
	if ferr != nil {
		if os.IsNotExist(ferr) {
			return "", nil
		}
		return "", ferr
	}
	return string(data), nil
}
