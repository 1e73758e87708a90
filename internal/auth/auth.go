// Package auth manages the cloud access token in promptpulse's own config
// namespace. Only token presence is consulted by setup detection; the token
// itself is read by the upload path.
package auth

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mizutanik/promptpulse/internal/config"
)

// Store reads and writes the access token.
type Store struct {
	configPath string
}

// NewStore creates a Store against the default config path.
func NewStore() *Store {
	return NewStoreAt(config.GetOwnConfigPath())
}

// NewStoreAt creates a Store against an explicit config path.
func NewStoreAt(configPath string) *Store {
	return &Store{configPath: configPath}
}

// IsAuthenticated reports whether a token is stored. Errors reading the
// config count as not authenticated.
func (s *Store) IsAuthenticated() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// Token returns the stored token, empty when none is set.
func (s *Store) Token() (string, error) {
	cfg, err := config.LoadFile(s.configPath)
	if err != nil {
		return "", err
	}
	return cfg.Token, nil
}

// SetToken stores a token.
func (s *Store) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token must not be empty")
	}

	cfg, err := config.LoadFile(s.configPath)
	if err != nil {
		return err
	}
	cfg.Token = token
	if err := config.SaveFile(s.configPath, cfg); err != nil {
		return err
	}

	log.Info().Msg("token stored")
	return nil
}

// ClearToken removes the stored token. Clearing an absent token is a no-op.
func (s *Store) ClearToken() error {
	cfg, err := config.LoadFile(s.configPath)
	if err != nil {
		return err
	}
	if cfg.Token == "" {
		return nil
	}
	cfg.Token = ""
	return config.SaveFile(s.configPath, cfg)
}
