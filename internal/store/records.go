package store

import (
	"strings"

	"github.com/nightrate/nightrate/internal/model"
)

// Typed accessors for the fixed records. Each Load returns ok=false when the
// record was never written.

func (s *Store) SaveAPIConfig(cfg model.APIConfig) error {
	cfg.PriceLabs.APIKey = strings.TrimSpace(cfg.PriceLabs.APIKey)
	return s.Set(KeyAPIConfig, cfg)
}

func (s *Store) LoadAPIConfig() (model.APIConfig, bool, error) {
	var cfg model.APIConfig
	ok, err := s.Get(KeyAPIConfig, &cfg)
	return cfg, ok, err
}

func (s *Store) ClearAPIConfig() error {
	return s.Delete(KeyAPIConfig)
}

// HasAPIKey reports whether a non-empty PriceLabs key is stored.
func (s *Store) HasAPIKey() (bool, error) {
	cfg, ok, err := s.LoadAPIConfig()
	if err != nil || !ok {
		return false, err
	}
	return strings.TrimSpace(cfg.PriceLabs.APIKey) != "", nil
}

func (s *Store) SaveSelectedProperty(p model.SelectedProperty) error {
	return s.Set(KeySelectedProperty, p)
}

func (s *Store) LoadSelectedProperty() (model.SelectedProperty, bool, error) {
	var p model.SelectedProperty
	ok, err := s.Get(KeySelectedProperty, &p)
	return p, ok, err
}

func (s *Store) ClearSelectedProperty() error {
	return s.Delete(KeySelectedProperty)
}

func (s *Store) SavePropertyContext(c model.PropertyContext) error {
	return s.Set(KeyPropertyContext, c)
}

func (s *Store) LoadPropertyContext() (model.PropertyContext, bool, error) {
	var c model.PropertyContext
	ok, err := s.Get(KeyPropertyContext, &c)
	return c, ok, err
}

func (s *Store) ClearPropertyContext() error {
	return s.Delete(KeyPropertyContext)
}

func (s *Store) SaveConversationID(id string) error {
	return s.Set(KeyLastConversation, id)
}

func (s *Store) LoadConversationID() (string, bool, error) {
	var id string
	ok, err := s.Get(KeyLastConversation, &id)
	if err != nil || !ok {
		return "", ok, err
	}
	return id, id != "", nil
}

func (s *Store) ClearConversationID() error {
	return s.Delete(KeyLastConversation)
}
