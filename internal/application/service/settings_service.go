package service

import (
	"strings"

	"github.com/hrkone/kuitti-api/internal/domain/repository"
	"github.com/hrkone/kuitti-api/pkg/apperror"
)

// SettingsService handles the dotted-key settings store. Only whitelisted key
// prefixes are writable over HTTP; counters are managed by the print path and
// read-only here.
type SettingsService struct {
	settings repository.SettingsRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// writablePrefixes are the key namespaces the settings endpoint may change.
var writablePrefixes = []string{"receipt.", "printer.", "ui."}

// settingsKeys are the keys reported by GetAll.
var settingsKeys = []string{
	"receipt.width",
	"receipt.feed_lines",
	"receipt.cut",
	"receipt.bold_header",
	"printer.type",
	"ui.language",
}

// GetAll returns the known settings keys with their current values. Unset
// keys are omitted.
func (s *SettingsService) GetAll() map[string]interface{} {
	out := make(map[string]interface{}, len(settingsKeys))
	for _, key := range settingsKeys {
		if v := s.settings.Get(key); v != nil {
			out[key] = v
		}
	}
	return out
}

// Get returns one setting value, or nil when unset.
func (s *SettingsService) Get(key string) interface{} {
	return s.settings.Get(key)
}

// Set stores one setting value after checking the key is writable.
func (s *SettingsService) Set(key string, value interface{}) error {
	writable := false
	for _, prefix := range writablePrefixes {
		if strings.HasPrefix(key, prefix) {
			writable = true
			break
		}
	}
	if !writable {
		return apperror.NewBadRequestError("Setting key is not writable: " + key)
	}
	return s.settings.Set(key, value)
}
