package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"

	domainRepo "github.com/hrkone/kuitti-api/internal/domain/repository"
)

// fileSettingsRepository persists settings as a single structured file with
// dotted-key access, and owns the per-company daily receipt counters stored
// under "counters.<company>".
type fileSettingsRepository struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string

	// now is swappable for tests.
	now func() time.Time
}

// NewFileSettingsRepository opens (or creates) the settings file. Defaults
// are seeded so a fresh deployment works without any file present.
func NewFileSettingsRepository(path string) (domainRepo.SettingsRepository, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("receipt.width", 42)
	v.SetDefault("receipt.feed_lines", 3)
	v.SetDefault("receipt.cut", true)
	v.SetDefault("defaults.language", "FI")
	v.SetDefault("defaults.currency", "EUR")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			log.Printf("Settings file %s not found, starting with defaults", path)
		} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Settings file %s not found, starting with defaults", path)
		} else {
			return nil, fmt.Errorf("settings: read %s: %w", path, err)
		}
	}

	return &fileSettingsRepository{v: v, path: path, now: time.Now}, nil
}

// NewFileSettingsRepositoryWithClock is NewFileSettingsRepository with an
// injectable clock, used to exercise the daily counter reset in tests.
func NewFileSettingsRepositoryWithClock(path string, now func() time.Time) (domainRepo.SettingsRepository, error) {
	repo, err := NewFileSettingsRepository(path)
	if err != nil {
		return nil, err
	}
	repo.(*fileSettingsRepository).now = now
	return repo, nil
}

func (r *fileSettingsRepository) Get(key string) interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.v.Get(key)
}

func (r *fileSettingsRepository) GetInt(key string, def int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.v.IsSet(key) {
		return def
	}
	return r.v.GetInt(key)
}

func (r *fileSettingsRepository) GetString(key, def string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.v.IsSet(key) {
		return def
	}
	return r.v.GetString(key)
}

func (r *fileSettingsRepository) Set(key string, value interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.Set(key, value)
	return r.persist()
}

// persist writes the settings file; callers hold the mutex.
func (r *fileSettingsRepository) persist() error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings: create dir %s: %w", dir, err)
		}
	}
	if err := r.v.WriteConfigAs(r.path); err != nil {
		return fmt.Errorf("settings: write %s: %w", r.path, err)
	}
	return nil
}

func (r *fileSettingsRepository) PeekReceiptID(company string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	date, seq := r.counterState(company)
	return formatReceiptID(date, seq+1)
}

func (r *fileSettingsRepository) CommitReceiptID(company string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	date, seq := r.counterState(company)
	seq++
	key := "counters." + SafeName(company)
	r.v.Set(key+".date", date)
	r.v.Set(key+".seq", seq)
	if err := r.persist(); err != nil {
		return "", err
	}
	return formatReceiptID(date, seq), nil
}

// counterState returns today's date stamp and the sequence already consumed
// for the company today (zero when the stored date is stale or absent).
// Callers hold the mutex.
func (r *fileSettingsRepository) counterState(company string) (string, int) {
	today := r.now().Format("20060102")
	key := "counters." + SafeName(company)
	if r.v.GetString(key+".date") != today {
		return today, 0
	}
	return today, r.v.GetInt(key + ".seq")
}

func formatReceiptID(date string, seq int) string {
	return fmt.Sprintf("%s-%04d", date, seq)
}
