package repository_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/hrkone/kuitti-api/internal/infrastructure/repository"
)

func settingsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "settings.yaml")
}

func fixedClock(day int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestSettingsDefaultsWithoutFile(t *testing.T) {
	repo, err := repository.NewFileSettingsRepository(settingsPath(t))
	if err != nil {
		t.Fatal(err)
	}
	if got := repo.GetInt("receipt.width", 0); got != 42 {
		t.Errorf("receipt.width = %d, want seeded 42", got)
	}
	if got := repo.GetInt("receipt.unknown_key", 7); got != 7 {
		t.Errorf("unset key = %d, want caller default 7", got)
	}
}

func TestSettingsSetPersists(t *testing.T) {
	path := settingsPath(t)
	repo, err := repository.NewFileSettingsRepository(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Set("receipt.width", 48); err != nil {
		t.Fatal(err)
	}

	reopened, err := repository.NewFileSettingsRepository(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := reopened.GetInt("receipt.width", 0); got != 48 {
		t.Errorf("reopened receipt.width = %d, want 48", got)
	}
}

func TestReceiptIDSequence(t *testing.T) {
	repo, err := repository.NewFileSettingsRepositoryWithClock(settingsPath(t), fixedClock(31))
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		id, err := repo.CommitReceiptID("Kahvila Testi")
		if err != nil {
			t.Fatal(err)
		}
		want := fmt.Sprintf("20260831-%04d", i)
		if id != want {
			t.Errorf("commit %d = %q, want %q", i, id, want)
		}
	}
}

func TestPeekIsSideEffectFree(t *testing.T) {
	repo, err := repository.NewFileSettingsRepositoryWithClock(settingsPath(t), fixedClock(31))
	if err != nil {
		t.Fatal(err)
	}

	first := repo.PeekReceiptID("Kahvila Testi")
	second := repo.PeekReceiptID("Kahvila Testi")
	if first != "20260831-0001" || second != "20260831-0001" {
		t.Errorf("peeks = %q, %q, want both 20260831-0001", first, second)
	}

	id, err := repo.CommitReceiptID("Kahvila Testi")
	if err != nil {
		t.Fatal(err)
	}
	if id != "20260831-0001" {
		t.Errorf("commit after peeks = %q, want 20260831-0001", id)
	}
	if next := repo.PeekReceiptID("Kahvila Testi"); next != "20260831-0002" {
		t.Errorf("peek after commit = %q, want 20260831-0002", next)
	}
}

func TestCountersPerCompany(t *testing.T) {
	repo, err := repository.NewFileSettingsRepositoryWithClock(settingsPath(t), fixedClock(31))
	if err != nil {
		t.Fatal(err)
	}

	if id, _ := repo.CommitReceiptID("Kahvila A"); id != "20260831-0001" {
		t.Errorf("company A first = %q", id)
	}
	if id, _ := repo.CommitReceiptID("Kahvila A"); id != "20260831-0002" {
		t.Errorf("company A second = %q", id)
	}
	if id, _ := repo.CommitReceiptID("Kahvila B"); id != "20260831-0001" {
		t.Errorf("company B must have its own counter, got %q", id)
	}
}

func TestCounterDailyReset(t *testing.T) {
	path := settingsPath(t)
	repo, err := repository.NewFileSettingsRepositoryWithClock(path, fixedClock(30))
	if err != nil {
		t.Fatal(err)
	}
	if id, _ := repo.CommitReceiptID("Kahvila Testi"); id != "20260830-0001" {
		t.Errorf("day one = %q", id)
	}
	if id, _ := repo.CommitReceiptID("Kahvila Testi"); id != "20260830-0002" {
		t.Errorf("day one second = %q", id)
	}

	// Same file, next day: the sequence starts over.
	nextDay, err := repository.NewFileSettingsRepositoryWithClock(path, fixedClock(31))
	if err != nil {
		t.Fatal(err)
	}
	if id, _ := nextDay.CommitReceiptID("Kahvila Testi"); id != "20260831-0001" {
		t.Errorf("after reset = %q, want 20260831-0001", id)
	}
}

func TestCounterPersistsAcrossReopen(t *testing.T) {
	path := settingsPath(t)
	repo, err := repository.NewFileSettingsRepositoryWithClock(path, fixedClock(31))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CommitReceiptID("Kahvila Testi"); err != nil {
		t.Fatal(err)
	}

	reopened, err := repository.NewFileSettingsRepositoryWithClock(path, fixedClock(31))
	if err != nil {
		t.Fatal(err)
	}
	if id, _ := reopened.CommitReceiptID("Kahvila Testi"); id != "20260831-0002" {
		t.Errorf("after reopen = %q, want 20260831-0002", id)
	}
}
