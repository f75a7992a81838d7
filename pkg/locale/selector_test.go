package locale

import (
	"errors"
	"sync"
	"testing"
)

func TestNew_Canonicalizes(t *testing.T) {
	s, err := New("zh_cn", "EN")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if s.Locale() != "zh-CN" {
		t.Errorf("expected active locale zh-CN, got %q", s.Locale())
	}
	if s.Fallback() != "en" {
		t.Errorf("expected fallback locale en, got %q", s.Fallback())
	}
}

func TestNew_InvalidLocale(t *testing.T) {
	if _, err := New("", "en"); !errors.Is(err, ErrInvalidLocale) {
		t.Errorf("expected ErrInvalidLocale for empty active locale, got %v", err)
	}
	if _, err := New("en", "not a locale!"); !errors.Is(err, ErrInvalidLocale) {
		t.Errorf("expected ErrInvalidLocale for bad fallback, got %v", err)
	}
}

func TestSelector_Set(t *testing.T) {
	s, err := New("en", "en")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := s.Set("zh-CN"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if s.Locale() != "zh-CN" {
		t.Errorf("expected zh-CN, got %q", s.Locale())
	}

	if err := s.Set("???"); !errors.Is(err, ErrInvalidLocale) {
		t.Errorf("expected ErrInvalidLocale, got %v", err)
	}
	if s.Locale() != "zh-CN" {
		t.Errorf("failed Set must keep the previous locale, got %q", s.Locale())
	}
}

func TestSelector_ConcurrentAccess(t *testing.T) {
	s, err := New("en", "en")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.Set("ja")
			} else {
				_ = s.Locale()
			}
		}(i)
	}
	wg.Wait()
}
