// Package preferences guarda las preferencias locales del usuario (tema).
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-catalog/internal/platform/localstore"
)

// ThemeKey es la clave del tema en el almacenamiento local.
const ThemeKey = "theme"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type Themes struct {
	kv       localstore.KV
	fallback Theme
}

// NewThemes usa fallback cuando no hay nada guardado (o es inválido).
func NewThemes(kv localstore.KV, fallback string) *Themes {
	t, ok := ParseTheme(fallback)
	if !ok {
		t = ThemeLight
	}
	return &Themes{kv: kv, fallback: t}
}

func (s *Themes) Get(ctx context.Context) Theme {
	raw, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		return s.fallback
	}
	if t, ok := ParseTheme(raw); ok {
		return t
	}
	return s.fallback
}

func (s *Themes) Set(ctx context.Context, t Theme) error {
	if _, ok := ParseTheme(string(t)); !ok {
		return ErrInvalidTheme
	}
	if err := s.kv.Set(ctx, ThemeKey, string(t)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// Toggle alterna entre claro y oscuro y devuelve el tema nuevo.
func (s *Themes) Toggle(ctx context.Context) (Theme, error) {
	next := s.Get(ctx).Toggled()
	if err := s.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
