package usecase

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/jhoicas/Pos-api/internal/domain"
	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

const languagePrefix = "pref:language:"

// PreferenceUseCase preferencias del usuario guardadas en el KV.
type PreferenceUseCase struct {
	kv       repository.KVStore
	fallback language.Tag
}

// NewPreferenceUseCase construye el caso de uso; fallback es el idioma cuando no hay preferencia.
func NewPreferenceUseCase(kv repository.KVStore, fallback string) *PreferenceUseCase {
	tag, err := language.Parse(fallback)
	if err != nil {
		tag = language.Spanish
	}
	return &PreferenceUseCase{kv: kv, fallback: tag}
}

// Language idioma preferido del usuario en forma canónica BCP-47.
func (uc *PreferenceUseCase) Language(ctx context.Context, userID string) (string, error) {
	v, ok, err := uc.kv.Get(ctx, languagePrefix+userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return uc.fallback.String(), nil
	}
	return v, nil
}

// SetLanguage guarda el idioma; ErrInvalidInput si no es una etiqueta BCP-47 válida.
func (uc *PreferenceUseCase) SetLanguage(ctx context.Context, userID, lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("idioma %q: %w", lang, domain.ErrInvalidInput)
	}
	canonical := tag.String()
	if err := uc.kv.Set(ctx, languagePrefix+userID, canonical, 0); err != nil {
		return "", err
	}
	return canonical, nil
}
