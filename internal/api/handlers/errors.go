package handlers

import (
	"errors"
	"net/http"

	"github.com/mparker/character-vault/internal/domain"
)

// statusForError maps service errors to HTTP statuses: not-found conditions
// to 404, validation failures to 422, business-rule rejections to 409, and
// everything else (collaborator failures included) to a generic retryable 500.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCampaignNotFound),
		errors.Is(err, domain.ErrCharacterNotFound),
		errors.Is(err, domain.ErrCompanionNotFound),
		errors.Is(err, domain.ErrSpellNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrInvalidSpellLevel):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrSpellAlreadyPrepared),
		errors.Is(err, domain.ErrPreparedLimitReached):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "Something went wrong, please retry"
	}
}
