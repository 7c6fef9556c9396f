package command

import (
	"errors"

	repository "github.com/okian/ringside/internal/adapters/repository"
	service "github.com/okian/ringside/internal/app"
	"github.com/okian/ringside/internal/domain/calendar"
	"github.com/okian/ringside/internal/domain/model"
)

// Error kinds reported in failed responses.
const (
	KindUnknownCommand = "unknown_command"
	KindBadRequest     = "bad_request"
	KindNotFound       = "not_found"
	KindRuleViolation  = "rule_violation"
	KindForbidden      = "forbidden"
	KindNoGame         = "no_game"
	KindLoadFailed     = "load_failed"
	KindSaveFailed     = "save_failed"
	KindSettings       = "settings_failed"
	KindInvalidState   = "invalid_state"
	KindInternal       = "internal"
)

// Kind classifies err for the response envelope.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownCommand):
		return KindUnknownCommand
	case errors.Is(err, ErrBadArguments), errors.Is(err, model.ErrDecode):
		return KindBadRequest
	case errors.Is(err, service.ErrLoadGame):
		return KindLoadFailed
	case errors.Is(err, service.ErrSaveGame):
		return KindSaveFailed
	case errors.Is(err, service.ErrSettings):
		return KindSettings
	case errors.Is(err, service.ErrAdvanceWeek), errors.Is(err, calendar.ErrInvalidDate):
		return KindInvalidState
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, model.ErrShowNotFound),
		errors.Is(err, model.ErrStaffNotFound):
		return KindNotFound
	case errors.Is(err, service.ErrPlayerPromotion):
		return KindForbidden
	case errors.Is(err, service.ErrNoPlayer):
		return KindNoGame
	case errors.Is(err, model.ErrInvalidShowType),
		errors.Is(err, model.ErrInvalidFacility),
		errors.Is(err, model.ErrFacilityDowngrade),
		errors.Is(err, model.ErrInvalidStaffRole),
		errors.Is(err, model.ErrRosterEmpty),
		errors.Is(err, model.ErrTitleVacant),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrInvalidTransactionType):
		return KindRuleViolation
	}
	return KindInternal
}
