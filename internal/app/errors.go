package service

import "errors"

// Sentinel errors returned by the Service.
var (
	ErrNotFound        = errors.New("not found")
	ErrPlayerPromotion = errors.New("player promotion cannot be deleted")
	ErrNoPlayer        = errors.New("no player promotion")
	ErrLoadGame        = errors.New("load game failed")
	ErrSaveGame        = errors.New("save game failed")
	ErrSettings        = errors.New("settings failed")
	ErrAdvanceWeek     = errors.New("advance week failed")
)
