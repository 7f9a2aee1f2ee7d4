package entities

import "errors"

// Lookup errors shared by repositories and services.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrSettingsNotFound = errors.New("settings not found")
	ErrProgressNotFound = errors.New("no quiz in progress")
)
