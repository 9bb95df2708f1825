package domain

import "errors"

var (
	ErrInvalidProjectParameters = errors.New("invalid project parameters")
	ErrProjectNotFound          = errors.New("project not found")
	ErrInvalidAmount            = errors.New("contribution amount must be positive")
	ErrProjectExpired           = errors.New("project deadline has passed")
	ErrProjectAlreadyFunded     = errors.New("project already reached its goal")
	ErrSelfFundingForbidden     = errors.New("creator cannot fund their own project")
	ErrNotAuthorized            = errors.New("caller is not the project creator")
	ErrNothingToWithdraw        = errors.New("no funds to withdraw")
	ErrCampaignStillActive      = errors.New("campaign is still active and below goal")
	ErrTransferFailed           = errors.New("funds transfer failed")
)
