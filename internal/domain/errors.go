package domain

import "errors"

var (
	ErrInvalidDeadline        = errors.New("deadline must be in the future")
	ErrInvalidTargetAmount    = errors.New("target amount must be positive")
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrCampaignEnded          = errors.New("campaign ended")
	ErrGoalReached            = errors.New("goal reached")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrIncorrectFeeAmount     = errors.New("incorrect fee amount")
	ErrUnacceptableToken      = errors.New("unacceptable token")
	ErrNoValueSent            = errors.New("no value sent")
	ErrFeeTransferFailed      = errors.New("fee transfer failed")
	ErrDonationTransferFailed = errors.New("donation transfer failed")
)
