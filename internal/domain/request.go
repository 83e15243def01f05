package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

type EventRequest struct {
	ID            int64
	Title         string
	Description   string
	ProposedDate  time.Time
	ProposedTime  time.Time
	Location      string
	Capacity      int
	RequestedBy   uuid.UUID
	RequesterName string
	Status        RequestStatus
	AdminRemarks  string
	ImageURL      string
	CreatedAt     time.Time
}

type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

func ParseReviewAction(s string) (ReviewAction, error) {
	switch a := ReviewAction(s); a {
	case ActionApprove, ActionReject:
		return a, nil
	}
	return "", ErrInvalidAction
}

func (a ReviewAction) Status() RequestStatus {
	if a == ActionApprove {
		return RequestApproved
	}
	return RequestRejected
}
