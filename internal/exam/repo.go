package exam

import "context"

// SaveRequest is the payload handed to the persistence collaborator.
type SaveRequest struct {
	Sections             []Section  `json:"sections"`
	Status               TestStatus `json:"completion_status"`
	CompletionPercentage int        `json:"completion_percentage"`
}

type Store interface {
	CreateTest(ctx context.Context, t Test) error
	GetTest(ctx context.Context, id string) (Test, error) // ErrNotFound when missing
	SaveTest(ctx context.Context, id string, req SaveRequest) error
}
