package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetActionMessage returns a message describing the outcome of an intent
	GetActionMessage(ctx context.Context, input *GetActionMessageInput) (*GetActionMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)

	// GetStepLabel returns the title and empty marker for a ladder step
	GetStepLabel(ctx context.Context, input *GetStepLabelInput) (*GetStepLabelOutput, error)
}
