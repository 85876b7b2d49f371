package notification

// AddUserInput contains parameters for subscribing a user
type AddUserInput struct {
	TrainingID int64
	UserID     string
}

// RemoveUserInput contains parameters for unsubscribing a user
type RemoveUserInput struct {
	TrainingID int64
	UserID     string
}

// HasUserInput contains parameters for checking a subscription
type HasUserInput struct {
	TrainingID int64
	UserID     string
}

// GetUsersInput contains parameters for listing subscribers
type GetUsersInput struct {
	TrainingID int64
}

// DeleteInput contains parameters for dropping a training's subscriptions
type DeleteInput struct {
	TrainingID int64
}
