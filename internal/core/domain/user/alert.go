package user

import (
	"context"
	"time"
)

// PasswordChangedAlertSender notifies a user that their password was just
// changed. Delivery is best effort, callers must never fail the password
// change on a send error.
type PasswordChangedAlertSender interface {
	SendPasswordChangedAlert(ctx context.Context, u User, changedAt time.Time) error
}
