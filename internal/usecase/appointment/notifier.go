package appointment

import "github.com/hospitalhq/hospital-api/internal/mailer"

// Notifier is the fire-and-forget notification collaborator. The mailer
// dispatcher satisfies it; tests substitute a synchronous fake.
type Notifier interface {
	Dispatch(msg mailer.Message)
}
