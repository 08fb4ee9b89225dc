// Package jobs defines the background jobs dispatched through pkg/queue.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/vastra/pkg/mail"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

// OTPEmailJobName is the queue registration name for OTPEmailJob.
const OTPEmailJobName = "otp_email"

// OTPEmailJob delivers a verification code to a user's inbox.
type OTPEmailJob struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (OTPEmailJob) Name() string { return OTPEmailJobName }

func (j OTPEmailJob) Handle() error {
	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto;">
			<h2>Verify your email</h2>
			<p>Use the code below to verify your Vastra account. It is only
			valid for the most recent request.</p>
			<p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</p>
			<p>If you did not request this, you can safely ignore this email.</p>
		</div>`, j.Code)

	return mail.To(j.Email).
		Subject("Your Vastra verification code").
		Body(body).
		Send()
}

// Register wires every job type into the queue. Call once at boot.
func Register() {
	queue.Register(OTPEmailJobName, func() queue.Job { return &OTPEmailJob{} })
}
