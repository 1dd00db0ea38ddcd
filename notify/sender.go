// Package notify is the delivery port for one-time login codes. Actual
// email delivery is an external collaborator; the service only needs
// something that can hand a code to an identity.
package notify

import "github.com/rs/zerolog"

type Sender interface {
	Send(identity, code string) error
}

// LogSender writes code notifications to the log. It is the development
// sender; revealCodes controls whether the code itself appears, and must
// stay off in a production posture.
type LogSender struct {
	log         zerolog.Logger
	revealCodes bool
}

func NewLogSender(log zerolog.Logger, revealCodes bool) *LogSender {
	return &LogSender{log: log, revealCodes: revealCodes}
}

func (s *LogSender) Send(identity, code string) error {
	event := s.log.Info().Str("identity", identity)
	if s.revealCodes {
		event = event.Str("code", code)
	}
	event.Msg("login challenge issued")
	return nil
}
