// Package contact is the contact-form stub. It collects a message through
// dialogs and acknowledges it after a simulated send; nothing leaves the
// machine.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrCanceled means the user closed a dialog.
	ErrCanceled       = errors.New("contact: canceled")
	ErrInvalidMessage = errors.New("contact: invalid message")
)

// DefaultSendDelay matches the pause before the thank-you note.
const DefaultSendDelay = time.Second

// Message is one submitted form.
type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Validate checks the required fields.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMessage)
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("%w: email %q: %v", ErrInvalidMessage, m.Email, err)
	}
	return nil
}

// Acknowledgement is the thank-you text shown after sending.
func (m Message) Acknowledgement() string {
	return fmt.Sprintf("Thank you, %s! Your message has been received. I'll get back to you soon.", strings.TrimSpace(m.Name))
}

// Prompter shows dialogs. Entry returns ErrCanceled when dismissed.
type Prompter interface {
	Entry(title, prompt, initial string) (string, error)
	Info(title, text string) error
}

// Form drives one contact exchange.
type Form struct {
	Prompter  Prompter
	SendDelay time.Duration
	Log       *zap.Logger
	// OnSubmit runs as soon as a valid message is collected, before the
	// simulated send. The host uses it for the burst effect.
	OnSubmit func(Message)
}

// Run collects a message, waits SendDelay and shows the acknowledgement.
// It blocks; call it off the game loop. A cancel returns ErrCanceled.
func (f *Form) Run(ctx context.Context) (Message, error) {
	log := f.Log
	if log == nil {
		log = zap.NewNop()
	}

	msg, err := f.collect(Message{})
	if errors.Is(err, ErrInvalidMessage) {
		log.Info("contact form invalid, asking again", zap.Error(err))
		msg, err = f.collect(msg)
	}
	if err != nil {
		return msg, err
	}
	if f.OnSubmit != nil {
		f.OnSubmit(msg)
	}

	delay := f.SendDelay
	if delay == 0 {
		delay = DefaultSendDelay
	}
	select {
	case <-ctx.Done():
		return msg, ctx.Err()
	case <-time.After(delay):
	}

	log.Info("contact message received", zap.String("name", msg.Name), zap.String("subject", msg.Subject))
	if err := f.Prompter.Info("Message sent", msg.Acknowledgement()); err != nil && !errors.Is(err, ErrCanceled) {
		return msg, fmt.Errorf("showing acknowledgement: %w", err)
	}
	return msg, nil
}

// collect asks for every field, prefilled from prev.
func (f *Form) collect(prev Message) (Message, error) {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Your name", &prev.Name},
		{"Your email", &prev.Email},
		{"Subject", &prev.Subject},
		{"Message", &prev.Body},
	}
	for _, fld := range fields {
		v, err := f.Prompter.Entry("Contact", fld.prompt, *fld.dst)
		if err != nil {
			return prev, err
		}
		*fld.dst = strings.TrimSpace(v)
	}
	return prev, prev.Validate()
}
