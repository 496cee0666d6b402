package chat

import (
	"errors"
	"fmt"

	"github.com/tailored-agentic-units/apoteker/gateway"
	"github.com/tailored-agentic-units/apoteker/session"
)

// UserMessage maps an Ask error to the line shown to the user. Each failure
// kind gets its own wording so the user can tell them apart.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrInvalidInput):
		return "Please type a question first."
	case errors.Is(err, ErrBusy):
		return "Please wait until the current answer arrives."
	case errors.Is(err, gateway.ErrEmptyResponse):
		return "Sorry, something went wrong getting a response. Please try again."
	case errors.Is(err, gateway.ErrTimeout):
		return "Sorry, Gemini took too long to answer. Please ask again."
	case errors.Is(err, gateway.ErrTransportFailure):
		return "Sorry, Gemini could not be reached. Check your connection and ask again."
	case errors.Is(err, gateway.ErrProviderError):
		return fmt.Sprintf("Sorry, an error occurred while communicating with Gemini: %v", err)
	case errors.Is(err, gateway.ErrInitialization):
		return fmt.Sprintf("Gemini is not configured: %v", err)
	default:
		return fmt.Sprintf("Sorry, an unexpected error occurred: %v", err)
	}
}
