package chat

import "errors"

// ErrBusy is returned by Ask while another Ask on the same Assistant is
// still waiting for the model.
var ErrBusy = errors.New("an answer is already pending")

// ErrNoGateway is returned by New when no gateway is supplied.
var ErrNoGateway = errors.New("gateway is required")
