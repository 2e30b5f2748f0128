package request

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyDescription = errors.New("request description cannot be empty")

// Request is a bulletin-board post asking for an item to be listed.
type Request struct {
	id          uuid.UUID
	description string
	requestorID uuid.UUID
	created     time.Time
}

func NewRequest(requestorID uuid.UUID, description string, created time.Time) (*Request, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	return &Request{
		id:          uuid.New(),
		description: description,
		requestorID: requestorID,
		created:     created,
	}, nil
}

func ReconstructRequest(id, requestorID uuid.UUID, description string, created time.Time) *Request {
	return &Request{
		id:          id,
		description: description,
		requestorID: requestorID,
		created:     created,
	}
}

func (r *Request) ID() uuid.UUID          { return r.id }
func (r *Request) Description() string    { return r.description }
func (r *Request) RequestorID() uuid.UUID { return r.requestorID }
func (r *Request) Created() time.Time     { return r.created }
