// Package envelope builds the transport-agnostic response wrappers around
// search output. The transport layer decides status codes; the envelope
// only carries status, message, count, and projected results.
package envelope

import (
	"fmt"

	"github.com/cadastra/registryd/internal/domain/record"
)

const (
	// StatusSuccess marks a well-formed search outcome, including zero matches.
	StatusSuccess = "success"
	// StatusError marks a per-request failure such as malformed query input.
	StatusError = "error"
)

// Envelope wraps successful search output. Count is always present, results
// is always an array (empty on no matches — "no matches" is not an error).
type Envelope struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Count   int                `json:"count"`
	Results []record.Projected `json:"results"`
}

// Error wraps a per-request failure.
type Error struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Success builds the envelope for a completed search.
func Success(results []record.Projected) Envelope {
	if results == nil {
		results = []record.Projected{}
	}
	msg := "No matching records found"
	if len(results) > 0 {
		msg = fmt.Sprintf("Found %d matching record(s)", len(results))
	}
	return Envelope{
		Status:  StatusSuccess,
		Message: msg,
		Count:   len(results),
		Results: results,
	}
}

// Failure builds the error envelope from a per-request error.
func Failure(err error) Error {
	return Error{Status: StatusError, Message: err.Error()}
}
