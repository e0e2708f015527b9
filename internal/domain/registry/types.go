package registry

import (
	"errors"
	"fmt"
	"strings"
)

const (
	SampleFunctionName       = "SampleFunction"
	DefaultSampleFunctionURL = "http://127.0.0.1:7072"
	RegisteredMessage        = "Function registered successfully"
)

var ErrInvalidDescriptor = errors.New("invalid function descriptor")

// FunctionDescriptor is a callable function endpoint. The JSON field names
// are part of the public wire format.
type FunctionDescriptor struct {
	Name string `json:"Name"`
	URL  string `json:"Url"`
}

func (d FunctionDescriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDescriptor)
	}
	if strings.TrimSpace(d.URL) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidDescriptor)
	}
	return nil
}

// LoopbackURL rewrites localhost to the IPv4 loopback literal so that
// callers resolving "localhost" to ::1 still reach the function host.
func LoopbackURL(url string) string {
	return strings.ReplaceAll(url, "localhost", "127.0.0.1")
}

// Seed builds the read-only listing prefix from configuration.
func Seed(sampleFunctionURL string) []FunctionDescriptor {
	url := DefaultSampleFunctionURL
	if sampleFunctionURL != "" {
		url = LoopbackURL(sampleFunctionURL)
	}
	return []FunctionDescriptor{{Name: SampleFunctionName, URL: url}}
}
