package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LoginOptions is either Credentials or ResumeSession.
type LoginOptions interface {
	loginOptions()
}

// Credentials logs in with a handle, DID or email and a password. A
// leading "@" on the identifier is ignored.
type Credentials struct {
	Identifier      string `json:"identifier"`
	Password        string `json:"password"`
	AuthFactorToken string `json:"authFactorToken,omitempty"`
}

func (Credentials) loginOptions() {}

// ResumeSession continues a session issued earlier.
type ResumeSession struct {
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
	DID        string `json:"did,omitempty"`
	Handle     string `json:"handle,omitempty"`
}

func (ResumeSession) loginOptions() {}

// DecodeLoginOptions decides from the JSON object's fields whether data
// holds credentials or a session. Exactly one of the two shapes must be
// present.
func DecodeLoginOptions(data []byte) (LoginOptions, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: login options: %v", ErrInvalidArgument, err)
	}

	_, hasID := raw["identifier"]
	_, hasPassword := raw["password"]
	_, hasAccess := raw["accessJwt"]
	_, hasRefresh := raw["refreshJwt"]

	isCreds := hasID && hasPassword
	isSession := hasAccess && hasRefresh

	switch {
	case isCreds && !isSession && !hasAccess && !hasRefresh:
		var c Credentials
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("%w: credentials: %v", ErrInvalidArgument, err)
		}
		return c, nil
	case isSession && !hasID && !hasPassword:
		var s ResumeSession
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: session: %v", ErrInvalidArgument, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: need either identifier and password or accessJwt and refreshJwt", ErrInvalidArgument)
	}
}

// normalizeLoginOptions checks opts and returns it in value form.
func normalizeLoginOptions(opts LoginOptions) (LoginOptions, error) {
	switch o := opts.(type) {
	case *Credentials:
		if o == nil {
			return nil, fmt.Errorf("%w: nil credentials", ErrInvalidArgument)
		}
		return normalizeLoginOptions(*o)
	case *ResumeSession:
		if o == nil {
			return nil, fmt.Errorf("%w: nil session", ErrInvalidArgument)
		}
		return normalizeLoginOptions(*o)
	case Credentials:
		if strings.TrimSpace(o.Identifier) == "" || o.Password == "" {
			return nil, fmt.Errorf("%w: identifier and password are required", ErrInvalidArgument)
		}
		return o, nil
	case ResumeSession:
		if o.AccessJwt == "" || o.RefreshJwt == "" {
			return nil, fmt.Errorf("%w: accessJwt and refreshJwt are required", ErrInvalidArgument)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("%w: unsupported login options %T", ErrInvalidArgument, opts)
	}
}
