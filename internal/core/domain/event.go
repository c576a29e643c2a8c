package domain

import "time"

// AuthEventKind names the authentication step an AuthEvent records.
type AuthEventKind string

const (
	AuthEventLogin   AuthEventKind = "login"
	AuthEventRefresh AuthEventKind = "refresh"
)

// AuthEvent is an audit record of a login or refresh attempt. It never
// carries passwords or token material.
type AuthEvent struct {
	Username   string
	Kind       AuthEventKind
	Success    bool
	RemoteIP   string
	OccurredAt time.Time
}
