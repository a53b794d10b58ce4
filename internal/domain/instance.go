package domain

import "time"

// Instance represents the singleton server instance configuration.
type Instance struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	LocalURL    string    `json:"localUrl,omitempty"`
	RemoteURL   string    `json:"remoteUrl,omitempty"`
	HasRootUser bool      `json:"hasRootUser"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SetupRequired reports whether first-run setup still needs to happen.
func (i *Instance) SetupRequired() bool {
	return !i.HasRootUser
}
