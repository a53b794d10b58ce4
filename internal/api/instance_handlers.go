package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/service"
)

func (s *Server) registerInstanceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getInstance",
		Method:      http.MethodGet,
		Path:        "/api/v1/instance",
		Summary:     "Instance info",
		Description: "Returns server instance configuration and setup status",
		Tags:        []string{"Instance"},
	}, s.handleGetInstance)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateInstance",
		Method:      http.MethodPatch,
		Path:        "/api/v1/instance",
		Summary:     "Update instance",
		Description: "Updates mutable instance settings. Root only.",
		Tags:        []string{"Instance"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateInstance)
}

// === DTOs ===

// InstanceResponse contains server instance data. Exposed without
// authentication so clients can discover setup state.
type InstanceResponse struct {
	ID            string    `json:"id" doc:"Instance ID"`
	Name          string    `json:"name" doc:"Server display name"`
	Version       string    `json:"version" doc:"Server version"`
	LocalURL      string    `json:"localUrl,omitempty" doc:"LAN base URL"`
	RemoteURL     string    `json:"remoteUrl,omitempty" doc:"Public base URL"`
	SetupRequired bool      `json:"setupRequired" doc:"Whether initial setup is still required"`
	CreatedAt     time.Time `json:"createdAt" doc:"Creation time"`
	UpdatedAt     time.Time `json:"updatedAt" doc:"Last update time"`
}

// InstanceOutput wraps the instance response for Huma.
type InstanceOutput struct {
	Body InstanceResponse
}

// UpdateInstanceRequest is the request body for updating instance settings.
type UpdateInstanceRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=100" doc:"Server display name"`
	RemoteURL *string `json:"remoteUrl,omitempty" validate:"omitempty,max=500" doc:"Public base URL"`
}

// UpdateInstanceInput wraps the update request for Huma.
type UpdateInstanceInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateInstanceRequest
}

// === Handlers ===

func (s *Server) handleGetInstance(ctx context.Context, _ *struct{}) (*InstanceOutput, error) {
	instance, err := s.services.Instance.GetInstance(ctx)
	if err != nil {
		return nil, err
	}

	return &InstanceOutput{
		Body: InstanceResponse{
			ID:            instance.ID,
			Name:          instance.Name,
			Version:       instance.Version,
			LocalURL:      instance.LocalURL,
			RemoteURL:     instance.RemoteURL,
			SetupRequired: instance.SetupRequired(),
			CreatedAt:     instance.CreatedAt,
			UpdatedAt:     instance.UpdatedAt,
		},
	}, nil
}

func (s *Server) handleUpdateInstance(ctx context.Context, input *UpdateInstanceInput) (*InstanceOutput, error) {
	if _, err := s.authenticateAndRequireRoot(ctx, input.Authorization); err != nil {
		return nil, err
	}

	instance, err := s.services.Instance.UpdateInstanceSettings(ctx, &service.InstanceUpdate{
		Name:      input.Body.Name,
		RemoteURL: input.Body.RemoteURL,
	})
	if err != nil {
		return nil, err
	}

	return &InstanceOutput{
		Body: InstanceResponse{
			ID:            instance.ID,
			Name:          instance.Name,
			Version:       instance.Version,
			LocalURL:      instance.LocalURL,
			RemoteURL:     instance.RemoteURL,
			SetupRequired: instance.SetupRequired(),
			CreatedAt:     instance.CreatedAt,
			UpdatedAt:     instance.UpdatedAt,
		},
	}, nil
}
