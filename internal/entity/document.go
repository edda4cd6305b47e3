package entity

import "time"

type Document struct {
	ID          ID        `json:"id"`
	WorkspaceID ID        `json:"workspace_id"`
	ProjectID   ID        `json:"project_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
