package entity

import "time"

// Commit is an immutable prompt version within a project. The project's
// HeadCommitID points at the live one.
type Commit struct {
	ID          ID        `json:"id"`
	WorkspaceID ID        `json:"workspace_id"`
	ProjectID   ID        `json:"project_id"`
	Message     string    `json:"message"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
