package entity

import "time"

type Project struct {
	ID           ID        `json:"id"`
	WorkspaceID  ID        `json:"workspace_id"`
	Name         string    `json:"name"`
	HeadCommitID *ID       `json:"head_commit_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
