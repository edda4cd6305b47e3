package entity

import "time"

type User struct {
	ID          ID        `json:"id"`
	WorkspaceID ID        `json:"workspace_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
