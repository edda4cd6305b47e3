package repository

import (
	"time"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model
	WorkspaceID  uint `gorm:"index"`
	Name         string
	HeadCommitID *uint
}

func (p *Project) ToEntity() *entity.Project {
	e := &entity.Project{
		ID:          entity.NewID(p.ID),
		WorkspaceID: entity.NewID(p.WorkspaceID),
		Name:        p.Name,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.HeadCommitID != nil {
		e.HeadCommitID = lo.ToPtr(entity.NewID(*p.HeadCommitID))
	}
	return e
}

func (p *Project) FromEntity(e *entity.Project) {
	if e.ID != "" {
		p.ID = e.ID.Uint()
	}
	p.WorkspaceID = e.WorkspaceID.Uint()
	p.Name = e.Name
	if e.HeadCommitID != nil {
		p.HeadCommitID = lo.ToPtr(e.HeadCommitID.Uint())
	}
}

type Commit struct {
	gorm.Model
	WorkspaceID uint `gorm:"index"`
	ProjectID   uint `gorm:"index"`
	Message     string
	Content     string
}

func (c *Commit) ToEntity() *entity.Commit {
	return &entity.Commit{
		ID:          entity.NewID(c.ID),
		WorkspaceID: entity.NewID(c.WorkspaceID),
		ProjectID:   entity.NewID(c.ProjectID),
		Message:     c.Message,
		Content:     c.Content,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (c *Commit) FromEntity(e *entity.Commit) {
	if e.ID != "" {
		c.ID = e.ID.Uint()
	}
	c.WorkspaceID = e.WorkspaceID.Uint()
	c.ProjectID = e.ProjectID.Uint()
	c.Message = e.Message
	c.Content = e.Content
}

type Document struct {
	gorm.Model
	WorkspaceID uint `gorm:"index"`
	ProjectID   uint `gorm:"index"`
	Name        string
}

func (d *Document) ToEntity() *entity.Document {
	return &entity.Document{
		ID:          entity.NewID(d.ID),
		WorkspaceID: entity.NewID(d.WorkspaceID),
		ProjectID:   entity.NewID(d.ProjectID),
		Name:        d.Name,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (d *Document) FromEntity(e *entity.Document) {
	if e.ID != "" {
		d.ID = e.ID.Uint()
	}
	d.WorkspaceID = e.WorkspaceID.Uint()
	d.ProjectID = e.ProjectID.Uint()
	d.Name = e.Name
}

type User struct {
	gorm.Model
	WorkspaceID uint `gorm:"index"`
	Email       string
	Name        string
}

func (u *User) ToEntity() *entity.User {
	return &entity.User{
		ID:          entity.NewID(u.ID),
		WorkspaceID: entity.NewID(u.WorkspaceID),
		Email:       u.Email,
		Name:        u.Name,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (u *User) FromEntity(e *entity.User) {
	if e.ID != "" {
		u.ID = e.ID.Uint()
	}
	u.WorkspaceID = e.WorkspaceID.Uint()
	u.Email = e.Email
	u.Name = e.Name
}

type DeploymentTest struct {
	gorm.Model
	UUID               string `gorm:"uniqueIndex"`
	WorkspaceID        uint   `gorm:"index"`
	ProjectID          uint   `gorm:"index"`
	ChallengerCommitID uint
	TestType           string
	TrafficPercentage  int
	Status             string
	StartedAt          *time.Time
	EndedAt            *time.Time
	CreatedByUserID    *uint
}

func (t *DeploymentTest) ToEntity() *entity.DeploymentTest {
	e := &entity.DeploymentTest{
		ID:                 entity.NewID(t.ID),
		UUID:               t.UUID,
		WorkspaceID:        entity.NewID(t.WorkspaceID),
		ProjectID:          entity.NewID(t.ProjectID),
		ChallengerCommitID: entity.NewID(t.ChallengerCommitID),
		TestType:           entity.TestType(t.TestType),
		TrafficPercentage:  t.TrafficPercentage,
		Status:             entity.TestStatus(t.Status),
		StartedAt:          t.StartedAt,
		EndedAt:            t.EndedAt,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
	if t.CreatedByUserID != nil {
		e.CreatedByUserID = lo.ToPtr(entity.NewID(*t.CreatedByUserID))
	}
	return e
}

func (t *DeploymentTest) FromEntity(e *entity.DeploymentTest) {
	if e.ID != "" {
		t.ID = e.ID.Uint()
	}
	t.UUID = e.UUID
	t.WorkspaceID = e.WorkspaceID.Uint()
	t.ProjectID = e.ProjectID.Uint()
	t.ChallengerCommitID = e.ChallengerCommitID.Uint()
	t.TestType = string(e.TestType)
	t.TrafficPercentage = e.TrafficPercentage
	t.Status = string(e.Status)
	t.StartedAt = e.StartedAt
	t.EndedAt = e.EndedAt
	if e.CreatedByUserID != nil {
		t.CreatedByUserID = lo.ToPtr(e.CreatedByUserID.Uint())
	}
}

// Run is a queued document execution recorded by the local engine.
type Run struct {
	gorm.Model
	UUID             string `gorm:"uniqueIndex"`
	WorkspaceID      uint   `gorm:"index"`
	ProjectID        uint
	DocumentID       uint
	CommitID         uint
	Source           string
	Status           string
	Parameters       string
	Tools            string
	UserMessage      string
	CustomIdentifier *string
	SimulateTools    bool
}
