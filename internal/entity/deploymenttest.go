package entity

import "time"

type TestType string

const (
	TestTypeAB     TestType = "ab"
	TestTypeShadow TestType = "shadow"
)

func (t TestType) Valid() bool {
	return t == TestTypeAB || t == TestTypeShadow
}

// DefaultTrafficPercentage is the percentage used when none is given:
// shadow tests duplicate everything, A/B tests split evenly.
func (t TestType) DefaultTrafficPercentage() int {
	if t == TestTypeShadow {
		return 100
	}
	return 50
}

type TestStatus string

const (
	TestStatusPending   TestStatus = "pending"
	TestStatusRunning   TestStatus = "running"
	TestStatusPaused    TestStatus = "paused"
	TestStatusCompleted TestStatus = "completed"
	TestStatusCancelled TestStatus = "cancelled"
)

// Active reports whether a test in this status participates in routing
// and counts against the one-active-test-per-type invariant.
func (s TestStatus) Active() bool {
	return s == TestStatusPending || s == TestStatusRunning || s == TestStatusPaused
}

// DeploymentTest pits a fixed challenger commit against the project's
// moving head commit. The baseline is never stored; it is resolved as
// the head commit at routing time.
type DeploymentTest struct {
	ID                 ID         `json:"id"`
	UUID               string     `json:"uuid"`
	WorkspaceID        ID         `json:"workspace_id"`
	ProjectID          ID         `json:"project_id"`
	ChallengerCommitID ID         `json:"challenger_commit_id"`
	TestType           TestType   `json:"test_type"`
	TrafficPercentage  int        `json:"traffic_percentage"`
	Status             TestStatus `json:"status"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	CreatedByUserID    *ID        `json:"created_by_user_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
