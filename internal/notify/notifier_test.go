package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/events"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

func TestNotifier_TestCreatedWithCreatorEmail(t *testing.T) {
	db, err := repository.NewSQLiteDB("")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	users := repository.NewUserRepository(db)
	user := lo.Must(users.Create(context.Background(), &entity.User{
		WorkspaceID: "1", Email: "dev@example.com", Name: "Dev",
	}))

	var buf bytes.Buffer
	n := NewNotifier(users, zerolog.New(&buf))

	n.HandleEvent(context.Background(), &events.TestCreated{Test: &entity.DeploymentTest{
		UUID:            "t-uuid",
		WorkspaceID:     "1",
		ProjectID:       "1",
		TestType:        entity.TestTypeAB,
		CreatedByUserID: &user.ID,
	}})

	if !strings.Contains(buf.String(), "dev@example.com") {
		t.Errorf("creator email missing from notification: %s", buf.String())
	}
}

func TestNotifier_MissingCreatorDoesNotFail(t *testing.T) {
	db, err := repository.NewSQLiteDB("")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	users := repository.NewUserRepository(db)

	var buf bytes.Buffer
	n := NewNotifier(users, zerolog.New(&buf))

	unknown := entity.ID("999")
	n.HandleEvent(context.Background(), &events.TestCreated{Test: &entity.DeploymentTest{
		UUID:            "t-uuid",
		WorkspaceID:     "1",
		ProjectID:       "1",
		TestType:        entity.TestTypeShadow,
		CreatedByUserID: &unknown,
	}})

	if !strings.Contains(buf.String(), "deployment test created") {
		t.Errorf("notification not emitted: %s", buf.String())
	}
}
