package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/events"
	"github.com/samber/do"
	"github.com/samber/lo"
)

func runStartedEvent(f *fixture, test *entity.DeploymentTest) *events.RunStarted {
	return &events.RunStarted{
		WorkspaceID:      f.workspaceID,
		ProjectID:        f.project.ID,
		DocumentID:       f.document.ID,
		CommitID:         f.head.ID,
		Parameters:       map[string]any{"temperature": 0.2},
		Tools:            []string{"search", "ticket_create"},
		UserMessage:      "where is my order?",
		CustomIdentifier: lo.ToPtr("user-1"),
		ActiveTest:       test,
	}
}

func TestDispatchShadowRun_NoAttachedTest(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	uc := do.MustInvoke[DispatchShadowRunUsecase](env.injector)

	uc.Execute(context.Background(), runStartedEvent(f, nil))
	if calls := env.engine.calls(); len(calls) != 0 {
		t.Errorf("engine called %d times, want 0", len(calls))
	}
}

func TestDispatchShadowRun_ABTestIsIgnored(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	ab := createTest(t, env, f, entity.TestTypeAB, lo.ToPtr(100))
	uc := do.MustInvoke[DispatchShadowRunUsecase](env.injector)

	uc.Execute(context.Background(), runStartedEvent(f, ab))
	if calls := env.engine.calls(); len(calls) != 0 {
		t.Errorf("engine called %d times, want 0", len(calls))
	}
}

func TestDispatchShadowRun_EnqueuesSimulatedChallengerRun(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	shadow := createTest(t, env, f, entity.TestTypeShadow, nil) // 100%
	uc := do.MustInvoke[DispatchShadowRunUsecase](env.injector)

	uc.Execute(context.Background(), runStartedEvent(f, shadow))

	calls := env.engine.calls()
	if len(calls) != 1 {
		t.Fatalf("engine called %d times, want 1", len(calls))
	}
	run := calls[0]
	if run.CommitID != f.challenger.ID {
		t.Errorf("commit = %s, want challenger %s", run.CommitID, f.challenger.ID)
	}
	if run.Source != entity.RunSourceShadowTest {
		t.Errorf("source = %s, want %s", run.Source, entity.RunSourceShadowTest)
	}
	if run.Simulation == nil || !run.Simulation.SimulateToolResponses {
		t.Error("tool responses are not simulated")
	}
	if run.UserMessage != "where is my order?" {
		t.Errorf("user message not carried over: %q", run.UserMessage)
	}
	if len(env.sink.captured()) != 0 {
		t.Errorf("unexpected captured errors: %v", env.sink.captured())
	}
}

func TestDispatchShadowRun_ZeroPercentNeverDuplicates(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	shadow := createTest(t, env, f, entity.TestTypeShadow, lo.ToPtr(0))
	uc := do.MustInvoke[DispatchShadowRunUsecase](env.injector)

	for i := 0; i < 20; i++ {
		uc.Execute(context.Background(), runStartedEvent(f, shadow))
	}
	if calls := env.engine.calls(); len(calls) != 0 {
		t.Errorf("engine called %d times, want 0", len(calls))
	}
}

func TestDispatchShadowRun_LookupFailureIsCaptured(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	shadow := createTest(t, env, f, entity.TestTypeShadow, nil)
	// Point the attached test at a commit that does not exist.
	shadow.ChallengerCommitID = entity.ID("999999")
	uc := do.MustInvoke[DispatchShadowRunUsecase](env.injector)

	uc.Execute(context.Background(), runStartedEvent(f, shadow))

	if calls := env.engine.calls(); len(calls) != 0 {
		t.Errorf("engine called %d times, want 0", len(calls))
	}
	if captured := env.sink.captured(); len(captured) != 1 {
		t.Fatalf("captured %d errors, want 1", len(captured))
	}
}

func TestDispatchShadowRun_EnqueueFailureIsCaptured(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	shadow := createTest(t, env, f, entity.TestTypeShadow, nil)
	env.engine.err = errors.New("queue unavailable")
	uc := do.MustInvoke[DispatchShadowRunUsecase](env.injector)

	uc.Execute(context.Background(), runStartedEvent(f, shadow))

	if captured := env.sink.captured(); len(captured) != 1 {
		t.Fatalf("captured %d errors, want 1", len(captured))
	}
}
