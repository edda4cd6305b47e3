package usecase

import (
	"context"
	"testing"

	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/samber/do"
	"github.com/samber/lo"
)

func TestResolveRouting_ChallengerWins(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	// percentage 100 forces the challenger for every identifier.
	test := createTest(t, env, f, entity.TestTypeAB, lo.ToPtr(100))

	uc := do.MustInvoke[ResolveRoutingUsecase](env.injector)
	out, err := uc.Execute(context.Background(), &ResolveRoutingInput{
		WorkspaceID:      f.workspaceID,
		ProjectID:        f.project.ID,
		Commit:           f.head,
		Source:           entity.RunSourceAPI,
		CustomIdentifier: lo.ToPtr("user-1"),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.ABTest == nil || out.ABTest.ID != test.ID {
		t.Fatalf("abTest = %+v, want test %s", out.ABTest, test.ID)
	}
	if out.Commit.ID != f.challenger.ID {
		t.Errorf("effective commit = %s, want challenger %s", out.Commit.ID, f.challenger.ID)
	}
	if out.Source != entity.RunSourceABTestChallenger {
		t.Errorf("source = %s, want %s", out.Source, entity.RunSourceABTestChallenger)
	}
}

func TestResolveRouting_BaselineWinsOnChallengerCommit(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	// percentage 0 forces the baseline; the request arrives pinned to
	// the challenger commit and is routed back to head.
	test := createTest(t, env, f, entity.TestTypeAB, lo.ToPtr(0))

	uc := do.MustInvoke[ResolveRoutingUsecase](env.injector)
	out, err := uc.Execute(context.Background(), &ResolveRoutingInput{
		WorkspaceID:      f.workspaceID,
		ProjectID:        f.project.ID,
		Commit:           f.challenger,
		Source:           entity.RunSourceApp,
		CustomIdentifier: lo.ToPtr("user-1"),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.ABTest == nil || out.ABTest.ID != test.ID {
		t.Fatalf("abTest = %+v, want test %s", out.ABTest, test.ID)
	}
	if out.Commit.ID != f.head.ID {
		t.Errorf("effective commit = %s, want head %s", out.Commit.ID, f.head.ID)
	}
	if out.Source != entity.RunSourceApp {
		t.Errorf("source = %s, want original %s", out.Source, entity.RunSourceApp)
	}
}

func TestResolveRouting_NoMatchPassthrough(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	createTest(t, env, f, entity.TestTypeAB, lo.ToPtr(100))

	commits := do.MustInvoke[repository.CommitRepository](env.injector)
	unrelated := lo.Must(commits.Create(context.Background(), &entity.Commit{
		WorkspaceID: f.workspaceID, ProjectID: f.project.ID, Message: "old revision",
	}))

	uc := do.MustInvoke[ResolveRoutingUsecase](env.injector)
	out, err := uc.Execute(context.Background(), &ResolveRoutingInput{
		WorkspaceID: f.workspaceID,
		ProjectID:   f.project.ID,
		Commit:      unrelated,
		Source:      entity.RunSourceAPI,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.ABTest != nil {
		t.Errorf("abTest = %+v, want nil", out.ABTest)
	}
	if out.Commit.ID != unrelated.ID {
		t.Errorf("commit = %s, want original %s", out.Commit.ID, unrelated.ID)
	}
	if out.Source != entity.RunSourceAPI {
		t.Errorf("source = %s, want original", out.Source)
	}
}

func TestResolveRouting_NoActiveTests(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)

	uc := do.MustInvoke[ResolveRoutingUsecase](env.injector)
	out, err := uc.Execute(context.Background(), &ResolveRoutingInput{
		WorkspaceID: f.workspaceID,
		ProjectID:   f.project.ID,
		Commit:      f.head,
		Source:      entity.RunSourceAPI,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.ABTest != nil || out.Commit.ID != f.head.ID || out.Source != entity.RunSourceAPI {
		t.Errorf("passthrough violated: %+v", out)
	}
}

func TestResolveRouting_ShadowTestsDoNotRoute(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	createTest(t, env, f, entity.TestTypeShadow, nil)

	uc := do.MustInvoke[ResolveRoutingUsecase](env.injector)
	out, err := uc.Execute(context.Background(), &ResolveRoutingInput{
		WorkspaceID: f.workspaceID,
		ProjectID:   f.project.ID,
		Commit:      f.head,
		Source:      entity.RunSourceAPI,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.ABTest != nil {
		t.Errorf("shadow test selected for request routing: %+v", out.ABTest)
	}
	if out.Commit.ID != f.head.ID {
		t.Errorf("commit = %s, want original head", out.Commit.ID)
	}
}

func TestResolveRouting_StickyAcrossCalls(t *testing.T) {
	env := newTestEnv(t, nil)
	f := seedProject(t, env)
	createTest(t, env, f, entity.TestTypeAB, lo.ToPtr(50))

	uc := do.MustInvoke[ResolveRoutingUsecase](env.injector)
	identifier := lo.ToPtr("session-42")
	first, err := uc.Execute(context.Background(), &ResolveRoutingInput{
		WorkspaceID:      f.workspaceID,
		ProjectID:        f.project.ID,
		Commit:           f.head,
		Source:           entity.RunSourceAPI,
		CustomIdentifier: identifier,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for i := 0; i < 5; i++ {
		out, err := uc.Execute(context.Background(), &ResolveRoutingInput{
			WorkspaceID:      f.workspaceID,
			ProjectID:        f.project.ID,
			Commit:           f.head,
			Source:           entity.RunSourceAPI,
			CustomIdentifier: identifier,
		})
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if out.Commit.ID != first.Commit.ID {
			t.Fatalf("routing flapped for sticky identifier: %s vs %s", out.Commit.ID, first.Commit.ID)
		}
	}
}
