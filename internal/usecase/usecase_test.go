package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/prompthost/prompthost/internal/capture"
	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/events"
	"github.com/prompthost/prompthost/internal/execution"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/prompthost/prompthost/internal/routing"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type fakeEngine struct {
	mu     sync.Mutex
	inputs []*execution.EnqueueRunInput
	err    error
}

func (f *fakeEngine) EnqueueRun(_ context.Context, input *execution.EnqueueRunInput) (*execution.RunHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, input)
	return &execution.RunHandle{RunID: fmt.Sprintf("run-%d", len(f.inputs))}, nil
}

func (f *fakeEngine) calls() []*execution.EnqueueRunInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*execution.EnqueueRunInput(nil), f.inputs...)
}

type fakeSink struct {
	mu   sync.Mutex
	errs []error
}

func (f *fakeSink) CaptureException(_ context.Context, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

func (f *fakeSink) captured() []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]error(nil), f.errs...)
}

type testEnv struct {
	injector *do.Injector
	engine   *fakeEngine
	sink     *fakeSink
	bus      *events.Bus
}

// newTestEnv wires the usecases against an in-memory sqlite database,
// a fake engine/sink, and an optionally seeded random source.
func newTestEnv(t *testing.T, randFloat func() float64) *testEnv {
	t.Helper()

	db, err := repository.NewSQLiteDB("")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	injector := do.New()
	do.ProvideValue(injector, db)
	do.Provide(injector, func(i *do.Injector) (repository.DeploymentTestRepository, error) {
		return repository.NewDeploymentTestRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.ProjectRepository, error) {
		return repository.NewProjectRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.CommitRepository, error) {
		return repository.NewCommitRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.DocumentRepository, error) {
		return repository.NewDocumentRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.UserRepository, error) {
		return repository.NewUserRepository(do.MustInvoke[*gorm.DB](i)), nil
	})

	router := routing.NewRouter()
	if randFloat != nil {
		router = routing.NewRouterWithRand(randFloat)
	}
	do.ProvideValue(injector, router)

	bus := events.NewBus(zerolog.Nop())
	do.ProvideValue(injector, bus)

	engine := &fakeEngine{}
	do.Provide(injector, func(i *do.Injector) (execution.Engine, error) { return engine, nil })
	sink := &fakeSink{}
	do.Provide(injector, func(i *do.Injector) (capture.Sink, error) { return sink, nil })

	do.Provide(injector, NewActiveTestGuard)
	do.Provide(injector, NewCreateDeploymentTestUsecase)
	do.Provide(injector, NewStartDeploymentTestUsecase)
	do.Provide(injector, NewPauseDeploymentTestUsecase)
	do.Provide(injector, NewStopDeploymentTestUsecase)
	do.Provide(injector, NewDestroyDeploymentTestUsecase)
	do.Provide(injector, NewUpdateDeploymentTestUsecase)
	do.Provide(injector, NewListDeploymentTestsUsecase)
	do.Provide(injector, NewResolveRoutingUsecase)
	do.Provide(injector, NewStartDocumentRunUsecase)
	do.Provide(injector, NewDispatchShadowRunUsecase)

	return &testEnv{injector: injector, engine: engine, sink: sink, bus: bus}
}

type fixture struct {
	workspaceID entity.ID
	project     *entity.Project
	head        *entity.Commit
	challenger  *entity.Commit
	document    *entity.Document
}

func seedProject(t *testing.T, env *testEnv) *fixture {
	t.Helper()
	ctx := context.Background()
	workspaceID := entity.ID("1")

	projects := do.MustInvoke[repository.ProjectRepository](env.injector)
	commits := do.MustInvoke[repository.CommitRepository](env.injector)
	documents := do.MustInvoke[repository.DocumentRepository](env.injector)

	project := lo.Must(projects.Create(ctx, &entity.Project{WorkspaceID: workspaceID, Name: "support-bot"}))
	head := lo.Must(commits.Create(ctx, &entity.Commit{
		WorkspaceID: workspaceID, ProjectID: project.ID, Message: "initial prompt",
	}))
	challenger := lo.Must(commits.Create(ctx, &entity.Commit{
		WorkspaceID: workspaceID, ProjectID: project.ID, Message: "tightened system prompt",
	}))
	lo.Must0(projects.SetHeadCommit(ctx, workspaceID, project.ID, head.ID))
	document := lo.Must(documents.Create(ctx, &entity.Document{
		WorkspaceID: workspaceID, ProjectID: project.ID, Name: "chat",
	}))

	return &fixture{
		workspaceID: workspaceID,
		project:     project,
		head:        head,
		challenger:  challenger,
		document:    document,
	}
}

func newBareProject(t *testing.T, env *testEnv, workspaceID entity.ID) *entity.Project {
	t.Helper()
	projects := do.MustInvoke[repository.ProjectRepository](env.injector)
	return lo.Must(projects.Create(context.Background(), &entity.Project{
		WorkspaceID: workspaceID, Name: "empty-project",
	}))
}

func createTest(t *testing.T, env *testEnv, f *fixture, testType entity.TestType, percentage *int) *entity.DeploymentTest {
	t.Helper()
	uc := do.MustInvoke[CreateDeploymentTestUsecase](env.injector)
	test, err := uc.Execute(context.Background(), &CreateDeploymentTestInput{
		WorkspaceID:        f.workspaceID,
		ProjectID:          f.project.ID,
		ChallengerCommitID: f.challenger.ID,
		TestType:           testType,
		TrafficPercentage:  percentage,
	})
	if err != nil {
		t.Fatalf("create %s test: %v", testType, err)
	}
	return test
}
