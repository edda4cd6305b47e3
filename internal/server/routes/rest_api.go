package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prompthost/prompthost/internal/entity"
	"github.com/prompthost/prompthost/internal/usecase"
	"github.com/samber/do"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	type response struct {
		Error string `json:"error"`
	}
	return c.JSON(statusOf(err), &response{Error: err.Error()})
}

func RegisterRestAPI(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/api")

	g.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	g.POST("/workspaces/:ws/projects/:proj/deployment-tests", func(c echo.Context) error {
		type request struct {
			ChallengerCommitID string `json:"challenger_commit_id"`
			TestType           string `json:"test_type"`
			TrafficPercentage  *int   `json:"traffic_percentage"`
			CreatedByUserID    string `json:"created_by_user_id"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		input := &usecase.CreateDeploymentTestInput{
			WorkspaceID:        entity.ID(c.Param("ws")),
			ProjectID:          entity.ID(c.Param("proj")),
			ChallengerCommitID: entity.ID(req.ChallengerCommitID),
			TestType:           entity.TestType(req.TestType),
			TrafficPercentage:  req.TrafficPercentage,
		}
		if req.CreatedByUserID != "" {
			id := entity.ID(req.CreatedByUserID)
			input.CreatedByUserID = &id
		}

		uc := do.MustInvoke[usecase.CreateDeploymentTestUsecase](injector)
		test, err := uc.Execute(c.Request().Context(), input)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusCreated, test)
	})

	g.GET("/workspaces/:ws/projects/:proj/deployment-tests", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListDeploymentTestsUsecase](injector)
		tests, err := uc.Execute(c.Request().Context(), entity.ID(c.Param("ws")), entity.ID(c.Param("proj")))
		if err != nil {
			return fail(c, err)
		}

		type response struct {
			DeploymentTests []*entity.DeploymentTest `json:"deployment_tests"`
		}
		return c.JSON(http.StatusOK, &response{DeploymentTests: tests})
	})

	g.POST("/workspaces/:ws/deployment-tests/:id/start", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.StartDeploymentTestUsecase](injector)
		test, err := uc.Execute(c.Request().Context(), entity.ID(c.Param("ws")), entity.ID(c.Param("id")))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, test)
	})

	g.POST("/workspaces/:ws/deployment-tests/:id/pause", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.PauseDeploymentTestUsecase](injector)
		test, err := uc.Execute(c.Request().Context(), entity.ID(c.Param("ws")), entity.ID(c.Param("id")))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, test)
	})

	g.POST("/workspaces/:ws/deployment-tests/:id/stop", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.StopDeploymentTestUsecase](injector)
		test, err := uc.Execute(c.Request().Context(), entity.ID(c.Param("ws")), entity.ID(c.Param("id")))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, test)
	})

	g.PATCH("/workspaces/:ws/deployment-tests/:id", func(c echo.Context) error {
		type request struct {
			TrafficPercentage int `json:"traffic_percentage"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		uc := do.MustInvoke[usecase.UpdateDeploymentTestUsecase](injector)
		test, err := uc.Execute(c.Request().Context(), entity.ID(c.Param("ws")), entity.ID(c.Param("id")), req.TrafficPercentage)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, test)
	})

	g.DELETE("/workspaces/:ws/deployment-tests/:id", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.DestroyDeploymentTestUsecase](injector)
		if err := uc.Execute(c.Request().Context(), entity.ID(c.Param("ws")), entity.ID(c.Param("id"))); err != nil {
			return fail(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})

	g.POST("/workspaces/:ws/projects/:proj/documents/:doc/runs", func(c echo.Context) error {
		type request struct {
			CommitID         string         `json:"commit_id"`
			Parameters       map[string]any `json:"parameters"`
			Tools            []string       `json:"tools"`
			UserMessage      string         `json:"user_message"`
			CustomIdentifier *string        `json:"custom_identifier"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		uc := do.MustInvoke[usecase.StartDocumentRunUsecase](injector)
		out, err := uc.Execute(c.Request().Context(), &usecase.StartDocumentRunInput{
			WorkspaceID:      entity.ID(c.Param("ws")),
			ProjectID:        entity.ID(c.Param("proj")),
			DocumentID:       entity.ID(c.Param("doc")),
			CommitID:         entity.ID(req.CommitID),
			Parameters:       req.Parameters,
			Tools:            req.Tools,
			UserMessage:      req.UserMessage,
			Source:           entity.RunSourceAPI,
			CustomIdentifier: req.CustomIdentifier,
		})
		if err != nil {
			return fail(c, err)
		}

		type response struct {
			RunID  string                 `json:"run_id"`
			Commit *entity.Commit         `json:"commit"`
			Source entity.RunSource       `json:"source"`
			ABTest *entity.DeploymentTest `json:"ab_test,omitempty"`
		}
		return c.JSON(http.StatusAccepted, &response{
			RunID:  out.Run.RunID,
			Commit: out.Commit,
			Source: out.Source,
			ABTest: out.ABTest,
		})
	})
}
