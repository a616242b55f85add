package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/core/course"
)

type courseApi struct {
	svc      course.Service
	acctSvc  account.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{
		svc:      deps.CourseSvc,
		acctSvc:  deps.AccountSvc,
		validate: deps.Validate,
	}

	mg := g.Group("/modules", jwt)
	mg.GET("", api.queryModules, activeMiddleware())
	mg.POST("", api.addModule, adminMiddleware())

	lg := g.Group("/lessons", jwt)
	lg.GET("", api.queryLessons, activeMiddleware())
	lg.GET("/:id", api.retrieveLesson, activeMiddleware())
	lg.POST("", api.createLesson, adminMiddleware())
	lg.PUT("/:id", api.updateLesson, adminMiddleware())
	lg.DELETE("/:id", api.destroyLesson, adminMiddleware())
}

// Handlers

func (api *courseApi) queryModules(ctx echo.Context) error {
	mods, err := api.svc.QueryModules()
	if err != nil {
		return errors.Wrap(err, "querying modules")
	}
	if mods == nil {
		mods = []course.Module{}
	}
	return ctx.JSON(http.StatusOK, mods)
}

func (api *courseApi) addModule(ctx echo.Context) error {
	var data course.NewModule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewModule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	actor, err := getContextAccount(ctx, api.acctSvc)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	mod, err := api.svc.AddModule(actor, data)
	if err != nil {
		return errors.Wrap(err, "adding module")
	}
	return ctx.JSON(http.StatusCreated, mod)
}

func (api *courseApi) queryLessons(ctx echo.Context) error {
	lessons, err := api.svc.QueryLessons()
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []course.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *courseApi) retrieveLesson(ctx echo.Context) error {
	les, err := api.svc.GetLesson(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding lesson")
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *courseApi) createLesson(ctx echo.Context) error {
	var data course.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	actor, err := getContextAccount(ctx, api.acctSvc)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	les, err := api.svc.CreateLesson(actor, data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, les)
}

func (api *courseApi) updateLesson(ctx echo.Context) error {
	var data course.UpdateLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	actor, err := getContextAccount(ctx, api.acctSvc)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	les, err := api.svc.UpdateLesson(actor, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *courseApi) destroyLesson(ctx echo.Context) error {
	actor, err := getContextAccount(ctx, api.acctSvc)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	if err := api.svc.DeleteLesson(actor, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}
