// Package event exposes planned events and how their cost is split.
package event

import (
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/middleware"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the event routes.
func Routes(app *fiber.App, client *rpc.Client, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/events", protected, FindAll(client))
	app.Post("/events", protected, Create(client))
	app.Get("/events/:id", protected, FindOne(client))
	app.Patch("/events/:id", protected, Update(client))
	app.Delete("/events/:id", protected, Delete(client))
	app.Post("/events/:id/participants", protected, AddParticipant(client))
	app.Delete("/events/:id/participants/:participantId", protected, RemoveParticipant(client))
}

// Create plans an event.
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} common.Response{data=dto.EventRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /events [post]
// @Security Bearer
func Create(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.CreateEventRequest](c)
		if input == nil {
			return err // error response already written
		}
		b, err := rpc.Call[dto.EventRead](c.UserContext(), client, rpc.ServiceEvents, rpc.Create, userID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create event", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Event created", b)
	}
}

// FindAll lists the caller's events.
// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {object} common.Response{data=[]dto.EventRead}
// @Failure 401 {object} common.ProblemDetails
// @Router /events [get]
// @Security Bearer
func FindAll(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := rpc.Call[[]*dto.EventRead](c.UserContext(), client, rpc.ServiceEvents, rpc.FindAll, userID, nil)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list events", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Events fetched", list)
	}
}

// FindOne returns one event with its participants.
// @Summary Get event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} common.Response{data=dto.EventRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /events/{id} [get]
// @Security Bearer
func FindOne(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.FindOne, nil, "Event fetched", "Failed to get event")
}

// Update changes an event.
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} common.Response{data=dto.EventRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /events/{id} [patch]
// @Security Bearer
func Update(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.Update, bind[dto.UpdateEventRequest], "Event updated", "Failed to update event")
}

// Delete archives an event.
// @Summary Archive event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} common.Response{data=dto.EventRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /events/{id} [delete]
// @Security Bearer
func Delete(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.Delete, nil, "Event archived", "Failed to archive event")
}

// AddParticipant adds a participant with a percentage share.
// @Summary Add participant
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.AddEventParticipantRequest true "Participant"
// @Success 200 {object} common.Response{data=dto.EventRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /events/{id}/participants [post]
// @Security Bearer
func AddParticipant(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.AddParticipant, bind[dto.AddEventParticipantRequest], "Participant added", "Failed to add participant")
}

// RemoveParticipant removes a participant from an event.
// @Summary Remove participant
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Param participantId path string true "Participant ID"
// @Success 200 {object} common.Response{data=dto.EventRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /events/{id}/participants/{participantId} [delete]
// @Security Bearer
func RemoveParticipant(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.RemoveParticipant, nil, "Participant removed", "Failed to remove participant")
}

// binder reads the request body. A nil payload with a nil error means the
// error response was already written.
type binder func(c *fiber.Ctx) (any, error)

func bind[T any](c *fiber.Ctx) (any, error) {
	input, err := common.BindAndValidate[T](c)
	if input == nil {
		return nil, err
	}
	return input, nil
}

func forward(client *rpc.Client, pattern rpc.Pattern, body binder, message, failure string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		var payload any
		if body != nil {
			if payload, err = body(c); payload == nil {
				return err // error response already written
			}
		}
		b, err := rpc.Call[dto.EventRead](
			c.UserContext(), client, rpc.ServiceEvents, pattern, userID, payload,
			rpc.WithID(c.Params("id")), rpc.WithSubID(c.Params("participantId")),
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, failure, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, b)
	}
}
