package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/app/repositories"
	"github.com/shashiranjanraj/offerdesk/app/requests"
	"github.com/shashiranjanraj/offerdesk/app/resources"
	"github.com/shashiranjanraj/offerdesk/pkg/ctx"
	"github.com/shashiranjanraj/offerdesk/pkg/event"
	"github.com/shashiranjanraj/offerdesk/pkg/resource"
)

type UserController struct {
	users  *repositories.Repository[models.User]
	events *event.Dispatcher
}

func NewUserController(users *repositories.Repository[models.User], events *event.Dispatcher) *UserController {
	return &UserController{users: users, events: events}
}

func (uc *UserController) Index(c *ctx.Context) {
	users, err := uc.users.All(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resource.Collect(resources.User, users))
}

func (uc *UserController) Show(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := uc.users.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resources.UserSummary.ToArray(user))
}

func (uc *UserController) Store(c *ctx.Context) {
	var in requests.User
	if !c.BindJSON(&in) {
		return
	}
	user := in.ToModel()
	if err := uc.users.Create(c.Context(), user); err != nil {
		fail(c, err)
		return
	}
	emit(uc.events, "users", event.Created, user.ID)
	c.Status(http.StatusCreated)
}

// Update replaces every field, id included: the user may move to a new id.
func (uc *UserController) Update(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in requests.User
	if !c.BindJSON(&in) {
		return
	}
	user := in.ToModel()
	if err := uc.users.Replace(c.Context(), id, user); err != nil {
		fail(c, err)
		return
	}
	if uc.events != nil {
		change := event.Change{Resource: "users", Action: event.Updated, ID: user.ID}
		if user.ID != id {
			change.PreviousID = id
		}
		uc.events.Fire(event.Changed, change)
	}
	c.Status(StatusUpdated)
}

func (uc *UserController) Destroy(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := uc.users.Delete(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	emit(uc.events, "users", event.Deleted, id)
	c.Status(StatusUpdated)
}
