package routes

import (
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/auth"
	"github.com/fathima-sithara/messenger-backend/internal/handlers"
	"github.com/fathima-sithara/messenger-backend/internal/middleware"
	"github.com/fathima-sithara/messenger-backend/internal/ws"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Chats     *handlers.ChatHandler
	Groups    *handlers.GroupHandler
	Contacts  *handlers.ContactHandler
	Profiles  *handlers.ProfileHandler
	Reminders *handlers.ReminderHandler
	Links     *handlers.LinkHandler
	WS        *ws.Server
	Tokens    *auth.Manager
	Log       *zap.SugaredLogger
}

func Register(app *fiber.App, d Deps) {
	app.Use(middleware.Recovery(d.Log))
	app.Use(middleware.RequestLogger(d.Log))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	api.Post("/auth/signup", d.Auth.SignUp)
	api.Post("/auth/signin", d.Auth.SignIn)

	authed := api.Group("", middleware.RequireAuth(d.Tokens, d.Log))

	authed.Post("/auth/signout", d.Auth.SignOut)

	authed.Get("/me", d.Profiles.Me)
	authed.Patch("/me", d.Profiles.Update)
	authed.Post("/me/avatar", d.Profiles.UploadAvatar)

	authed.Post("/chats/direct", d.Chats.OpenDirect)
	authed.Post("/chats/group", d.Chats.CreateGroup)
	authed.Get("/chats", d.Chats.List)
	authed.Get("/chats/:id", d.Chats.Get)
	authed.Get("/chats/:id/messages", d.Chats.Messages)
	authed.Post("/chats/:id/messages", d.Chats.Send)
	authed.Patch("/chats/:id/messages/:messageId", d.Chats.Edit)
	authed.Delete("/chats/:id/messages/:messageId", d.Chats.Delete)
	authed.Post("/chats/:id/messages/:messageId/reaction", d.Chats.ToggleReaction)
	authed.Put("/chats/:id/typing", d.Chats.SetTyping)

	authed.Post("/chats/:id/admin", d.Groups.MakeAdmin)
	authed.Delete("/chats/:id/members/:userId", d.Groups.RemoveMember)
	authed.Post("/chats/:id/exit", d.Groups.Exit)
	authed.Post("/chats/:id/invite", d.Groups.GenerateInvite)
	authed.Delete("/chats/:id/invite", d.Groups.RevokeInvite)
	authed.Put("/chats/:id/join-approval", d.Groups.SetJoinApproval)
	authed.Get("/chats/:id/requests", d.Groups.PendingRequests)
	authed.Post("/chats/:id/requests/:requestId/approve", d.Groups.ApproveRequest)
	authed.Post("/chats/:id/requests/:requestId/decline", d.Groups.DeclineRequest)
	authed.Post("/join", d.Groups.Join)

	authed.Post("/contacts", d.Contacts.Add)
	authed.Get("/contacts", d.Contacts.List)
	authed.Patch("/contacts/:userId", d.Contacts.Rename)
	authed.Post("/contacts/:userId/favorite", d.Contacts.ToggleFavorite)
	authed.Delete("/contacts/:userId", d.Contacts.Remove)

	authed.Post("/reminders", d.Reminders.Create)
	authed.Get("/reminders", d.Reminders.List)
	authed.Delete("/reminders/:id", d.Reminders.Cancel)

	authed.Post("/links/resolve", d.Links.Resolve)

	// token travels in the query string here, the upgrade cannot carry headers
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", fiberws.New(d.WS.Handle()))
}
