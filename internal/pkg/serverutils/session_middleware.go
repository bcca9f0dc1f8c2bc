package serverutils

import (
	"time"

	"ticket-intel-be/internal/repository/memory"
	"ticket-intel-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionCookie   = "review_session"
	SessionLocalKey = "review_session"
)

// SessionMiddleware gives every browser a review session keyed by cookie.
// The session object is loaded (or created) per request and handed to
// controllers through ctx.Locals, so no handler touches ambient state.
func SessionMiddleware(sessions *memory.SessionRepository, ttl time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Cookies(sessionCookie)

		var session *store.ReviewSession
		if id != "" {
			session, _ = sessions.Get(id)
		}

		if session == nil {
			id = uuid.NewString()
			session = store.NewReviewSession(id)
			sessions.Save(session)

			ctx.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Expires:  time.Now().Add(ttl),
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}

		ctx.Locals(SessionLocalKey, session)
		return ctx.Next()
	}
}

// SessionFromCtx pulls the review session the middleware attached.
func SessionFromCtx(ctx *fiber.Ctx) *store.ReviewSession {
	session, _ := ctx.Locals(SessionLocalKey).(*store.ReviewSession)
	return session
}
