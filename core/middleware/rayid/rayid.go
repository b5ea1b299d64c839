package rayid

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the RayID on requests and responses.
	Header = "X-Ray-ID"
	// LocalsKey is where the RayID is stored on the Fiber context.
	LocalsKey = "ray_id"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// New returns a middleware that assigns every request a RayID. A well-formed
// incoming X-Ray-ID is kept so traces can span services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if !validID.MatchString(id) {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// FromCtx returns the RayID of the request, or "".
func FromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsKey).(string)
	return id
}
