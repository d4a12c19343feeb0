// Package controllers contains the Fiber handlers of the platform API. Each
// controller is a small struct built in routes.SetupRoutes holding the
// dependencies its handlers need.
package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"eduquest/store"
	"eduquest/utils"
)

// storeError maps a failed store call onto the matching HTTP reply. Store
// failures are never retried here; the client decides whether to re-issue.
func storeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return utils.NotFound(c, notFoundMsg)
	case errors.Is(err, store.ErrConflict):
		return utils.Conflict(c, "Record changed since it was read, reload and retry")
	default:
		return utils.InternalServerError(c, "Could not reach the data store")
	}
}
