package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const flashSuccessKey = "flash_success"

// Flash keeps one-time status messages in the visitor's session.
type Flash struct {
	store *session.Store
}

// NewFlash creates a Flash backed by store.
func NewFlash(store *session.Store) *Flash {
	return &Flash{store: store}
}

// Success stores msg until the next rendered view.
func (f *Flash) Success(c *fiber.Ctx, msg string) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Set(flashSuccessKey, msg)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// PopSuccess returns the pending success message, if any, and clears it.
func (f *Flash) PopSuccess(c *fiber.Ctx) (string, error) {
	sess, err := f.store.Get(c)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	msg, ok := sess.Get(flashSuccessKey).(string)
	if !ok {
		return "", nil
	}
	sess.Delete(flashSuccessKey)
	if err := sess.Save(); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return msg, nil
}
