package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health reports liveness. Load balancer probes hit this before anything
// else, so it deliberately touches no dependencies.
func Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "campus-events"})
}
