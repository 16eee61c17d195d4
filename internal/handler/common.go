package handler

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// getUserID reads the authenticated user's ID from the Echo context. The
// JWT middleware stores the raw "sub" claim, which arrives as a float64
// when decoded from JSON and as a string from some issuers.
func getUserID(c echo.Context) (uint64, bool) {
    switch v := c.Get("user_id").(type) {
    case float64:
        return uint64(v), true
    case string:
        id, err := strconv.ParseUint(v, 10, 64)
        return id, err == nil
    case uint64:
        return v, true
    case int64:
        return uint64(v), true
    default:
        return 0, false
    }
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    return id, err == nil && id > 0
}

// pathIDFromQuery parses a numeric query parameter.
func pathIDFromQuery(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
    return id, err == nil && id > 0
}
