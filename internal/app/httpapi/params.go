package httpapi

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pethaven/pethaven-api/internal/shared/pagination"
)

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// errInvalidQuery builds the error for a malformed query parameter.
func errInvalidQuery(name string) error {
	return fmt.Errorf("%s must be a positive integer", name)
}

// pageRequest reads zero-based page/size query parameters. Out-of-range
// values are normalized by the services.
func pageRequest(c *gin.Context) pagination.Request {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	return pagination.Request{Page: page, Size: size}
}
