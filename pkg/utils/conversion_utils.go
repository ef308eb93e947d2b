package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Int64ToStr converts an int64 to its string representation.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}

// StrToInt64 converts a string to an int64.
func StrToInt64(s string) (int64, error) {
	num, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse '%s' as int64: %w", s, err)
	}
	return num, nil
}

// ParseIDParam reads a positive int64 path parameter such as ":id".
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := StrToInt64(c.Param(name))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// ParsePagination reads page/page_size query parameters with defaults.
// Invalid or non-positive values are reported as an error.
func ParsePagination(c *gin.Context, defaultPageSize, maxPageSize int) (page, pageSize int, err error) {
	page, pageSize = 1, defaultPageSize
	if pageStr := c.Query("page"); pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
	}
	if sizeStr := c.Query("page_size"); sizeStr != "" {
		pageSize, err = strconv.Atoi(sizeStr)
		if err != nil || pageSize <= 0 {
			return 0, 0, fmt.Errorf("page_size must be a positive integer")
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, nil
}
