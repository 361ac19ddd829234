package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/admintools/user-management-api/internal/repository"
	"github.com/admintools/user-management-api/internal/utils"
)

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// listQuery assembles search, sort and paging options from the request.
func listQuery(c *gin.Context) repository.ListQuery {
	params := utils.GetPaginationParams(c)
	return repository.ListQuery{
		SearchTerm: c.Query("searchTerm"),
		SortColumn: c.Query("sortColumn"),
		SortOrder:  c.Query("sortOrder"),
		Page:       params.Page,
		PageSize:   params.PageSize,
	}
}
