package handlers

import (
	"errors"
	"math"
	"strconv"

	"storefront/internal/repository"
)

var errInvalidPagination = errors.New("invalid pagination params")

func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(20)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, errInvalidPagination
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, errInvalidPagination
		}
		limit = l
	}

	// (page-1)*limit must fit in an int64 skip.
	if page > math.MaxInt64/limit {
		return 0, 0, errInvalidPagination
	}

	return page, limit, nil
}

func pageFromQuery(pageStr, limitStr string) (repository.Page, error) {
	if pageStr == "" || limitStr == "" {
		return repository.Page{}, nil
	}

	page, limit, err := parsePaginationParams(pageStr, limitStr)
	if err != nil {
		return repository.Page{}, err
	}
	return repository.Page{Skip: (page - 1) * limit, Limit: limit}, nil
}
