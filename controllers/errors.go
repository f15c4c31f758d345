package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
)

var kindStatus = map[services.ErrorKind]int{
	services.KindValidation:       http.StatusBadRequest,
	services.KindInvalidItem:      http.StatusBadRequest,
	services.KindInvalidStatus:    http.StatusBadRequest,
	services.KindCapacityExceeded: http.StatusBadRequest,
	services.KindUnavailable:      http.StatusBadRequest,
	services.KindUnauthorized:     http.StatusUnauthorized,
	services.KindForbidden:        http.StatusForbidden,
	services.KindNotFound:         http.StatusNotFound,
	services.KindConflict:         http.StatusConflict,
}

// respondServiceError maps a domain error kind to its HTTP status. Anything
// unexpected becomes a 500 whose cause is only exposed outside release mode.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		code, ok := kindStatus[svcErr.Kind]
		if !ok {
			code = http.StatusInternalServerError
		}
		body := gin.H{"kind": svcErr.Kind}
		if len(svcErr.Details) > 0 {
			body["details"] = svcErr.Details
		}
		utils.RespondErrorDetails(c, code, svcErr.Message, body)
		return
	}

	utils.ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	if gin.Mode() == gin.ReleaseMode {
		utils.RespondErrorDetails(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	utils.RespondErrorDetails(c, http.StatusInternalServerError, "internal server error", gin.H{"debug": err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	utils.RespondErrorDetails(c, http.StatusBadRequest, "invalid request body", gin.H{
		"kind":    services.KindValidation,
		"details": gin.H{"cause": err.Error()},
	})
}

func respondInvalidParam(c *gin.Context, name string) {
	utils.RespondErrorDetails(c, http.StatusBadRequest, "invalid "+name, gin.H{
		"kind":    services.KindValidation,
		"details": gin.H{"field": name},
	})
}

// paramID reads a positive numeric path parameter, answering 400 otherwise.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondInvalidParam(c, name)
		return 0, false
	}
	return uint(id), true
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		respondInvalidParam(c, name)
		return nil, false
	}
	return &v, true
}

func queryUint(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondInvalidParam(c, name)
		return nil, false
	}
	id := uint(v)
	return &id, true
}
