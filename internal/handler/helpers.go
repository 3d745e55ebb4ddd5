package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/apierror"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/middleware"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery binds and validates query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID extracts a UUID path parameter, writing a 400 on failure.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// actor builds the acting identity from the JWT claims set by the auth
// middleware. Every service call receives it explicitly.
func actor(c *gin.Context) service.Actor {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return service.Actor{}
	}
	id, _ := uuid.Parse(claims.UserID)
	return service.Actor{ID: id, Role: claims.Role}
}

// respondError maps typed domain errors onto HTTP statuses. Anything
// unrecognized is surfaced as a 500 through the error middleware so the
// detail is logged, never leaked.
func respondError(c *gin.Context, err error) {
	var (
		validation   *apierror.ValidationError
		notFound     *apierror.NotFound
		insufficient *apierror.InsufficientStock
		conflict     *apierror.IntegrityViolation
		badStatus    *apierror.InvalidStatus
		badMove      *apierror.InvalidTransition
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, validation)
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("not found"))
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"detail":    insufficient.Error(),
			"requested": insufficient.Requested,
			"available": insufficient.Available,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.New(conflict.Error()))
	case errors.As(err, &badStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"detail":   badStatus.Error(),
			"statuses": model.OrderStatuses(),
		})
	case errors.As(err, &badMove):
		c.JSON(http.StatusConflict, apierror.New(badMove.Error()))
	default:
		_ = c.Error(err)
	}
}
