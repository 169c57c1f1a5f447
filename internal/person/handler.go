package person

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// PersonRequest represents the payload for creating or updating a person.
// Booleans may also be sent as the strings "true" or "false".
// @Description payload to create or overwrite a person
type PersonRequest struct {
	FirstName  string `json:"firstName" example:"Ada"`
	LastName   string `json:"lastName" example:"Lovelace"`
	Enabled    bool   `json:"enabled" example:"true"`
	Authorised bool   `json:"authorised" example:"false"`
}

// IDRequest represents a URI ID parameter.
// @Description contains the resource ID in path
// @Param id path int true "resource identifier"
type IDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// PersonHandler handles HTTP requests for person resources.
type PersonHandler struct {
	router  *gin.RouterGroup
	service PersonService
	logger  *zap.Logger
}

// NewPersonHandler registers person endpoints on the given router group.
func NewPersonHandler(router *gin.RouterGroup, service PersonService, logger *zap.Logger) *PersonHandler {
	h := &PersonHandler{router: router, service: service, logger: logger}
	h.router.GET("/people", h.ListPeople)
	h.router.POST("/people", h.CreatePerson)
	h.router.GET("/person/:id", h.ReadPersonByID)
	h.router.PUT("/person/:id", h.UpdatePerson)
	h.router.DELETE("/person/:id", h.DeletePerson)
	return h
}

// bindID treats anything that is not a positive integer as an unknown id.
func (h *PersonHandler) bindID(c *gin.Context) (uint, bool) {
	var uri IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrPersonNotFound.Error()})
		return 0, false
	}
	return uri.ID, true
}

// bindForm reads the payload from a form body or a JSON body. A body that
// cannot be decoded yields an empty Form so validation reports it.
func (h *PersonHandler) bindForm(c *gin.Context) Form {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		form := Form{}
		for _, key := range FormFields {
			if value, ok := c.GetPostForm(key); ok {
				form[key] = value
			}
		}
		return form
	}

	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("failed to read request body", zap.Error(err))
		return Form{}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Form{}
	}
	form, err := DecodeForm(body)
	if err != nil {
		h.logger.Warn("invalid person payload", zap.Error(err))
		return Form{}
	}
	return form
}

func (h *PersonHandler) writeValidationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, ErrFormDataIncorrect), errors.Is(err, ErrBooleanRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return true
	}
	return false
}

// ListPeople godoc
// @Summary      List People
// @Description  Fetch every person ordered by ID
// @Tags         people
// @Produce      json
// @Success      200      {array}   Person
// @Failure      500      {object}  map[string]string
// @Router       /people [get]
func (h *PersonHandler) ListPeople(c *gin.Context) {
	people, err := h.service.ListPeople(c.Request.Context())
	if err != nil {
		h.logger.Error("service.ListPeople failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list people"})
		return
	}
	c.JSON(http.StatusOK, people)
}

// CreatePerson godoc
// @Summary      Create Person
// @Description  Create a person, the ID is assigned by the server
// @Tags         people
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Param        payload  body      PersonRequest  true  "Person payload"
// @Success      201
// @Header       201      {string}  Location  "URL of the new person"
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /people [post]
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	p, err := h.service.CreatePerson(c.Request.Context(), h.bindForm(c))
	if h.writeValidationError(c, err) {
		return
	}
	switch {
	case err == nil:
		c.Header("Location", fmt.Sprintf("%s/person/%d", h.router.BasePath(), p.ID))
		c.Status(http.StatusCreated)
	case errors.Is(err, ErrPersonAlreadyExists):
		// sequence drift after manual inserts
		c.JSON(http.StatusConflict, gin.H{"error": "person already exists"})
	default:
		h.logger.Error("service.CreatePerson failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create person"})
	}
}

// ReadPersonByID godoc
// @Summary      Get Person by ID
// @Description  Fetch a person by ID, wrapped in a one-element list
// @Tags         people
// @Produce      json
// @Param        id       path      int     true  "Person ID"
// @Success      200      {array}   Person
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /person/{id} [get]
func (h *PersonHandler) ReadPersonByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	p, err := h.service.ReadPersonByID(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, []Person{*p})
	case errors.Is(err, ErrPersonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
	default:
		h.logger.Error("service.ReadPersonByID failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch person"})
	}
}

// UpdatePerson godoc
// @Summary      Update Person
// @Description  Overwrite every field of an existing person
// @Tags         people
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Param        id       path      int            true  "Person ID"
// @Param        payload  body      PersonRequest  true  "Person payload"
// @Success      201
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /person/{id} [put]
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	_, err := h.service.UpdatePerson(c.Request.Context(), id, h.bindForm(c))
	if h.writeValidationError(c, err) {
		return
	}
	switch {
	case err == nil:
		// 201 rather than 200: existing clients depend on it.
		c.Status(http.StatusCreated)
	case errors.Is(err, ErrPersonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
	default:
		h.logger.Error("service.UpdatePerson failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update person"})
	}
}

// DeletePerson godoc
// @Summary      Delete Person
// @Description  Remove a person by ID
// @Tags         people
// @Param        id       path      int   true  "Person ID"
// @Success      204
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /person/{id} [delete]
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	err := h.service.DeletePerson(c.Request.Context(), id)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrPersonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
	default:
		h.logger.Error("service.DeletePerson failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete person"})
	}
}
