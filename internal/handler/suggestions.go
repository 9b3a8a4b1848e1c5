package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/model"
	"github.com/invisio/invisio-backend/internal/service"
)

// SuggestionsHandler serves the /api/suggestions endpoints.
type SuggestionsHandler struct {
	Suggestions *service.Suggestions
}

func NewSuggestionsHandler(s *service.Suggestions) *SuggestionsHandler {
	return &SuggestionsHandler{Suggestions: s}
}

type suggestionReq struct {
	Headline    string `json:"headline" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=1000"`
	IsPublic    bool   `json:"isPublic"`
}

// suggestionErr maps service outcomes shared by the id-addressed endpoints.
// verb completes "You are not authorized to ... this suggestion.".
func suggestionErr(err error, verb string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return fail(http.StatusNotFound, model.CodeNotFound, "Suggestion not found.")
	case errors.Is(err, service.ErrForbidden):
		return fail(http.StatusForbidden, model.CodeForbidden, "You are not authorized to "+verb+" this suggestion.")
	}
	return err
}

func (h *SuggestionsHandler) Submit(c echo.Context) error {
	var req suggestionReq
	if err := bindValid(c, &req, "Invalid suggestion data."); err != nil {
		return err
	}
	uid, err := subject(c)
	if err != nil {
		return err
	}
	sg, err := h.Suggestions.Create(c.Request().Context(), uid, req.Headline, req.Description, req.IsPublic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":         model.CodeOK,
		"message":      "Suggestion submitted successfully.",
		"suggestionId": sg.ID,
	})
}

func (h *SuggestionsHandler) ToggleFavorite(c echo.Context) error {
	uid, err := subject(c)
	if err != nil {
		return err
	}
	on, err := h.Suggestions.ToggleFavorite(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return suggestionErr(err, "favorite")
	}
	msg := "Suggestion unfavorited."
	if on {
		msg = "Suggestion favorited."
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "message": msg, "isFavorited": on})
}

func (h *SuggestionsHandler) TogglePublic(c echo.Context) error {
	uid, err := subject(c)
	if err != nil {
		return err
	}
	public, err := h.Suggestions.TogglePublic(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return suggestionErr(err, "modify")
	}
	msg := "Suggestion is now private."
	if public {
		msg = "Suggestion is now public."
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "message": msg, "isPublic": public})
}

// GetPublic is anonymous.
func (h *SuggestionsHandler) GetPublic(c echo.Context) error {
	list, err := h.Suggestions.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "data": list})
}

func (h *SuggestionsHandler) GetMyFavorites(c echo.Context) error {
	uid, err := subject(c)
	if err != nil {
		return err
	}
	list, err := h.Suggestions.ListFavorites(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "data": list})
}

func (h *SuggestionsHandler) Delete(c echo.Context) error {
	uid, err := subject(c)
	if err != nil {
		return err
	}
	if err := h.Suggestions.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return suggestionErr(err, "delete")
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "message": "Suggestion deleted successfully."})
}

func (h *SuggestionsHandler) Archive(c echo.Context) error {
	uid, err := subject(c)
	if err != nil {
		return err
	}
	if err := h.Suggestions.Archive(c.Request().Context(), uid, c.Param("id")); err != nil {
		return suggestionErr(err, "archive")
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "message": "Suggestion archived successfully."})
}

func (h *SuggestionsHandler) GetArchived(c echo.Context) error {
	uid, err := subject(c)
	if err != nil {
		return err
	}
	list, err := h.Suggestions.ListArchived(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "data": list})
}
