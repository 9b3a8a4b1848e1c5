package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/llm"
	"github.com/invisio/invisio-backend/internal/model"
	"github.com/invisio/invisio-backend/internal/service"
)

// NewsHandler serves news submission, listing and AI analysis.
type NewsHandler struct {
	News *service.News
	// LLMURL and LLMModel only appear in error messages.
	LLMURL   string
	LLMModel string
}

func NewNewsHandler(news *service.News, llmURL, llmModel string) *NewsHandler {
	return &NewsHandler{News: news, LLMURL: llmURL, LLMModel: llmModel}
}

type newsItemReq struct {
	Headline    string    `json:"headline"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

type analyzeReq struct {
	UserRequest string `json:"userRequest" validate:"required,max=1000"`
}

// Submit stores a JSON array of news items.
func (h *NewsHandler) Submit(c echo.Context) error {
	var req []newsItemReq
	if err := c.Bind(&req); err != nil {
		return fail(http.StatusBadRequest, model.CodeInvalidJSON, "Invalid JSON payload.")
	}
	if len(req) == 0 {
		return fail(http.StatusBadRequest, model.CodeValidation, "No news items received.")
	}
	items := make([]model.NewsItem, len(req))
	for i, r := range req {
		items[i] = model.NewsItem{Headline: r.Headline, Timestamp: r.Timestamp.UTC(), Description: r.Description}
	}
	n, err := h.News.Submit(c.Request().Context(), items)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":    model.CodeOK,
		"message": "News items saved successfully.",
		"count":   n,
	})
}

// All lists every stored news item.
func (h *NewsHandler) All(c echo.Context) error {
	items, err := h.News.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "data": items})
}

// Analyze runs the stored news through the LLM and saves the suggestion it
// proposes as a private suggestion of the caller.
func (h *NewsHandler) Analyze(c echo.Context) error {
	var req analyzeReq
	if err := bindValid(c, &req, "Invalid request data. Please provide a valid 'userRequest'."); err != nil {
		return err
	}
	uid, err := subject(c)
	if err != nil {
		return err
	}

	res, err := h.News.Analyze(c.Request().Context(), uid, req.UserRequest)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNoNews):
		return fail(http.StatusNotFound, model.CodeNotFound,
			"No news items found in the database to analyze. Please submit news first.")
	case errors.Is(err, llm.ErrUnavailable):
		return failWith(err, http.StatusInternalServerError, model.CodeLLMUnavailable, fmt.Sprintf(
			"Error communicating with local Ollama AI model. Please ensure Ollama is running at %s and the model '%s' is available.",
			h.LLMURL, h.LLMModel))
	case errors.Is(err, llm.ErrBadResponse):
		return failWith(err, http.StatusInternalServerError, model.CodeServerError,
			"Unexpected Ollama AI response structure. 'response' field not found or not a string.")
	default:
		return failWith(err, http.StatusInternalServerError, model.CodeAnalysisFailed,
			"An unexpected server error occurred during news analysis.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"code":         model.CodeOK,
		"message":      "AI analysis complete and suggestion created.",
		"suggestionId": res.Suggestion.ID,
		"date":         res.Suggestion.Timestamp.Format("2006-01-02 15:04:05"),
		"aiAnalysis":   res.Reply,
	})
}
