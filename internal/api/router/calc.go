package router

import (
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/infix-calc/internal/apperr"
	"github.com/DjordjeVuckovic/infix-calc/internal/calc"
	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/dto"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/DjordjeVuckovic/infix-calc/pkg/pagination"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CalcRouter struct {
	e       *echo.Echo
	service *calc.Service
	reader  storage.Reader
}

type CalcRouterOption func(*CalcRouter)

// WithHistoryReader enables the evaluations endpoints.
func WithHistoryReader(r storage.Reader) CalcRouterOption {
	return func(cr *CalcRouter) {
		cr.reader = r
	}
}

func NewCalcRouter(e *echo.Echo, service *calc.Service, opts ...CalcRouterOption) *CalcRouter {
	r := &CalcRouter{
		e:       e,
		service: service,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *CalcRouter) Bind() {
	v1 := r.e.Group("/api/v1")
	v1.POST("/tokenize", r.tokenizeHandler)
	v1.POST("/evaluate", r.evaluateHandler)
	v1.GET("/evaluations", r.listHandler)
	v1.GET("/evaluations/:id", r.getHandler)
}

// tokenizeHandler handles POST /api/v1/tokenize
// @Summary Tokenize an expression
// @Description Splits an infix expression into value and symbol tokens
// @Tags calc
// @Accept json
// @Produce json
// @Param request body dto.ExpressionRequest true "Expression"
// @Success 200 {object} dto.TokenizeResponse
// @Failure 400 {object} apperr.ErrorResponse "Malformed request"
// @Failure 422 {object} apperr.ErrorResponse "Expression rejected"
// @Router /api/v1/tokenize [post]
func (r *CalcRouter) tokenizeHandler(c echo.Context) error {
	req, err := bindExpression(c)
	if err != nil {
		return err
	}

	tokens, err := r.service.Tokenize(req.Expression)
	if err != nil {
		return expressionError(err, domain.StageTokenize)
	}

	return c.JSON(http.StatusOK, dto.TokenizeResponse{
		Expression: req.Expression,
		Tokens:     dto.FromTokens(tokens),
	})
}

// evaluateHandler handles POST /api/v1/evaluate
// @Summary Evaluate an expression
// @Description Evaluates an infix integer expression honoring precedence and left associativity
// @Tags calc
// @Accept json
// @Produce json
// @Param request body dto.ExpressionRequest true "Expression"
// @Success 200 {object} dto.EvaluationResponse
// @Failure 400 {object} apperr.ErrorResponse "Malformed request"
// @Failure 422 {object} apperr.ErrorResponse "Expression rejected"
// @Failure 500 {object} apperr.ErrorResponse "History store failure"
// @Router /api/v1/evaluate [post]
func (r *CalcRouter) evaluateHandler(c echo.Context) error {
	req, err := bindExpression(c)
	if err != nil {
		return err
	}

	ev, err := r.service.Evaluate(c.Request().Context(), req.Expression)
	switch {
	case errors.Is(err, calc.ErrHistory):
		return err
	case err != nil:
		return apperr.NewExpression(*ev.Failure, err)
	}

	return c.JSON(http.StatusOK, dto.FromEvaluation(*ev))
}

// listHandler handles GET /api/v1/evaluations
// @Summary List evaluation history
// @Description Returns recorded evaluations, newest first, with cursor pagination
// @Tags history
// @Produce json
// @Param cursor query string false "Cursor from a previous page"
// @Param size query int false "Page size (default 20, max 100)"
// @Success 200 {object} pagination.CursorResult[dto.EvaluationResponse]
// @Failure 400 {object} apperr.ErrorResponse "Malformed cursor"
// @Failure 501 {object} apperr.ErrorResponse "History disabled"
// @Router /api/v1/evaluations [get]
func (r *CalcRouter) listHandler(c echo.Context) error {
	if r.reader == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "evaluation history is disabled")
	}

	var req pagination.CursorRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid query parameters", err)
	}
	req.Normalize()

	cursor, err := dto.DecodeCursor(req.Cursor)
	if err != nil {
		return apperr.NewValidationWrap("invalid cursor", err)
	}

	page, err := r.reader.List(c.Request().Context(), cursor, req.Size)
	if err != nil {
		return err
	}

	items := make([]dto.EvaluationResponse, 0, len(page.Items))
	for _, ev := range page.Items {
		items = append(items, dto.FromEvaluation(ev))
	}

	result, err := pagination.NewCursorResult(items, page.HasMore, func(last dto.EvaluationResponse) (string, error) {
		if page.NextCursor != nil {
			return dto.EncodeCursor(*page.NextCursor)
		}
		return dto.EncodeCursor(domain.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// getHandler handles GET /api/v1/evaluations/:id
// @Summary Get one evaluation
// @Tags history
// @Produce json
// @Param id path string true "Evaluation ID" format(uuid)
// @Success 200 {object} dto.EvaluationResponse
// @Failure 400 {object} apperr.ErrorResponse "Malformed ID"
// @Failure 404 {object} apperr.ErrorResponse "Not found"
// @Failure 501 {object} apperr.ErrorResponse "History disabled"
// @Router /api/v1/evaluations/{id} [get]
func (r *CalcRouter) getHandler(c echo.Context) error {
	if r.reader == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "evaluation history is disabled")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid evaluation id", err)
	}

	ev, err := r.reader.Get(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NewNotFound("evaluation", id.String())
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.FromEvaluation(*ev))
}

func bindExpression(c echo.Context) (*dto.ExpressionRequest, error) {
	var req dto.ExpressionRequest
	if err := c.Bind(&req); err != nil {
		return nil, apperr.NewValidationWrap("invalid request body", err)
	}
	return &req, nil
}

func expressionError(err error, stage domain.Stage) error {
	if f := calc.NewFailure(err); f != nil {
		return apperr.NewExpression(*f, err)
	}
	return apperr.NewExpression(domain.Failure{Stage: stage, Message: err.Error()}, err)
}
