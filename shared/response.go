package shared

import (
	"net/http"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Response is the envelope of every json response of the api
type Response struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func Success(ctx Context, status int, data any) error {
	return ctx.JSON(status, Response{Success: true, Data: data})
}

func OK(ctx Context, data any) error {
	return Success(ctx, http.StatusOK, data)
}

func Created(ctx Context, data any) error {
	return Success(ctx, http.StatusCreated, data)
}

func SuccessMessage(ctx Context, message string) error {
	return ctx.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func PagedResponse[T any](ctx Context, paged Paged[T]) error {
	data := paged.Data
	if data == nil {
		data = []T{}
	}
	return ctx.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: paged.Pagination(),
	})
}

func ErrorResponse(message string) Response {
	return Response{Success: false, Message: message}
}
