package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Meta carries pagination details of a list response.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Envelope is the input of Send. An empty Message and nil Meta or Data are
// written as JSON null.
type Envelope[T any] struct {
	StatusCode int
	Success    bool
	Message    string
	Meta       *Meta
	Data       *T
}

// Body is the JSON shape every enveloped response is written as.
type Body[T any] struct {
	StatusCode int     `json:"statusCode"`
	Success    bool    `json:"success"`
	Message    *string `json:"message"`
	Meta       *Meta   `json:"meta"`
	Data       *T      `json:"data"`
}

// Build converts an Envelope into its wire shape.
func Build[T any](env Envelope[T]) Body[T] {
	body := Body[T]{
		StatusCode: env.StatusCode,
		Success:    env.Success,
		Meta:       env.Meta,
		Data:       env.Data,
	}
	if env.Message != "" {
		msg := env.Message
		body.Message = &msg
	}
	return body
}

// Send writes the status line and the enveloped JSON body.
// The status code is not validated.
func Send[T any](c *gin.Context, env Envelope[T]) {
	c.JSON(env.StatusCode, Build(env))
}

// OK sends a 200 envelope carrying data.
func OK[T any](c *gin.Context, message string, data T) {
	Send(c, Envelope[T]{StatusCode: http.StatusOK, Success: true, Message: message, Data: &data})
}

// Created sends a 201 envelope carrying data.
func Created[T any](c *gin.Context, message string, data T) {
	Send(c, Envelope[T]{StatusCode: http.StatusCreated, Success: true, Message: message, Data: &data})
}

// Paginated sends a 200 envelope with pagination meta.
func Paginated[T any](c *gin.Context, message string, meta Meta, data []T) {
	Send(c, Envelope[[]T]{StatusCode: http.StatusOK, Success: true, Message: message, Meta: &meta, Data: &data})
}
