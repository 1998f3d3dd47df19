package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiError(t *testing.T) {
	t.Run("Error returns message", func(t *testing.T) {
		err := New(http.StatusForbidden, "Forbidden")
		assert.Equal(t, "Forbidden", err.Error())
		assert.Equal(t, http.StatusForbidden, err.StatusCode)
	})

	t.Run("Error includes wrapped error", func(t *testing.T) {
		wrapped := errors.New("wrapped error")
		err := Wrap(http.StatusBadGateway, "upstream failed", wrapped)
		assert.Contains(t, err.Error(), "upstream failed")
		assert.Contains(t, err.Error(), "wrapped error")
		assert.Equal(t, wrapped, err.Unwrap())
	})

	t.Run("records the constructing caller", func(t *testing.T) {
		err := BadRequest("bad")
		assert.Contains(t, err.Stack, "TestApiError")
	})
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *ApiError
		status  int
		message string
	}{
		{"bad request", BadRequest("invalid body"), http.StatusBadRequest, "invalid body"},
		{"unauthorized default", Unauthorized(""), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden default", Forbidden(""), http.StatusForbidden, "Forbidden"},
		{"not found default", NotFound(""), http.StatusNotFound, "Not Found"},
		{"not found custom", NotFound("user not found"), http.StatusNotFound, "user not found"},
		{"conflict", Conflict("exists"), http.StatusConflict, "exists"},
		{"internal", Internal("db down", errors.New("dial")), http.StatusInternalServerError, "db down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.message, tt.err.Message)
			assert.NotEmpty(t, tt.err.Stack)
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("api error keeps its status and message", func(t *testing.T) {
		c := Classify(New(http.StatusForbidden, "Forbidden"))
		assert.Equal(t, KindAPI, c.Kind)
		assert.Equal(t, http.StatusForbidden, c.StatusCode)
		assert.Equal(t, "Forbidden", c.Message)
		assert.NotEmpty(t, c.Stack)
	})

	t.Run("wrapped api error is still recognized", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", NotFound("missing"))
		c := Classify(err)
		assert.Equal(t, KindAPI, c.Kind)
		assert.Equal(t, http.StatusNotFound, c.StatusCode)
		assert.Equal(t, "missing", c.Message)
	})

	t.Run("generic error becomes 500 with its message", func(t *testing.T) {
		c := Classify(errors.New("database unreachable"))
		assert.Equal(t, KindGeneric, c.Kind)
		assert.Equal(t, http.StatusInternalServerError, c.StatusCode)
		assert.Equal(t, "database unreachable", c.Message)
		assert.Empty(t, c.Stack)
	})

	t.Run("traced generic error reports its stack", func(t *testing.T) {
		c := Classify(fmt.Errorf("load: %w", WithStack(errors.New("db down"))))
		assert.Equal(t, KindGeneric, c.Kind)
		assert.Equal(t, "load: db down", c.Message)
		assert.Contains(t, c.Stack, "TestClassify")
		assert.NotEqual(t, c.Message, c.Stack)
	})

	t.Run("generic error without message falls back", func(t *testing.T) {
		c := Classify(errors.New(""))
		assert.Equal(t, KindGeneric, c.Kind)
		assert.Equal(t, DefaultMessage, c.Message)
	})

	t.Run("non error value is unknown", func(t *testing.T) {
		for _, v := range []any{nil, "boom", 42, struct{}{}} {
			c := Classify(v)
			assert.Equal(t, KindUnknown, c.Kind)
			assert.Equal(t, http.StatusInternalServerError, c.StatusCode)
			assert.Equal(t, DefaultMessage, c.Message)
		}
	})

	t.Run("recovered string panic is unknown with stack", func(t *testing.T) {
		c := Classify(&Recovered{Value: "boom", Stack: "goroutine 1"})
		assert.Equal(t, KindUnknown, c.Kind)
		assert.Equal(t, DefaultMessage, c.Message)
		assert.Equal(t, "goroutine 1", c.Stack)
	})

	t.Run("recovered error panic is generic", func(t *testing.T) {
		c := Classify(&Recovered{Value: errors.New("nil map"), Stack: "goroutine 1"})
		assert.Equal(t, KindGeneric, c.Kind)
		assert.Equal(t, "nil map", c.Message)
		assert.Equal(t, "goroutine 1", c.Stack)
	})

	t.Run("recovered api error panic keeps its status", func(t *testing.T) {
		c := Classify(&Recovered{Value: Conflict("taken")})
		assert.Equal(t, KindAPI, c.Kind)
		assert.Equal(t, http.StatusConflict, c.StatusCode)
	})
}

func TestWithStack(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WithStack(nil))
	})

	t.Run("plain error gets caller frames", func(t *testing.T) {
		base := errors.New("db down")
		err := WithStack(base)

		var traced *Traced
		require.True(t, errors.As(err, &traced))
		assert.Equal(t, "db down", err.Error())
		assert.ErrorIs(t, err, base)
		assert.Contains(t, traced.Stack, "TestWithStack")
	})

	t.Run("errors with a stack are returned as is", func(t *testing.T) {
		apiErr := Forbidden("")
		rec := &Recovered{Value: "boom", Stack: "goroutine 1"}
		traced := WithStack(errors.New("once"))

		assert.Same(t, apiErr, WithStack(apiErr))
		assert.Same(t, rec, WithStack(rec))
		assert.Same(t, traced, WithStack(traced))
	})
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusTeapot, StatusCode(New(http.StatusTeapot, "tea")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("x")))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, []GenericErrorMessage{{Path: "", Message: "Forbidden"}}, Messages("Forbidden"))
	assert.Empty(t, Messages(""))
	assert.NotNil(t, Messages(""))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "api", KindAPI.String())
	assert.Equal(t, "generic", KindGeneric.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
