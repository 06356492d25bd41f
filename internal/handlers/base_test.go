package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"rootlink/internal/engine"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{engine.ErrNotFound, http.StatusNotFound},
		{engine.ErrInvalidArgument, http.StatusBadRequest},
		{engine.ErrConflict, http.StatusConflict},
		{engine.ErrInternal, http.StatusInternalServerError},
		{fmt.Errorf("%w: post 42", engine.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("plain error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, statusFor(tc.err))
	}
}
