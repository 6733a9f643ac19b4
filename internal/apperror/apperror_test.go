package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "x")))
	assert.Equal(t, Conflict, KindOf(Wrap(Conflict, "x", errors.New("cause"))))
	// Anything foreign defaults to TransientIO.
	assert.Equal(t, TransientIO, KindOf(errors.New("driver exploded")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := New(Conflict, "ya existe")
	outer := fmt.Errorf("creating user: %w", inner)
	assert.True(t, Is(outer, Conflict))
	assert.False(t, Is(outer, NotFound))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		NotFound:     http.StatusNotFound,
		Conflict:     http.StatusConflict,
		InvalidInput: http.StatusUnprocessableEntity,
		Unauthorized: http.StatusUnauthorized,
		TransientIO:  http.StatusServiceUnavailable,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(New(kind, "x")))
	}
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(errors.New("other")))
}

func TestDetail_NeverLeaksCause(t *testing.T) {
	err := Wrap(TransientIO, "almacenamiento no disponible", errors.New("sqlite: disk I/O error"))
	resp := Detail(err)
	assert.Equal(t, "almacenamiento no disponible", resp.Detail)

	resp = Detail(errors.New("sqlite: disk I/O error"))
	assert.Equal(t, "internal error", resp.Detail)
}
