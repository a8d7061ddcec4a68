package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", ErrBlankField, KindValidation},
		{"wrapped conflict", ErrUsernameTaken.WrapMessage("register"), KindConflict},
		{"double wrapped auth", errors.Wrap(ErrInvalidCredentials.WrapMessage("login failed"), "usecase"), KindAuth},
		{"not found", errors.WithStack(ErrProductNotFound), KindNotFound},
		{"hashing", ErrPasswordHashFailed, KindHashing},
		{"database", NewDatabaseExecuteError(errors.New("disk full"), "insert"), KindInternal},
		{"plain", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageOf_StripsWrapContext(t *testing.T) {
	err := errors.Wrap(ErrInvalidCredentials, "login failed")

	assert.Equal(t, "login failed: invalid credentials", err.Error())
	assert.Equal(t, "invalid credentials", MessageOf(err))
	assert.Equal(t, "internal error", MessageOf(errors.New("boom")))
}

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	detailed := ErrInvalidPriceFormat.WithDetails(`"abc"`)

	assert.True(t, errors.Is(detailed, ErrInvalidPriceFormat))
	assert.False(t, errors.Is(detailed, ErrNonPositivePrice))
	assert.Equal(t, `"abc"`, detailed.Details())
}

func TestHTTPCodeByKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrBlankField.HTTPCode())
	assert.Equal(t, http.StatusConflict, ErrUsernameTaken.HTTPCode())
	assert.Equal(t, http.StatusUnauthorized, ErrNotLoggedIn.HTTPCode())
	assert.Equal(t, http.StatusNotFound, ErrProductNotFound.HTTPCode())
	assert.Equal(t, http.StatusInternalServerError, ErrPasswordHashFailed.HTTPCode())
}

func TestDatabaseExecuteError_Unwraps(t *testing.T) {
	cause := errors.New("constraint")
	err := NewDatabaseExecuteError(cause, "insert product")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "insert product", err.Details())
}
