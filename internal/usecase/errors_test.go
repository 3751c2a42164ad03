package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsValidationError(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", &ValidationError{Field: "email", Message: MsgInvalidEmail})

	vErr, ok := AsValidationError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "email", vErr.Field)
	assert.Equal(t, MsgInvalidEmail, vErr.Message)

	vErr, ok = AsValidationError(&StoreError{Op: "create", Err: errors.New("boom")})
	assert.False(t, ok)
	assert.Nil(t, vErr)
}

func TestIsStoreError(t *testing.T) {
	cause := errors.New("timeout")
	storeErr := &StoreError{Op: "fetch site settings", Err: cause}

	assert.True(t, IsStoreError(storeErr))
	assert.True(t, IsStoreError(fmt.Errorf("pipeline: %w", storeErr)))
	assert.True(t, errors.Is(storeErr, cause))
	assert.False(t, IsStoreError(cause))
	assert.False(t, IsStoreError(&ValidationError{Field: "name", Message: MsgNameTooShort}))
	assert.Equal(t, "fetch site settings: timeout", storeErr.Error())
}
