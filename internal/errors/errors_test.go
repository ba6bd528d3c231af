package errors_test

import (
	stderrors "errors"
	"testing"

	"codeberg.org/mutker/bodymind/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestFactoryMessages(t *testing.T) {
	f := errors.New()

	err := f.New(errors.ErrReadConfig)
	assert.Equal(t, errors.ErrReadConfig, err.Code())
	assert.Equal(t, "Failed to read config file", err.Error())

	err = f.WithMessage(errors.ErrInternal, "boom")
	assert.Equal(t, "boom", err.Error())

	err = f.WithData(errors.ErrMainLoop, struct{ Phase string }{Phase: "write"})
	assert.Equal(t, "Error in main loop: {write}", err.Error())
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.New().Wrap(errors.ErrMainLoop, cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Error in main loop: disk full", err.Error())

	custom := err.WithMessage("write failed")
	assert.Equal(t, "write failed: disk full", custom.Error())
	assert.Equal(t, errors.ErrMainLoop, custom.Code())
}

func TestUnknownCodeFallsBackToCode(t *testing.T) {
	assert.Equal(t, "something_odd", errors.GetErrorMessage(errors.ErrorCode("something_odd")))
}

func TestHasCode(t *testing.T) {
	f := errors.New()
	inner := f.New(errors.ErrInvalidWindow)
	outer := f.Wrap(errors.ErrInvalidConfig, inner)

	assert.True(t, errors.HasCode(outer, errors.ErrInvalidConfig))
	assert.True(t, errors.HasCode(outer, errors.ErrInvalidWindow))
	assert.False(t, errors.HasCode(outer, errors.ErrTimeout))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrInternal))
	assert.False(t, errors.HasCode(nil, errors.ErrInternal))
}
