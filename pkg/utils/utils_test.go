package utils_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	stop := errors.New("stop")
	cfg := utils.RetryConfig{MaxAttempts: 4, InitialDelay: time.Millisecond}

	testCases := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{name: "first attempt", errs: []error{nil}, wantCalls: 1},
		{name: "succeeds after failures", errs: []error{errors.New("a"), errors.New("b"), nil}, wantCalls: 3},
		{name: "stops on listed error", errs: []error{stop}, wantCalls: 1, wantErr: stop},
		{name: "stops on wrapped listed error", errs: []error{errors.Join(errors.New("ctx"), stop)}, wantCalls: 1, wantErr: stop},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			err := utils.Retry(context.Background(), cfg, func() error {
				err := tc.errs[calls]
				calls++
				return err
			}, stop)

			assert.Equal(t, tc.wantCalls, calls)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := utils.Retry(context.Background(), cfg, func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 4, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := utils.Retry(ctx, utils.RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour}, func() error {
			return errors.New("temporary")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriteValidationError(t *testing.T) {
	type req struct {
		Method string `validate:"required"`
	}
	err := validator.New().Struct(req{})
	require.Error(t, err)

	rr := httptest.NewRecorder()
	require.NoError(t, utils.WriteValidationError(rr, err))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid request","fields":{"method":"required"}}`, rr.Body.String())
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, utils.WriteError(rr, "not found", http.StatusNotFound))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
}
