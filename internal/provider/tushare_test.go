package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cn-data/internal/provider/tushare"
)

func TestTushareProvider_WrapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":2002,"msg":"quota exceeded"}`))
	}))
	defer srv.Close()

	p, err := NewTushareProvider(tushare.Config{BaseURL: srv.URL, Token: "t"})
	require.NoError(t, err)
	defer p.Close()

	_, err = p.DailySnapshot(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Tushare", pe.Provider)
	assert.Equal(t, tushare.APIDaily, pe.API)

	var te *tushare.Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 2002, te.Code)
}

func TestTushareProvider_SecurityList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"data":{"fields":["ts_code","name"],"items":[["600000.SH","浦发银行"]]}}`))
	}))
	defer srv.Close()

	p, err := NewTushareProvider(tushare.Config{BaseURL: srv.URL, Token: "t"})
	require.NoError(t, err)
	defer p.Close()

	tb, err := p.SecurityList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tushare", p.GetName())
	assert.Equal(t, [][]string{{"600000.SH", "浦发银行"}}, tb.Rows)
}
