package tushare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cn-data/internal/model"
	"cn-data/internal/slogx"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{BaseURL: srv.URL, Token: "secret", Timeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewClient_EmptyToken(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestClient_DailyByCode(t *testing.T) {
	var got Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{
			"request_id": "abc",
			"code": 0,
			"msg": "",
			"data": {
				"fields": ["ts_code", "trade_date", "close", "vol"],
				"items": [["600000.SH", "20240229", 7.10, null]],
				"has_more": false
			}
		}`))
	})

	tb, err := c.DailyByCode(context.Background(), "600000.SH", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, APIDaily, got.APIName)
	assert.Equal(t, "secret", got.Token)
	assert.Equal(t, map[string]string{"ts_code": "600000.SH", "trade_date": "20240229"}, got.Params)
	assert.Equal(t, "ts_code,trade_date,open,high,low,close,pre_close,change,pct_chg,vol,amount", got.Fields)

	assert.Equal(t, []string{"ts_code", "trade_date", "close", "vol"}, tb.Columns)
	require.Equal(t, 1, tb.Len())
	// numbers keep their wire text, null is empty
	assert.Equal(t, []string{"600000.SH", "20240229", "7.10", ""}, tb.Rows[0])
}

func TestClient_TradeCal(t *testing.T) {
	var got Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"code":0,"msg":"","data":{"fields":["exchange","cal_date","is_open","pretrade_date"],"items":[["SSE","20240301",1,"20240229"],["SSE","20240302",0,"20240301"]]}}`))
	})

	tb, err := c.TradeCal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, APITradeCal, got.APIName)
	assert.Equal(t, "exchange,cal_date,is_open,pretrade_date", got.Fields)

	days, err := model.TradeDaysFromTable(tb)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.True(t, days[0].IsOpen)
	assert.False(t, days[1].IsOpen)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "api error code",
			status: http.StatusOK,
			body:   `{"code":40101,"msg":"token invalid","data":null}`,
			check: func(t *testing.T, err error) {
				var te *Error
				require.True(t, errors.As(err, &te))
				assert.Equal(t, 40101, te.Code)
				assert.Equal(t, "token invalid", te.Msg)
			},
		},
		{
			name:   "http error",
			status: http.StatusInternalServerError,
			body:   "upstream down",
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "http status 500")
			},
		},
		{
			name:   "missing data",
			status: http.StatusOK,
			body:   `{"code":0,"msg":""}`,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "no data")
			},
		},
		{
			name:   "ragged item",
			status: http.StatusOK,
			body:   `{"code":0,"data":{"fields":["a","b"],"items":[["x"]]}}`,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "item 0 has 1 values")
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>`,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "parse JSON")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Daily(context.Background(), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"data":{"fields":[],"items":[]}}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.StockBasic(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCellString(t *testing.T) {
	s, err := cellString(json.Number("1.5"))
	require.NoError(t, err)
	assert.Equal(t, "1.5", s)

	s, err = cellString(true)
	require.NoError(t, err)
	assert.Equal(t, "true", s)

	_, err = cellString([]interface{}{1})
	assert.Error(t, err)
}

func TestClient_WarnsOnPartialPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"data":{"fields":["ts_code","close"],"items":[["600000.SH",7.1]],"has_more":true}}`))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	c, err := NewClient(Config{BaseURL: srv.URL, Token: "t", Logger: slogx.New(&logs, "warn")})
	require.NoError(t, err)
	defer c.Close()

	tb, err := c.Daily(context.Background(), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, tb.Len())
	assert.Contains(t, logs.String(), "tushare returned a partial page")
	assert.Contains(t, logs.String(), "api=daily")
}

func TestDecodeResponse_HasMore(t *testing.T) {
	_, more, err := decodeResponse([]byte(`{"code":0,"data":{"fields":["a"],"items":[["x"]],"has_more":false}}`))
	require.NoError(t, err)
	assert.False(t, more)

	_, more, err = decodeResponse([]byte(`{"code":0,"data":{"fields":["a"],"items":[["x"]],"has_more":true}}`))
	require.NoError(t, err)
	assert.True(t, more)
}
