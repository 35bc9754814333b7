package tushare

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Request is the body of every Tushare Pro call.
type Request struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params"`
	Fields  string            `json:"fields"`
}

// Response is the envelope returned by Tushare Pro.
type Response struct {
	RequestID string `json:"request_id"`
	Code      int    `json:"code"`
	Msg       string `json:"msg"`
	Data      *Data  `json:"data"`
}

// Data holds a column-oriented header and row-oriented items.
type Data struct {
	Fields  []string        `json:"fields"`
	Items   [][]interface{} `json:"items"`
	HasMore bool            `json:"has_more"`
}

// Error is a non-zero code returned in the response envelope (bad token, quota, bad params...).
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("tushare code %d: %s", e.Code, e.Msg)
}

// cellString renders one item value. Numbers keep their wire form (decoded with UseNumber),
// null becomes "".
func cellString(v interface{}) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("unexpected item value %T", v)
	}
}
