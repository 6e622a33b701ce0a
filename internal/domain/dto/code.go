package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Code одноразовый код. Клиенты присылают его и строкой, и числом.
// null дает пустой код, который не совпадет ни с одним выданным.
type Code string

func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return err
	}
	*c = Code(n.String())
	return nil
}
