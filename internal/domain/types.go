package domain

import (
	"database/sql/driver"
	"encoding/json"
)

// Image is a single cover-art descriptor as reported by the catalog.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// ImageList stores an ordered set of image descriptors as a JSON column.
type ImageList []Image

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}

	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}

	return json.Unmarshal(data, l)
}
