package cursor

import (
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const (
	DirectionNext = "next"
	DirectionPrev = "prev"
)

// CursorData contains the data encoded in a page cursor
type CursorData struct {
	// Offset is the index of the first top-level row of the page
	Offset int `cbor:"1,keyasint"`

	// Direction indicates the pagination direction ("next" or "prev")
	Direction string `cbor:"2,keyasint"`

	// PageSize is the limit that produced the cursor
	PageSize int `cbor:"3,keyasint,omitempty"`
}

// Encode encodes cursor data into a base64 string using CBOR
func Encode(data *CursorData) (string, error) {
	if data == nil {
		return "", nil
	}

	cborData, err := cbor.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor data: %w", err)
	}

	return base64.URLEncoding.EncodeToString(cborData), nil
}

// Decode decodes a base64 cursor string into cursor data using CBOR
func Decode(cursor string) (*CursorData, error) {
	if cursor == "" {
		return nil, nil
	}

	cborData, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cursor: %w", err)
	}

	var data CursorData
	if err := cbor.Unmarshal(cborData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cursor data: %w", err)
	}
	if data.Offset < 0 {
		return nil, fmt.Errorf("negative cursor offset %d", data.Offset)
	}

	return &data, nil
}
