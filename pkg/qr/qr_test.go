package qr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPNG(t *testing.T) {
	tts := []struct {
		name string
		data string
		size int
	}{
		{
			name: "default size",
			data: "DT:0705312027",
			size: 0,
		},
		{
			name: "explicit size",
			data: "A:2020202020",
			size: 128,
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			img, err := PNG(tt.data, tt.size)
			assert.NoError(t, err)
			assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
		})
	}
}

func TestDataURI(t *testing.T) {
	uri, err := DataURI("PK:2020", 0)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestPNGEmptyData(t *testing.T) {
	_, err := PNG("", 0)
	assert.Error(t, err)
}
