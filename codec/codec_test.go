package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex/document"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	raw := `{"nested":{"n":1.5},"title":"hello","vector":[0.5,1],"views":15}`

	v, err := document.Decode([]byte(raw))
	require.NoError(t, err)

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(v)
			require.NoError(t, err)

			back, err := c.Unmarshal(data)
			require.NoError(t, err)
			assert.True(t, v.Equal(back), "got %s", back.Render())
		})
	}
}

func TestCodecsAreWireCompatible(t *testing.T) {
	v, err := document.Decode([]byte(`{"b":2,"a":"x"}`))
	require.NoError(t, err)

	j, err := JSON{}.Marshal(v)
	require.NoError(t, err)
	g, err := GoJSON{}.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, j, g)
}

func TestUnmarshalInvalid(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		_, err := c.Unmarshal([]byte(`{"broken":`))
		assert.Error(t, err, c.Name())
	}
}
