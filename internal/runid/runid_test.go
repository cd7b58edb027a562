package runid

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/roulettelab/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, 26)
	require.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		assert.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)

	a := NewGenerator(clock, randutil.New(1)).Generate()
	b := NewGenerator(clock, randutil.New(1)).Generate()
	c := NewGenerator(clock, randutil.New(2)).Generate()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	require.NoError(t, Validate(a))
}

func TestGeneratorSortsByTime(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	g := NewGenerator(clock, randutil.New(3))

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, g.Generate())
		clock.Advance(time.Millisecond).MustWait(ctx)
	}
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestEncodeBounds(t *testing.T) {
	var zero, ones [16]byte
	for i := range ones {
		ones[i] = 0xff
	}
	assert.Equal(t, "00000000000000000000000000", encode(zero))
	assert.Equal(t, "7zzzzzzzzzzzzzzzzzzzzzzzzz", encode(ones))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid ID", id: "01h5n0et5q6mt3v7ms1234abcd"},
		{name: "too short", id: "01h5n0et5q6mt3v7ms123", wantErr: true},
		{name: "too long", id: "01h5n0et5q6mt3v7ms1234abcdef", wantErr: true},
		{name: "first char too high", id: "81h5n0et5q6mt3v7ms1234abcd", wantErr: true},
		{name: "excluded letter", id: "01h5n0et5q6mt3v7ms1234abcu", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
