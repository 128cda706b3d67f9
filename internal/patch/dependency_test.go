package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDependency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		id      string
		bound   string
		wantErr string
	}{
		{name: "bounded", input: "C1: 1.0 <= v < 2.0", id: "C1", bound: "1.0 <= v < 2.0"},
		{name: "tight spacing", input: "C1:1.0<=v", id: "C1", bound: "1.0 <= v"},
		{name: "bare id", input: "C2", id: "C2", bound: "v"},
		{name: "trailing colon", input: "C2:", id: "C2", bound: "v"},
		{name: "empty id", input: ": 1.0 <= v", wantErr: "component id is empty"},
		{name: "bad boundary", input: "C1: 2.0 > v", wantErr: "unsupported operator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDependency(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, got.ID)
			assert.Equal(t, tt.bound, got.Boundary.String())
		})
	}
}

func TestDependency_String(t *testing.T) {
	d := NewDependency("C1", MustParseBoundary("1.0 <= v"))
	assert.Equal(t, "C1: 1.0 <= v", d.String())
}

func TestDependency_JSON(t *testing.T) {
	deps := []Dependency{
		NewDependency("C1", MustParseBoundary("1.0 <= v < 2.0")),
		NewDependency("C2", Unbounded()),
	}

	data, err := json.Marshal(deps)
	require.NoError(t, err)
	assert.JSONEq(t, `["C1: 1.0 <= v < 2.0", "C2: v"]`, string(data))

	var back []Dependency
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.True(t, back[0].Boundary.Equal(deps[0].Boundary))
	assert.Equal(t, "C2", back[1].ID)
}
