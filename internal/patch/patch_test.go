package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpgrade_Validate(t *testing.T) {
	tests := []struct {
		name     string
		boundary string
		target   string
		wantErr  string
	}{
		{name: "target at exclusive max", boundary: "1.0 <= v < 2.0", target: "2.0"},
		{name: "target above inclusive max", boundary: "1.0 <= v <= 2.0", target: "2.1"},
		{name: "target at inclusive max", boundary: "1.0 <= v <= 2.0", target: "2.0", wantErr: "not above boundary"},
		{name: "target inside", boundary: "1.0 <= v < 2.0", target: "1.5", wantErr: "not above boundary"},
		{name: "open upper end", boundary: "1.0 <= v", target: "5.0", wantErr: "no upper limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := upgrade("C1", tt.boundary, tt.target, nil).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestInstaller_Validate(t *testing.T) {
	assert.NoError(t, installer("C1", "1.0", nil, "C2: 1.0 <= v").Validate())
	assert.ErrorContains(t, NewInstaller("", v("1.0"), nil).Validate(), "component id is empty")
	assert.ErrorContains(t, NewInstaller("C1", Version{}, nil).Validate(), "target version is missing")
	assert.ErrorContains(t, installer("C1", "1.0", nil, "C1: 1.0 <= v").Validate(), "depends on itself")
}

func TestValidate_NilReceiver(t *testing.T) {
	var i *Installer
	var u *Upgrade

	assert.ErrorIs(t, i.Validate(), errNilPatch)
	assert.ErrorIs(t, u.Validate(), errNilPatch)
}

func TestPatch_Strings(t *testing.T) {
	assert.Equal(t, "C1: 1.0", installer("C1", "1.0", nil).String())
	assert.Equal(t, "C1: 1.0 <= v < 2.0", upgrade("C1", "1.0<=v<2.0", "2.0", nil).String())
	assert.Equal(t, "1.0", scope(installer("C1", "1.0", nil)))
	assert.Equal(t, "1.0 <= v < 2.0", scope(upgrade("C1", "1.0 <= v < 2.0", "2.0", nil)))
}

func TestPatch_DependenciesAreCopied(t *testing.T) {
	p := installer("C1", "1.0", nil, "C2: 1.0 <= v")

	deps := p.Dependencies()
	deps[0].ID = "changed"

	assert.Equal(t, "C2", p.Dependencies()[0].ID)
}
