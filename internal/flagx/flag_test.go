package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-n", "artifact.zip", "-x", "junk"},
			allowed: []string{"-n"},
			want:    []string{"-n", "artifact.zip"},
		},
		{
			name:    "equals form kept",
			args:    []string{"--filename=artifact.zip", "--other=1"},
			allowed: []string{"--filename"},
			want:    []string{"--filename=artifact.zip"},
		},
		{
			name:    "bool flag without value",
			args:    []string{"-v", "-n", "artifact.zip"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-n", "artifact.zip"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-n", "artifact.zip", "-c", "conf.json"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cmd", "-n", "artifact.zip"}
	assert.Equal(t, "", JsonConfigFlags())
}
