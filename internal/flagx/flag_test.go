package flagx

import (
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
			name:    "separate value",
			args:    []string{"-u", "http://host:8000", "-x", "junk"},
			allowed: []string{"-u"},
			want:    []string{"-u", "http://host:8000"},
		},
		{
			name:    "combined value",
			args:    []string{"--config=kiosk.json", "--other=1"},
			allowed: []string{"--config"},
			want:    []string{"--config=kiosk.json"},
		},
		{
			name:    "flag without value before another flag",
			args:    []string{"-v", "-u", "addr"},
			allowed: []string{"-v", "-u"},
			want:    []string{"-v", "-u", "addr"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1", "-b"},
			allowed: []string{"-z"},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowed)
			assert.Equal(t, tc.want, got)
		})
	}
}
