package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	tests := []struct {
		pkgPath string
		want    string
	}{
		{"", ""},
		{"strconv", "strconv"},
		{"example.com/shop", "shop"},
		{"example.com/money/v2", "money"},
		{"gopkg.in/yaml.v3", "yaml"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PkgAlias(tt.pkgPath), tt.pkgPath)
	}
}
