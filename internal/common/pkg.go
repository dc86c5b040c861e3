package common

import (
	"path"

	"golang.org/x/mod/module"
)

// PkgAlias returns the name a package is referred to by: the last path element
// without a major version suffix ("example.com/money/v2" and "gopkg.in/yaml.v3"
// give "money" and "yaml"). Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	if prefix, _, ok := module.SplitPathVersion(pkgPath); ok && prefix != "" {
		return path.Base(prefix)
	}

	return path.Base(pkgPath)
}
