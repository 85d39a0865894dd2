package config

import (
	"fmt"
	"strings"
)

func replace(s, old, new string) string {
	if !strings.Contains(s, old) {
		panic(fmt.Sprintf("'%s' is not in the test file", old))
	}
	return strings.Replace(s, old, new, 1)
}
