package constant

import (
	_ "embed"
	"fmt"
	"strings"
	"time"
)

var (
	//go:embed version
	version     string
	Version     string
	compileTime = "2026-10-17T00:00:00Z"
	CompileTime time.Time
)

const DefaultOutputExtension = ".jams"

func init() {
	t, err := time.Parse(time.RFC3339, compileTime)
	if nil != err {
		panic(fmt.Errorf("could not parse CompileTime constant %q. Make sure it is set at build time", compileTime))
	}
	CompileTime = t
	Version = strings.TrimSpace(version)
}
