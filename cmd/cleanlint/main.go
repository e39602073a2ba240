// Command cleanlint checks clean struct tags:
// - malformed tags
// - misplaced or repeated base links
// - options that have no effect
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/idudko/go-autoclean/cmd/cleanlint/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
