// Command htree inspects HTML documents through htree handles.
//
//	htree dump page.html
//	htree query 'a[href]' page.html
//	htree errors < page.html
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/htree/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "htree: %v\n", err)
		os.Exit(1)
	}
}
