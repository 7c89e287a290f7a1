package cli

import (
	"fmt"
	"os"

	"github.com/npillmayer/htree/parser"
	"gopkg.in/yaml.v3"
)

// loadOptions reads parser options from a YAML file. Keys missing from the
// file keep their default values. An empty path yields the defaults.
//
//	tab_stop: 4
//	max_errors: 100
//	scripting: false
//	reuse_arenas: true
//	max_source_size: 1048576
func loadOptions(path string) (parser.Options, error) {
	opts := parser.DefaultOptions()
	if path == "" {
		return opts, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(content, &opts); err != nil {
		return opts, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if opts.TabStop < 1 {
		return opts, fmt.Errorf("config %s: tab_stop must be positive, is %d", path, opts.TabStop)
	}
	return opts, nil
}
