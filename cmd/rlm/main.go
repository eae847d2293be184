// Command rlm indexes a source tree into a symbol-level SQLite database and
// exposes search, navigation, and syntax-safe editing over it.
package main

import "github.com/rlm-dev/rlm/internal/cli"

func main() {
	cli.Execute()
}
