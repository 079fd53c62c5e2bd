// Metaform edits product and customer metadata through typed forms.
package main

import (
	"os"

	"github.com/mesh-intelligence/metaform/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
