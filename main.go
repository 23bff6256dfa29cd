// A service which finds cover images for Journeo travel guides.
//
// This file is only here to make installing with go install easier.
// The source lives in the src directory instead of the project root.
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/journeo/coverd/src"
)

// sqlFilesFS the migrations directory which contains SQL migrations for
// sql-migrate. If the embedded directory name changes, remember to change
// it in main() too.
//
//go:embed sqls
var sqlFilesFS embed.FS

func main() {
	sqls, err := fs.Sub(sqlFilesFS, "sqls")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading sqls subFS: %s\n", err)
		os.Exit(1)
	}

	src.Main(sqls)
}
