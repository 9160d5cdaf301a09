// Command biographyctl validates and inspects biography documents and manages
// the site's media and unlock sessions.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
