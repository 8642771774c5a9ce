// main holds the entry logic for the perfgate CLI.
package main

import (
	"fmt"
	"os"

	"github.com/perfgate/perfgate/cmd"
	"github.com/perfgate/perfgate/internal/histstore"
)

func main() {
	cmd.SetStoreManager(histstore.Manager)

	err := cmd.Execute()
	histstore.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
