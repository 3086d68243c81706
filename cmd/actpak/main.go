// Command actpak extracts assets from ACTKOOL game containers.
package main

import "github.com/meigma/actpak/internal/cli"

func main() {
	cli.Execute()
}
