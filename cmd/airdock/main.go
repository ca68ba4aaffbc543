// Command airdock is the deployment-automation CLI for the containerized
// Airflow stack.
package main

import (
	"github.com/rzbill/airdock/pkg/cli/cmd"
)

func main() {
	cmd.Execute()
}
