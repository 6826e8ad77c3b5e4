package info

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/ami/pkg/store"
)

type Info struct {
	Config     store.Config
	Transcript store.Transcript
}

func (n *Info) Do(ctx context.Context) error {

	if override := os.Getenv("AMI_CONFIG_PATH"); override != "" {
		fmt.Println("AMI_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("AMI_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Println("Config.server: ", n.Config.Server())
	fmt.Println("Config.path: ", n.Config.BasePath())
	if a := n.Config.Agent(); a != "" {
		fmt.Println("Config.agent: ", a)
	}
	if t := n.Config.Timeout(); t > 0 {
		fmt.Println("Config.timeout: ", t)
	}

	if n.Transcript == nil {
		return fmt.Errorf("Failed to open transcript archive.")
	}

	fmt.Printf("Archived agents:\n")
	found := 0
	for _, k := range n.Transcript.Agents(ctx) {
		fmt.Printf("  %s (%d exchanges)\n", k, len(n.Transcript.List(ctx, k)))
		found++
	}

	if found == 0 {
		fmt.Printf("  %s\n", "no chat history")
	}

	return nil
}
