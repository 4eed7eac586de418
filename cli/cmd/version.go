package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/binconf/pkg"
)

// Version prints version information.
type Version struct{}

// Run executes the version command.
func (Version) Run(context.Context) error {
	fmt.Println(pkg.Name, pkg.Version)

	return nil
}
