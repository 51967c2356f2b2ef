package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"max.ks1230/budget-tracker/internal/logger"
)

func main() {
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errNotAdded) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
