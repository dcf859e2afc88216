// Command largeint is a calculator and verification tool for bit-vector
// arbitrary-precision integers.
package main

import (
	"context"
	"os"

	"github.com/agbru/largeint/internal/app"
	apperrors "github.com/agbru/largeint/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
