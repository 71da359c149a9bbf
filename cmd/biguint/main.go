package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agbru/biguint/internal/app"
	apperrors "github.com/agbru/biguint/internal/errors"
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
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitCodeFor(err))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
