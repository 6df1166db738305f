// Command hachimi-launcher starts the game from the Steam launch options and
// waits for it to exit. Steam passes the game executable as the first
// argument; without one the Steam JP executable in the working directory is
// started. Release builds link it with -H=windowsgui so no console opens.
package main

import (
	"errors"
	"os"
	"os/exec"
)

const defaultTarget = "UmamusumePrettyDerby_Jpn.exe"

func main() {
	os.Exit(run(os.Args))
}

// run starts args[1] with the remaining arguments and returns its exit code.
func run(args []string) int {
	target, rest := defaultTarget, []string(nil)
	if len(args) > 1 {
		target, rest = args[1], args[2:]
	}

	cmd := exec.Command(target, rest...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		return 1
	}
	return 0
}
