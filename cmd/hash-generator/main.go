// Command hash-generator prints bcrypt hashes for passwords, using the same
// hasher and password policy as the server. It is meant for seeding user
// rows by hand.
//
// Passwords are taken from the arguments, or one per line from stdin when
// no arguments are given.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil && !errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	flags := pflag.NewFlagSet("hash-generator", pflag.ContinueOnError)
	flags.SetOutput(out)
	cost := flags.Int("cost", 10, "bcrypt cost (4-31)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	passwords := flags.Args()
	if len(passwords) == 0 {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				passwords = append(passwords, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read passwords: %w", err)
		}
	}
	if len(passwords) == 0 {
		return errors.New("no passwords given")
	}

	hasher := auth.NewBcryptHasher(*cost)
	for i, password := range passwords {
		if err := domain.ValidatePassword(password); err != nil {
			return fmt.Errorf("password %d: %w", i+1, err)
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("password %d: %w", i+1, err)
		}
		fmt.Fprintln(out, hash)
	}
	return nil
}
