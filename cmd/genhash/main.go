package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"campus-challenge.backend/pkg/crypto"
)

var (
	stdin     io.Reader = os.Stdin
	stdout    io.Writer = os.Stdout
	fatalfFn            = log.Fatalf
	hashFn              = crypto.HashPassword
	errNoPass           = errors.New("password is empty")
)

// resolvePassword takes the first argument, or the first line of stdin
func resolvePassword(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		if args[0] == "" {
			return "", errNoPass
		}
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errNoPass
	}
	return line, nil
}

func run(args []string) error {
	fs := flag.NewFlagSet("genhash", flag.ContinueOnError)
	cost := fs.Int("cost", crypto.DefaultCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := resolvePassword(fs.Args(), stdin)
	if err != nil {
		return err
	}
	hash, err := hashFn(password, *cost)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "ADMIN_PASSWORD_HASH=%s\n", hash)
	return err
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatalfFn("genhash: %v", err)
	}
}
