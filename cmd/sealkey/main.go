package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ellavondegurechaff/goaura/goaura/ai"
)

// sealkey encrypts an upstream API key for the config file. The secret is
// read from stdin so it never appears in shell history or process lists:
//
//	echo -n "sk-..." | sealkey <passphrase>
//
// The printed value goes into ai.sealed_api_key; the passphrase is supplied
// to the server via ai.key_passphrase.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: sealkey <passphrase> (secret on stdin)")
		os.Exit(2)
	}
	passphrase := os.Args[1]

	secret, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read secret from stdin: %v\n", err)
		os.Exit(1)
	}
	trimmed := strings.TrimRight(string(secret), "\r\n")
	if trimmed == "" {
		fmt.Fprintln(os.Stderr, "secret is empty")
		os.Exit(1)
	}

	sealed, err := ai.Seal(trimmed, passphrase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seal secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(sealed)
}
