// Package main generates the Argon2id hash of an admin API key, for
// pasting into the config file's admin_key_hash field.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/manacart/manacart/internal/auth"
)

func main() {
	flag.Parse()

	key := flag.Arg(0)
	if key == "" {
		fmt.Fprint(os.Stderr, "Admin key: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "read key: %v\n", err)
			os.Exit(1)
		}
		key = strings.TrimSpace(line)
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "usage: hashkey <admin-key>")
		os.Exit(1)
	}

	hash, err := auth.HashKey(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
