// botctl é a ferramenta de linha de comando do assistente NexPOS.
//
// Uso:
//
//	botctl token <username>
//	botctl capabilities [--role=<papel>]
//	botctl chat [--role=<papel>] [--session=<id>]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hugohenrick/nexpos-assistant/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Aviso: falha ao ler .env: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
