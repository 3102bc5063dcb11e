// Command factonet herramientas de operación de FactoNet: migraciones, usuario
// administrador, montos en letras, PDF de muestra y exportación de facturas.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
