// hashpass bcrypt-hashes a dashboard passcode so the plain value never
// has to live in the environment file.
//
// Usage: nexus-hashpass <passcode>
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <passcode>", os.Args[0])
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("ADMIN_DASHBOARD_PASSCODE=%s\n", hash)
}
