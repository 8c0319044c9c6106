package main

import (
	"fmt"
	"log"

	"github.com/mathewgeejo/cinemabase/shared/utils"
)

func main() {
	key, err := utils.GenerateSecret(32)
	if err != nil {
		log.Fatalf("Failed to generate jwt key: %v", err)
	}

	fmt.Println("=================================================")
	fmt.Println("  Session Signing Key (HMAC-SHA256)")
	fmt.Println("=================================================")
	fmt.Println()
	fmt.Println("Generated key (base64):")
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Add this to your backend/config/private.yaml:")
	fmt.Printf("jwt_key: \"%s\"\n", key)
	fmt.Println()
	fmt.Println("IMPORTANT:")
	fmt.Println("- Rotating this key signs every user out!")
	fmt.Println("- Never commit this key to version control!")
	fmt.Println("=================================================")
}
