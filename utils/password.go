package utils

import (
	"fmt"

	"github.com/matthewhartstonge/argon2"
)

// HashPassword encodes the password with argon2id defaults. The encoded
// string embeds salt and parameters, which is the form stored in the
// collaborator's /users collection.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(encoded), nil
}

// VerifyPassword checks a candidate password against its stored encoding.
// A mismatch is (false, nil); an error means the hash itself was unreadable.
func VerifyPassword(encodedHash, password string) (bool, error) {
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return false, fmt.Errorf("verifying password: %w", err)
	}
	return ok, nil
}
