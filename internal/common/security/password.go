package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost is fixed; bcrypt mixes a fresh random salt into every call, so
// hashing the same password twice yields different outputs.
const bcryptCost = 10

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
