package services

import (
	"errors"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

type passwordHasherImpl struct {
	params *argon2id.Params
}

// NewPasswordHasher returns a hasher producing argon2id hashes. It also
// accepts bcrypt hashes when comparing, so accounts imported from
// bcrypt-based stores can still log in.
func NewPasswordHasher(params *argon2id.Params) PasswordHasher {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &passwordHasherImpl{params: params}
}

func (h *passwordHasherImpl) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, h.params)
}

func (h *passwordHasherImpl) Compare(password, hash string) (bool, error) {
	if isBcryptHash(hash) {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return err == nil, err
	}
	return argon2id.ComparePasswordAndHash(password, hash)
}

func isBcryptHash(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
