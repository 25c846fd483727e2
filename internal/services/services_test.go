package services

import (
	"github.com/alexedwards/argon2id"
)

// testHashParams keeps argon2id cheap in tests.
var testHashParams = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func strPtr(s string) *string {
	return &s
}
