package test

import (
	"math/rand/v2"
	"strings"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	passwordRune = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func randomString(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

// RandomName returns a capitalized customer name of n letters.
func RandomName(n int) string {
	if n <= 0 {
		n = 1
	}
	name := randomString(lowerLetters, n)
	return strings.ToUpper(name[:1]) + name[1:]
}

// RandomEmail returns a unique looking address on the example.com domain.
func RandomEmail() string {
	return randomString(lowerLetters, 10) + "@example.com"
}

// RandomPassword returns a password accepted by registration.
func RandomPassword() string {
	return randomString(passwordRune, 12+rand.IntN(12))
}

// SampleAddress returns a fully populated delivery address.
func SampleAddress() model.Address {
	return model.Address{
		FirstName: "Asha",
		LastName:  "Rao",
		Street:    "12 MG Road",
		City:      "Bengaluru",
		State:     "KA",
		Zipcode:   "560001",
		Country:   "India",
		Phone:     "9800000000",
		Email:     "asha@example.com",
	}
}
