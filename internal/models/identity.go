package models

import (
	"strings"

	"github.com/google/uuid"
)

var (
	cafeNamespace = uuid.MustParse("3b1f6a52-8c0e-4f7a-9d61-0c2f5e7b9a11")
	userNamespace = uuid.MustParse("9e4d2c17-5b3a-4e08-b6f1-7a2c8d0e4f53")
)

// CafeKey identifies a place by its normalized name and address.
type CafeKey struct {
	Name    string
	Address string
}

func NewCafeKey(name, address string) CafeKey {
	return CafeKey{Name: normalizeIdentity(name), Address: normalizeIdentity(address)}
}

func (k CafeKey) String() string {
	return k.Name + "\x1f" + k.Address
}

// CafeID derives the stable record id for (name, address). Re-submitting the
// same place always yields the same id.
func CafeID(name, address string) string {
	return uuid.NewSHA1(cafeNamespace, []byte(NewCafeKey(name, address).String())).String()
}

// UserID maps an identity-provider subject onto a local user id.
func UserID(provider, subject string) string {
	return uuid.NewSHA1(userNamespace, []byte(strings.ToLower(provider)+":"+subject)).String()
}

func normalizeIdentity(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
