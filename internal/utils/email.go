package utils

import "net/mail"

// IsValidEmailSyntax does RFC-5322-ish syntax only (no DNS).
// mail.ParseAddress is surprisingly strict and is all the sign-in flow
// needs before the allow-list check.
func IsValidEmailSyntax(e string) bool {
	addr, err := mail.ParseAddress(e)
	return err == nil && addr.Address == e
}
