package payfast

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// Param is one ordered request parameter. PayFast signs parameters in
// their original insertion order, never sorted, so a map cannot be used.
type Param struct {
	Key   string
	Value string
}

// GenerateSignature computes the PayFast MD5 signature:
// drop blank values (order preserved), join key=urlencoded(value) with
// '&', append the urlencoded passphrase when configured, md5, lowercase hex.
func GenerateSignature(params []Param, passphrase string) string {
	var b strings.Builder

	first := true
	for _, p := range params {
		v := strings.TrimSpace(p.Value)
		if v == "" {
			continue
		}
		if !first {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(encode(v))
		first = false
	}

	if passphrase != "" {
		b.WriteString("&passphrase=")
		b.WriteString(encode(passphrase))
	}

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// VerifySignature recomputes the signature over params (which must not
// contain the signature field) and compares case-insensitively.
func VerifySignature(params []Param, providedSignature, passphrase string) bool {
	return strings.EqualFold(GenerateSignature(params, passphrase), providedSignature)
}

// PayFast expects %20 for spaces, not '+'
func encode(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
